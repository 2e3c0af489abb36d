// Package shell implements the interactive kubesh loop: shorthand
// commands and alias expansion on top of kubectl, with context and
// namespace switching through the fuzzy picker.
package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/shlex"

	"github.com/runger/kubesh/internal/history"
	"github.com/runger/kubesh/internal/kubectl"
	"github.com/runger/kubesh/internal/picker"
)

var (
	promptStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("76"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	faintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Options configures a Shell beyond its two required collaborators.
type Options struct {
	History       *history.Store // nil disables history persistence
	Aliases       Aliases
	ExtensionsDir string
	Logger        *slog.Logger
	In            io.Reader
	Out           io.Writer
	ErrOut        io.Writer
}

// Shell is one interactive session over a kubectl client and a candidate
// selector. It owns its Session exclusively.
type Shell struct {
	client   kubectl.Client
	selector picker.Selector
	store    *history.Store
	aliases  Aliases
	extDir   string
	logger   *slog.Logger

	in     io.Reader
	out    io.Writer
	errOut io.Writer

	session *Session
}

// New creates a Shell. Unset option fields get stdin/stdout/stderr and the
// default logger.
func New(client kubectl.Client, selector picker.Selector, opts Options) *Shell {
	s := &Shell{
		client:   client,
		selector: selector,
		store:    opts.History,
		aliases:  opts.Aliases,
		extDir:   opts.ExtensionsDir,
		logger:   opts.Logger,
		in:       opts.In,
		out:      opts.Out,
		errOut:   opts.ErrOut,
	}
	if s.aliases == nil {
		s.aliases = Aliases{}
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.in == nil {
		s.in = os.Stdin
	}
	if s.out == nil {
		s.out = os.Stdout
	}
	if s.errOut == nil {
		s.errOut = os.Stderr
	}
	return s
}

// Run reads and executes lines until exit or EOF. Command errors are
// printed and the loop continues; only a read failure ends it abnormally.
func (s *Shell) Run(ctx context.Context) error {
	sess := s.ensureSession(ctx)
	s.logger.Info("session started", "session", sess.ID, "context", sess.Context, "namespace", sess.Namespace)

	scanner := bufio.NewScanner(s.in)
	for {
		fmt.Fprint(s.out, s.prompt())
		if !scanner.Scan() {
			fmt.Fprintln(s.out)
			break
		}
		quit, err := s.Execute(ctx, scanner.Text())
		if err != nil {
			fmt.Fprintln(s.errOut, errorStyle.Render("error: "+err.Error()))
		}
		if quit {
			break
		}
	}
	s.logger.Info("session ended", "session", sess.ID)
	return scanner.Err()
}

// Execute runs a single input line. quit reports that the session should
// end.
func (s *Shell) Execute(ctx context.Context, line string) (quit bool, err error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false, nil
	}
	tokens, err := shlex.Split(line)
	if err != nil {
		return false, fmt.Errorf("parse line: %w", err)
	}
	if len(tokens) == 0 {
		return false, nil
	}

	s.record(ctx, line)

	switch tokens[0] {
	case "exit", "quit":
		return true, nil
	case "help":
		s.printHelp()
		return false, nil
	case "ctx":
		return false, s.SwitchContext(ctx, firstArg(tokens))
	case "ns":
		return false, s.SwitchNamespace(ctx, firstArg(tokens))
	case "history":
		return false, s.showHistory(ctx, firstArg(tokens))
	case "alias":
		s.printAliases()
		return false, nil
	case "extensions":
		return false, s.printExtensions()
	}
	return false, s.forward(ctx, tokens)
}

// SwitchContext switches the kubeconfig context. An empty arg opens the
// picker with the current context highlighted; a non-empty arg is fuzzy
// resolved against the context list. Cancelling the picker is a no-op.
func (s *Shell) SwitchContext(ctx context.Context, arg string) error {
	sess := s.ensureSession(ctx)

	candidates, err := s.client.Contexts(ctx)
	if err != nil {
		return err
	}

	name, ok, err := s.choose(candidates, "Switch context", sess.Context, arg)
	if err != nil || !ok {
		return err
	}
	if name == "" || name == sess.Context {
		return nil
	}

	if err := s.client.UseContext(ctx, name); err != nil {
		return err
	}
	sess.Context = name
	// The new context may pin a different namespace.
	if ns, err := s.client.CurrentNamespace(ctx); err == nil {
		sess.Namespace = ns
	}

	s.logger.Info("switched context", "session", sess.ID, "context", name)
	fmt.Fprintln(s.out, noticeStyle.Render("switched to context "+name))
	return nil
}

// SwitchNamespace switches the namespace on the current context, with the
// same pick-or-resolve behavior as SwitchContext.
func (s *Shell) SwitchNamespace(ctx context.Context, arg string) error {
	sess := s.ensureSession(ctx)

	candidates, err := s.client.Namespaces(ctx)
	if err != nil {
		return err
	}

	name, ok, err := s.choose(candidates, "Switch namespace", sess.Namespace, arg)
	if err != nil || !ok {
		return err
	}
	if name == "" || name == sess.Namespace {
		return nil
	}

	if err := s.client.SetNamespace(ctx, name); err != nil {
		return err
	}
	sess.Namespace = name

	s.logger.Info("switched namespace", "session", sess.ID, "namespace", name)
	fmt.Fprintln(s.out, noticeStyle.Render("switched to namespace "+name))
	return nil
}

// choose selects one candidate: interactively when arg is empty, by fuzzy
// resolution otherwise. ok=false means the user cancelled.
func (s *Shell) choose(candidates []string, title, current, arg string) (string, bool, error) {
	if arg == "" {
		return s.selector.Pick(candidates, title, current)
	}
	resolved, ok := Resolve(arg, candidates)
	if !ok {
		return "", false, fmt.Errorf("nothing matches %q", arg)
	}
	return resolved, true, nil
}

// forward expands aliases and hands the line to kubectl, scoped to the
// session's context and namespace.
func (s *Shell) forward(ctx context.Context, tokens []string) error {
	sess := s.ensureSession(ctx)

	tokens = s.aliases.Expand(tokens)
	if len(tokens) > 0 && tokens[0] == "kubectl" {
		tokens = tokens[1:]
	}
	if len(tokens) == 0 {
		return nil
	}

	args := injectScope(tokens, sess.Context, sess.Namespace)
	return s.client.Run(ctx, args, kubectl.Stdio{In: s.in, Out: s.out, Err: s.errOut})
}

// injectScope appends --context/--namespace unless the user already set
// them on the line.
func injectScope(tokens []string, kubeCtx, kubeNS string) []string {
	args := append([]string(nil), tokens...)
	if kubeCtx != "" && !hasFlag(tokens, "--context") {
		args = append(args, "--context", kubeCtx)
	}
	if kubeNS != "" && !hasFlag(tokens, "--namespace") && !hasFlag(tokens, "-n") && !hasFlag(tokens, "--all-namespaces") && !hasFlag(tokens, "-A") {
		args = append(args, "--namespace", kubeNS)
	}
	return args
}

// hasFlag reports whether tokens contains flag as "--flag" or "--flag=v".
func hasFlag(tokens []string, flag string) bool {
	for _, t := range tokens {
		if t == flag || strings.HasPrefix(t, flag+"=") {
			return true
		}
	}
	return false
}

// record persists the line to history; failures are logged, never fatal.
func (s *Shell) record(ctx context.Context, line string) {
	if s.store == nil {
		return
	}
	sess := s.ensureSession(ctx)
	err := s.store.Record(ctx, history.Entry{
		SessionID: sess.ID,
		Line:      line,
		Context:   sess.Context,
		Namespace: sess.Namespace,
	})
	if err != nil {
		s.logger.Warn("history record failed", "error", err)
	}
}

// showHistory prints recent lines, or fuzzy search results when a query
// is given.
func (s *Shell) showHistory(ctx context.Context, query string) error {
	if s.store == nil {
		fmt.Fprintln(s.out, faintStyle.Render("history is disabled"))
		return nil
	}

	if query == "" {
		entries, err := s.store.Recent(ctx, 20)
		if err != nil {
			return err
		}
		for i := len(entries) - 1; i >= 0; i-- {
			e := entries[i]
			fmt.Fprintf(s.out, "%s  %s\n", faintStyle.Render(e.RanAt.Format("15:04:05")), e.Line)
		}
		return nil
	}

	lines, err := s.store.Search(ctx, query, 20)
	if err != nil {
		return err
	}
	for _, line := range lines {
		fmt.Fprintln(s.out, line)
	}
	return nil
}

func (s *Shell) printAliases() {
	names := make([]string, 0, len(s.aliases))
	for name := range s.aliases {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(s.out, "%s = %s\n", name, s.aliases[name])
	}
}

func (s *Shell) printExtensions() error {
	scripts, err := ListExtensions(s.extDir)
	if err != nil {
		return err
	}
	if len(scripts) == 0 {
		fmt.Fprintln(s.out, faintStyle.Render("no extensions found"))
		return nil
	}
	for _, script := range scripts {
		fmt.Fprintln(s.out, script)
	}
	return nil
}

func (s *Shell) printHelp() {
	fmt.Fprint(s.out, `builtins:
  ctx [name]       switch context (picker when no name)
  ns [name]        switch namespace (picker when no name)
  history [query]  show or fuzzy-search command history
  alias            list alias expansions
  extensions       list extension scripts
  help             this text
  exit             leave the shell

anything else runs through kubectl, scoped to the current context and
namespace. Aliases expand on the first word.
`)
}

// ensureSession lazily creates the session so one-shot commands can reuse
// the switch handlers without running the loop.
func (s *Shell) ensureSession(ctx context.Context) *Session {
	if s.session == nil {
		s.session = NewSession(ctx, s.client)
	}
	return s.session
}

// Session exposes the live session, creating it if needed.
func (s *Shell) Session(ctx context.Context) *Session {
	return s.ensureSession(ctx)
}

// prompt renders "context/namespace> " with unset parts shown as "-".
func (s *Shell) prompt() string {
	kubeCtx := s.session.Context
	if kubeCtx == "" {
		kubeCtx = "-"
	}
	ns := s.session.Namespace
	if ns == "" {
		ns = "-"
	}
	return promptStyle.Render(kubeCtx+"/"+ns) + "> "
}

// firstArg returns the first argument after the command word.
func firstArg(tokens []string) string {
	if len(tokens) > 1 {
		return tokens[1]
	}
	return ""
}
