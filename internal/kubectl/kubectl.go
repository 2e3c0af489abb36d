// Package kubectl wraps the external kubectl binary as an opaque
// subprocess. All cluster communication, auth, and API semantics live in
// the wrapped tool; this package only shells out and parses line or JSON
// output into plain string lists.
package kubectl

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/tidwall/gjson"
)

// DefaultBinary is used when no kubectl path is configured.
const DefaultBinary = "kubectl"

// Stdio bundles the streams a passthrough invocation inherits.
type Stdio struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Client is the surface the shell consumes. Implementations are expected
// to be stateless; the current context/namespace parameters travel with
// each call.
type Client interface {
	Contexts(ctx context.Context) ([]string, error)
	CurrentContext(ctx context.Context) (string, error)
	UseContext(ctx context.Context, name string) error
	Namespaces(ctx context.Context) ([]string, error)
	CurrentNamespace(ctx context.Context) (string, error)
	SetNamespace(ctx context.Context, name string) error
	Run(ctx context.Context, args []string, stdio Stdio) error
}

// Runner is the real Client, invoking the configured binary.
type Runner struct {
	binary string
	logger *slog.Logger
}

// NewRunner creates a Runner for the given binary path. An empty path
// falls back to DefaultBinary (resolved through PATH at invocation time).
func NewRunner(binary string, logger *slog.Logger) *Runner {
	if binary == "" {
		binary = DefaultBinary
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{binary: binary, logger: logger}
}

// Contexts lists context names in kubeconfig order.
func (r *Runner) Contexts(ctx context.Context) ([]string, error) {
	out, err := r.capture(ctx, "config", "get-contexts", "-o", "name")
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

// CurrentContext returns the active context name.
func (r *Runner) CurrentContext(ctx context.Context) (string, error) {
	out, err := r.capture(ctx, "config", "current-context")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// UseContext switches the active kubeconfig context.
func (r *Runner) UseContext(ctx context.Context, name string) error {
	_, err := r.capture(ctx, "config", "use-context", name)
	return err
}

// Namespaces lists namespace names in cluster order.
func (r *Runner) Namespaces(ctx context.Context) ([]string, error) {
	out, err := r.capture(ctx, "get", "namespaces", "-o", "json")
	if err != nil {
		return nil, err
	}
	return parseNamespaces(out), nil
}

// CurrentNamespace returns the namespace of the active context, defaulting
// to "default" when the context sets none.
func (r *Runner) CurrentNamespace(ctx context.Context) (string, error) {
	out, err := r.capture(ctx, "config", "view", "--minify", "-o", "json")
	if err != nil {
		return "", err
	}
	return parseCurrentNamespace(out), nil
}

// parseNamespaces extracts namespace names from `kubectl get namespaces -o
// json` output.
func parseNamespaces(out string) []string {
	var names []string
	for _, name := range gjson.Get(out, "items.#.metadata.name").Array() {
		if name.String() != "" {
			names = append(names, name.String())
		}
	}
	return names
}

// parseCurrentNamespace extracts the active context's namespace from
// `kubectl config view --minify -o json` output.
func parseCurrentNamespace(out string) string {
	ns := gjson.Get(out, "contexts.0.context.namespace").String()
	if ns == "" {
		return "default"
	}
	return ns
}

// SetNamespace pins the namespace on the active context.
func (r *Runner) SetNamespace(ctx context.Context, name string) error {
	_, err := r.capture(ctx, "config", "set-context", "--current", "--namespace="+name)
	return err
}

// Run forwards args to kubectl with the caller's stdio attached. The exit
// error, if any, is returned as-is so callers can inspect the code.
func (r *Runner) Run(ctx context.Context, args []string, stdio Stdio) error {
	r.logger.Debug("kubectl passthrough", "args", args)
	cmd := exec.CommandContext(ctx, r.binary, args...)
	cmd.Stdin = stdio.In
	cmd.Stdout = stdio.Out
	cmd.Stderr = stdio.Err
	return cmd.Run()
}

// capture runs kubectl with args and returns stdout, folding a stderr tail
// into the error for diagnosis.
func (r *Runner) capture(ctx context.Context, args ...string) (string, error) {
	r.logger.Debug("kubectl query", "args", args)

	cmd := exec.CommandContext(ctx, r.binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return "", fmt.Errorf("%s %s: %w: %s", r.binary, strings.Join(args, " "), err, lastLine(msg))
		}
		return "", fmt.Errorf("%s %s: %w", r.binary, strings.Join(args, " "), err)
	}
	return stdout.String(), nil
}

// splitLines splits trimmed, non-empty output lines.
func splitLines(out string) []string {
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// lastLine returns the final non-empty line of s, where kubectl puts the
// actual error.
func lastLine(s string) string {
	lines := splitLines(s)
	if len(lines) == 0 {
		return s
	}
	return lines[len(lines)-1]
}
