package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/runger/kubesh/internal/config"
	"github.com/runger/kubesh/internal/history"
	"github.com/runger/kubesh/internal/kubectl"
	"github.com/runger/kubesh/internal/logging"
	"github.com/runger/kubesh/internal/picker"
	"github.com/runger/kubesh/internal/shell"
)

// app bundles the collaborators every subcommand builds from config.
type app struct {
	cfg      *config.Config
	paths    *config.Paths
	logger   *slog.Logger
	client   kubectl.Client
	selector picker.Selector
	store    *history.Store
}

// newApp loads config and constructs the shared collaborators. History
// open failures demote to a warning; the shell works without persistence.
func newApp() (*app, error) {
	paths := config.DefaultPaths()
	cfg, err := config.Load(paths.ConfigFile())
	if err != nil {
		return nil, err
	}

	logger := logging.New(os.Stderr, cfg.Log.Level)

	selector := picker.NewSelector(cfg.Picker.DisableFzf)
	if builtin, ok := selector.(*picker.Builtin); ok {
		builtin.MaxRows = cfg.Picker.MaxHeight
	}

	a := &app{
		cfg:      cfg,
		paths:    paths,
		logger:   logger,
		client:   kubectl.NewRunner(cfg.Kubectl.Path, logger),
		selector: selector,
	}

	if cfg.HistoryEnabled() {
		store, err := history.Open(paths.HistoryDB())
		if err != nil {
			logger.Warn("history disabled", "error", err)
		} else {
			a.store = store
		}
	}

	// A piped stdout detects as Ascii, which disables styling on its own.
	lipgloss.SetColorProfile(termenv.NewOutput(os.Stdout).ColorProfile())

	return a, nil
}

// close releases the app's resources.
func (a *app) close() {
	if a.store != nil {
		a.store.Close()
	}
}

// newShell builds an interactive shell over the app's collaborators.
func (a *app) newShell() *shell.Shell {
	return shell.New(a.client, a.selector, shell.Options{
		History:       a.store,
		Aliases:       shell.Aliases(a.cfg.Aliases),
		ExtensionsDir: a.cfg.Extensions.Dir,
		Logger:        a.logger,
	})
}

// runShell starts the interactive loop for the bare kubesh invocation.
func runShell(ctx context.Context) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()
	return a.newShell().Run(ctx)
}
