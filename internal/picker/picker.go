// Package picker provides interactive selection of a single string from a
// candidate list. The built-in backend is a Bubble Tea filter list; when the
// external fzf tool is installed, selection is delegated to it instead. Both
// satisfy the same Selector contract, so callers never branch on the backend.
package picker

import (
	"fmt"
	"os"
	"os/exec"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Selector picks one item from a list. It returns the selected item and
// true, or ok=false when the user cancels or the list is empty. The call
// blocks for the duration of the interactive session.
type Selector interface {
	Pick(items []string, title, current string) (selected string, ok bool, err error)
}

// NewSelector probes for the fzf binary and returns the matching backend.
// disableFzf forces the built-in picker regardless of what is installed.
func NewSelector(disableFzf bool) Selector {
	if !disableFzf {
		if path, err := exec.LookPath("fzf"); err == nil {
			return &FzfSelector{Path: path}
		}
	}
	return NewBuiltin()
}

// Builtin is the Bubble Tea backed selector.
type Builtin struct {
	// CurrentStyle styles the caller's current item in the list.
	CurrentStyle lipgloss.Style

	// MaxRows caps the visible list rows; zero keeps the default.
	MaxRows int

	// newProgram builds the tea program; swapped in tests.
	newProgram func(tea.Model) interactiveProgram
}

// interactiveProgram is the slice of *tea.Program the selector needs.
type interactiveProgram interface {
	Run() (tea.Model, error)
}

// NewBuiltin returns the built-in selector with default styling.
func NewBuiltin() *Builtin {
	return &Builtin{
		CurrentStyle: DefaultCurrentStyle(),
		newProgram: func(m tea.Model) interactiveProgram {
			return tea.NewProgram(m)
		},
	}
}

// Pick implements Selector. An empty items list short-circuits with a
// notice and never enters the interactive loop. Terminal failures from the
// runtime propagate unwrapped apart from context.
func (b *Builtin) Pick(items []string, title, current string) (string, bool, error) {
	if len(items) == 0 {
		fmt.Fprintln(os.Stderr, dimStyle.Render("no items to select from"))
		return "", false, nil
	}

	model := NewModel(items, title, current, b.CurrentStyle).WithMaxRows(b.MaxRows)
	final, err := b.newProgram(model).Run()
	if err != nil {
		return "", false, fmt.Errorf("picker session: %w", err)
	}

	m, isModel := final.(Model)
	if !isModel {
		return "", false, fmt.Errorf("picker session: unexpected final model %T", final)
	}
	selected, ok := m.Result()
	return selected, ok, nil
}
