package picker

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedProgram feeds a fixed key script through the model without a
// terminal, standing in for tea.NewProgram.
type scriptedProgram struct {
	model  tea.Model
	script []tea.Msg
	err    error
}

func (p *scriptedProgram) Run() (tea.Model, error) {
	if p.err != nil {
		return p.model, p.err
	}
	m := p.model
	for _, msg := range p.script {
		m, _ = m.Update(msg)
	}
	return m, nil
}

func scriptedBuiltin(t *testing.T, script ...tea.Msg) (*Builtin, *bool) {
	t.Helper()
	started := false
	b := NewBuiltin()
	b.newProgram = func(m tea.Model) interactiveProgram {
		started = true
		return &scriptedProgram{model: m, script: script}
	}
	return b, &started
}

func TestBuiltin_PickReturnsSelection(t *testing.T) {
	b, _ := scriptedBuiltin(t, keyDown(), keyEnter())

	selected, ok, err := b.Pick([]string{"a", "b", "c"}, "Pick", "")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "b", selected)
}

func TestBuiltin_PickCancelled(t *testing.T) {
	b, _ := scriptedBuiltin(t, keyDown(), keyEsc())

	selected, ok, err := b.Pick([]string{"a", "b"}, "Pick", "")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, selected)
}

func TestBuiltin_PickEmptyListShortCircuits(t *testing.T) {
	b, started := scriptedBuiltin(t)

	selected, ok, err := b.Pick(nil, "Pick", "")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, selected)
	assert.False(t, *started, "the interactive loop must not start for an empty list")
}

func TestBuiltin_PickPropagatesProgramError(t *testing.T) {
	b := NewBuiltin()
	b.newProgram = func(m tea.Model) interactiveProgram {
		return &scriptedProgram{model: m, err: errors.New("tty torn down")}
	}

	_, ok, err := b.Pick([]string{"a"}, "Pick", "")
	require.Error(t, err)
	assert.ErrorContains(t, err, "tty torn down")
	assert.False(t, ok)
}

func TestNewSelector_DisableFzfForcesBuiltin(t *testing.T) {
	s := NewSelector(true)
	_, isBuiltin := s.(*Builtin)
	assert.True(t, isBuiltin)
}

// --- fzf annotation ---

func TestAnnotateCurrent(t *testing.T) {
	got := annotateCurrent([]string{"dev", "prod", "stage"}, "prod")
	assert.Equal(t, "dev\nprod (current)\nstage\n", got)
}

func TestAnnotateCurrent_NoCurrent(t *testing.T) {
	got := annotateCurrent([]string{"dev", "prod"}, "")
	assert.Equal(t, "dev\nprod\n", got)
}

func TestStripCurrent(t *testing.T) {
	assert.Equal(t, "prod", stripCurrent("prod (current)"))
	assert.Equal(t, "dev", stripCurrent("dev"))
	// Only the exact literal suffix is stripped.
	assert.Equal(t, "prod (current) x", stripCurrent("prod (current) x"))
}

func TestFzfSelector_EmptyListShortCircuits(t *testing.T) {
	f := &FzfSelector{Path: "/nonexistent/fzf"}
	selected, ok, err := f.Pick(nil, "Pick", "")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, selected)
}
