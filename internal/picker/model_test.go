package picker

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	// Deterministic, escape-free rendering for View assertions.
	lipgloss.SetColorProfile(termenv.Ascii)
}

// --- Test helpers ---

func newTestModel(items ...string) Model {
	m := NewModel(items, "Select item", "", DefaultCurrentStyle())
	m.width = 80
	m.height = 24
	return m
}

func press(m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m, cmd
}

func keyDown() tea.Msg      { return tea.KeyMsg{Type: tea.KeyDown} }
func keyUp() tea.Msg        { return tea.KeyMsg{Type: tea.KeyUp} }
func keyEnter() tea.Msg     { return tea.KeyMsg{Type: tea.KeyEnter} }
func keyEsc() tea.Msg       { return tea.KeyMsg{Type: tea.KeyEsc} }
func keyBackspace() tea.Msg { return tea.KeyMsg{Type: tea.KeyBackspace} }

func typeRunes(s string) []tea.Msg {
	msgs := make([]tea.Msg, 0, len(s))
	for _, r := range s {
		msgs = append(msgs, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return msgs
}

// isQuit reports whether cmd is tea.Quit.
func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

// --- Selection ---

func TestModel_DownEnterSelectsSecondItem(t *testing.T) {
	m := newTestModel("a", "b", "c")
	m, cmd := press(m, keyDown(), keyEnter())

	require.True(t, isQuit(cmd))
	selected, ok := m.Result()
	assert.True(t, ok)
	assert.Equal(t, "b", selected)
}

func TestModel_EscapeCancelsAfterNavigation(t *testing.T) {
	m := newTestModel("a", "b", "c")
	m, cmd := press(m, keyDown(), keyDown(), keyEsc())

	require.True(t, isQuit(cmd))
	_, ok := m.Result()
	assert.False(t, ok)
}

func TestModel_EnterOnEmptyFilterDoesNotSelect(t *testing.T) {
	m := newTestModel("alpha", "beta")
	msgs := append(typeRunes("zzz"), keyEnter())
	m, cmd := press(m, msgs...)

	assert.False(t, isQuit(cmd), "enter on an empty filtered list must not terminate")
	_, ok := m.Result()
	assert.False(t, ok)
}

// --- Navigation and clamping ---

func TestModel_CursorClampsAtEdges(t *testing.T) {
	m := newTestModel("a", "b")
	m, _ = press(m, keyUp(), keyUp())
	assert.Equal(t, 0, m.cursor, "no wraparound above the top")

	m, _ = press(m, keyDown(), keyDown(), keyDown(), keyDown())
	assert.Equal(t, 1, m.cursor, "no wraparound below the bottom")
}

func TestModel_CursorStaysInBoundsAcrossFilterChanges(t *testing.T) {
	items := []string{"alpha", "beta", "gamma", "delta", "epsilon"}
	m := newTestModel(items...)

	ops := []tea.Msg{
		keyDown(), keyDown(), keyDown(), keyDown(),
	}
	ops = append(ops, typeRunes("a")...) // shrink the list
	ops = append(ops, keyDown(), keyDown(), keyUp())
	ops = append(ops, keyBackspace()) // grow it back
	ops = append(ops, typeRunes("epsil")...)
	ops = append(ops, keyDown(), keyDown())

	for _, op := range ops {
		m, _ = press(m, op)
		if len(m.filtered) == 0 {
			assert.Equal(t, 0, m.cursor)
			continue
		}
		assert.Less(t, m.cursor, len(m.filtered))
		assert.GreaterOrEqual(t, m.cursor, 0)
	}
}

func TestModel_FilterInputResetsCursorAndScroll(t *testing.T) {
	m := newTestModel("aa", "ab", "ac", "ad")
	m, _ = press(m, keyDown(), keyDown())
	require.Equal(t, 2, m.cursor)

	m, _ = press(m, typeRunes("a")...)
	assert.Equal(t, 0, m.cursor)
	assert.Equal(t, 0, m.offset)
	assert.Equal(t, "a", m.filter)
}

func TestModel_BackspaceRemovesLastFilterRune(t *testing.T) {
	m := newTestModel("alpha", "beta")
	m, _ = press(m, typeRunes("alp")...)
	m, _ = press(m, keyBackspace())

	assert.Equal(t, "al", m.filter)
	assert.Equal(t, 0, m.cursor)
	assert.Equal(t, 0, m.offset)

	// Backspace on an empty filter is a no-op.
	m, _ = press(m, keyBackspace(), keyBackspace(), keyBackspace())
	assert.Equal(t, "", m.filter)
	m, _ = press(m, keyBackspace())
	assert.Equal(t, "", m.filter)
}

func TestModel_RejectsFilterRunesOutsideAllowedClass(t *testing.T) {
	m := newTestModel("kube-system", "default")
	m, _ = press(m, typeRunes("k_!/ b")...)
	assert.Equal(t, "kb", m.filter, "only alphanumerics, hyphen and dot are filterable")

	m = newTestModel("node-1.internal")
	m, _ = press(m, typeRunes("node-1.")...)
	assert.Equal(t, "node-1.", m.filter)
}

func TestModel_IgnoresUnboundKeys(t *testing.T) {
	m := newTestModel("a", "b")
	before := m
	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyLeft}, tea.KeyMsg{Type: tea.KeyHome})
	assert.Nil(t, cmd)
	assert.Equal(t, before.filter, m.filter)
	assert.Equal(t, before.cursor, m.cursor)
}

// --- Viewport ---

func TestModel_ScrollFollowsCursor(t *testing.T) {
	items := make([]string, 30)
	for i := range items {
		items[i] = fmt.Sprintf("item-%02d", i)
	}
	m := newTestModel(items...)
	m.height = 12 // viewport = 7

	require.Equal(t, 7, m.viewportHeight())

	for i := 0; i < 10; i++ {
		m, _ = press(m, keyDown())
	}
	assert.Equal(t, 10, m.cursor)
	assert.Equal(t, 4, m.offset, "offset keeps the cursor on the last visible row")

	for i := 0; i < 10; i++ {
		m, _ = press(m, keyUp())
	}
	assert.Equal(t, 0, m.cursor)
	assert.Equal(t, 0, m.offset)
}

func TestModel_ViewportHeightBounds(t *testing.T) {
	m := newTestModel("a")

	m.height = 100
	assert.Equal(t, maxViewport, m.viewportHeight())

	m.height = 12
	assert.Equal(t, 7, m.viewportHeight())

	m.height = 3
	assert.Equal(t, 1, m.viewportHeight(), "viewport never drops below one row")
}

func TestModel_WithMaxRowsLowersCap(t *testing.T) {
	m := newTestModel("a").WithMaxRows(5)
	m.height = 100
	assert.Equal(t, 5, m.viewportHeight())

	m = newTestModel("a").WithMaxRows(0)
	m.height = 100
	assert.Equal(t, maxViewport, m.viewportHeight(), "non-positive cap keeps the default")
}

func TestModel_WindowResizeReclampsScroll(t *testing.T) {
	items := make([]string, 30)
	for i := range items {
		items[i] = fmt.Sprintf("item-%02d", i)
	}
	m := newTestModel(items...)
	for i := 0; i < 20; i++ {
		m, _ = press(m, keyDown())
	}

	m, _ = press(m, tea.WindowSizeMsg{Width: 60, Height: 8})
	vh := m.viewportHeight()
	assert.GreaterOrEqual(t, m.cursor, m.offset)
	assert.Less(t, m.cursor, m.offset+vh)
}

// --- Rendering ---

func TestView_ShowsTitleFooterAndHighlight(t *testing.T) {
	m := newTestModel("alpha", "beta", "gamma")
	view := m.View()

	assert.Contains(t, view, "Select item")
	assert.Contains(t, view, "3 of 3 items")
	assert.Contains(t, view, "> alpha", "cursor row carries the highlight marker")
	assert.Contains(t, view, "  beta")
}

func TestView_MarksCurrentItem(t *testing.T) {
	m := NewModel([]string{"dev", "prod"}, "Context", "prod", DefaultCurrentStyle())
	m.width = 80
	m.height = 24
	view := m.View()

	assert.Contains(t, view, "prod *")
	assert.NotContains(t, view, "dev *")
}

func TestView_CursorOnCurrentItemShowsBoth(t *testing.T) {
	m := NewModel([]string{"dev", "prod"}, "Context", "dev", DefaultCurrentStyle())
	m.width = 80
	m.height = 24
	view := m.View()

	// The current row is also under the cursor: both markers render.
	assert.Contains(t, view, "> dev *")
}

func TestView_FilterNarrowsFooterCount(t *testing.T) {
	m := newTestModel("kube-system", "kube-public", "default")
	m, _ = press(m, typeRunes("kube")...)
	view := m.View()

	assert.Contains(t, view, "2 of 3 items")
	assert.NotContains(t, view, "default")
}

func TestView_EmptyFilterResultShowsNoMatches(t *testing.T) {
	m := newTestModel("alpha")
	m, _ = press(m, typeRunes("zz")...)
	view := m.View()

	assert.Contains(t, view, "no matches")
	assert.Contains(t, view, "0 of 1 items")
}

func TestView_ScrollIndicators(t *testing.T) {
	items := make([]string, 30)
	for i := range items {
		items[i] = fmt.Sprintf("item-%02d", i)
	}
	m := newTestModel(items...)
	m.height = 12 // viewport = 7

	view := m.View()
	assert.NotContains(t, view, "↑ more")
	assert.Contains(t, view, "↓ more")

	for i := 0; i < 10; i++ {
		m, _ = press(m, keyDown())
	}
	view = m.View()
	assert.Contains(t, view, "↑ more")
	assert.Contains(t, view, "↓ more")

	for i := 0; i < 30; i++ {
		m, _ = press(m, keyDown())
	}
	view = m.View()
	assert.Contains(t, view, "↑ more")
	assert.NotContains(t, view, "↓ more")
}

func TestView_RendersOnlyViewportSlice(t *testing.T) {
	items := make([]string, 30)
	for i := range items {
		items[i] = fmt.Sprintf("item-%02d", i)
	}
	m := newTestModel(items...)
	m.height = 12 // viewport = 7

	view := m.View()
	assert.Contains(t, view, "item-00")
	assert.Contains(t, view, "item-06")
	assert.NotContains(t, view, "item-07")

	lines := strings.Split(view, "\n")
	assert.LessOrEqual(t, len(lines), 12, "rendered region stays inside the fixed height")
}
