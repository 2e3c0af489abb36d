package picker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/runger/kubesh/internal/fuzzy"
)

// maxViewport is the default upper bound on visible list rows. The
// effective viewport is min(cap, terminalHeight-5) with a floor of one row.
const maxViewport = 15

// keyMap defines the picker key bindings.
type keyMap struct {
	Select    key.Binding
	Cancel    key.Binding
	Up        key.Binding
	Down      key.Binding
	Backspace key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Select:    key.NewBinding(key.WithKeys("enter")),
		Cancel:    key.NewBinding(key.WithKeys("esc", "ctrl+c")),
		Up:        key.NewBinding(key.WithKeys("up")),
		Down:      key.NewBinding(key.WithKeys("down")),
		Backspace: key.NewBinding(key.WithKeys("backspace")),
	}
}

// Model is the Bubble Tea model for the built-in selection list. State is
// the filter text plus a cursor and scroll offset, both kept within the
// bounds of the currently filtered item list on every update.
type Model struct {
	items   []string
	title   string
	current string

	filter   string
	cursor   int
	offset   int
	filtered []string

	width   int
	height  int
	maxRows int

	keys         keyMap
	currentStyle lipgloss.Style

	result string
	ok     bool
}

// NewModel creates a picker model over items. current marks the row that is
// already active (e.g. the current context) and is styled with currentStyle.
func NewModel(items []string, title, current string, currentStyle lipgloss.Style) Model {
	return Model{
		items:        items,
		title:        title,
		current:      current,
		filtered:     items,
		keys:         defaultKeyMap(),
		currentStyle: currentStyle,
		height:       maxViewport + 5,
		width:        80,
		maxRows:      maxViewport,
	}
}

// WithMaxRows caps the viewport at n visible rows. Values below one keep
// the default cap.
func (m Model) WithMaxRows(n int) Model {
	if n > 0 {
		m.maxRows = n
	}
	return m
}

// Result returns the selected item and whether a selection was made.
func (m Model) Result() (string, bool) {
	return m.result, m.ok
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.scrollIntoView()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// handleKey applies one key event to the picker state machine.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Select):
		if len(m.filtered) == 0 {
			// Nothing to select; stay in the loop.
			return m, nil
		}
		m.result = m.filtered[m.cursor]
		m.ok = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		m.scrollIntoView()
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
		}
		m.scrollIntoView()
		return m, nil

	case key.Matches(msg, m.keys.Backspace):
		if m.filter != "" {
			runes := []rune(m.filter)
			m.filter = string(runes[:len(runes)-1])
			m.resetFilterView()
		}
		return m, nil

	default:
		if msg.Type == tea.KeyRunes {
			appended := false
			for _, r := range msg.Runes {
				if isFilterRune(r) {
					m.filter += string(r)
					appended = true
				}
			}
			if appended {
				m.resetFilterView()
			}
		}
		return m, nil
	}
}

// isFilterRune reports whether r may appear in the filter text. The class
// matches the characters legal in context and namespace names.
func isFilterRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '-', r == '.':
		return true
	}
	return false
}

// resetFilterView recomputes the filtered list and rewinds cursor and
// scroll to the top, as the list may have changed arbitrarily.
func (m *Model) resetFilterView() {
	m.filtered = fuzzy.Match(m.filter, m.items)
	m.cursor = 0
	m.offset = 0
}

// scrollIntoView clamps the cursor to the filtered list and adjusts the
// scroll offset so the cursor stays inside the viewport.
func (m *Model) scrollIntoView() {
	if len(m.filtered) == 0 {
		m.cursor = 0
		m.offset = 0
		return
	}
	if m.cursor >= len(m.filtered) {
		m.cursor = len(m.filtered) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}

	vh := m.viewportHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+vh {
		m.offset = m.cursor - vh + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// viewportHeight returns the number of visible list rows.
func (m Model) viewportHeight() int {
	vh := m.height - 5
	if vh > m.maxRows {
		vh = m.maxRows
	}
	if vh < 1 {
		vh = 1
	}
	return vh
}

// --- View rendering ---

var (
	titleStyle     = lipgloss.NewStyle().Bold(true)
	filterStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	highlightStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("62"))
	normalStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// DefaultCurrentStyle is the style applied to the caller's current item
// when no other style is supplied.
func DefaultCurrentStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("76"))
}

// View implements tea.Model. The full region is rewritten every frame;
// Bubble Tea's renderer clears it on repaint and on exit, so stale rows
// from a longer previous frame never linger.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.title))
	b.WriteRune('\n')
	b.WriteString(filterStyle.Render("> ") + m.filter)
	b.WriteRune('\n')

	vh := m.viewportHeight()

	if m.offset > 0 {
		b.WriteString(dimStyle.Render("  ↑ more"))
	}
	b.WriteRune('\n')

	if len(m.filtered) == 0 {
		b.WriteString(dimStyle.Render("  no matches"))
		b.WriteRune('\n')
	} else {
		end := m.offset + vh
		if end > len(m.filtered) {
			end = len(m.filtered)
		}
		for i := m.offset; i < end; i++ {
			b.WriteString(m.renderRow(i))
			b.WriteRune('\n')
		}
	}

	if m.offset+vh < len(m.filtered) {
		b.WriteString(dimStyle.Render("  ↓ more"))
	}
	b.WriteRune('\n')

	b.WriteString(dimStyle.Render(fmt.Sprintf("%d of %d items", len(m.filtered), len(m.items))))
	return b.String()
}

// renderRow renders the filtered item at index i. The cursor row and the
// caller's current item are distinguished independently, so a row can be
// both at once.
func (m Model) renderRow(i int) string {
	item := m.filtered[i]

	display := item
	if m.current != "" && item == m.current {
		display += " *"
	}
	if m.width > 4 {
		display = MiddleTruncate(display, m.width-4)
	}

	switch {
	case i == m.cursor:
		return highlightStyle.Render("> " + display)
	case m.current != "" && item == m.current:
		return m.currentStyle.Render("  " + display)
	default:
		return normalStyle.Render("  " + display)
	}
}
