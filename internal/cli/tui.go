package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/chipmap/pkg/memmap"
)

// List styles
var (
	listTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorValue)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorFaint)
)

// inspectKeys is the keymap for the inspect browser.
type inspectKeys struct {
	Up       key.Binding
	Down     key.Binding
	Collapse key.Binding
	Expand   key.Binding
	Quit     key.Binding
}

// ShortHelp implements help.KeyMap.
func (k inspectKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Collapse, k.Expand, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k inspectKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Collapse, k.Expand}, {k.Quit}}
}

var defaultInspectKeys = inspectKeys{
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Collapse: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "collapse")),
	Expand:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "expand")),
	Quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

// inspectRow is one visible line of the region tree.
type inspectRow struct {
	region *memmap.Region
	depth  int
}

// inspectModel is the bubbletea model for the memory map browser.
type inspectModel struct {
	chip      *memmap.Chip
	rows      []inspectRow
	collapsed map[int]bool
	cursor    int
	offset    int
	height    int
	keys      inspectKeys
	help      help.Model
}

func newInspectModel(chip *memmap.Chip) inspectModel {
	m := inspectModel{
		chip:      chip,
		collapsed: make(map[int]bool),
		height:    15,
		keys:      defaultInspectKeys,
		help:      help.New(),
	}
	m.rebuildRows()
	return m
}

// rebuildRows flattens the region tree into visible rows, skipping
// children of collapsed regions.
func (m *inspectModel) rebuildRows() {
	m.rows = m.rows[:0]
	var visit func(ids []int, depth int)
	visit = func(ids []int, depth int) {
		for _, id := range ids {
			r, ok := m.chip.Region(id)
			if !ok {
				continue
			}
			m.rows = append(m.rows, inspectRow{region: r, depth: depth})
			if !m.collapsed[id] {
				visit(r.ChildIDs(), depth+1)
			}
		}
	}
	visit(m.chip.RootIDs(), 0)

	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
}

func (m inspectModel) Init() tea.Cmd {
	return nil
}

func (m inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.rows)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case key.Matches(msg, m.keys.Collapse):
			if row := m.current(); row != nil && len(row.region.ChildIDs()) > 0 {
				m.collapsed[row.region.ID()] = true
				m.rebuildRows()
			}
		case key.Matches(msg, m.keys.Expand):
			if row := m.current(); row != nil {
				delete(m.collapsed, row.region.ID())
				m.rebuildRows()
			}
		}
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		m.height = msg.Height - 10
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m inspectModel) current() *inspectRow {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	return &m.rows[m.cursor]
}

func (m inspectModel) View() string {
	var b strings.Builder

	b.WriteString(listTitleStyle.Render(fmt.Sprintf("%s — %d-bit address space", m.chip.Name(), m.chip.AddressWidth())))
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(m.rows) {
		end = len(m.rows)
	}

	for i := m.offset; i < end; i++ {
		row := m.rows[i]
		r := row.region

		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}

		marker := "  "
		if len(r.ChildIDs()) > 0 {
			marker = "▾ "
			if m.collapsed[r.ID()] {
				marker = "▸ "
			}
		}

		line := fmt.Sprintf("%s%s%s%-20s %#012x %s",
			cursor, strings.Repeat("  ", row.depth), marker, r.Label, r.Start, formatSize(r.Size))

		switch {
		case i == m.cursor:
			b.WriteString(listSelectedStyle.Render(line))
		case r.Kind == memmap.KindReserved:
			b.WriteString(listDimStyle.Render(line))
		default:
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if row := m.current(); row != nil {
		r := row.region
		detail := fmt.Sprintf("%s  %#x..%#x  %s", r.Kind, r.Start, r.Last(), formatSize(r.Size))
		b.WriteString(listDimStyle.Render(detail))
	}
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

// formatSize renders a byte count with the largest exact binary unit.
func formatSize(n uint64) string {
	const unit = 1024
	suffixes := []string{"K", "M", "G", "T"}
	if n < unit || n%unit != 0 {
		return fmt.Sprintf("%d B", n)
	}
	value, idx := n/unit, 0
	for value >= unit && value%unit == 0 && idx < len(suffixes)-1 {
		value /= unit
		idx++
	}
	return fmt.Sprintf("%d %sB", value, suffixes[idx])
}
