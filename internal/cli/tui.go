package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-runewidth"

	"github.com/matzehuels/infographic/pkg/options"
)

// List styles
var (
	listDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	listHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// descriptionWidth truncates template descriptions in the picker table.
const descriptionWidth = 48

// =============================================================================
// TemplateListModel - Interactive template selection
// =============================================================================

// TemplateListModel is the bubbletea model for interactive template selection.
type TemplateListModel struct {
	Templates []options.TemplateInfo
	Cursor    int
	Selected  *options.TemplateInfo
	Height    int
	Offset    int
}

// NewTemplateListModel creates a new template list model.
func NewTemplateListModel(templates []options.TemplateInfo) TemplateListModel {
	return TemplateListModel{
		Templates: templates,
		Height:    15,
	}
}

func (m TemplateListModel) Init() tea.Cmd {
	return nil
}

func (m TemplateListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Templates)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Templates) == 0 {
				return m, tea.Quit
			}
			t := m.Templates[m.Cursor]
			m.Selected = &t
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m TemplateListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Template"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Templates))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, templateRow(cursor, m.Templates[i]))
	}

	t := templateTable(rows).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return listHeaderStyle
			}
			if m.Offset+row == m.Cursor {
				return StyleSuccess.Bold(true)
			}
			if col == 4 {
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Templates))))

	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

// templateTable builds the bordered table shared by the picker and the
// plain listing.
func templateTable(rows [][]string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Template", "Structure", "Item", "Description").
		Rows(rows...)
}

func templateRow(cursor string, t options.TemplateInfo) []string {
	structure, item := designSummary(t.Design)
	return []string{cursor, t.Name, structure, item, runewidth.Truncate(t.Description, descriptionWidth, "…")}
}

// designSummary names the structure and item types of a design. Per-level
// items are joined with " › ".
func designSummary(d options.Design) (structure, item string) {
	structure = "—"
	if d.Structure != nil {
		structure = d.Structure.Type
	}
	switch {
	case d.Item != nil:
		item = d.Item.Type
	case len(d.Items) > 0:
		names := make([]string, len(d.Items))
		for i, e := range d.Items {
			names[i] = e.Type
		}
		item = strings.Join(names, " › ")
	default:
		item = "—"
	}
	return structure, item
}
