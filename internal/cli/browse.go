package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/fitsunits/pkg/units"
)

// List styles
var (
	listDimStyle    = lipgloss.NewStyle().Foreground(colorFaint)
	listFilterStyle = lipgloss.NewStyle().Foreground(colorWarn)
)

// browseCommand creates the interactive base-unit browser.
func (c *CLI) browseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Interactively browse the base-unit table",
		Long: `Browse the base units accepted by the parser. Type to filter by symbol or
name, use the arrow keys to move and press enter to show the selected unit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := tea.NewProgram(NewUnitBrowserModel(units.BaseUnits()), tea.WithContext(cmd.Context()))
			final, err := p.Run()
			if err != nil {
				return fmt.Errorf("browse: %w", err)
			}
			if m, ok := final.(UnitBrowserModel); ok && m.Selected != nil {
				printUnit(*m.Selected)
			}
			return nil
		},
	}
}

func printUnit(u units.BaseUnit) {
	printSuccess("%s %s", StyleHighlight.Render(u.Symbol), StyleDim.Render(u.Name))
	printKeyValue("scale", formatFloat(u.Scale))
	printKeyValue("dims", u.Dims.String())
	printKeyValue("prefixes", u.Prefix.String())
}

// =============================================================================
// UnitBrowserModel - Interactive base-unit selection
// =============================================================================

// UnitBrowserModel is the bubbletea model for browsing base units.
type UnitBrowserModel struct {
	Units    []units.BaseUnit
	Filter   string
	Cursor   int
	Offset   int
	Height   int
	Selected *units.BaseUnit
}

// NewUnitBrowserModel creates a browser over us.
func NewUnitBrowserModel(us []units.BaseUnit) UnitBrowserModel {
	return UnitBrowserModel{Units: us, Height: 15}
}

// visible returns the units matching the filter, case-insensitively on the
// name and case-sensitively on the symbol.
func (m UnitBrowserModel) visible() []units.BaseUnit {
	if m.Filter == "" {
		return m.Units
	}
	lower := strings.ToLower(m.Filter)
	var out []units.BaseUnit
	for _, u := range m.Units {
		if strings.Contains(u.Symbol, m.Filter) || strings.Contains(strings.ToLower(u.Name), lower) {
			out = append(out, u)
		}
	}
	return out
}

func (m UnitBrowserModel) Init() tea.Cmd {
	return nil
}

func (m UnitBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		n := len(m.visible())
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyUp:
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case tea.KeyDown:
			if m.Cursor < n-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case tea.KeyEnter:
			if n == 0 {
				return m, nil
			}
			u := m.visible()[m.Cursor]
			m.Selected = &u
			return m, tea.Quit
		case tea.KeyBackspace:
			if m.Filter != "" {
				r := []rune(m.Filter)
				m.Filter = string(r[:len(r)-1])
				m.Cursor, m.Offset = 0, 0
			}
		case tea.KeyRunes:
			m.Filter += string(msg.Runes)
			m.Cursor, m.Offset = 0, 0
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
	}
	return m, nil
}

func (m UnitBrowserModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Base Units"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("type to filter  ↑/↓ navigate  ⏎ select  esc quit"))
	b.WriteString("\n")
	if m.Filter != "" {
		b.WriteString(listFilterStyle.Render("filter: " + m.Filter))
	}
	b.WriteString("\n")

	list := m.visible()
	end := min(m.Offset+m.Height, len(list))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		u := list[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, u.Symbol, u.Name, formatFloat(u.Scale), u.Dims.String(), u.Prefix.String()})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		Headers("", "Symbol", "Name", "Scale", "Dims", "Prefixes").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorOK).Bold(true)
			}
			if col >= 3 {
				return lipgloss.NewStyle().Foreground(colorFaint)
			}
			return lipgloss.NewStyle().Foreground(colorFg)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	if len(list) == 0 {
		b.WriteString(listDimStyle.Render("  no matching units"))
	} else {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(list))))
	}

	return b.String()
}
