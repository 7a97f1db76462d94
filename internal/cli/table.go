package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/fitsunits/pkg/units"
)

// Static tables that can be listed by the table command.
const (
	tableUnits    = "units"
	tablePrefixes = "prefixes"
	tableAliases  = "aliases"
	tableDims     = "dims"
	tableStatus   = "status"
)

var tableNames = []string{tableUnits, tablePrefixes, tableAliases, tableDims, tableStatus}

// tableCommand creates the table command.
func (c *CLI) tableCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "table [units|prefixes|aliases|dims|status]",
		Short: "Print the built-in unit, prefix, alias, dimension or status tables",
		Long: `Print one of the static tables used by the parser and translator.

  units     base units with their scale, dimensions and allowed prefixes
  prefixes  metric prefixes
  aliases   non-standard spellings rewritten by 'translate'
  dims      fundamental quantities and their canonical units
  status    status codes and messages`,
		ValidArgs: tableNames,
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := tableUnits
			if len(args) == 1 {
				name = args[0]
			}
			headers, rows, err := tableRows(name)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows))
			return nil
		},
	}
}

// tableRows returns the headers and rows of a static table.
func tableRows(name string) ([]string, [][]string, error) {
	var rows [][]string
	switch name {
	case tableUnits:
		for _, u := range units.BaseUnits() {
			rows = append(rows, []string{u.Symbol, u.Name, formatFloat(u.Scale), u.Dims.String(), u.Prefix.String()})
		}
		return []string{"Symbol", "Name", "Scale", "Dims", "Prefixes"}, rows, nil

	case tablePrefixes:
		for _, p := range units.Prefixes() {
			rows = append(rows, []string{p.Symbol, formatFloat(p.Factor)})
		}
		return []string{"Prefix", "Factor"}, rows, nil

	case tableAliases:
		for _, a := range units.Aliases() {
			unsafe := ""
			if a.Unsafe != 0 {
				unsafe = fmt.Sprintf("ctrl %d", a.Unsafe)
			}
			rows = append(rows, []string{a.Match, a.Replace, unsafe})
		}
		return []string{"Alias", "Standard", "Unsafe"}, rows, nil

	case tableDims:
		names, symbols := units.Types(), units.UnitSymbols()
		for i := range names {
			rows = append(rows, []string{strconv.Itoa(i), names[i], symbols[i]})
		}
		return []string{"#", "Quantity", "Unit"}, rows, nil

	case tableStatus:
		for s := units.StatusNoChange; s <= units.StatusUnsafeTranslation; s++ {
			rows = append(rows, []string{strconv.Itoa(int(s)), s.String()})
		}
		return []string{"Status", "Message"}, rows, nil
	}
	return nil, nil, fmt.Errorf("unknown table %q (must be one of %v)", name, tableNames)
}

func renderTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styleHeader.Padding(0, 1)
			case col == 0:
				return StyleHighlight.Padding(0, 1)
			default:
				return lipgloss.NewStyle().Padding(0, 1)
			}
		}).
		Render()
}
