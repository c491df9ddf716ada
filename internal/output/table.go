package output

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	tableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorCyan)
	tableBorderStyle = lipgloss.NewStyle().Foreground(ColorDimGray)
	tableCellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// Table is a bordered listing with a styled header row.
type Table struct {
	headers []string
	rows    [][]string
	flagged map[int]bool
}

// NewTable creates a table with the given headers.
func NewTable(headers ...string) *Table {
	return &Table{headers: headers, flagged: map[int]bool{}}
}

// Row appends a row.
func (t *Table) Row(cells ...string) *Table {
	t.rows = append(t.rows, cells)
	return t
}

// FlaggedRow appends a row rendered in the failure style.
func (t *Table) FlaggedRow(cells ...string) *Table {
	t.flagged[len(t.rows)] = true
	return t.Row(cells...)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// String renders the table.
func (t *Table) String() string {
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(tableBorderStyle).
		Headers(t.headers...).
		Rows(t.rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return tableHeaderStyle.Padding(0, 1)
			case t.flagged[row]:
				return StyleFailure.Padding(0, 1)
			default:
				return tableCellStyle
			}
		})
	return tbl.String()
}
