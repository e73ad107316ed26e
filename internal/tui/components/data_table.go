package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rgehrsitz/rxdash/internal/tui/tuistyles"
)

// DataTable renders labeled rows with a bordered lipgloss table. Columns
// after LeadColumns are right-aligned values.
type DataTable struct {
	Header      []string
	Rows        [][]string
	LeadColumns int
	Highlight   int // row index to emphasize, -1 for none
}

// NewDataTable creates a table with the given header.
func NewDataTable(header ...string) *DataTable {
	return &DataTable{Header: header, LeadColumns: 1, Highlight: -1}
}

// AddRow appends a row.
func (d *DataTable) AddRow(cells ...string) *DataTable {
	d.Rows = append(d.Rows, cells)
	return d
}

// WithLeadColumns sets how many leading columns are left-aligned labels.
func (d *DataTable) WithLeadColumns(n int) *DataTable {
	d.LeadColumns = n
	return d
}

// WithHighlight emphasizes one row.
func (d *DataTable) WithHighlight(row int) *DataTable {
	d.Highlight = row
	return d
}

// Render returns the styled table
func (d *DataTable) Render() string {
	if len(d.Rows) == 0 {
		return tuistyles.InfoStyle.Render("No data for the current selection")
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(tuistyles.ColorBorder)).
		Headers(d.Header...).
		Rows(d.Rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			var s lipgloss.Style
			switch {
			case row == table.HeaderRow:
				s = tuistyles.TableHeaderStyle
			case row == d.Highlight:
				s = tuistyles.TableHighlightStyle
			default:
				s = tuistyles.TableCellStyle
			}
			if col >= d.LeadColumns {
				s = s.Align(lipgloss.Right)
			}
			return s
		})

	return t.Render()
}
