package ui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// MaxColumnWidth caps auto-sized grid columns.
const MaxColumnWidth = 24

// TableColumn defines a table column with name and width.
type TableColumn struct {
	Title string
	Width int
}

// NewTable creates a new Bubbles table with default styling. height counts
// data rows; 0 shows every row.
func NewTable(columns []TableColumn, rows []table.Row, height int) table.Model {
	cols := make([]table.Column, len(columns))
	for i, c := range columns {
		cols[i] = table.Column{
			Title: c.Title,
			Width: c.Width,
		}
	}

	if height <= 0 || height > len(rows) {
		height = len(rows)
	}

	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithHeight(height+1), // +1 for header
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorMuted).
		BorderBottom(true).
		Bold(true).
		Foreground(ColorPrimary)
	s.Cell = s.Cell.
		Foreground(ColorPrimary)
	s.Selected = s.Selected.
		Foreground(ColorPrimary).
		Background(ColorMuted).
		Bold(false)

	t.SetStyles(s)
	return t
}

// GridColumns sizes one column per header cell to fit its widest value,
// capped at MaxColumnWidth.
func GridColumns(header []string, rows [][]string) []TableColumn {
	cols := make([]TableColumn, len(header))
	for i, h := range header {
		width := lipgloss.Width(h)
		for _, row := range rows {
			if i < len(row) {
				width = max(width, lipgloss.Width(row[i]))
			}
		}
		cols[i] = TableColumn{Title: h, Width: min(max(width, 1), MaxColumnWidth)}
	}
	return cols
}

// GridRows converts plain string rows to table rows.
func GridRows(rows [][]string) []table.Row {
	out := make([]table.Row, len(rows))
	for i, row := range rows {
		out[i] = table.Row(row)
	}
	return out
}

// RenderSimpleTable renders a non-interactive table string.
// This is for CLI output (not TUI), producing a simple formatted table.
func RenderSimpleTable(columns []TableColumn, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}
	return NewTable(columns, GridRows(rows), 0).View()
}

// RenderGrid renders header and rows with auto-sized columns.
func RenderGrid(header []string, rows [][]string) string {
	return RenderSimpleTable(GridColumns(header, rows), rows)
}
