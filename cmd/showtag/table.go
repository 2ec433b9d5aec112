package main

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// countRow is one labeled tally in a summary table.
type countRow struct {
	label string
	count int
}

// renderCounts renders the label-plus-tally summary the commands print after
// a run. Counts are right-aligned.
func renderCounts(labelHeader, countHeader string, rows []countRow) string {
	cells := make([][]string, len(rows))
	for i, row := range rows {
		cells[i] = []string{row.label, strconv.Itoa(row.count)}
	}
	return renderList([]string{labelHeader, countHeader}, cells, 1)
}

// renderList renders rows under the given headers. Columns named in numeric
// (zero-based) are right-aligned; the rest stay left-aligned.
func renderList(headers []string, rows [][]string, numeric ...int) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	tw.AppendHeader(paddedRow(headers, len(headers)))
	for _, row := range rows {
		tw.AppendRow(paddedRow(row, len(headers)))
	}

	configs := make([]table.ColumnConfig, 0, len(numeric))
	for _, col := range numeric {
		configs = append(configs, table.ColumnConfig{
			Number:      col + 1,
			Align:       text.AlignRight,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

// paddedRow widens short rows with empty cells so ragged input cannot shift
// columns.
func paddedRow(cells []string, width int) table.Row {
	row := make(table.Row, width)
	for i := range row {
		if i < len(cells) {
			row[i] = cells[i]
		} else {
			row[i] = ""
		}
	}
	return row
}
