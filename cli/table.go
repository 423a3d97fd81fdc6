package cli

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// column is a report column: a title and how its cells line up.
type column struct {
	title string
	align text.Align
}

func leftColumn(title string) column  { return column{title: title, align: text.AlignLeft} }
func rightColumn(title string) column { return column{title: title, align: text.AlignRight} }

// report renders rows under columns in the same rounded style as the feature
// matrix preview. A non-empty caption is printed below the table.
func report(columns []column, rows []table.Row, caption string) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(columns))
	configs := make([]table.ColumnConfig, len(columns))
	for i, c := range columns {
		header[i] = c.title
		configs[i] = table.ColumnConfig{Number: i + 1, Align: c.align, AlignHeader: text.AlignLeft}
	}
	tw.AppendHeader(header)
	tw.AppendRows(rows)
	tw.SetColumnConfigs(configs)
	if caption != "" {
		tw.SetCaption("%s", caption)
	}
	return tw.Render()
}
