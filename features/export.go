package features

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

const ellipsis = "..."

// WriteCSV writes the matrix with a header of index name and column labels,
// one line per row.
func (m *Matrix) WriteCSV(w io.Writer) error {
	writer := csv.NewWriter(w)

	header := append([]string{m.indexName}, m.columns...)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	record := make([]string, len(m.columns)+1)
	for i := range m.rows {
		record[0] = m.Label(i)
		for j, cell := range m.Row(i) {
			record[j+1] = strconv.Itoa(int(cell))
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// Render formats the matrix as a table. Beyond maxRows rows or maxCols
// columns the middle is elided, keeping the head and the tail.
func (m *Matrix) Render(maxRows, maxCols int) string {
	rows, cols := m.Shape()
	rowIdx := window(rows, maxRows)
	colIdx := window(cols, maxCols)

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := table.Row{m.indexName}
	for _, j := range colIdx {
		if j < 0 {
			header = append(header, ellipsis)
			continue
		}
		header = append(header, m.columns[j])
	}
	tw.AppendHeader(header)

	for _, i := range rowIdx {
		r := table.Row{}
		if i < 0 {
			for range len(colIdx) + 1 {
				r = append(r, ellipsis)
			}
			tw.AppendRow(r)
			continue
		}
		r = append(r, m.Label(i))
		for _, j := range colIdx {
			if j < 0 {
				r = append(r, ellipsis)
				continue
			}
			r = append(r, m.At(i, j))
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, len(colIdx))
	for k := range colIdx {
		configs = append(configs, table.ColumnConfig{Number: k + 2, Align: text.AlignRight})
	}
	tw.SetColumnConfigs(configs)
	tw.SetCaption("[%d rows x %d columns]", rows, cols)

	return tw.Render()
}

// window picks the positions to show out of n; -1 marks the elided gap.
func window(n, limit int) []int {
	if limit <= 0 || n <= limit {
		out := make([]int, n)
		for i := range out {
			out[i] = i
		}
		return out
	}
	head := (limit + 1) / 2
	tail := limit - head
	out := make([]int, 0, limit+1)
	for i := 0; i < head; i++ {
		out = append(out, i)
	}
	out = append(out, -1)
	for i := n - tail; i < n; i++ {
		out = append(out, i)
	}
	return out
}
