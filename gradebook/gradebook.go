// Package gradebook rewrites a roster and scores export into a Canvas
// gradebook import file.
package gradebook

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/deanrtaylor1/gobow/util"
)

const (
	maxPointsSuffix = " - Max Points"
	pointsPossible  = "Points Possible"
	sniffBytes      = 4096
)

// Output roster columns, in order.
var rosterColumns = []string{"Student", "ID", "SIS User ID", "SIS Login ID", "Section"}

// Columns that are never assignment scores.
var alwaysIgnore = map[string]bool{
	"First Name":             true,
	"Last Name":              true,
	"SID":                    true,
	"Email":                  true,
	"Sections":               true,
	"Total Lateness (H:M:S)": true,
}

var candidateDelimiters = []rune{',', ';', '\t', '|'}

// ErrEmptyInput is returned for input without a header line.
var ErrEmptyInput = errors.New("gradebook: input has no header")

// Table is a header plus rows addressed by column name.
type Table struct {
	Header []string
	Rows   [][]string
	pos    map[string]int
}

// NewTable indexes header. Rows shorter than the header read as blank.
func NewTable(header []string, rows [][]string) *Table {
	t := &Table{Header: header, Rows: rows, pos: make(map[string]int, len(header))}
	for i, name := range header {
		if _, dup := t.pos[name]; !dup {
			t.pos[name] = i
		}
	}
	return t
}

// Get returns the value of column name in row, "" when absent.
func (t *Table) Get(row []string, name string) string {
	i, ok := t.pos[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

// Read parses delimited text, guessing the delimiter from the header line.
// Header names are trimmed.
func Read(r io.Reader) (*Table, error) {
	br := bufio.NewReader(r)
	first, err := br.Peek(sniffBytes)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read header: %w", err)
	}

	reader := csv.NewReader(br)
	reader.Comma = SniffDelimiter(firstLine(string(first)))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyInput
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	header = util.TrimAll(header)

	var rows [][]string
	for rowNum := 2; ; rowNum++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", rowNum, err)
		}
		rows = append(rows, row)
	}
	return NewTable(header, rows), nil
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return strings.TrimSuffix(line, "\r")
}

// SniffDelimiter picks the candidate delimiter occurring most often in line,
// defaulting to a comma.
func SniffDelimiter(line string) rune {
	best, bestCount := ',', 0
	for _, d := range candidateDelimiters {
		if n := strings.Count(line, string(d)); n > bestCount {
			best, bestCount = d, n
		}
	}
	return best
}

// GuessColumns returns the assignment score columns in input order and, per
// assignment, the column holding its maximum points.
func GuessColumns(header []string) ([]string, map[string]string) {
	maxFor := make(map[string]string)
	for _, c := range header {
		if strings.HasSuffix(c, maxPointsSuffix) {
			base := strings.TrimSpace(strings.TrimSuffix(c, maxPointsSuffix))
			maxFor[base] = c
		}
	}

	var scores []string
	for _, c := range header {
		if alwaysIgnore[c] || strings.Contains(c, " - ") {
			continue
		}
		scores = append(scores, c)
	}
	return scores, maxFor
}

// Convert builds the import table: roster columns followed by scoreColumns,
// a "Points Possible" row, then one row per student.
func Convert(in *Table, scoreColumns []string) *Table {
	_, maxFor := GuessColumns(in.Header)

	header := append(append([]string{}, rosterColumns...), scoreColumns...)
	rows := make([][]string, 0, len(in.Rows)+1)

	pp := make([]string, len(header))
	pp[0] = pointsPossible
	for k, a := range scoreColumns {
		if col, ok := maxFor[a]; ok {
			pp[len(rosterColumns)+k] = firstNumeric(in, col)
		}
	}
	rows = append(rows, pp)

	for _, row := range in.Rows {
		out := make([]string, 0, len(header))
		out = append(out,
			studentName(in.Get(row, "Last Name"), in.Get(row, "First Name")),
			"",
			in.Get(row, "SID"),
			in.Get(row, "Email"),
			in.Get(row, "Sections"),
		)
		for _, a := range scoreColumns {
			out = append(out, formatScore(in.Get(row, a)))
		}
		rows = append(rows, out)
	}
	return NewTable(header, rows)
}

func studentName(last, first string) string {
	name := strings.TrimSpace(last) + ", " + strings.TrimSpace(first)
	return strings.Trim(name, ", ")
}

// formatScore renders numbers the way the import expects (10 -> 10.0) and
// passes anything else through.
func formatScore(val string) string {
	v := strings.TrimSpace(val)
	if v == "" {
		return ""
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return val
	}
	return formatFloat(f)
}

func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

func firstNumeric(in *Table, col string) string {
	for _, row := range in.Rows {
		if f, err := strconv.ParseFloat(strings.TrimSpace(in.Get(row, col)), 64); err == nil {
			return formatFloat(f)
		}
	}
	return ""
}

// Write emits the table as comma separated values.
func Write(w io.Writer, t *Table) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(t.Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, row := range t.Rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	writer.Flush()
	return writer.Error()
}
