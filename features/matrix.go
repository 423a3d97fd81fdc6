// Package features turns documents into binary bag-of-words matrices.
package features

import (
	"strconv"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/deanrtaylor1/gobow/vocab"
)

// DefaultIndexName names the row axis.
const DefaultIndexName = "email"

// Matrix is a documents x vocabulary presence matrix. Cells are 0 or 1.
type Matrix struct {
	columns   []string
	index     []string
	indexName string
	rows      []*roaring.Bitmap
}

// Vectorize marks, for every document, the vocabulary columns of the tokens
// it contains. Tokens outside the vocabulary are ignored. index labels the
// rows; nil means 0..len(docs)-1.
func Vectorize(docs []string, v *vocab.Vocabulary, tok vocab.Tokenizer, index []string) (*Matrix, error) {
	if index != nil && len(index) != len(docs) {
		return nil, &LengthMismatchError{Documents: len(docs), Labels: len(index)}
	}
	if tok == nil {
		tok = vocab.Default()
	}

	m := &Matrix{
		columns:   v.Tokens(),
		indexName: DefaultIndexName,
		rows:      make([]*roaring.Bitmap, len(docs)),
	}
	if index != nil {
		m.index = make([]string, len(index))
		copy(m.index, index)
	}

	for i, doc := range docs {
		row := roaring.New()
		for token := range vocab.Distinct(tok.Tokenize(doc)) {
			if j, ok := v.Index(token); ok {
				row.Add(uint32(j))
			}
		}
		m.rows[i] = row
	}
	return m, nil
}

// Shape returns the number of rows and columns.
func (m *Matrix) Shape() (int, int) { return len(m.rows), len(m.columns) }

// Columns returns the column labels in order.
func (m *Matrix) Columns() []string {
	out := make([]string, len(m.columns))
	copy(out, m.columns)
	return out
}

// IndexName returns the name of the row axis.
func (m *Matrix) IndexName() string { return m.indexName }

// Label returns the label of row i.
func (m *Matrix) Label(i int) string {
	if m.index == nil {
		return strconv.Itoa(i)
	}
	return m.index[i]
}

// At returns the cell at row i, column j.
func (m *Matrix) At(i, j int) uint8 {
	if m.rows[i].Contains(uint32(j)) {
		return 1
	}
	return 0
}

// Row returns row i as a dense vector.
func (m *Matrix) Row(i int) []uint8 {
	out := make([]uint8, len(m.columns))
	it := m.rows[i].Iterator()
	for it.HasNext() {
		out[it.Next()] = 1
	}
	return out
}

// Nonzero returns the set column indices of row i in ascending order.
func (m *Matrix) Nonzero(i int) []int {
	set := m.rows[i].ToArray()
	out := make([]int, len(set))
	for k, j := range set {
		out[k] = int(j)
	}
	return out
}

// ColumnSums counts, per column, the rows that contain the token.
func (m *Matrix) ColumnSums() []int {
	sums := make([]int, len(m.columns))
	for _, row := range m.rows {
		it := row.Iterator()
		for it.HasNext() {
			sums[it.Next()]++
		}
	}
	return sums
}

// Dense materialises the full matrix.
func (m *Matrix) Dense() [][]uint8 {
	out := make([][]uint8, len(m.rows))
	for i := range m.rows {
		out[i] = m.Row(i)
	}
	return out
}
