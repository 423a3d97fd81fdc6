package features

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deanrtaylor1/gobow/vocab"
)

func testVocabulary(t *testing.T) *vocab.Vocabulary {
	t.Helper()
	v, err := vocab.FromStats([]vocab.Stat{
		{Token: "free", DocFreq: 3},
		{Token: "call", DocFreq: 2},
		{Token: "NUM", DocFreq: 2},
	}, 4)
	require.NoError(t, err)
	return v
}

func TestVectorize(t *testing.T) {
	v := testVocabulary(t)
	docs := []string{
		"FREE free free entry",
		"call 0800 now",
		"",
		"nothing known here",
	}

	m, err := Vectorize(docs, v, nil, nil)
	require.NoError(t, err)

	rows, cols := m.Shape()
	assert.Equal(t, 4, rows)
	assert.Equal(t, 3, cols)
	assert.Equal(t, []string{"free", "call", "NUM"}, m.Columns())
	assert.Equal(t, DefaultIndexName, m.IndexName())

	assert.Equal(t, []uint8{1, 0, 0}, m.Row(0), "repeats collapse to presence")
	assert.Equal(t, []uint8{0, 1, 1}, m.Row(1))
	assert.Equal(t, []uint8{0, 0, 0}, m.Row(2), "empty document")
	assert.Equal(t, []uint8{0, 0, 0}, m.Row(3), "out of vocabulary tokens are dropped")

	assert.Equal(t, uint8(1), m.At(1, 2))
	assert.Equal(t, []int{1, 2}, m.Nonzero(1))
	assert.Equal(t, []int{1, 1, 1}, m.ColumnSums())
	assert.Equal(t, "0", m.Label(0))
	assert.Equal(t, "3", m.Label(3))
}

func TestVectorizeLabels(t *testing.T) {
	v := testVocabulary(t)
	labels := []string{"a", "b"}

	m, err := Vectorize([]string{"free", "call"}, v, nil, labels)
	require.NoError(t, err)
	labels[0] = "changed"
	assert.Equal(t, "a", m.Label(0))
	assert.Equal(t, "b", m.Label(1))
}

func TestVectorizeLengthMismatch(t *testing.T) {
	v := testVocabulary(t)

	_, err := Vectorize([]string{"free", "call"}, v, nil, []string{"only-one"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))

	var mismatch *LengthMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, 2, mismatch.Documents)
	assert.Equal(t, 1, mismatch.Labels)
}

func TestVectorizeEmptyVocabulary(t *testing.T) {
	v := vocab.Build(nil, nil, vocab.DefaultOptions())
	m, err := Vectorize([]string{"anything at all"}, v, nil, nil)
	require.NoError(t, err)
	rows, cols := m.Shape()
	assert.Equal(t, 1, rows)
	assert.Equal(t, 0, cols)
	assert.Empty(t, m.Row(0))
}

func TestBuildThenVectorize(t *testing.T) {
	docs := []string{"win cash now", "win a prize", "cash prize win", "see you at lunch"}
	v := vocab.Build(docs, nil, vocab.Options{MinDocumentFrequency: 2, MaxVocabularySize: 10})
	m, err := Vectorize(docs, v, nil, nil)
	require.NoError(t, err)

	for i, row := range m.Dense() {
		for j, cell := range row {
			assert.LessOrEqual(t, cell, uint8(1), "row %d col %d", i, j)
		}
	}
	for j, sum := range m.ColumnSums() {
		assert.Equal(t, v.DocFreq(v.Token(j)), sum)
	}
}

func TestWriteCSV(t *testing.T) {
	v := testVocabulary(t)
	m, err := Vectorize([]string{"free call", "42"}, v, nil, []string{"x", "y"})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, m.WriteCSV(&buf))
	expected := "email,free,call,NUM\nx,1,1,0\ny,0,0,1\n"
	assert.Equal(t, expected, buf.String())
}

func TestRender(t *testing.T) {
	v := testVocabulary(t)
	m, err := Vectorize([]string{"free", "call", "1", "free call", "nothing"}, v, nil, nil)
	require.NoError(t, err)

	out := m.Render(2, 2)
	assert.Contains(t, out, "email")
	assert.Contains(t, out, "free")
	assert.Contains(t, out, "NUM")
	assert.NotContains(t, out, "call")
	assert.Contains(t, out, ellipsis)
	assert.Contains(t, out, "[5 rows x 3 columns]")

	full := m.Render(0, 0)
	assert.Contains(t, full, "call")
	assert.NotContains(t, full, ellipsis)
	assert.Equal(t, 1, strings.Count(full, "[5 rows x 3 columns]"))
}

func TestWindow(t *testing.T) {
	assert.Equal(t, []int{0, 1, 2}, window(3, 5))
	assert.Equal(t, []int{0, 1, -1, 4}, window(5, 3))
	assert.Equal(t, []int{0, -1, 9}, window(10, 2))
	assert.Equal(t, []int{}, window(0, 0))
}
