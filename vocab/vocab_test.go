package vocab

import (
	"bytes"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deanrtaylor1/gobow/lexer"
)

var corpus = []string{
	"free prize call now",
	"call me later",
	"free free free entry",
	"are you free later",
	"prize draw call 0800",
}

func TestSortByDocFreq(t *testing.T) {
	testCases := []struct {
		name     string
		input    DocFreq
		expected []Stat
	}{
		{
			name: "Basic test",
			input: DocFreq{
				"one":   1,
				"two":   2,
				"three": 3,
			},
			expected: []Stat{
				{Token: "three", DocFreq: 3},
				{Token: "two", DocFreq: 2},
				{Token: "one", DocFreq: 1},
			},
		},
		{
			name:  "ties break lexicographically",
			input: DocFreq{"zeta": 2, "alpha": 2, "mid": 5, "beta": 2},
			expected: []Stat{
				{Token: "mid", DocFreq: 5},
				{Token: "alpha", DocFreq: 2},
				{Token: "beta", DocFreq: 2},
				{Token: "zeta", DocFreq: 2},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := SortByDocFreq(tc.input)
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("Expected: %v, got: %v", tc.expected, got)
			}
		})
	}
}

func TestCountDocFreqIgnoresRepeats(t *testing.T) {
	df := CountDocFreq(corpus, nil)
	assert.Equal(t, 3, df["free"], "free appears three times in one document")
	assert.Equal(t, 3, df["call"])
	assert.Equal(t, 2, df["later"])
	assert.Equal(t, 1, df[lexer.NUM])
}

func TestBuild(t *testing.T) {
	v := Build(corpus, Default(), Options{MinDocumentFrequency: 2, MaxVocabularySize: 100})

	assert.Equal(t, []string{"call", "free", "later", "prize"}, v.Tokens())
	assert.Equal(t, len(corpus), v.Documents())
	for i, token := range v.Tokens() {
		idx, ok := v.Index(token)
		require.True(t, ok)
		assert.Equal(t, i, idx)
		assert.Equal(t, token, v.Token(i))
	}
	_, ok := v.Index("draw")
	assert.False(t, ok)
	assert.Equal(t, 0, v.DocFreq("draw"))
}

func TestBuildThresholds(t *testing.T) {
	testCases := []struct {
		name string
		opts Options
		want []string
	}{
		{"defaults", DefaultOptions(), []string{"call", "free"}},
		{"cap", Options{MinDocumentFrequency: 1, MaxVocabularySize: 3}, []string{"call", "free", "later"}},
		{"zero cap", Options{MinDocumentFrequency: 1, MaxVocabularySize: 0}, []string{}},
		{"min below one", Options{MinDocumentFrequency: -4, MaxVocabularySize: 2}, []string{"call", "free"}},
		{"min above corpus", Options{MinDocumentFrequency: 10, MaxVocabularySize: 10}, []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := Build(corpus, nil, tc.opts)
			assert.Equal(t, tc.want, v.Tokens())
		})
	}
}

func TestBuildInvariants(t *testing.T) {
	var docs []string
	for i := 0; i < 60; i++ {
		docs = append(docs, fmt.Sprintf("word%s common %s", strings.Repeat("x", i%7), strings.Repeat("ab ", i%4)))
	}
	opts := Options{MinDocumentFrequency: 5, MaxVocabularySize: 3}
	df := CountDocFreq(docs, nil)
	v := Build(docs, nil, opts)

	assert.LessOrEqual(t, v.Len(), opts.MaxVocabularySize)
	for _, s := range v.Stats() {
		assert.GreaterOrEqual(t, df[s.Token], opts.MinDocumentFrequency)
		assert.Equal(t, df[s.Token], s.DocFreq)
	}
	// repeated builds give the same order
	assert.Equal(t, v.Tokens(), Build(docs, nil, opts).Tokens())
}

func TestBuildEmptyCorpus(t *testing.T) {
	v := Build(nil, nil, DefaultOptions())
	assert.Equal(t, 0, v.Len())
	assert.Empty(t, v.Tokens())
}

func TestTokensReturnsCopy(t *testing.T) {
	v := Build(corpus, nil, Options{MinDocumentFrequency: 1, MaxVocabularySize: 10})
	tokens := v.Tokens()
	tokens[0] = "mutated"
	assert.NotEqual(t, "mutated", v.Token(0))
}

func TestFromStatsRejectsDuplicates(t *testing.T) {
	_, err := FromStats([]Stat{{"a", 1}, {"b", 1}, {"a", 2}}, 3)
	assert.ErrorContains(t, err, `duplicate token "a" at index 0 and 2`)
}

func TestBuildAlwaysIndexes(t *testing.T) {
	testCases := []struct {
		name string
		opts Options
	}{
		{"defaults", DefaultOptions()},
		{"everything", Options{MinDocumentFrequency: 1, MaxVocabularySize: 1000}},
		{"capped", Options{MinDocumentFrequency: 1, MaxVocabularySize: 2}},
		{"zero cap", Options{MinDocumentFrequency: 1, MaxVocabularySize: 0}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := Build(corpus, nil, tc.opts)
			require.NotNil(t, v)
			for i, token := range v.Tokens() {
				idx, ok := v.Index(token)
				require.True(t, ok, token)
				assert.Equal(t, i, idx)
			}
			rebuilt, err := FromStats(v.Stats(), v.Documents())
			require.NoError(t, err)
			assert.Equal(t, v.Tokens(), rebuilt.Tokens())
		})
	}
}

func TestSaveLoad(t *testing.T) {
	v := Build(corpus, nil, Options{MinDocumentFrequency: 2, MaxVocabularySize: 10})

	var buf bytes.Buffer
	require.NoError(t, v.Save(&buf))

	loaded, err := Load(&buf)
	require.NoError(t, err)
	assert.Equal(t, v.Stats(), loaded.Stats())
	assert.Equal(t, v.Documents(), loaded.Documents())

	path := filepath.Join(t.TempDir(), "nested", "vocab.gob.gz")
	require.NoError(t, v.SaveFile(path))
	fromFile, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, v.Tokens(), fromFile.Tokens())
}

func TestLoadRejectsGarbage(t *testing.T) {
	_, err := Load(strings.NewReader("not gzip"))
	assert.Error(t, err)
}
