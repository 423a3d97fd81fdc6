// Package bm25 ranks corpus documents against a free text query with the
// Okapi BM25 weighting.
package bm25

import (
	"math"
	"sort"

	"github.com/deanrtaylor1/gobow/vocab"
)

const (
	k1 = 1.2
	b  = 0.75
)

type TermFreq map[string]int

type DocData struct {
	TermCount int
	Terms     TermFreq
}

// Model holds per document term counts and corpus document frequencies.
// It is read only once built.
type Model struct {
	docs []DocData
	//DF is the Document Frequency of a term
	DF vocab.DocFreq
	//DA is the average document length
	DA  float32
	tok vocab.Tokenizer
}

// Result is the score of one document, addressed by its corpus position.
type Result struct {
	Doc   int
	Score float32
}

// NewModel tokenizes every document with tok. A nil tok uses the default
// tokenizer.
func NewModel(docs []string, tok vocab.Tokenizer) *Model {
	if tok == nil {
		tok = vocab.Default()
	}
	m := &Model{
		docs: make([]DocData, len(docs)),
		DF:   make(vocab.DocFreq),
		tok:  tok,
	}

	total := 0
	for i, doc := range docs {
		tokens := tok.Tokenize(doc)
		m.docs[i] = ConvertToDocData(tokens)
		total += len(tokens)
		for token := range m.docs[i].Terms {
			m.DF[token]++
		}
	}
	if len(docs) > 0 {
		m.DA = float32(total) / float32(len(docs))
	}
	return m
}

// Len returns the number of documents in the model.
func (m *Model) Len() int { return len(m.docs) }

// Score ranks every document against query, best first. Equal scores keep
// corpus order.
func (m *Model) Score(query string) []Result {
	terms := m.tok.Tokenize(query)
	results := make([]Result, len(m.docs))
	for i, doc := range m.docs {
		var rank float32
		for _, t := range terms {
			rank += ComputeTF(t, doc.TermCount, doc.Terms, m.DA) * ComputeIDF(t, len(m.docs), m.DF)
		}
		results[i] = Result{Doc: i, Score: rank}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

// FilterResults keeps the results whose score satisfies filter.
func FilterResults(results []Result, filter func(float32) bool) []Result {
	var filtered []Result
	for _, result := range results {
		if filter(result.Score) {
			filtered = append(filtered, result)
		}
	}
	return filtered
}

// Utility predicate function to check if a float32 is greater than 0
func IsGreaterThanZero(value float32) bool {
	return value > 0
}

// ConvertToDocData counts tokens into a DocData.
func ConvertToDocData(tokens []string) DocData {
	tf := make(TermFreq, len(tokens))
	for _, token := range tokens {
		tf[token]++
	}
	return DocData{TermCount: len(tokens), Terms: tf}
}

// Compute TF for a term in a document using bm25 calculation not tfidf
func ComputeTF(t string, n int, d TermFreq, DA float32) float32 {
	//n is the total number of terms (not unique) in the document
	//DA is the average document length found in the model
	f, ok := d[t]
	if !ok || DA == 0 {
		return 0
	}
	M := float32(f) * (k1 + 1)
	N := float32(f) + (k1 * (1 - b + (b * (float32(n) / DA))))
	return M / N
}

// Compute IDF for a term in a document using bm25 calculation not tfidf
func ComputeIDF(t string, N int, df vocab.DocFreq) float32 {
	M := float64(df[t]) + 0.5
	// terms in more than half the documents would go negative
	n := math.Max(float64(N)-float64(df[t])+0.5, M)
	return float32(math.Log10(n / M))
}
