package tfidf

import (
	"math"

	"github.com/deanrtaylor1/gobow/vocab"
)

// ComputeIDF computes the inverse document frequency of a token, that is to
// say how rare it is across the n documents of a corpus.
func ComputeIDF(df int, n int) float32 {
	// a token seen in no document would divide by zero
	m := math.Max(float64(df), 1)
	if n <= 0 {
		return 0
	}
	return float32(math.Log10(float64(n) / m))
}

// Weights returns the idf of every vocabulary column in column order.
func Weights(v *vocab.Vocabulary) []float32 {
	weights := make([]float32, v.Len())
	for i, s := range v.Stats() {
		weights[i] = ComputeIDF(s.DocFreq, v.Documents())
	}
	return weights
}
