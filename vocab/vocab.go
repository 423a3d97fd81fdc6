package vocab

import (
	"fmt"
	"sort"

	"github.com/deanrtaylor1/gobow/lexer"
)

const (
	DefaultMinDocumentFrequency = 3
	DefaultMaxVocabularySize    = 30000
)

// Tokenizer is the part of lexer.Tokenizer the builder needs.
type Tokenizer interface {
	Tokenize(text string) []string
}

type defaultTokenizer struct{}

func (defaultTokenizer) Tokenize(text string) []string { return lexer.Tokenize(text) }

// Default returns a Tokenizer using lexer.Tokenize.
func Default() Tokenizer { return defaultTokenizer{} }

type DocFreq = map[string]int

// Options bounds the vocabulary.
type Options struct {
	// MinDocumentFrequency drops tokens seen in fewer documents.
	MinDocumentFrequency int
	// MaxVocabularySize caps the number of tokens kept.
	MaxVocabularySize int
}

// DefaultOptions returns min_df 3 and at most 30000 tokens.
func DefaultOptions() Options {
	return Options{
		MinDocumentFrequency: DefaultMinDocumentFrequency,
		MaxVocabularySize:    DefaultMaxVocabularySize,
	}
}

// Stat is a token with its document frequency
type Stat struct {
	Token   string
	DocFreq int
}

// Vocabulary maps tokens to contiguous column indices. It is never modified
// after construction.
type Vocabulary struct {
	tokens []string
	df     []int
	index  map[string]int
	docs   int
}

// CountDocFreq counts, for every token, the number of documents it appears
// in at least once.
func CountDocFreq(docs []string, tok Tokenizer) DocFreq {
	if tok == nil {
		tok = Default()
	}
	df := make(DocFreq)
	for _, doc := range docs {
		for token := range Distinct(tok.Tokenize(doc)) {
			df[token] += 1
		}
	}
	return df
}

// Distinct reduces a token sequence to its set of tokens
func Distinct(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		set[token] = struct{}{}
	}
	return set
}

// SortByDocFreq orders tokens by descending document frequency. Equal
// frequencies are ordered by token so the result never depends on map order.
func SortByDocFreq(m DocFreq) (stats []Stat) {
	stats = make([]Stat, 0, len(m))
	for k, v := range m {
		stats = append(stats, Stat{Token: k, DocFreq: v})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].DocFreq != stats[j].DocFreq {
			return stats[i].DocFreq > stats[j].DocFreq
		}
		return stats[i].Token < stats[j].Token
	})
	return stats
}

// Build counts document frequencies over docs, keeps the tokens meeting
// MinDocumentFrequency and assigns indices to the most frequent
// MaxVocabularySize of them.
func Build(docs []string, tok Tokenizer, opts Options) *Vocabulary {
	minDF := max(opts.MinDocumentFrequency, 1)
	limit := max(opts.MaxVocabularySize, 0)

	ranked := SortByDocFreq(CountDocFreq(docs, tok))
	kept := make([]Stat, 0, min(len(ranked), limit))
	for _, s := range ranked {
		if len(kept) == limit {
			break
		}
		// ranked is sorted, nothing after this can pass either
		if s.DocFreq < minDF {
			break
		}
		kept = append(kept, s)
	}
	// tokens come from map keys, so they are distinct
	return newVocabulary(kept, len(docs))
}

// FromStats builds a vocabulary whose indices follow the order of stats.
// A token listed twice is an error.
func FromStats(stats []Stat, docs int) (*Vocabulary, error) {
	seen := make(map[string]int, len(stats))
	for i, s := range stats {
		if j, ok := seen[s.Token]; ok {
			return nil, fmt.Errorf("duplicate token %q at index %d and %d", s.Token, j, i)
		}
		seen[s.Token] = i
	}
	return newVocabulary(stats, docs), nil
}

// newVocabulary indexes stats, which must hold distinct tokens.
func newVocabulary(stats []Stat, docs int) *Vocabulary {
	v := &Vocabulary{
		tokens: make([]string, len(stats)),
		df:     make([]int, len(stats)),
		index:  make(map[string]int, len(stats)),
		docs:   docs,
	}
	for i, s := range stats {
		v.tokens[i] = s.Token
		v.df[i] = s.DocFreq
		v.index[s.Token] = i
	}
	return v
}

// Len returns the number of tokens.
func (v *Vocabulary) Len() int { return len(v.tokens) }

// Documents returns the size of the corpus the vocabulary was built from.
func (v *Vocabulary) Documents() int { return v.docs }

// Index returns the column index of token.
func (v *Vocabulary) Index(token string) (int, bool) {
	i, ok := v.index[token]
	return i, ok
}

// Token returns the token at column i.
func (v *Vocabulary) Token(i int) string { return v.tokens[i] }

// Tokens returns the tokens in column order.
func (v *Vocabulary) Tokens() []string {
	out := make([]string, len(v.tokens))
	copy(out, v.tokens)
	return out
}

// DocFreq returns the document frequency recorded for token, 0 if absent.
func (v *Vocabulary) DocFreq(token string) int {
	if i, ok := v.index[token]; ok {
		return v.df[i]
	}
	return 0
}

// Stats returns tokens with their document frequency in column order.
func (v *Vocabulary) Stats() []Stat {
	out := make([]Stat, len(v.tokens))
	for i, token := range v.tokens {
		out[i] = Stat{Token: token, DocFreq: v.df[i]}
	}
	return out
}
