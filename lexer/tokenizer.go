package lexer

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/tebeka/snowball"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Sentinel tokens substituted for whole classes of matches before scanning.
const (
	URL   = "URL"
	EMAIL = "EMAIL"
	NUM   = "NUM"
)

const minTokenLen = 2

// nonSpace is any rune that is not whitespace in the Unicode sense,
// including the ASCII information separators and NEL.
const nonSpace = `[^\s\p{Z}\x0b\x1c-\x1f\x85]`

var (
	urlPattern    = regexp.MustCompile(`https?://` + nonSpace + `+|www\.` + nonSpace + `+`)
	numberPattern = regexp.MustCompile(`\p{Nd}+(?:\.\p{Nd}+)?`)
)

// Options toggles the pre and post processing steps around the core
// normalisation. The zero value tokenizes exactly as Tokenize does.
type Options struct {
	// StripHeaders drops a mail header block before tokenizing.
	StripHeaders bool
	// StripHTML keeps only the text nodes of html input.
	StripHTML bool
	// Stem reduces word tokens to their English snowball stem.
	Stem bool
}

// Tokenizer turns raw text into normalised tokens. A Tokenizer with stemming
// enabled holds a native stemmer and must be closed.
type Tokenizer struct {
	opts    Options
	stemmer *snowball.Stemmer
}

// New creates a Tokenizer for the given options
func New(opts Options) (*Tokenizer, error) {
	t := &Tokenizer{opts: opts}
	if opts.Stem {
		stemmer, err := snowball.New("english")
		if err != nil {
			return nil, fmt.Errorf("create stemmer: %w", err)
		}
		t.stemmer = stemmer
	}
	return t, nil
}

// Close releases the stemmer, if any.
func (t *Tokenizer) Close() error {
	if t.stemmer != nil {
		t.stemmer.Close()
		t.stemmer = nil
	}
	return nil
}

// Tokenize normalises text and returns its tokens in order of appearance.
func (t *Tokenizer) Tokenize(text string) []string {
	if t.opts.StripHeaders {
		text = StripHeaders(text)
	}
	if t.opts.StripHTML {
		text = ParseHtmlTextContent(text)
	}
	tokens := NewLexer(Normalize(text)).All()
	if t.stemmer == nil {
		return tokens
	}
	for i, token := range tokens {
		if isSentinel(token) {
			continue
		}
		tokens[i] = t.stemmer.Stem(token)
	}
	return tokens
}

// Tokenize splits text with the default options.
func Tokenize(text string) []string {
	return NewLexer(Normalize(text)).All()
}

// Normalize lower-cases text and replaces urls, email addresses and numbers,
// in that order, with their sentinel tokens padded by spaces.
func Normalize(text string) string {
	text = cases.Lower(language.Und).String(text)
	text = urlPattern.ReplaceAllLiteralString(text, " "+URL+" ")
	text = replaceEmails(text, " "+EMAIL+" ")
	text = numberPattern.ReplaceAllLiteralString(text, " "+NUM+" ")
	return text
}

func isSentinel(token string) bool {
	return token == URL || token == EMAIL || token == NUM
}

// isWordRune reports whether r is a word character: a letter or number in
// any script, or an underscore.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

func isEmailRune(r rune) bool {
	return isWordRune(r) || r == '.' || r == '-'
}

// boundary reports whether a word boundary lies before position i.
func boundary(text []rune, i int) bool {
	before := i > 0 && isWordRune(text[i-1])
	after := i < len(text) && isWordRune(text[i])
	return before != after
}

// replaceEmails substitutes repl for every address shaped
// word-boundary, [word.-]+, "@", [word.-]+, word-boundary. Word characters
// are Unicode aware, which regexp's \w and \b are not.
func replaceEmails(s, repl string) string {
	if !strings.Contains(s, "@") {
		return s
	}
	text := []rune(s)
	var b strings.Builder
	done := 0
	for at := 0; at < len(text); at++ {
		if text[at] != '@' {
			continue
		}
		start := at
		for start > done && isEmailRune(text[start-1]) {
			start--
		}
		for start < at && !boundary(text, start) {
			start++
		}
		if start == at {
			continue
		}
		end := at + 1
		for end < len(text) && isEmailRune(text[end]) {
			end++
		}
		for end > at+1 && !boundary(text, end) {
			end--
		}
		if end == at+1 {
			continue
		}
		b.WriteString(string(text[done:start]))
		b.WriteString(repl)
		done = end
		at = end - 1
	}
	b.WriteString(string(text[done:]))
	return b.String()
}
