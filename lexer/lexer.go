package lexer

import (
	"errors"
	"strings"
)

// Lexer scans content left to right and yields maximal runs of ASCII
// letters. Anything else separates tokens.
type Lexer struct {
	content []rune
}

// NewLexer creates a new Lexer
func NewLexer(content string) *Lexer {
	return &Lexer{[]rune(content)}
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isSeparator(r rune) bool {
	return !isLetter(r)
}

// TrimLeft drops everything up to the next letter
func (l *Lexer) TrimLeft() {
	l.ChopWhile(isSeparator)
}

// Chop chops the content by n and returns the chopped content
func (l *Lexer) Chop(n int) (token []rune) {
	token = l.content[:n]
	l.content = l.content[n:]
	return token
}

// ChopWhile chops the content while the predicate f returns true
func (l *Lexer) ChopWhile(f func(rune) bool) (token []rune) {
	n := 0
	for n < len(l.content) && f(l.content[n]) {
		n += 1
	}
	return l.Chop(n)
}

// NextToken returns the next run of at least minTokenLen letters, or nil
// once the content is exhausted. Shorter runs are consumed and skipped.
func (l *Lexer) NextToken() []rune {
	for {
		l.TrimLeft()
		if len(l.content) == 0 {
			return nil
		}
		term := l.ChopWhile(isLetter)
		if len(term) >= minTokenLen {
			return term
		}
	}
}

// ErrEOF is returned by Next when no tokens remain.
var ErrEOF = errors.New("no more tokens")

// Next returns the next token as a string
func (l *Lexer) Next() (string, error) {
	token := l.NextToken()
	if token == nil {
		return "EOF", ErrEOF
	}
	return string(token), nil
}

// All drains the lexer.
func (l *Lexer) All() []string {
	var tokens []string
	for {
		token, err := l.Next()
		if err != nil {
			return tokens
		}
		tokens = append(tokens, token)
	}
}

// StripHeaders drops an RFC 822 style header block, i.e. everything up to
// the first blank line. Text without a blank line is returned unchanged.
func StripHeaders(text string) string {
	if _, body, ok := strings.Cut(text, "\n\n"); ok {
		return body
	}
	return text
}
