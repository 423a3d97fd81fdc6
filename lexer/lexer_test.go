package lexer

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLexer(t *testing.T) {
	l := NewLexer("Hello World!")
	require.NotNil(t, l)
	assert.Len(t, l.content, 12)
	assert.Equal(t, "Hello World!", string(l.content))
}

func TestTrimLeft(t *testing.T) {
	l := NewLexer(" 12, Hello World!")
	l.TrimLeft()
	if string(l.content) != "Hello World!" {
		t.Errorf("TrimLeft() failed, got %q", string(l.content))
	}
}

func TestChop(t *testing.T) {
	l := NewLexer("Hello World!")
	l.Chop(5)
	if string(l.content) != " World!" {
		t.Error("Chop() failed")
	}
}

func TestChopWhile(t *testing.T) {
	l := NewLexer("Hello World!")
	l.ChopWhile(isLetter)
	expected := " World!"
	if string(l.content) != expected {
		t.Errorf("ChopWhile() Failed, expected %v, got %v", expected, string(l.content))
	}
}

func TestNext(t *testing.T) {
	l := NewLexer("hello a world!")

	first, err := l.Next()
	require.NoError(t, err)
	assert.Equal(t, "hello", first)

	second, err := l.Next()
	require.NoError(t, err)
	assert.Equal(t, "world", second, "single letters are skipped")

	eof, err := l.Next()
	assert.ErrorIs(t, err, ErrEOF)
	assert.Equal(t, "EOF", eof)
}

func TestNextTokenSplitsOnNonASCIILetters(t *testing.T) {
	l := NewLexer("café au lait")
	assert.Equal(t, []string{"caf", "au", "lait"}, l.All())
}

func TestTokenize(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "sentinels",
			input:    "Contact me at a@b.com or visit http://x.com, call 123 now",
			expected: []string{"contact", "me", "at", EMAIL, "or", "visit", URL, "call", NUM, "now"},
		},
		{
			name:     "www prefix",
			input:    "see www.example.org/path?q=1 today",
			expected: []string{"see", URL, "today"},
		},
		{
			name:     "decimal number",
			input:    "only 3.50 left",
			expected: []string{"only", NUM, "left"},
		},
		{
			name:     "digits split words",
			input:    "abc123def",
			expected: []string{"abc", NUM, "def"},
		},
		{
			name:     "duplicates kept",
			input:    "Free free FREE",
			expected: []string{"free", "free", "free"},
		},
		{
			name:     "too short",
			input:    "a b c 1",
			expected: []string{NUM},
		},
		{
			name:     "accented email",
			input:    "mail José@x.com now",
			expected: []string{"mail", EMAIL, "now"},
		},
		{
			name:     "arabic-indic digits",
			input:    "call ١٢٣ now",
			expected: []string{"call", NUM, "now"},
		},
		{
			name:     "full-width digits",
			input:    "price １２ now",
			expected: []string{"price", NUM, "now"},
		},
		{
			name:     "url ends at no-break space",
			input:    "visit http://x.com\u00a0hello there",
			expected: []string{"visit", URL, "hello", "there"},
		},
		{
			name:     "empty",
			input:    "",
			expected: nil,
		},
		{
			name:     "punctuation only",
			input:    "!? -- ...",
			expected: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Tokenize(tc.input)
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("Expected: %v, got: %v", tc.expected, got)
			}
		})
	}
}

func TestTokenizeSentinelsOnce(t *testing.T) {
	tokens := Tokenize("Contact me at a@b.com or visit http://x.com, call 123 now")
	counts := map[string]int{}
	for _, tok := range tokens {
		counts[tok]++
	}
	for _, s := range []string{URL, EMAIL, NUM} {
		assert.Equal(t, 1, counts[s], s)
	}
	assert.NotContains(t, tokens, "a")
}

func TestNormalizePrecedence(t *testing.T) {
	// the url pattern runs first and swallows the address inside it
	assert.Equal(t, []string{URL}, Tokenize("http://user@host.com/1"))
	// the email pattern runs before numbers
	assert.Equal(t, []string{"reply", EMAIL}, Tokenize("reply 42@x9.com"))
}

func TestReplaceEmails(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "a@b.com", "E"},
		{"trailing dot left out", "write to bob@x.org.", "write to E."},
		{"leading dot left out", "(.ann@x.io)", "(.E)"},
		{"two addresses", "a@b.c,d@e.f", "E,E"},
		{"no local part", "@home now", "@home now"},
		{"no domain", "bob@ -", "bob@ -"},
		{"unicode domain", "ñ@dominio.es", "E"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, replaceEmails(tc.input, "E"))
		})
	}
}

func TestStripHeaders(t *testing.T) {
	assert.Equal(t, "body text", StripHeaders("From: a\nSubject: b\n\nbody text"))
	assert.Equal(t, "no headers", StripHeaders("no headers"))
}

func TestParseHtmlTextContent(t *testing.T) {
	htmlContent := `
<!DOCTYPE html>
<html>
<head>
<title>Test Page</title>
<style>body { color: red; }</style>
</head>
<body>
  <h1>Sample Links</h1>
  <a href="https://example.com/page1">Link 1</a>
  <script>var x = 1;</script>
</body>
</html>`
	assert.Equal(t, "Test Page Sample Links Link 1", ParseHtmlTextContent(htmlContent))
}

func TestTokenizerOptions(t *testing.T) {
	tok, err := New(Options{StripHeaders: true, StripHTML: true})
	require.NoError(t, err)
	defer tok.Close()

	got := tok.Tokenize("Subject: win\n\n<p>Claim your <b>prize</b></p>")
	assert.Equal(t, []string{"claim", "your", "prize"}, got)
}

func TestTokenizerStem(t *testing.T) {
	tok, err := New(Options{Stem: true})
	require.NoError(t, err)
	defer tok.Close()

	got := tok.Tokenize("running winners call 100")
	assert.Equal(t, []string{"run", "winner", "call", NUM}, got)
}

func TestTokenizerDefaultMatchesTokenize(t *testing.T) {
	tok, err := New(Options{})
	require.NoError(t, err)
	text := "Visit https://go.dev and mail gopher@go.dev 24/7"
	assert.Equal(t, Tokenize(text), tok.Tokenize(text))
	assert.NoError(t, tok.Close())
}
