package lexer

import (
	"strings"

	"golang.org/x/net/html"
)

// ParseHtmlTextContent returns the text nodes of an html document joined by
// single spaces. Script and style bodies are skipped.
func ParseHtmlTextContent(htmlContent string) string {
	var b strings.Builder
	skip := 0

	d := html.NewTokenizer(strings.NewReader(htmlContent))
	for {
		tt := d.Next()
		switch tt {
		case html.ErrorToken:
			return strings.TrimSpace(b.String())
		case html.StartTagToken:
			if isRawTextTag(d) {
				skip++
			}
		case html.EndTagToken:
			if isRawTextTag(d) && skip > 0 {
				skip--
			}
		case html.TextToken:
			if skip > 0 {
				continue
			}
			text := strings.TrimSpace(string(d.Text()))
			if text == "" {
				continue
			}
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(text)
		}
	}
}

func isRawTextTag(d *html.Tokenizer) bool {
	name, _ := d.TagName()
	switch string(name) {
	case "script", "style":
		return true
	}
	return false
}
