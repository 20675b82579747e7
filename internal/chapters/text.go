package chapters

import (
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// lineBreakers are elements whose start or end begins a new text line.
var lineBreakers = map[atom.Atom]bool{
	atom.Address: true, atom.Article: true, atom.Aside: true, atom.Blockquote: true,
	atom.Br: true, atom.Dd: true, atom.Div: true, atom.Dl: true, atom.Dt: true,
	atom.Figcaption: true, atom.Figure: true, atom.Footer: true, atom.H1: true,
	atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Header: true, atom.Hr: true, atom.Li: true, atom.Main: true, atom.Nav: true,
	atom.Ol: true, atom.P: true, atom.Pre: true, atom.Section: true, atom.Table: true,
	atom.Td: true, atom.Th: true, atom.Tr: true, atom.Ul: true,
}

// skipped elements contribute no text.
var skipped = map[atom.Atom]bool{
	atom.Script: true, atom.Style: true, atom.Head: true, atom.Title: true,
}

// textLines reduces an HTML fragment to its non-empty text lines with
// whitespace collapsed. Entities are decoded. The fragment may be cut
// mid-tag; the tokenizer tolerates that.
func textLines(fragment string) []string {
	z := html.NewTokenizer(strings.NewReader(fragment))

	var lines []string
	var cur strings.Builder
	depth := 0

	flush := func() {
		if line := strings.Join(strings.Fields(cur.String()), " "); line != "" {
			lines = append(lines, line)
		}
		cur.Reset()
	}

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if z.Err() == io.EOF {
				flush()
			}
			return lines
		case html.TextToken:
			if depth == 0 {
				cur.Write(z.Text())
				cur.WriteByte(' ')
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			a := atom.Lookup(name)
			if skipped[a] && tt == html.StartTagToken {
				depth++
			}
			if lineBreakers[a] {
				flush()
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			a := atom.Lookup(name)
			if skipped[a] && depth > 0 {
				depth--
			}
			if lineBreakers[a] {
				flush()
			}
		}
	}
}

// window returns s[start:end] with end capped at start+size and moved back
// to a rune boundary.
func window(s string, start, end, size int) string {
	if size > 0 && end-start > size {
		end = start + size
		for end > start && !utf8.RuneStart(s[end]) {
			end--
		}
	}
	return s[start:end]
}
