package chapters

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/alnah/go-quickbook/internal/book"
)

// Document is one standalone chapter page.
type Document struct {
	Info book.ChapterInfo
	HTML string
}

// SplitOptions configures Split.
type SplitOptions struct {
	Stylesheet string // CSS injected into every chapter head
	SourceFile string // rendered file the chapters come from
}

// Filename returns the file name of the chapter at array index i.
// Names follow boundary order, not chapter numbers.
func Filename(i int) string {
	return fmt.Sprintf("chapter-%02d.html", i+1)
}

// Split cuts doc at each boundary. Chapter i spans from its boundary to the
// next one, the last chapter to the end of the body. Each page reuses the
// head of doc with opts.Stylesheet injected.
func Split(doc string, boundaries []book.ChapterBoundary, opts SplitOptions) ([]Document, error) {
	head, err := extractHead(doc)
	if err != nil {
		return nil, err
	}

	end := bodyEnd(doc)
	prev := -1
	for _, b := range boundaries {
		if b.Position < prev || b.Position > end {
			return nil, fmt.Errorf("%w: boundary %q at %d", ErrBoundaryOrder, b.Title, b.Position)
		}
		prev = b.Position
	}

	docs := make([]Document, 0, len(boundaries))
	for i, b := range boundaries {
		spanEnd := end
		if i+1 < len(boundaries) {
			spanEnd = boundaries[i+1].Position
		}

		name := Filename(i)
		docs = append(docs, Document{
			Info: book.ChapterInfo{
				Number:     b.Number,
				Title:      b.Title,
				Filename:   name,
				SourceFile: opts.SourceFile,
			},
			HTML: InjectCSS(wrap(head, doc[b.Position:spanEnd]), opts.Stylesheet),
		})
	}
	return docs, nil
}

// extractHead returns the inner HTML of the document head.
func extractHead(doc string) (string, error) {
	parsed, err := goquery.NewDocumentFromReader(strings.NewReader(doc))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrParseHTML, err)
	}
	head, err := parsed.Find("head").First().Html()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrParseHTML, err)
	}
	return strings.TrimSpace(head), nil
}

func wrap(head, body string) string {
	var b strings.Builder
	b.Grow(len(head) + len(body) + 96)
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	b.WriteString(head)
	b.WriteString("\n</head>\n<body>\n")
	b.WriteString(body)
	b.WriteString("\n</body>\n</html>\n")
	return b.String()
}
