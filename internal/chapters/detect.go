package chapters

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/alnah/go-quickbook/internal/book"
)

// DefaultMarker matches the section wrappers produced by pandoc --section-divs.
const DefaultMarker = `<section\b[^>]*>`

// DefaultWindow is the largest region, in bytes, inspected after a marker.
const DefaultWindow = 1000

var defaultMarker = regexp.MustCompile(DefaultMarker)

// headingPatterns are tried in order against each line of a region.
var headingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^chapter\s+[ivxlcdm]+\b`),
	regexp.MustCompile(`(?i)^preface\b`),
	regexp.MustCompile(`(?i)^prologue\b`),
	regexp.MustCompile(`(?i)^epilogue\b`),
	regexp.MustCompile(`(?i)^introduction\b`),
	regexp.MustCompile(`(?i)^appendix\b`),
}

// DetectOptions configures Detect. The zero value uses the defaults.
type DetectOptions struct {
	Marker    *regexp.Regexp    // nil means DefaultMarker
	Window    int               // 0 means DefaultWindow
	Titles    map[string]string // raw heading to display title
	BookTitle string            // title of the synthesized boundary
}

// CompileMarker compiles a marker pattern from book configuration.
// An empty pattern yields the default marker.
func CompileMarker(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return defaultMarker, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMarker, err)
	}
	return re, nil
}

// Detect returns the chapter boundaries of a rendered document, ordered by
// position. A document without any recognizable heading yields a single
// boundary at the start of the body, numbered 1 and titled opts.BookTitle.
func Detect(doc string, opts DetectOptions) []book.ChapterBoundary {
	marker := opts.Marker
	if marker == nil {
		marker = defaultMarker
	}
	size := opts.Window
	if size <= 0 {
		size = DefaultWindow
	}

	locs := marker.FindAllStringIndex(doc, -1)
	var numbering numberer
	var boundaries []book.ChapterBoundary

	for i, loc := range locs {
		end := len(doc)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}

		heading, ok := matchHeading(window(doc, loc[0], end, size))
		if !ok {
			continue
		}

		title := resolveTitle(heading, opts.Titles)
		boundaries = append(boundaries, book.ChapterBoundary{
			Title:    title,
			Position: loc[0],
			Number:   numbering.next(title),
		})
	}

	if len(boundaries) == 0 {
		return []book.ChapterBoundary{{
			Title:    opts.BookTitle,
			Position: bodyStart(doc),
			Number:   1,
		}}
	}

	sort.SliceStable(boundaries, func(i, j int) bool {
		return boundaries[i].Position < boundaries[j].Position
	})
	return boundaries
}

// matchHeading returns the first region line matching a heading pattern,
// trying patterns in order.
func matchHeading(region string) (string, bool) {
	lines := textLines(region)
	for _, p := range headingPatterns {
		for _, line := range lines {
			if p.MatchString(line) {
				return line, true
			}
		}
	}
	return "", false
}

// resolveTitle looks a raw heading up in titles by its exact, uppercased
// and whitespace-normalized forms.
func resolveTitle(raw string, titles map[string]string) string {
	if len(titles) == 0 {
		return raw
	}
	keys := []string{
		raw,
		strings.ToUpper(raw),
		strings.Join(strings.Fields(raw), " "),
	}
	for _, k := range keys {
		if t, ok := titles[k]; ok {
			return t
		}
	}
	return raw
}

var bodyTag = regexp.MustCompile(`(?i)<body\b[^>]*>`)

// bodyStart returns the offset just past the <body> tag, or 0.
func bodyStart(doc string) int {
	if loc := bodyTag.FindStringIndex(doc); loc != nil {
		return loc[1]
	}
	return 0
}

// bodyEnd returns the offset of the closing </body> tag, or len(doc).
func bodyEnd(doc string) int {
	if idx := strings.LastIndex(strings.ToLower(doc), "</body>"); idx != -1 {
		return idx
	}
	return len(doc)
}
