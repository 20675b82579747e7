package chunker

import (
	"regexp"
	"unicode/utf8"
)

// paragraphBreak matches a blank line.
var paragraphBreak = regexp.MustCompile(`\n[ \t]*\n\s*`)

// splitParagraphs groups the paragraphs of src[start:end] into pieces.
// Paragraphs are appended to the current piece until the next one would
// push it past maxPiece characters; the piece is then flushed. A single
// paragraph longer than maxPiece becomes a piece of its own. Pieces are
// returned as source spans covering whole paragraphs, in order.
func splitParagraphs(src string, start, end, maxPiece int) []Span {
	paras := paragraphSpans(src, start, end)

	var pieces []Span
	var cur Span
	open := false

	for _, p := range paras {
		if open && utf8.RuneCountInString(src[cur.Start:p.End]) > maxPiece {
			pieces = append(pieces, cur)
			open = false
		}
		if !open {
			cur = p
			open = true
			continue
		}
		cur.End = p.End
	}
	if open {
		pieces = append(pieces, cur)
	}

	return pieces
}

// paragraphSpans returns the non-blank paragraphs of src[start:end].
func paragraphSpans(src string, start, end int) []Span {
	block := src[start:end]

	var spans []Span
	pos := 0
	for _, loc := range paragraphBreak.FindAllStringIndex(block, -1) {
		if loc[0] > pos {
			spans = append(spans, Span{Start: start + pos, End: start + loc[0]})
		}
		pos = loc[1]
	}
	if pos < len(block) {
		spans = append(spans, Span{Start: start + pos, End: end})
	}
	return spans
}
