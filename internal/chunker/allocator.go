package chunker

import "sort"

// Span is a half-open byte range [Start, End) of the source.
type Span struct {
	Start int
	End   int
}

// Allocator tracks claimed source ranges. Spans are kept sorted and
// disjoint, so overlap queries are a binary search.
type Allocator struct {
	spans []Span
}

// Overlaps reports whether [start, end) intersects any claimed span.
func (a *Allocator) Overlaps(start, end int) bool {
	i := a.search(start)
	return i < len(a.spans) && a.spans[i].Start < end
}

// Claim records [start, end) as used. It returns false, leaving the
// allocator unchanged, when the range is empty or intersects a claimed span.
func (a *Allocator) Claim(start, end int) bool {
	if start >= end {
		return false
	}
	i := a.search(start)
	if i < len(a.spans) && a.spans[i].Start < end {
		return false
	}
	a.spans = append(a.spans, Span{})
	copy(a.spans[i+1:], a.spans[i:])
	a.spans[i] = Span{Start: start, End: end}
	return true
}

// Spans returns the claimed spans in source order.
func (a *Allocator) Spans() []Span {
	out := make([]Span, len(a.spans))
	copy(out, a.spans)
	return out
}

// search returns the index of the first span ending after start.
func (a *Allocator) search(start int) int {
	return sort.Search(len(a.spans), func(i int) bool {
		return a.spans[i].End > start
	})
}
