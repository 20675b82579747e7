// Package report renders the chunk review page written next to a book's
// chunk files.
//
// The page is assembled as Markdown (a per-type count table followed by
// every chunk as a fenced LaTeX block), converted with goldmark and wrapped
// in the report HTML template. LaTeX blocks are highlighted with chroma
// using CSS classes; the matching stylesheet is generated once and inlined.
package report
