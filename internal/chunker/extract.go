package chunker

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/alnah/go-quickbook/internal/book"
	"github.com/alnah/go-quickbook/internal/latex"
)

// Config bounds chunk sizes, in characters.
type Config struct {
	MinEnvironment int // smallest environment chunk
	MaxEnvironment int // largest environment chunk
	MinSection     int // smallest section chunk or section piece
	SplitThreshold int // sections longer than this are split
	MaxPiece       int // target ceiling of a split piece
}

// DefaultConfig returns the standard chunk bounds.
func DefaultConfig() Config {
	return Config{
		MinEnvironment: 50,
		MaxEnvironment: 3000,
		MinSection:     100,
		SplitThreshold: 2000,
		MaxPiece:       1500,
	}
}

// Rejections counts candidates that were not emitted, by reason.
type Rejections struct {
	BeforeFirstChapter int
	Overlap            int
	Size               int
}

// Result is the outcome of one extraction run.
type Result struct {
	Chunks     []book.LatexChunk
	Chapters   []ChapterPosition
	Rejections Rejections
}

type environmentKind struct {
	env string
	typ book.ChunkType
}

// environmentKinds lists extractable environments in claim order, derived
// from book.ChunkType priority. Each environment type is named after its
// environment; display math is the bracket form of an equation and follows it.
var environmentKinds = claimOrder()

func claimOrder() []environmentKind {
	var kinds []environmentKind
	for _, t := range book.ChunkTypes() {
		if t == book.ChunkSection {
			continue
		}
		kinds = append(kinds, environmentKind{env: string(t), typ: t})
		if t == book.ChunkEquation {
			kinds = append(kinds, environmentKind{env: latex.DisplayMath, typ: t})
		}
	}
	return kinds
}

// sectionFamilies are claimed one family at a time, standard commands first.
var sectionFamilies = [][]string{
	{"section", "subsection", "subsubsection"},
	{"booksection"},
}

// run holds the state of a single extraction. It is never shared.
type run struct {
	slug   string
	src    string
	cfg    Config
	index  *ChapterIndex
	alloc  *Allocator
	order  int
	chunks []book.LatexChunk
	rej    Rejections
}

// Extract scans src and returns its chunks ordered by Order.
func Extract(slug, src string, cfg Config) Result {
	events := latex.Scan(src)
	r := &run{
		slug:  slug,
		src:   src,
		cfg:   cfg,
		index: BuildIndex(src, events),
		alloc: &Allocator{},
	}

	r.environments(latex.Environments(events))
	r.sections(events)

	sort.SliceStable(r.chunks, func(i, j int) bool {
		return r.chunks[i].Order < r.chunks[j].Order
	})

	return Result{
		Chunks:     r.chunks,
		Chapters:   r.index.Entries(),
		Rejections: r.rej,
	}
}

// environments runs the environment pass.
func (r *run) environments(envs []latex.Environment) {
	for _, kind := range environmentKinds {
		for _, env := range envs {
			if env.Name != kind.env {
				continue
			}
			if r.index.Before(env.Start) {
				r.rej.BeforeFirstChapter++
				continue
			}
			if r.alloc.Overlaps(env.Start, env.End) {
				r.rej.Overlap++
				continue
			}
			content := r.src[env.Start:env.End]
			n := utf8.RuneCountInString(content)
			if n < r.cfg.MinEnvironment || n > r.cfg.MaxEnvironment {
				r.rej.Size++
				continue
			}

			r.alloc.Claim(env.Start, env.End)
			r.emit(kind.typ, environmentTitle(r.src, env), env.Start, env.End)
		}
	}
}

// environmentTitle returns the optional [title] of a \begin{...} tag.
func environmentTitle(src string, env latex.Environment) string {
	if env.Name == latex.DisplayMath {
		return ""
	}
	arg, ok := latex.ReadOptional(src, env.BodyStart)
	if !ok || strings.Contains(src[env.BodyStart:arg.Start], "\n\n") {
		return ""
	}
	return latex.StripFormatting(arg.Text)
}

// sections runs the section pass.
func (r *run) sections(events []latex.Event) {
	stops := blockStops(events)

	for _, family := range sectionFamilies {
		for _, ev := range latex.Commands(events, family...) {
			start := ev.Start
			end := nextStop(stops, start, len(r.src))

			if r.index.Before(start) {
				r.rej.BeforeFirstChapter++
				continue
			}
			if r.alloc.Overlaps(start, end) {
				r.rej.Overlap++
				continue
			}
			content := strings.TrimRightFunc(r.src[start:end], unicode.IsSpace)
			n := utf8.RuneCountInString(content)
			if n < r.cfg.MinSection {
				r.rej.Size++
				continue
			}

			title := ""
			if args, _, ok := latex.ReadArgs(r.src, ev.End, 1); ok {
				title = latex.StripFormatting(args[0].Text)
			}

			if n > r.cfg.SplitThreshold {
				for _, p := range splitParagraphs(r.src, start, start+len(content), r.cfg.MaxPiece) {
					if utf8.RuneCountInString(r.src[p.Start:p.End]) < r.cfg.MinSection {
						r.rej.Size++
						continue
					}
					r.emit(book.ChunkSection, title, p.Start, p.End)
				}
			} else {
				r.emit(book.ChunkSection, title, start, start+len(content))
			}

			r.alloc.Claim(start, end)
		}
	}
}

// blockStops returns the sorted offsets where a section block ends: any
// chapter or section command and \end{document}.
func blockStops(events []latex.Event) []int {
	names := append([]string{}, chapterCommands...)
	for _, family := range sectionFamilies {
		names = append(names, family...)
	}

	var stops []int
	for _, ev := range latex.Commands(events, names...) {
		stops = append(stops, ev.Start)
	}
	for _, ev := range events {
		if ev.Kind == latex.EventEnd && ev.Name == "document" {
			stops = append(stops, ev.Start)
		}
	}
	sort.Ints(stops)
	return stops
}

// nextStop returns the first stop after start, or limit.
func nextStop(stops []int, start, limit int) int {
	i := sort.SearchInts(stops, start+1)
	if i < len(stops) {
		return stops[i]
	}
	return limit
}

// emit records an accepted chunk, advancing the order counter.
func (r *run) emit(t book.ChunkType, title string, start, end int) {
	r.order++
	chapter := r.index.NumberAt(start)
	r.chunks = append(r.chunks, book.LatexChunk{
		ID:            book.ChunkID(r.slug, chapter, t, r.order),
		BookSlug:      r.slug,
		ChapterNumber: chapter,
		Type:          t,
		Title:         title,
		Content:       r.src[start:end],
		Order:         r.order,
		Start:         start,
		End:           end,
	})
}
