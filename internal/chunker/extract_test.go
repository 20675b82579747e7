package chunker

import (
	"sort"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/alnah/go-quickbook/internal/book"
	"github.com/alnah/go-quickbook/internal/latex"
)

// paragraph returns a 299 character paragraph.
func paragraph() string {
	return strings.Repeat("word ", 59) + "end."
}

func theorem(bodyLen int) string {
	return `\begin{theorem}` + strings.Repeat("x", bodyLen) + `\end{theorem}`
}

func assertNoOverlap(t *testing.T, chunks []book.LatexChunk) {
	t.Helper()
	sorted := append([]book.LatexChunk(nil), chunks...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Start < sorted[i-1].End {
			t.Errorf("chunk %s [%d,%d) overlaps %s [%d,%d)",
				sorted[i].ID, sorted[i].Start, sorted[i].End,
				sorted[i-1].ID, sorted[i-1].Start, sorted[i-1].End)
		}
	}
}

func countType(chunks []book.LatexChunk, typ book.ChunkType) int {
	n := 0
	for _, c := range chunks {
		if c.Type == typ {
			n++
		}
	}
	return n
}

func TestExtract_ChapterTheoremAndLongSection(t *testing.T) {
	t.Parallel()

	thm := theorem(80 - len(`\begin{theorem}`) - len(`\end{theorem}`))
	if len(thm) != 80 {
		t.Fatalf("theorem fixture is %d chars, want 80", len(thm))
	}

	paras := make([]string, 8)
	for i := range paras {
		paras[i] = paragraph()
	}
	section := `\section{Paragraphs}` + "\n\n" + strings.Join(paras, "\n\n")

	src := `\chapter{Foundations}` + "\n" + thm + "\n\n" + section + "\n"

	res := Extract("calc", src, DefaultConfig())

	if len(res.Chapters) != 1 || res.Chapters[0].Number != 1 {
		t.Fatalf("Chapters = %+v, want one entry numbered 1", res.Chapters)
	}

	if got := countType(res.Chunks, book.ChunkTheorem); got != 1 {
		t.Errorf("theorem chunks = %d, want 1", got)
	}
	if got := countType(res.Chunks, book.ChunkSection); got < 2 {
		t.Errorf("section chunks = %d, want at least 2", got)
	}

	for _, c := range res.Chunks {
		if c.ChapterNumber != 1 {
			t.Errorf("chunk %s chapter = %d, want 1", c.ID, c.ChapterNumber)
		}
		if c.BookSlug != "calc" {
			t.Errorf("chunk %s slug = %q, want calc", c.ID, c.BookSlug)
		}
		if c.Content != src[c.Start:c.End] {
			t.Errorf("chunk %s content does not match its source span", c.ID)
		}
		if c.Type == book.ChunkSection {
			n := utf8.RuneCountInString(c.Content)
			if n < 100 || n > 1500 {
				t.Errorf("section piece %s has %d chars, want 100..1500", c.ID, n)
			}
			if c.Title != "Paragraphs" {
				t.Errorf("section piece title = %q, want Paragraphs", c.Title)
			}
		}
	}

	assertNoOverlap(t, res.Chunks)

	for i, c := range res.Chunks {
		if c.Order != i+1 {
			t.Errorf("chunk %d order = %d, want %d", i, c.Order, i+1)
		}
	}
	if res.Chunks[0].ID != "calc-ch1-theorem-1" {
		t.Errorf("first chunk ID = %q, want calc-ch1-theorem-1", res.Chunks[0].ID)
	}
}

func TestExtract_SectionPiecesKeepSourceOrder(t *testing.T) {
	t.Parallel()

	paras := make([]string, 12)
	for i := range paras {
		paras[i] = paragraph()
	}
	src := "\\chapter{One}\n\\section{Long}\n\n" + strings.Join(paras, "\n\n")

	res := Extract("b", src, DefaultConfig())

	prevEnd := -1
	for _, c := range res.Chunks {
		if c.Start < prevEnd {
			t.Errorf("piece %s starts at %d before previous end %d", c.ID, c.Start, prevEnd)
		}
		prevEnd = c.End
	}
	if len(res.Chunks) < 3 {
		t.Errorf("got %d pieces, want at least 3", len(res.Chunks))
	}
}

func TestExtract_EnvironmentBounds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		bodyLen int
		want    int
	}{
		{"too short", 10, 0},
		{"lower bound", 50 - 28, 1},
		{"typical", 400, 1},
		{"upper bound", 3000 - 28, 1},
		{"too long", 3001 - 28, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := "\\chapter{A}\n" + theorem(tt.bodyLen) + "\n"
			res := Extract("b", src, DefaultConfig())

			if got := countType(res.Chunks, book.ChunkTheorem); got != tt.want {
				t.Errorf("theorem chunks = %d, want %d", got, tt.want)
			}
			if tt.want == 0 && res.Rejections.Size != 1 {
				t.Errorf("Rejections.Size = %d, want 1", res.Rejections.Size)
			}
		})
	}
}

func TestExtract_PriorityClaimsOuterEnvironment(t *testing.T) {
	t.Parallel()

	inner := `\begin{equation}` + strings.Repeat("y", 60) + `\end{equation}`
	src := "\\chapter{A}\n\\begin{theorem}[Mean value]\n" + inner + "\n" +
		strings.Repeat("z", 40) + "\n\\end{theorem}\n"

	res := Extract("b", src, DefaultConfig())

	if got := countType(res.Chunks, book.ChunkTheorem); got != 1 {
		t.Fatalf("theorem chunks = %d, want 1", got)
	}
	if got := countType(res.Chunks, book.ChunkEquation); got != 0 {
		t.Errorf("equation chunks = %d, want 0 (nested in claimed theorem)", got)
	}
	if res.Rejections.Overlap != 1 {
		t.Errorf("Rejections.Overlap = %d, want 1", res.Rejections.Overlap)
	}
	if res.Chunks[0].Title != "Mean value" {
		t.Errorf("theorem title = %q, want %q", res.Chunks[0].Title, "Mean value")
	}
}

func TestExtract_OversizedOuterLeavesInnerAvailable(t *testing.T) {
	t.Parallel()

	inner := `\begin{equation}` + strings.Repeat("y", 60) + `\end{equation}`
	src := "\\chapter{A}\n\\begin{proof}\n" + inner + "\n" +
		strings.Repeat("z", 3100) + "\n\\end{proof}\n"

	res := Extract("b", src, DefaultConfig())

	if got := countType(res.Chunks, book.ChunkProof); got != 0 {
		t.Errorf("proof chunks = %d, want 0", got)
	}
	if got := countType(res.Chunks, book.ChunkEquation); got != 1 {
		t.Errorf("equation chunks = %d, want 1", got)
	}
}

func TestExtract_RejectsBeforeFirstChapter(t *testing.T) {
	t.Parallel()

	src := theorem(100) + "\n\\chapter{A}\n" + theorem(100) + "\n"

	res := Extract("b", src, DefaultConfig())

	if len(res.Chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(res.Chunks))
	}
	if res.Rejections.BeforeFirstChapter != 1 {
		t.Errorf("Rejections.BeforeFirstChapter = %d, want 1", res.Rejections.BeforeFirstChapter)
	}
}

func TestExtract_NoChaptersUsesChapterZero(t *testing.T) {
	t.Parallel()

	res := Extract("b", theorem(100), DefaultConfig())

	if len(res.Chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(res.Chunks))
	}
	if res.Chunks[0].ChapterNumber != 0 {
		t.Errorf("ChapterNumber = %d, want 0", res.Chunks[0].ChapterNumber)
	}
	if res.Chunks[0].ID != "b-ch0-theorem-1" {
		t.Errorf("ID = %q, want b-ch0-theorem-1", res.Chunks[0].ID)
	}
}

func TestExtract_SectionBlocks(t *testing.T) {
	t.Parallel()

	body := strings.Repeat("text ", 40)
	src := "\\chapter{A}\n" +
		"\\section{First}\n" + body + "\n" +
		"\\section{Tiny}\nshort\n" +
		"\\booksection{Custom}\n" + body + "\n" +
		"\\end{document}\ntrailing " + body

	res := Extract("b", src, DefaultConfig())

	var titles []string
	for _, c := range res.Chunks {
		if c.Type != book.ChunkSection {
			t.Errorf("unexpected chunk type %s", c.Type)
		}
		if strings.Contains(c.Content, "trailing") {
			t.Errorf("chunk %s runs past \\end{document}", c.ID)
		}
		if strings.HasSuffix(c.Content, "\n") {
			t.Errorf("chunk %s content is not right-trimmed", c.ID)
		}
		titles = append(titles, c.Title)
	}

	want := []string{"First", "Custom"}
	if strings.Join(titles, ",") != strings.Join(want, ",") {
		t.Errorf("section titles = %v, want %v", titles, want)
	}
	if res.Rejections.Size != 1 {
		t.Errorf("Rejections.Size = %d, want 1", res.Rejections.Size)
	}
}

func TestExtract_SectionContainingClaimedEnvironment(t *testing.T) {
	t.Parallel()

	src := "\\chapter{A}\n\\section{Has theorem}\n" + strings.Repeat("text ", 30) + "\n" +
		theorem(100) + "\n" + strings.Repeat("more ", 30)

	res := Extract("b", src, DefaultConfig())

	if got := countType(res.Chunks, book.ChunkSection); got != 0 {
		t.Errorf("section chunks = %d, want 0", got)
	}
	if got := countType(res.Chunks, book.ChunkTheorem); got != 1 {
		t.Errorf("theorem chunks = %d, want 1", got)
	}
	assertNoOverlap(t, res.Chunks)
}

func TestExtract_UnterminatedEnvironmentOmitted(t *testing.T) {
	t.Parallel()

	src := "\\chapter{A}\n\\begin{theorem}" + strings.Repeat("x", 200)

	res := Extract("b", src, DefaultConfig())

	if len(res.Chunks) != 0 {
		t.Errorf("got %d chunks, want 0", len(res.Chunks))
	}
}

func TestSplitParagraphs(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("a", 1600)
	src := "p1\n\nshort two\n\n" + long + "\n\nlast"

	pieces := splitParagraphs(src, 0, len(src), 1500)

	var got []string
	for _, p := range pieces {
		got = append(got, src[p.Start:p.End])
	}

	want := []string{"p1\n\nshort two", long, "last"}
	if len(got) != len(want) {
		t.Fatalf("got %d pieces, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("piece %d = %.20q..., want %.20q...", i, got[i], want[i])
		}
	}
}

func TestEnvironmentKinds_FollowPriority(t *testing.T) {
	t.Parallel()

	var types []book.ChunkType
	for i, k := range environmentKinds {
		if k.typ.Priority() < 0 || k.typ == book.ChunkSection {
			t.Fatalf("environmentKinds[%d] has type %q", i, k.typ)
		}
		if i > 0 && k.typ.Priority() < environmentKinds[i-1].typ.Priority() {
			t.Errorf("%q claimed after lower-priority %q", k.typ, environmentKinds[i-1].typ)
		}
		if len(types) == 0 || types[len(types)-1] != k.typ {
			types = append(types, k.typ)
		}
	}

	want := book.ChunkTypes()
	want = want[:len(want)-1] // sections come from the section pass
	if len(types) != len(want) {
		t.Fatalf("environment types = %v, want %v", types, want)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("type %d = %q, want %q", i, types[i], want[i])
		}
	}

	last := environmentKinds[len(environmentKinds)-1]
	if last.env != latex.DisplayMath || last.typ != book.ChunkEquation {
		t.Errorf("last kind = %+v, want display math as equation", last)
	}
}
