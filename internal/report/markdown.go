package report

import (
	"fmt"
	"strings"

	"github.com/alnah/go-quickbook/internal/book"
)

// Markdown builds the review document for a chunk summary. contents maps
// chunk IDs to their raw LaTeX; chunks without content are listed with an
// empty block.
func Markdown(s *book.ChunkSummary, contents map[string]string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", escapeInline(s.BookSlug))
	fmt.Fprintf(&b, "%d chunks.\n\n", s.TotalChunks)

	b.WriteString("| Type | Count |\n|---|---:|\n")
	for _, t := range book.ChunkTypes() {
		if n := s.ByType[t]; n > 0 {
			fmt.Fprintf(&b, "| %s | %d |\n", t, n)
		}
	}
	b.WriteString("\n")

	for _, c := range s.Chunks {
		fmt.Fprintf(&b, "## %s\n\n", escapeInline(c.ID))
		fmt.Fprintf(&b, "Chapter %d, %s, characters %d to %d", c.ChapterNumber, c.Type, c.Start, c.End)
		if c.Title != "" {
			fmt.Fprintf(&b, ", *%s*", escapeInline(c.Title))
		}
		b.WriteString(".\n\n")

		content := strings.TrimRight(contents[c.ID], "\n")
		fence := fenceFor(content)
		fmt.Fprintf(&b, "%slatex\n%s\n%s\n\n", fence, content, fence)
	}

	return b.String()
}

// fenceFor returns a backtick fence longer than any backtick run in s.
func fenceFor(s string) string {
	longest, run := 0, 0
	for _, r := range s {
		if r == '`' {
			run++
			longest = max(longest, run)
			continue
		}
		run = 0
	}
	return strings.Repeat("`", max(3, longest+1))
}

var inlineEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	"|", `\|`,
	"#", `\#`,
)

// escapeInline keeps titles and identifiers from being read as markup.
func escapeInline(s string) string {
	return inlineEscaper.Replace(s)
}
