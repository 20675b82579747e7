package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	quickbook "github.com/alnah/go-quickbook"
	"github.com/alnah/go-quickbook/internal/book"
	"github.com/alnah/go-quickbook/internal/dateutil"
)

// resultPrinter writes stage summaries to stdout unless quiet.
type resultPrinter struct {
	w     io.Writer
	quiet bool
}

func (p resultPrinter) printf(format string, args ...any) {
	if !p.quiet {
		fmt.Fprintf(p.w, format, args...)
	}
}

func (p resultPrinter) convert(res *quickbook.ConvertResult) {
	if res == nil {
		return
	}
	p.printf("convert: %q by %s\n", res.Metadata.Title, res.Metadata.Author)
	if res.HTMLFile != "" {
		p.printf("  html     %s\n", res.HTMLFile)
	}
	if res.Warning != "" {
		p.printf("  warning  renderer reported problems (run with --verbose for details)\n")
	}
	if len(res.Remaining) > 0 {
		p.printf("  warning  %d nonstandard tags left in %s\n", len(res.Remaining), res.CleanFile)
	}
}

func (p resultPrinter) split(res *quickbook.SplitResult) {
	if res == nil || res.Manifest == nil {
		return
	}
	p.printf("split: %d chapters\n", len(res.Manifest.Chapters))
	for _, ch := range res.Manifest.Chapters {
		p.printf("  %3d  %-16s %s\n", ch.Number, ch.Filename, ch.Title)
	}
}

func (p resultPrinter) chunk(res *quickbook.ChunkResult) {
	if res == nil {
		return
	}
	p.printf("chunk: %d chunks\n", res.Summary.TotalChunks)
	for _, t := range book.ChunkTypes() {
		if n := res.Summary.ByType[t]; n > 0 {
			p.printf("  %-12s %d\n", t, n)
		}
	}
	if r := res.Rejections; r.BeforeFirstChapter+r.Overlap+r.Size > 0 {
		p.printf("  skipped      %d before first chapter, %d overlapping, %d out of bounds\n",
			r.BeforeFirstChapter, r.Overlap, r.Size)
	}
	p.printf("  report       %s\n", res.ReportFile)
}

func (p resultPrinter) upload(res *quickbook.UploadResult) {
	if res == nil {
		return
	}
	p.printf("upload: book %s, %d objects, %d records\n", res.BookID, res.Objects, res.Records)
}

func (p resultPrinter) process(res *quickbook.ProcessResult) {
	if res == nil {
		return
	}
	p.convert(res.Convert)
	p.split(res.Split)
	p.chunk(res.Chunk)
	p.upload(res.Upload)
}

// printStatus prints the stages of one book.
func printStatus(w io.Writer, st *quickbook.BookStatus, format string) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%q\n", st.Slug, st.Title)
	fmt.Fprintf(tw, "  source\t%s\n", yesNo(st.HasSource))
	fmt.Fprintf(tw, "  html\t%s\n", yesNo(st.HasHTML))
	fmt.Fprintf(tw, "  chapters\t%d\n", st.Chapters)
	fmt.Fprintf(tw, "  chunks\t%d\n", st.Chunks)
	fmt.Fprintf(tw, "  split\t%s\n", stamp(st.GeneratedAt, format))
	if st.Uploaded() {
		fmt.Fprintf(tw, "  uploaded\t%s (%s)\n", stamp(st.UploadedAt, format), st.BookID)
	} else {
		fmt.Fprintf(tw, "  uploaded\tno\n")
	}
	_ = tw.Flush()
}

// printStatusTable prints one line per book.
func printStatusTable(w io.Writer, all []quickbook.BookStatus, booksDir string) {
	if len(all) == 0 {
		fmt.Fprintf(w, "no books in %s\n", booksDir)
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SLUG\tSOURCE\tHTML\tCHAPTERS\tCHUNKS\tUPLOADED")
	for _, st := range all {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\n",
			st.Slug, yesNo(st.HasSource), yesNo(st.HasHTML), st.Chapters, st.Chunks, yesNo(st.Uploaded()))
	}
	_ = tw.Flush()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// stamp formats t in the local zone, "-" when unset.
func stamp(t *time.Time, format string) string {
	if t == nil {
		return "-"
	}
	s, err := dateutil.Format(t.Local(), format)
	if err != nil {
		return t.Format(time.RFC3339)
	}
	return s
}
