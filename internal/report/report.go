package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"time"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/alnah/go-quickbook/internal/assets"
	"github.com/alnah/go-quickbook/internal/book"
)

// Filename is the report's name inside the chunks directory.
const Filename = "report.html"

// HighlightStyle is the chroma style used for LaTeX blocks.
const HighlightStyle = "github"

// ErrReportFailed indicates the review page could not be produced.
var ErrReportFailed = errors.New("chunk report failed")

// Generator renders chunk summaries to HTML.
type Generator struct {
	md        goldmark.Markdown
	assets    assets.AssetLoader
	highlight string
}

// NewGenerator creates a Generator reading its template and stylesheet from
// loader. A nil loader uses the embedded assets.
func NewGenerator(loader assets.AssetLoader) *Generator {
	if loader == nil {
		loader = assets.NewEmbeddedLoader()
	}
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.Table,
			highlighting.NewHighlighting(
				highlighting.WithStyle(HighlightStyle),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
		),
	)
	return &Generator{md: md, assets: loader, highlight: highlightCSS()}
}

// highlightCSS returns the stylesheet for class-based chroma output.
func highlightCSS() string {
	var buf bytes.Buffer
	f := chromahtml.New(chromahtml.WithClasses(true))
	if err := f.WriteCSS(&buf, styles.Get(HighlightStyle)); err != nil {
		return ""
	}
	return buf.String()
}

type page struct {
	Title     string
	Style     template.CSS
	Highlight template.CSS
	Body      template.HTML
	Generated string
}

// Render converts the summary and chunk contents into a standalone page.
// Goldmark has no context support, so conversion runs in a goroutine and
// the call returns early on cancellation.
func (g *Generator) Render(ctx context.Context, s *book.ChunkSummary, contents map[string]string, generated time.Time) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	tmplText, err := g.assets.LoadTemplate(assets.ReportTemplate)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReportFailed, err)
	}
	style, err := g.assets.LoadStyle(assets.ReportStyleName)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReportFailed, err)
	}
	tmpl, err := template.New(assets.ReportTemplate).Parse(tmplText)
	if err != nil {
		return "", fmt.Errorf("%w: parsing template: %v", ErrReportFailed, err)
	}

	type result struct {
		body string
		err  error
	}
	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := g.md.Convert([]byte(Markdown(s, contents)), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrReportFailed, err)}
			return
		}
		done <- result{body: buf.String()}
	}()

	var r result
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r = <-done:
	}
	if r.err != nil {
		return "", r.err
	}

	var out bytes.Buffer
	err = tmpl.Execute(&out, page{
		Title: s.BookSlug + " chunks",
		// #nosec G203 -- stylesheets come from embedded or book-local assets
		Style:     template.CSS(style),
		Highlight: template.CSS(g.highlight), // #nosec G203 -- generated by chroma
		Body:      template.HTML(r.body),     // #nosec G203 -- goldmark output without raw HTML
		Generated: generated.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReportFailed, err)
	}
	return out.String(), nil
}
