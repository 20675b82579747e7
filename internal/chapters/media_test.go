package chapters

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestRewriteMedia(t *testing.T) {
	t.Parallel()

	mediaDir := filepath.Join("books", "calc", "html", "media")
	absMedia, err := filepath.Abs(mediaDir)
	if err != nil {
		t.Fatal(err)
	}
	absSrc := filepath.ToSlash(filepath.Join(absMedia, "fig1.png"))

	tests := []struct {
		name         string
		doc          string
		wantContains []string
		wantExcludes []string
	}{
		{
			name:         "relative media path",
			doc:          `<html><body><img src="books/calc/html/media/fig1.png"></body></html>`,
			wantContains: []string{`src="../images/fig1.png"`},
		},
		{
			name:         "absolute media path",
			doc:          `<html><body><img src="` + absSrc + `"></body></html>`,
			wantContains: []string{`src="../images/fig1.png"`},
		},
		{
			name:         "nested media path",
			doc:          `<html><body><img src="books/calc/html/media/ch1/plot.svg"></body></html>`,
			wantContains: []string{`src="../images/ch1/plot.svg"`},
		},
		{
			name:         "remote image untouched",
			doc:          `<html><body><img src="https://example.com/a.png"></body></html>`,
			wantContains: []string{`src="https://example.com/a.png"`},
		},
		{
			name:         "data uri untouched",
			doc:          `<html><body><img src="data:image/png;base64,AAAA"></body></html>`,
			wantContains: []string{`src="data:image/png;base64,AAAA"`},
		},
		{
			name:         "traversal out of media untouched",
			doc:          `<html><body><img src="books/calc/html/media/../../secret.png"></body></html>`,
			wantExcludes: []string{"../images/"},
		},
		{
			name:         "links untouched",
			doc:          `<html><body><a href="books/calc/html/media/fig1.png">fig</a><img src="x.png"></body></html>`,
			wantContains: []string{`href="books/calc/html/media/fig1.png"`, `src="x.png"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := RewriteMedia(tt.doc, mediaDir, DefaultMediaPrefix)
			if err != nil {
				t.Fatalf("RewriteMedia() error = %v", err)
			}
			for _, s := range tt.wantContains {
				if !strings.Contains(got, s) {
					t.Errorf("result should contain %q, got %s", s, got)
				}
			}
			for _, s := range tt.wantExcludes {
				if strings.Contains(got, s) {
					t.Errorf("result should not contain %q, got %s", s, got)
				}
			}
		})
	}
}

func TestRewriteMedia_NoImages(t *testing.T) {
	t.Parallel()

	doc := "<html><body><p>no figures</p></body></html>"
	got, err := RewriteMedia(doc, "media", DefaultMediaPrefix)
	if err != nil {
		t.Fatal(err)
	}
	if got != doc {
		t.Errorf("document without images was rewritten: %s", got)
	}
}
