package chapters

import (
	"strings"
	"testing"
)

func section(heading, body string) string {
	return `<section id="s" class="level1"><h1>` + heading + `</h1><p>` + body + `</p></section>`
}

func page(body string) string {
	return "<!DOCTYPE html><html><head><title>Book</title></head><body>\n" + body + "\n</body></html>"
}

func TestDetect_Numbering(t *testing.T) {
	t.Parallel()

	doc := page(
		section("PREFACE", "Why this book.") +
			section("CHAPTER I. Foo", "First.") +
			section("CHAPTER II. Bar", "Second.") +
			section("APPENDIX", "Tables."),
	)

	got := Detect(doc, DetectOptions{})

	want := []struct {
		title  string
		number int
	}{
		{"PREFACE", 0},
		{"CHAPTER I. Foo", 1},
		{"CHAPTER II. Bar", 2},
		{"APPENDIX", 90},
	}

	if len(got) != len(want) {
		t.Fatalf("Detect() returned %d boundaries, want %d: %+v", len(got), len(want), got)
	}
	for i, w := range want {
		if got[i].Title != w.title || got[i].Number != w.number {
			t.Errorf("boundary %d = {%q %d}, want {%q %d}", i, got[i].Title, got[i].Number, w.title, w.number)
		}
		if i > 0 && got[i].Position <= got[i-1].Position {
			t.Errorf("boundary %d position %d not after %d", i, got[i].Position, got[i-1].Position)
		}
		if !strings.HasPrefix(doc[got[i].Position:], "<section") {
			t.Errorf("boundary %d does not start at a marker", i)
		}
	}
}

func TestDetect_CountersAreIndependent(t *testing.T) {
	t.Parallel()

	doc := page(
		section("Introduction", "a") +
			section("Prologue", "b") +
			section("CHAPTER III", "c") +
			section("Epilogue", "d") +
			section("Appendix A", "e") +
			section("Chapter iv", "f"),
	)

	got := Detect(doc, DetectOptions{})

	want := []int{0, 1, 3, 90, 91, 4}
	if len(got) != len(want) {
		t.Fatalf("Detect() returned %d boundaries, want %d", len(got), len(want))
	}
	for i, n := range want {
		if got[i].Number != n {
			t.Errorf("boundary %d (%q) number = %d, want %d", i, got[i].Title, got[i].Number, n)
		}
	}
}

func TestDetect_TitleMap(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		heading string
		titles  map[string]string
		want    string
	}{
		{
			name:    "exact key",
			heading: "CHAPTER I",
			titles:  map[string]string{"CHAPTER I": "Sets"},
			want:    "Sets",
		},
		{
			name:    "uppercased key",
			heading: "Chapter II",
			titles:  map[string]string{"CHAPTER II": "Functions"},
			want:    "Functions",
		},
		{
			name:    "whitespace normalized key",
			heading: "CHAPTER   III",
			titles:  map[string]string{"CHAPTER III": "Limits"},
			want:    "Limits",
		},
		{
			name:    "missing key falls back",
			heading: "PREFACE",
			titles:  map[string]string{"CHAPTER I": "Sets"},
			want:    "PREFACE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := page(`<section><h1>` + tt.heading + `</h1></section>`)
			got := Detect(doc, DetectOptions{Titles: tt.titles})
			if len(got) != 1 {
				t.Fatalf("Detect() returned %d boundaries, want 1", len(got))
			}
			if got[0].Title != tt.want {
				t.Errorf("title = %q, want %q", got[0].Title, tt.want)
			}
		})
	}
}

func TestDetect_MappedTitleLosesKeyword(t *testing.T) {
	t.Parallel()

	doc := page(section("CHAPTER V", "x") + section("CHAPTER VI", "y"))
	got := Detect(doc, DetectOptions{Titles: map[string]string{"CHAPTER V": "Series"}})

	if len(got) != 2 {
		t.Fatalf("Detect() returned %d boundaries, want 2", len(got))
	}
	if got[0].Title != "Series" || got[0].Number != 1 {
		t.Errorf("first boundary = %+v, want Series numbered 1", got[0])
	}
	if got[1].Number != 6 {
		t.Errorf("second boundary number = %d, want 6", got[1].Number)
	}
}

func TestDetect_PatternOrderWins(t *testing.T) {
	t.Parallel()

	doc := page(`<section><h1>Preface</h1><h2>Chapter II</h2></section>`)
	got := Detect(doc, DetectOptions{})

	if len(got) != 1 || got[0].Title != "Chapter II" {
		t.Errorf("Detect() = %+v, want the chapter heading", got)
	}
}

func TestDetect_IgnoresUnmatchedMarkers(t *testing.T) {
	t.Parallel()

	doc := page(
		section("CHAPTER I", "x") +
			`<section class="level2"><h2>Limits</h2><p>See chapter II later.</p></section>` +
			section("CHAPTER II", "y"),
	)

	got := Detect(doc, DetectOptions{})
	if len(got) != 2 {
		t.Errorf("Detect() returned %d boundaries, want 2: %+v", len(got), got)
	}
}

func TestDetect_WindowLimitsInspection(t *testing.T) {
	t.Parallel()

	filler := strings.Repeat("é", 600) // 1200 bytes
	doc := page(`<section><p>` + filler + `</p><h1>CHAPTER I</h1></section>`)

	if got := Detect(doc, DetectOptions{BookTitle: "B"}); got[0].Title != "B" {
		t.Errorf("heading past the window was detected: %+v", got)
	}
	if got := Detect(doc, DetectOptions{Window: 4000}); got[0].Title != "CHAPTER I" {
		t.Errorf("wider window missed the heading: %+v", got)
	}
}

func TestDetect_ZeroBoundaries(t *testing.T) {
	t.Parallel()

	doc := page("<p>No headings at all.</p>")
	got := Detect(doc, DetectOptions{BookTitle: "Analysis"})

	if len(got) != 1 {
		t.Fatalf("Detect() returned %d boundaries, want 1", len(got))
	}
	if got[0].Number != 1 || got[0].Title != "Analysis" {
		t.Errorf("synthesized boundary = %+v, want number 1 titled Analysis", got[0])
	}
	if !strings.HasPrefix(doc[got[0].Position:], "\n<p>No headings") {
		t.Errorf("synthesized boundary does not start at the body content")
	}
}

func TestDetect_CustomMarker(t *testing.T) {
	t.Parallel()

	marker, err := CompileMarker(`<div class="chapter">`)
	if err != nil {
		t.Fatalf("CompileMarker() error = %v", err)
	}

	doc := page(`<section><h1>CHAPTER I</h1></section><div class="chapter"><h1>PREFACE</h1></div>`)
	got := Detect(doc, DetectOptions{Marker: marker})

	if len(got) != 1 || got[0].Title != "PREFACE" {
		t.Errorf("Detect() = %+v, want only the custom marker", got)
	}
}

func TestCompileMarker(t *testing.T) {
	t.Parallel()

	re, err := CompileMarker("")
	if err != nil || re.String() != DefaultMarker {
		t.Errorf("CompileMarker(\"\") = %v, %v; want default marker", re, err)
	}

	if _, err := CompileMarker("<section("); err == nil {
		t.Error("CompileMarker() with invalid pattern: expected error")
	}
}

func TestTextLines(t *testing.T) {
	t.Parallel()

	got := textLines(`<h1>CHAPTER&nbsp;I.  <em>Foo</em></h1><style>h1{}</style><p>one<br>two</p>`)
	want := []string{"CHAPTER I. Foo", "one", "two"}

	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("textLines() = %q, want %q", got, want)
	}
}

func TestNumbererLeadingRoman(t *testing.T) {
	t.Parallel()

	var n numberer
	tests := []struct {
		title string
		want  int
	}{
		{"IV. Series", 4},
		{"Sequences", 5},
		{"Foreword", 0},
		{"Index", 90},
		{"Bibliography", 91},
		{"Chapter", 6},
	}
	for _, tt := range tests {
		if got := n.next(tt.title); got != tt.want {
			t.Errorf("next(%q) = %d, want %d", tt.title, got, tt.want)
		}
	}
}
