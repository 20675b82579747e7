package latex

import (
	"strings"
	"testing"
)

const sampleSource = `\documentclass{book}
\usepackage{amsmath}
\usepackage[pdftex]{breqn}
\setkeys{breqn}{breakdepth={1}}
% quickbook: intertext macros
\makeatletter
\newcommand{\Intertext}[1]{\noalign{#1}}
\newcommand{\Shortintertext}[1]{\noalign{#1}}
\makeatother
\title{\textbf{Linear \emph{Algebra}}}
\author{Ada \and Grace\thanks{Consultant}}
\begin{document}
\begin{dmath}[label={eq:1}]
a = \eqtext{sum} b
\end{dmath}
\begin{dgroup*}
\begin{dmath*} c \end{dmath*}
\end{dgroup*}
\begin{alignat}{2}
x &= \mtext{y} && z
\end{alignat}
\end{document}
`

func TestNormalize(t *testing.T) {
	t.Parallel()

	got := Normalize(sampleSource)

	mustContain := []string{
		"% \\usepackage[pdftex]{breqn}",
		"% \\setkeys{breqn}{breakdepth={1}}",
		"\\let\\Intertext\\intertext\n\\let\\Shortintertext\\intertext\n\\title",
		"\\begin{equation}\na = \\text{sum} b\n\\end{equation}",
		"\\begin{align*}",
		"\\begin{equation*} c \\end{equation*}",
		"\\begin{align}\nx &= \\text{y} && z\n\\end{align}",
	}
	for _, want := range mustContain {
		if !strings.Contains(got, want) {
			t.Errorf("Normalize() missing %q\n--- output ---\n%s", want, got)
		}
	}

	if strings.Contains(got, "makeatletter") {
		t.Error("Normalize() kept the custom macro block")
	}
	if remaining := RemainingNonstandard(got); len(remaining) != 0 {
		t.Errorf("RemainingNonstandard() = %v, want none", remaining)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	t.Parallel()

	once := Normalize(sampleSource)
	twice := Normalize(once)
	if once != twice {
		t.Errorf("second Normalize() changed output\n--- once ---\n%s\n--- twice ---\n%s", once, twice)
	}
}

func TestNormalize_PassThrough(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{"plain text", "Hello world"},
		{"already commented package", "% \\usepackage{breqn}"},
		{"unterminated macro block", "% quickbook: intertext macros\n\\makeatletter\n\\def\\x{}"},
		{"standard environment", "\\begin{equation}x\\end{equation}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Normalize(tt.input); got != tt.input {
				t.Errorf("Normalize(%q) = %q, want unchanged", tt.input, got)
			}
		})
	}
}

func TestRemainingNonstandard(t *testing.T) {
	t.Parallel()

	got := RemainingNonstandard(`\begin{dmath} x \end{dmath} \begin{alignat*}`)
	if len(got) != 3 {
		t.Errorf("RemainingNonstandard() = %v, want 3 tags", got)
	}
}
