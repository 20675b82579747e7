package latex

import (
	"strings"
	"testing"
)

func TestScan(t *testing.T) {
	t.Parallel()

	src := `\chapter*{One} % \section{ignored}
\begin{theorem}[Euclid] 50\% \\ \end{theorem} \[ x \]`
	events := Scan(src)

	want := []struct {
		kind EventKind
		name string
		star bool
	}{
		{EventCommand, "chapter", true},
		{EventBegin, "theorem", false},
		{EventEnd, "theorem", false},
		{EventMathOpen, DisplayMath, false},
		{EventMathClose, DisplayMath, false},
	}

	if len(events) != len(want) {
		t.Fatalf("Scan() returned %d events, want %d: %+v", len(events), len(want), events)
	}
	for i, w := range want {
		ev := events[i]
		if ev.Kind != w.kind || ev.Name != w.name || ev.Star != w.star {
			t.Errorf("event %d = %+v, want kind=%d name=%q star=%v", i, ev, w.kind, w.name, w.star)
		}
		if got := src[ev.Start:ev.End]; !strings.HasPrefix(got, `\`) {
			t.Errorf("event %d span %q does not start at a backslash", i, got)
		}
	}
}

func TestScan_OpaqueEnvironment(t *testing.T) {
	t.Parallel()

	src := "\\begin{verbatim}\n\\begin{theorem}\n\\end{verbatim}\n\\section{After}"
	events := Scan(src)

	var names []string
	for _, ev := range events {
		names = append(names, ev.Name)
	}
	got := strings.Join(names, ",")
	if got != "verbatim,verbatim,section" {
		t.Errorf("Scan() names = %q, want %q", got, "verbatim,verbatim,section")
	}
}

func TestEnvironments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "nested",
			input: `\begin{proof}\begin{equation}x\end{equation}\end{proof}`,
			want:  []string{"proof", "equation"},
		},
		{
			name:  "unterminated dropped",
			input: `\begin{theorem} no end`,
			want:  nil,
		},
		{
			name:  "unterminated inner dropped",
			input: `\begin{proof}\begin{lemma} x \end{proof}`,
			want:  []string{"proof"},
		},
		{
			name:  "stray close ignored",
			input: `\end{remark}\[ y \]`,
			want:  []string{DisplayMath},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			envs := Environments(Scan(tt.input))
			if len(envs) != len(tt.want) {
				t.Fatalf("Environments() = %+v, want names %v", envs, tt.want)
			}
			for i, name := range tt.want {
				if envs[i].Name != name {
					t.Errorf("env %d name = %q, want %q", i, envs[i].Name, name)
				}
			}
		})
	}
}

func TestEnvironments_Spans(t *testing.T) {
	t.Parallel()

	src := `ab\begin{lemma}body\end{lemma}cd`
	envs := Environments(Scan(src))
	if len(envs) != 1 {
		t.Fatalf("expected 1 environment, got %d", len(envs))
	}
	env := envs[0]
	if got := src[env.Start:env.End]; got != `\begin{lemma}body\end{lemma}` {
		t.Errorf("span = %q", got)
	}
	if got := src[env.BodyStart:env.BodyEnd]; got != "body" {
		t.Errorf("body = %q, want %q", got, "body")
	}
}

func TestReadArgs(t *testing.T) {
	t.Parallel()

	src := `\bookchapter [x] {Running {Head}} {IV}{Title}`
	args, end, ok := ReadArgs(src, len(`\bookchapter`), 3)
	if !ok {
		t.Fatal("ReadArgs() ok = false, want true")
	}
	want := []string{"Running {Head}", "IV", "Title"}
	for i, w := range want {
		if args[i].Text != w {
			t.Errorf("arg %d = %q, want %q", i, args[i].Text, w)
		}
	}
	if end != len(src) {
		t.Errorf("end = %d, want %d", end, len(src))
	}

	if _, _, ok := ReadArgs(`\chapter{open`, len(`\chapter`), 1); ok {
		t.Error("ReadArgs() on unterminated group ok = true, want false")
	}
}
