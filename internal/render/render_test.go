package render

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"testing"
)

type mockRunner struct {
	stdout     string
	stderr     string
	err        error
	write      string // content written to the -o path, if non-empty
	calledWith []string
}

func (m *mockRunner) Run(_ context.Context, name string, args ...string) (string, string, error) {
	m.calledWith = append([]string{name}, args...)
	if m.write != "" {
		if i := slices.Index(args, "-o"); i >= 0 && i+1 < len(args) {
			if err := os.WriteFile(args[i+1], []byte(m.write), 0o600); err != nil {
				return "", "", err
			}
		}
	}
	return m.stdout, m.stderr, m.err
}

func TestPandoc_Render(t *testing.T) {
	t.Parallel()

	exitErr := fmt.Errorf("exit status 1")

	tests := []struct {
		name        string
		mock        *mockRunner
		previous    string // output left by an earlier run, if non-empty
		wantErr     error
		wantWarning string
	}{
		{
			name: "success",
			mock: &mockRunner{write: "<html></html>"},
		},
		{
			name:        "success with diagnostics",
			mock:        &mockRunner{write: "<html></html>", stderr: "[WARNING] Could not convert TeX math\n"},
			wantWarning: "[WARNING] Could not convert TeX math",
		},
		{
			name:        "nonzero exit with output is a warning",
			mock:        &mockRunner{write: "<html></html>", stderr: "unknown macro", err: exitErr},
			wantWarning: "unknown macro: exit status 1",
		},
		{
			name:    "nonzero exit without output fails",
			mock:    &mockRunner{stderr: "parse error", err: exitErr},
			wantErr: ErrRenderFailed,
		},
		{
			name:     "nonzero exit with only stale output fails",
			mock:     &mockRunner{stderr: "fatal parse error", err: fmt.Errorf("exit status 64")},
			previous: "<html>old run</html>",
			wantErr:  ErrRenderFailed,
		},
		{
			name:     "success without fresh output",
			mock:     &mockRunner{},
			previous: "<html>old run</html>",
			wantErr:  ErrOutputMissing,
		},
		{
			name:    "success without output",
			mock:    &mockRunner{},
			wantErr: ErrOutputMissing,
		},
		{
			name:    "binary missing",
			mock:    &mockRunner{err: &exec.Error{Name: "pandoc", Err: exec.ErrNotFound}},
			wantErr: ErrRendererNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			req := Request{
				Input:    filepath.Join(dir, "book.clean.tex"),
				Output:   filepath.Join(dir, "book.html"),
				MediaDir: dir,
			}
			if tt.previous != "" {
				if err := os.WriteFile(req.Output, []byte(tt.previous), 0o600); err != nil {
					t.Fatal(err)
				}
			}
			p := &Pandoc{Binary: "pandoc", Runner: tt.mock}

			res, err := p.Render(context.Background(), req)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Render() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Render() unexpected error: %v", err)
			}
			if res.Output != req.Output {
				t.Errorf("Output = %q, want %q", res.Output, req.Output)
			}
			if res.Warning != tt.wantWarning {
				t.Errorf("Warning = %q, want %q", res.Warning, tt.wantWarning)
			}
		})
	}
}

func TestPandoc_Args(t *testing.T) {
	t.Parallel()

	mock := &mockRunner{write: "x"}
	dir := t.TempDir()
	req := Request{
		Input:    filepath.Join(dir, "in.tex"),
		Output:   filepath.Join(dir, "out.html"),
		MediaDir: filepath.Join(dir, "media"),
	}

	p := &Pandoc{Binary: "/opt/pandoc", Runner: mock}
	if _, err := p.Render(context.Background(), req); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	want := []string{
		"/opt/pandoc", req.Input,
		"-f", "latex", "-t", "html5",
		"--standalone", "--section-divs",
		"-o", req.Output,
		"--extract-media=" + req.MediaDir,
	}
	if !slices.Equal(mock.calledWith, want) {
		t.Errorf("called with %q, want %q", mock.calledWith, want)
	}
}

func TestNewPandoc(t *testing.T) {
	t.Parallel()

	if p := NewPandoc(""); p.Binary != DefaultBinary {
		t.Errorf("NewPandoc(\"\").Binary = %q, want %q", p.Binary, DefaultBinary)
	}
	if p := NewPandoc("pandoc-3"); p.Binary != "pandoc-3" {
		t.Errorf("NewPandoc(\"pandoc-3\").Binary = %q", p.Binary)
	}
}
