// Package render turns normalized LaTeX into standalone HTML with pandoc.
package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"strings"

	"github.com/alnah/go-quickbook/internal/process"
)

// DefaultBinary is the renderer executable looked up on PATH.
const DefaultBinary = "pandoc"

// Sentinel errors for rendering.
var (
	// ErrRenderFailed indicates the renderer exited with an error and left no output.
	ErrRenderFailed = errors.New("render failed")

	// ErrOutputMissing indicates the renderer reported success but wrote nothing.
	ErrOutputMissing = errors.New("render output missing")

	// ErrRendererNotFound indicates the renderer executable is not installed.
	ErrRendererNotFound = errors.New("renderer not found")
)

// CommandRunner abstracts command execution to enable testing without real subprocesses.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (stdout string, stderr string, err error)
}

// ExecRunner implements CommandRunner using os/exec. The child runs in its
// own process group, killed as a whole when ctx is canceled.
type ExecRunner struct{}

func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	process.Isolate(cmd)
	cmd.Cancel = func() error {
		process.KillProcessGroup(cmd.Process.Pid)
		return nil
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// Request names the files of one render.
type Request struct {
	Input    string // normalized .tex file
	Output   string // standalone .html file
	MediaDir string // directory for extracted images
}

// Result reports a finished render. Warning holds renderer diagnostics when
// it exited with an error but still produced output.
type Result struct {
	Output  string
	Warning string
}

// Renderer converts a LaTeX file into HTML.
type Renderer interface {
	Render(ctx context.Context, req Request) (Result, error)
}

// Pandoc renders through the pandoc CLI.
type Pandoc struct {
	Binary string
	Runner CommandRunner
}

// NewPandoc creates a Pandoc renderer with a real command runner.
// An empty binary means DefaultBinary.
func NewPandoc(binary string) *Pandoc {
	if binary == "" {
		binary = DefaultBinary
	}
	return &Pandoc{Binary: binary, Runner: &ExecRunner{}}
}

// Args returns the renderer arguments for req.
func (p *Pandoc) Args(req Request) []string {
	args := []string{
		req.Input,
		"-f", "latex",
		"-t", "html5",
		"--standalone",
		"--section-divs",
		"-o", req.Output,
	}
	if req.MediaDir != "" {
		args = append(args, "--extract-media="+req.MediaDir)
	}
	return args
}

// Render runs pandoc. A failing exit that still left a non-empty output file
// is downgraded to a warning: pandoc reports unknown macros that way. Output
// left by an earlier run is removed first, so it never counts as produced.
func (p *Pandoc) Render(ctx context.Context, req Request) (Result, error) {
	if err := os.Remove(req.Output); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Result{}, fmt.Errorf("removing previous output: %w", err)
	}

	_, stderr, err := p.Runner.Run(ctx, p.Binary, p.Args(req)...)
	stderr = strings.TrimSpace(stderr)

	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return Result{}, fmt.Errorf("%w: %s", ErrRendererNotFound, p.Binary)
		}
		if ctx.Err() != nil {
			return Result{}, ctx.Err()
		}
		if outputExists(req.Output) {
			return Result{Output: req.Output, Warning: warningText(stderr, err)}, nil
		}
		return Result{}, fmt.Errorf("%w: %s", ErrRenderFailed, warningText(stderr, err))
	}

	if !outputExists(req.Output) {
		return Result{}, fmt.Errorf("%w: %s", ErrOutputMissing, req.Output)
	}
	return Result{Output: req.Output, Warning: stderr}, nil
}

func outputExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir() && info.Size() > 0
}

func warningText(stderr string, err error) string {
	if stderr == "" {
		return err.Error()
	}
	return stderr + ": " + err.Error()
}

// Compile-time interface check.
var _ Renderer = (*Pandoc)(nil)
