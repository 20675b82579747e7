package quickbook

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/alnah/go-quickbook/internal/book"
	"github.com/alnah/go-quickbook/internal/chunker"
	"github.com/alnah/go-quickbook/internal/config"
	"github.com/alnah/go-quickbook/internal/fileutil"
	"github.com/alnah/go-quickbook/internal/latex"
	"github.com/alnah/go-quickbook/internal/publish"
	"github.com/alnah/go-quickbook/internal/render"
)

// DefaultBooksDir is the books directory used when none is configured.
const DefaultBooksDir = "books"

// Permissions for generated files and directories.
const (
	dirPerm  = 0o750
	filePerm = 0o644
)

// Service runs the book stages. Create with NewService; a Service holds no
// per-book state and runs one stage at a time.
type Service struct {
	booksDir string
	logger   *slog.Logger
	renderer render.Renderer
	objects  publish.ObjectStore
	docs     publish.DocumentStore
	retry    publish.RetryPolicy
	chunks   chunker.Config
	dryRun   bool
	now      func() time.Time
	newID    func() string
}

// Option configures a Service.
type Option func(*Service)

// WithBooksDir sets the directory holding one subdirectory per book.
func WithBooksDir(dir string) Option {
	return func(s *Service) { s.booksDir = dir }
}

// WithLogger sets the logger for stage progress.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithRenderer replaces the pandoc renderer.
func WithRenderer(r render.Renderer) Option {
	return func(s *Service) { s.renderer = r }
}

// WithObjectStore sets where chapter pages, images and chunk files go.
func WithObjectStore(o publish.ObjectStore) Option {
	return func(s *Service) { s.objects = o }
}

// WithDocumentStore sets where book and chapter records go.
func WithDocumentStore(d publish.DocumentStore) Option {
	return func(s *Service) { s.docs = d }
}

// WithRetryPolicy replaces the retry policy applied to every upload write.
func WithRetryPolicy(p publish.RetryPolicy) Option {
	return func(s *Service) { s.retry = p }
}

// WithChunkConfig replaces the chunk size bounds.
func WithChunkConfig(c chunker.Config) Option {
	return func(s *Service) { s.chunks = c }
}

// WithDryRun makes stages log intended writes instead of performing them.
func WithDryRun(dryRun bool) Option {
	return func(s *Service) { s.dryRun = dryRun }
}

// WithClock sets the time source for generated and uploaded timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator sets the book id source used by uploads.
func WithIDGenerator(f func() string) Option {
	return func(s *Service) { s.newID = f }
}

// NewService creates a Service. Without options it works on ./books,
// renders with pandoc from PATH and has no publish targets.
func NewService(opts ...Option) *Service {
	s := &Service{
		booksDir: DefaultBooksDir,
		logger:   slog.New(slog.DiscardHandler),
		renderer: render.NewPandoc(""),
		retry:    publish.DefaultRetryPolicy(),
		chunks:   chunker.DefaultConfig(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BooksDir returns the configured books directory.
func (s *Service) BooksDir() string {
	return s.booksDir
}

// DryRun reports whether writes are only logged.
func (s *Service) DryRun() bool {
	return s.dryRun
}

// load resolves the layout and config of slug.
func (s *Service) load(slug string) (config.Layout, *config.BookConfig, error) {
	layout, err := config.NewLayout(s.booksDir, slug)
	if err != nil {
		return config.Layout{}, nil, err
	}
	cfg, err := config.Load(layout)
	if err != nil {
		return config.Layout{}, nil, err
	}
	return layout, cfg, nil
}

// readSource reads the manuscript declared in cfg.
func (s *Service) readSource(layout config.Layout, cfg *config.BookConfig) (string, error) {
	path := layout.SourceFile(cfg)
	data, err := os.ReadFile(path) // #nosec G304 -- path built from book layout
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrSourceMissing, path)
		}
		return "", fmt.Errorf("reading source: %w", err)
	}
	return string(data), nil
}

// metadata returns the book title and author: book.yaml wins, then the
// metadata recorded by convert, then the defaults.
func (s *Service) metadata(layout config.Layout, cfg *config.BookConfig) Metadata {
	meta := Metadata{Title: latex.DefaultTitle, Author: latex.DefaultAuthor}
	if data, err := os.ReadFile(layout.MetadataFile()); err == nil {
		var recorded Metadata
		if json.Unmarshal(data, &recorded) == nil {
			if recorded.Title != "" {
				meta.Title = recorded.Title
			}
			if recorded.Author != "" {
				meta.Author = recorded.Author
			}
		}
	}
	if cfg.Title != "" {
		meta.Title = cfg.Title
	}
	if cfg.Author != "" {
		meta.Author = cfg.Author
	}
	return meta
}

// mkdirs creates dirs, or logs them in dry-run mode.
func (s *Service) mkdirs(dirs ...string) error {
	for _, dir := range dirs {
		if s.dryRun {
			if !fileutil.DirExists(dir) {
				s.logger.Info("dry run: would create directory", "path", dir)
			}
			continue
		}
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	return nil
}

// writeFile replaces path atomically, or logs it in dry-run mode.
func (s *Service) writeFile(path string, data []byte) error {
	if s.dryRun {
		s.logger.Info("dry run: would write file", "path", path, "bytes", len(data))
		return nil
	}
	if err := fileutil.WriteFileAtomic(path, data, filePerm); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	return nil
}

// writeJSON writes v as indented JSON, or logs it in dry-run mode.
func (s *Service) writeJSON(path string, v any) error {
	if s.dryRun {
		s.logger.Info("dry run: would write file", "path", path)
		return nil
	}
	return book.WriteJSON(path, v)
}

// removeFiles clears stale outputs of a stage.
func (s *Service) removeFiles(dir, ext string) error {
	if s.dryRun {
		n, err := fileutil.CountFiles(dir, ext)
		if err != nil {
			return err
		}
		if n > 0 {
			s.logger.Info("dry run: would remove stale files", "dir", dir, "ext", ext, "count", n)
		}
		return nil
	}
	n, err := fileutil.RemoveFiles(dir, ext)
	if err != nil {
		return err
	}
	if n > 0 {
		s.logger.Debug("removed stale files", "dir", dir, "ext", ext, "count", n)
	}
	return nil
}
