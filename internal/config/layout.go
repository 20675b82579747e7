package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Layout file and directory names inside a book directory.
const (
	ConfigFileName   = "book.yaml"
	ManifestFileName = "manifest.json"
	MetadataFileName = "metadata.json"
	SourceDirName    = "source"
	HTMLDirName      = "html"
	ChaptersDirName  = "chapters"
	ChunksDirName    = "chunks"
	MediaDirName     = "media"
)

// Layout resolves the paths of one book below the books directory.
type Layout struct {
	BooksDir string
	Slug     string
}

// NewLayout validates slug and returns its layout.
func NewLayout(booksDir, slug string) (Layout, error) {
	if err := ValidateSlug(slug); err != nil {
		return Layout{}, err
	}
	return Layout{BooksDir: booksDir, Slug: slug}, nil
}

func (l Layout) Dir() string          { return filepath.Join(l.BooksDir, l.Slug) }
func (l Layout) ConfigFile() string   { return filepath.Join(l.Dir(), ConfigFileName) }
func (l Layout) SourceDir() string    { return filepath.Join(l.Dir(), SourceDirName) }
func (l Layout) HTMLDir() string      { return filepath.Join(l.Dir(), HTMLDirName) }
func (l Layout) MediaDir() string     { return filepath.Join(l.HTMLDir(), MediaDirName) }
func (l Layout) ChaptersDir() string  { return filepath.Join(l.Dir(), ChaptersDirName) }
func (l Layout) ChunksDir() string    { return filepath.Join(l.Dir(), ChunksDirName) }
func (l Layout) ManifestFile() string { return filepath.Join(l.Dir(), ManifestFileName) }
func (l Layout) MetadataFile() string { return filepath.Join(l.SourceDir(), MetadataFileName) }

// SourceFile returns the path of the declared source file.
func (l Layout) SourceFile(cfg *BookConfig) string {
	return filepath.Join(l.SourceDir(), cfg.SourceFile)
}

// CleanFile returns the path of the normalized copy of the source.
func (l Layout) CleanFile(cfg *BookConfig) string {
	return filepath.Join(l.SourceDir(), stem(cfg.SourceFile)+".clean.tex")
}

// HTMLFile returns the path of the rendered document.
func (l Layout) HTMLFile(cfg *BookConfig) string {
	return filepath.Join(l.HTMLDir(), stem(cfg.SourceFile)+".html")
}

// Dirs returns the directories created by init.
func (l Layout) Dirs() []string {
	return []string{l.SourceDir(), l.HTMLDir(), l.ChaptersDir(), l.ChunksDir()}
}

func stem(name string) string {
	return name[:len(name)-len(filepath.Ext(name))]
}

// ListBooks returns the slugs of the books below booksDir that carry a
// book.yaml, sorted. A missing books directory holds no books.
func ListBooks(booksDir string) ([]string, error) {
	entries, err := os.ReadDir(booksDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing books: %w", err)
	}

	var slugs []string
	for _, e := range entries {
		if !e.IsDir() || ValidateSlug(e.Name()) != nil {
			continue
		}
		if _, err := os.Stat(filepath.Join(booksDir, e.Name(), ConfigFileName)); err == nil {
			slugs = append(slugs, e.Name())
		}
	}
	sort.Strings(slugs)
	return slugs, nil
}
