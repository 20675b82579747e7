// Package config loads per-book configuration and resolves the on-disk
// layout of a book.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/alnah/go-quickbook/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigMissing  = errors.New("book config not found")
	ErrConfigParse    = errors.New("failed to parse book config")
	ErrFieldTooLong   = errors.New("field exceeds maximum length")
	ErrFieldRequired  = errors.New("required field missing")
	ErrInvalidSlug    = errors.New("invalid book slug")
	ErrInvalidSource  = errors.New("unsupported source type")
	ErrSlugMismatch   = errors.New("config slug does not match directory")
	ErrBookExists     = errors.New("book already exists")
	ErrInvalidPattern = errors.New("invalid chapter pattern")
)

// SourceLaTeX is the only supported source type.
const SourceLaTeX = "latex"

// Field length limits.
const (
	MaxSlugLength         = 64
	MaxTitleLength        = 200
	MaxAuthorLength       = 200
	MaxPathLength         = 255
	MaxPatternLength      = 500
	MaxChapterTitleLength = 200
	MaxStyleLength        = 50
)

var slugPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// BookConfig is the content of book.yaml.
type BookConfig struct {
	Slug           string            `yaml:"slug"`
	Title          string            `yaml:"title"`
	Author         string            `yaml:"author"`
	SourceType     string            `yaml:"sourceType"`
	SourceFile     string            `yaml:"sourceFile"`
	ChapterPattern string            `yaml:"chapterPattern,omitempty"` // marker regexp, empty = <section>
	ChapterTitles  map[string]string `yaml:"chapterTitles,omitempty"`  // raw heading -> display title
	Style          string            `yaml:"style,omitempty"`          // stylesheet name, empty = reader
}

// ValidateSlug checks that slug is usable as a directory name and key prefix.
func ValidateSlug(slug string) error {
	if len(slug) > MaxSlugLength || !slugPattern.MatchString(slug) {
		return fmt.Errorf("%w: %q (lowercase letters, digits and dashes)", ErrInvalidSlug, slug)
	}
	return nil
}

// Validate checks required fields and field lengths.
func (c *BookConfig) Validate() error {
	if err := ValidateSlug(c.Slug); err != nil {
		return err
	}
	if c.SourceFile == "" {
		return fmt.Errorf("%w: sourceFile", ErrFieldRequired)
	}
	if c.SourceType != "" && !strings.EqualFold(c.SourceType, SourceLaTeX) {
		return fmt.Errorf("%w: %q", ErrInvalidSource, c.SourceType)
	}
	if strings.ContainsAny(c.SourceFile, `/\`) {
		return fmt.Errorf("sourceFile: must be a file name inside source/, got %q", c.SourceFile)
	}

	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"title", c.Title, MaxTitleLength},
		{"author", c.Author, MaxAuthorLength},
		{"sourceFile", c.SourceFile, MaxPathLength},
		{"chapterPattern", c.ChapterPattern, MaxPatternLength},
		{"style", c.Style, MaxStyleLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if c.ChapterPattern != "" {
		if _, err := regexp.Compile(c.ChapterPattern); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidPattern, err)
		}
	}

	keys := make([]string, 0, len(c.ChapterTitles))
	for k := range c.ChapterTitles {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := validateFieldLength(fmt.Sprintf("chapterTitles[%q]", k), c.ChapterTitles[k], MaxChapterTitleLength); err != nil {
			return err
		}
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// Load reads and validates the config of the book in layout.
func Load(layout Layout) (*BookConfig, error) {
	path := layout.ConfigFile()
	data, err := os.ReadFile(path) // #nosec G304 -- path built from books dir and validated slug
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigMissing, path)
		}
		return nil, fmt.Errorf("reading book config: %w", err)
	}

	var cfg BookConfig
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, path, err)
	}
	if cfg.SourceType == "" {
		cfg.SourceType = SourceLaTeX
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Slug != layout.Slug {
		return nil, fmt.Errorf("%w: %q in %s", ErrSlugMismatch, cfg.Slug, path)
	}

	return &cfg, nil
}

const templateHeader = `# Book configuration.
#
# sourceFile      file name inside source/ (LaTeX)
# chapterPattern  optional regexp marking chapter candidates in rendered HTML
#                 (default: every <section> tag)
# chapterTitles   optional map from a detected heading to its display title
# style           optional chapter stylesheet: reader, sepia
`

// Template returns the initial book.yaml for slug.
func Template(slug string) ([]byte, error) {
	cfg := BookConfig{
		Slug:       slug,
		Title:      "Untitled",
		Author:     "Unknown",
		SourceType: SourceLaTeX,
		SourceFile: slug + ".tex",
		ChapterTitles: map[string]string{
			"PREFACE": "Preface",
		},
	}
	body, err := yamlutil.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	return append([]byte(templateHeader), body...), nil
}
