package quickbook

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alnah/go-quickbook/internal/assets"
	"github.com/alnah/go-quickbook/internal/book"
	"github.com/alnah/go-quickbook/internal/chapters"
	"github.com/alnah/go-quickbook/internal/config"
)

// AssetsDirName is the optional per-book directory overriding embedded styles.
const AssetsDirName = "assets"

// Split detects chapters in the rendered HTML, writes one page per chapter
// and the manifest. Pages from a previous split are removed first. Images
// extracted by the renderer are referenced at their published location.
func (s *Service) Split(slug string) (*SplitResult, error) {
	layout, cfg, err := s.load(slug)
	if err != nil {
		return nil, err
	}

	htmlFile := layout.HTMLFile(cfg)
	data, err := os.ReadFile(htmlFile) // #nosec G304 -- path built from book layout
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if s.dryRun {
				s.logger.Info("dry run: no rendered HTML yet, would split after convert", "slug", slug)
				return &SplitResult{}, nil
			}
			return nil, fmt.Errorf("%w: %s", ErrHTMLMissing, htmlFile)
		}
		return nil, fmt.Errorf("reading rendered HTML: %w", err)
	}
	doc := string(data)

	marker, err := chapters.CompileMarker(cfg.ChapterPattern)
	if err != nil {
		return nil, err
	}
	meta := s.metadata(layout, cfg)
	boundaries := chapters.Detect(doc, chapters.DetectOptions{
		Marker:    marker,
		Titles:    cfg.ChapterTitles,
		BookTitle: meta.Title,
	})
	s.logger.Info("detected chapters", "slug", slug, "count", len(boundaries))

	style, err := s.stylesheet(layout, cfg)
	if err != nil {
		return nil, err
	}
	docs, err := chapters.Split(doc, boundaries, chapters.SplitOptions{
		Stylesheet: style,
		SourceFile: filepath.Base(htmlFile),
	})
	if err != nil {
		return nil, fmt.Errorf("splitting %s: %w", slug, err)
	}

	if err := s.mkdirs(layout.ChaptersDir()); err != nil {
		return nil, err
	}
	if err := s.removeFiles(layout.ChaptersDir(), ".html"); err != nil {
		return nil, err
	}

	manifest := &book.Manifest{
		BookSlug:    slug,
		Title:       meta.Title,
		Author:      meta.Author,
		Chapters:    make([]book.ChapterInfo, 0, len(docs)),
		GeneratedAt: s.now().UTC(),
	}
	res := &SplitResult{Manifest: manifest}
	for _, d := range docs {
		page, err := chapters.RewriteMedia(d.HTML, layout.MediaDir(), chapters.DefaultMediaPrefix)
		if err != nil {
			return nil, fmt.Errorf("rewriting media in %s: %w", d.Info.Filename, err)
		}
		path := filepath.Join(layout.ChaptersDir(), d.Info.Filename)
		if err := s.writeFile(path, []byte(page)); err != nil {
			return nil, err
		}
		s.logger.Debug("chapter", "number", d.Info.Number, "title", d.Info.Title, "file", d.Info.Filename)
		manifest.Chapters = append(manifest.Chapters, d.Info)
		res.Files = append(res.Files, path)
	}

	if err := s.writeJSON(layout.ManifestFile(), manifest); err != nil {
		return nil, err
	}
	s.logger.Info("split", "slug", slug, "chapters", len(manifest.Chapters))
	return res, nil
}

// stylesheet loads the chapter stylesheet, preferring the book's assets/.
func (s *Service) stylesheet(layout config.Layout, cfg *config.BookConfig) (string, error) {
	name := cfg.Style
	if name == "" {
		name = assets.DefaultStyleName
	}
	resolver, err := assets.NewAssetResolver(filepath.Join(layout.Dir(), AssetsDirName))
	if err != nil {
		return "", err
	}
	css, err := resolver.LoadStyle(name)
	if err != nil {
		return "", fmt.Errorf("loading style: %w", err)
	}
	return css, nil
}
