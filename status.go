package quickbook

import (
	"errors"
	"fmt"

	"github.com/alnah/go-quickbook/internal/book"
	"github.com/alnah/go-quickbook/internal/config"
	"github.com/alnah/go-quickbook/internal/fileutil"
)

// Status reports the stage completion of one book. A book without
// book.yaml is reported as ErrConfigMissing.
func (s *Service) Status(slug string) (*BookStatus, error) {
	layout, cfg, err := s.load(slug)
	if err != nil {
		return nil, err
	}

	st := &BookStatus{
		Slug:      slug,
		Title:     s.metadata(layout, cfg).Title,
		HasConfig: true,
		HasSource: fileutil.FileExists(layout.SourceFile(cfg)),
		HasHTML:   fileutil.FileExists(layout.HTMLFile(cfg)),
	}

	if st.Chapters, err = fileutil.CountFiles(layout.ChaptersDir(), ".html"); err != nil {
		return nil, err
	}
	if st.Chunks, err = fileutil.CountFiles(layout.ChunksDir(), book.ChunkFileExt); err != nil {
		return nil, err
	}

	manifest, err := book.LoadManifest(layout.ManifestFile())
	switch {
	case err == nil:
		generated := manifest.GeneratedAt
		st.GeneratedAt = &generated
		st.BookID = manifest.BookID
		st.UploadedAt = manifest.UploadedAt
	case !errors.Is(err, ErrManifestMissing):
		return nil, err
	}

	return st, nil
}

// StatusAll reports every book below the books directory, sorted by slug.
func (s *Service) StatusAll() ([]BookStatus, error) {
	slugs, err := config.ListBooks(s.booksDir)
	if err != nil {
		return nil, err
	}
	out := make([]BookStatus, 0, len(slugs))
	for _, slug := range slugs {
		st, err := s.Status(slug)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", slug, err)
		}
		out = append(out, *st)
	}
	return out, nil
}
