package quickbook

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/alnah/go-quickbook/internal/book"
	"github.com/alnah/go-quickbook/internal/chunker"
	"github.com/alnah/go-quickbook/internal/report"
)

// Chunk extracts retrieval chunks from the raw manuscript. It writes one
// .tex file per chunk, the summary and the review report, replacing the
// chunk files of a previous run.
func (s *Service) Chunk(ctx context.Context, slug string) (*ChunkResult, error) {
	layout, cfg, err := s.load(slug)
	if err != nil {
		return nil, err
	}
	src, err := s.readSource(layout, cfg)
	if err != nil {
		return nil, err
	}

	extracted := chunker.Extract(slug, src, s.chunks)
	rej := extracted.Rejections
	s.logger.Info("extracted chunks", "slug", slug,
		"chunks", len(extracted.Chunks),
		"chapters", len(extracted.Chapters),
		"rejectedBeforeChapter", rej.BeforeFirstChapter,
		"rejectedOverlap", rej.Overlap,
		"rejectedSize", rej.Size,
	)

	dir := layout.ChunksDir()
	if err := s.mkdirs(dir); err != nil {
		return nil, err
	}
	if err := s.removeFiles(dir, book.ChunkFileExt); err != nil {
		return nil, err
	}

	contents := make(map[string]string, len(extracted.Chunks))
	for _, c := range extracted.Chunks {
		contents[c.ID] = c.Content
		if err := s.writeFile(filepath.Join(dir, book.ChunkFilename(c)), []byte(c.Content)); err != nil {
			return nil, err
		}
	}

	summary := book.Summarize(slug, extracted.Chunks)
	if err := s.writeJSON(filepath.Join(dir, book.ChunkSummaryFile), summary); err != nil {
		return nil, err
	}

	page, err := report.NewGenerator(nil).Render(ctx, &summary, contents, s.now())
	if err != nil {
		return nil, err
	}
	reportFile := filepath.Join(dir, report.Filename)
	if err := s.writeFile(reportFile, []byte(page)); err != nil {
		return nil, fmt.Errorf("writing chunk report: %w", err)
	}

	s.logger.Info("chunked", "slug", slug, "total", summary.TotalChunks)
	return &ChunkResult{Summary: summary, Rejections: rej, ReportFile: reportFile}, nil
}
