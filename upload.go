package quickbook

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alnah/go-quickbook/internal/book"
	"github.com/alnah/go-quickbook/internal/publish"
)

// Upload publishes the chapter pages, images and chunk files of a book and
// its records, then stamps the manifest with the new book id. Every write
// is retried by the configured policy; the first write that exhausts it
// aborts the upload with ErrPublishFailed.
func (s *Service) Upload(ctx context.Context, slug string) (*UploadResult, error) {
	layout, _, err := s.load(slug)
	if err != nil {
		return nil, err
	}

	manifest, err := book.LoadManifest(layout.ManifestFile())
	if err != nil {
		return nil, err
	}
	summaryFile := filepath.Join(layout.ChunksDir(), book.ChunkSummaryFile)
	summary, err := book.LoadChunkSummary(summaryFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrChunksMissing, summaryFile)
		}
		return nil, err
	}

	objects, docs := s.objects, s.docs
	if s.dryRun {
		objects = &dryRunObjects{logger: s.logger}
		docs = &dryRunDocuments{logger: s.logger}
	}
	if objects == nil {
		return nil, fmt.Errorf("%w: object store", ErrNoPublishTarget)
	}
	if docs == nil {
		return nil, fmt.Errorf("%w: document store", ErrNoPublishTarget)
	}

	opts := []publish.Option{
		publish.WithRetryPolicy(s.retry),
		publish.WithLogger(s.logger),
		publish.WithClock(s.now),
	}
	if s.newID != nil {
		opts = append(opts, publish.WithIDGenerator(s.newID))
	}
	pub := publish.NewPublisher(objects, docs, opts...)

	receipt, err := pub.Publish(ctx, publish.Bundle{
		Manifest:    manifest,
		Chunks:      summary.Chunks,
		ChaptersDir: layout.ChaptersDir(),
		MediaDir:    layout.MediaDir(),
		ChunksDir:   layout.ChunksDir(),
	})
	if err != nil {
		return nil, fmt.Errorf("uploading %s: %w", slug, err)
	}

	uploadedAt := receipt.UploadedAt
	manifest.BookID = receipt.BookID
	manifest.UploadedAt = &uploadedAt
	if err := s.writeJSON(layout.ManifestFile(), manifest); err != nil {
		return nil, err
	}

	s.logger.Info("uploaded", "slug", slug, "bookId", receipt.BookID,
		"objects", receipt.Objects, "records", receipt.Records)
	return &UploadResult{
		BookID:     receipt.BookID,
		UploadedAt: receipt.UploadedAt,
		Objects:    receipt.Objects,
		Records:    receipt.Records,
	}, nil
}

// HasPublishTarget reports whether both stores are configured.
func (s *Service) HasPublishTarget() bool {
	return s.objects != nil && s.docs != nil
}
