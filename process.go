package quickbook

import (
	"context"
	"errors"
)

// Process runs convert, split, chunk and upload in order and stops at the
// first error. Upload is skipped when no publish target is configured.
func (s *Service) Process(ctx context.Context, slug string) (*ProcessResult, error) {
	res := &ProcessResult{}
	var err error

	if res.Convert, err = s.Convert(ctx, slug); err != nil {
		return res, err
	}
	if err := ctx.Err(); err != nil {
		return res, err
	}
	if res.Split, err = s.Split(slug); err != nil {
		return res, err
	}
	if res.Chunk, err = s.Chunk(ctx, slug); err != nil {
		return res, err
	}

	if !s.dryRun && !s.HasPublishTarget() {
		s.logger.Info("no publish target configured, skipping upload", "slug", slug)
		return res, nil
	}
	res.Upload, err = s.Upload(ctx, slug)
	if err != nil && s.dryRun && (errors.Is(err, ErrManifestMissing) || errors.Is(err, ErrChunksMissing)) {
		s.logger.Info("dry run: earlier stages wrote nothing, would upload after them", "slug", slug)
		return res, nil
	}
	return res, err
}
