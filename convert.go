package quickbook

import (
	"context"
	"fmt"

	"github.com/alnah/go-quickbook/internal/latex"
	"github.com/alnah/go-quickbook/internal/render"
)

// Convert normalizes the manuscript, records its metadata and renders the
// normalized copy to HTML. A renderer failure that still produced output is
// returned as ConvertResult.Warning; without output it is an error.
func (s *Service) Convert(ctx context.Context, slug string) (*ConvertResult, error) {
	layout, cfg, err := s.load(slug)
	if err != nil {
		return nil, err
	}
	src, err := s.readSource(layout, cfg)
	if err != nil {
		return nil, err
	}

	clean := latex.Normalize(src)
	res := &ConvertResult{
		CleanFile: layout.CleanFile(cfg),
		Metadata:  latex.ExtractMetadata(clean),
		Remaining: latex.RemainingNonstandard(clean),
	}
	if len(res.Remaining) > 0 {
		s.logger.Warn("nonstandard environments left after normalizing", "slug", slug, "tags", res.Remaining)
	}
	s.logger.Info("normalized source", "slug", slug, "title", res.Metadata.Title, "author", res.Metadata.Author)

	if err := s.writeFile(res.CleanFile, []byte(clean)); err != nil {
		return nil, err
	}
	if err := s.writeJSON(layout.MetadataFile(), res.Metadata); err != nil {
		return nil, err
	}

	if s.dryRun {
		s.logger.Info("dry run: would render", "input", res.CleanFile, "output", layout.HTMLFile(cfg))
		return res, nil
	}

	if err := s.mkdirs(layout.HTMLDir()); err != nil {
		return nil, err
	}
	out, err := s.renderer.Render(ctx, render.Request{
		Input:    res.CleanFile,
		Output:   layout.HTMLFile(cfg),
		MediaDir: layout.MediaDir(),
	})
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", slug, err)
	}
	res.HTMLFile = out.Output
	res.Warning = out.Warning
	if res.Warning != "" {
		s.logger.Warn("renderer reported problems", "slug", slug, "detail", res.Warning)
	}

	s.logger.Info("rendered", "slug", slug, "html", res.HTMLFile)
	return res, nil
}
