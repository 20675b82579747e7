package quickbook

import (
	"errors"

	"github.com/alnah/go-quickbook/internal/assets"
	"github.com/alnah/go-quickbook/internal/book"
	"github.com/alnah/go-quickbook/internal/config"
	"github.com/alnah/go-quickbook/internal/publish"
	"github.com/alnah/go-quickbook/internal/render"
)

// Sentinel errors for library operations.
var (
	ErrSourceMissing = errors.New("source file not found")
	ErrHTMLMissing   = errors.New("rendered HTML not found")
	ErrChunksMissing = errors.New("chunk summary not found")

	// Book configuration errors.
	ErrConfigMissing = config.ErrConfigMissing
	ErrConfigParse   = config.ErrConfigParse
	ErrInvalidSlug   = config.ErrInvalidSlug
	ErrBookExists    = config.ErrBookExists

	// Render errors.
	ErrRenderFailed        = render.ErrRenderFailed
	ErrRenderOutputMissing = render.ErrOutputMissing
	ErrRendererNotFound    = render.ErrRendererNotFound

	// Stage artifact errors.
	ErrManifestMissing = book.ErrManifestMissing
	ErrStyleNotFound   = assets.ErrStyleNotFound

	// Publish errors.
	ErrPublishFailed   = publish.ErrPublishFailed
	ErrNoPublishTarget = publish.ErrNoTarget
)
