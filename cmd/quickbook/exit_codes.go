package main

import (
	"errors"
	"os"

	quickbook "github.com/alnah/go-quickbook"
	"github.com/alnah/go-quickbook/internal/assets"
	"github.com/alnah/go-quickbook/internal/chapters"
	"github.com/alnah/go-quickbook/internal/config"
	"github.com/alnah/go-quickbook/internal/dateutil"
	"github.com/alnah/go-quickbook/internal/fileutil"
)

// Exit codes for the quickbook CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // All requested stages finished
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid command, flags or book config
	ExitIO      = 3 // Missing input or unwritable output
	ExitRender  = 4 // Renderer missing or failed
	ExitPublish = 5 // Upload failed after retries
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Publish errors (exit 5)
	if errors.Is(err, quickbook.ErrPublishFailed) {
		return ExitPublish
	}

	// Render errors (exit 4)
	if errors.Is(err, quickbook.ErrRenderFailed) ||
		errors.Is(err, quickbook.ErrRenderOutputMissing) ||
		errors.Is(err, quickbook.ErrRendererNotFound) {
		return ExitRender
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, quickbook.ErrConfigMissing) ||
		errors.Is(err, quickbook.ErrConfigParse) ||
		errors.Is(err, quickbook.ErrInvalidSlug) ||
		errors.Is(err, quickbook.ErrBookExists) ||
		errors.Is(err, quickbook.ErrStyleNotFound) ||
		errors.Is(err, quickbook.ErrNoPublishTarget) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrFieldRequired) ||
		errors.Is(err, config.ErrInvalidSource) ||
		errors.Is(err, config.ErrSlugMismatch) ||
		errors.Is(err, config.ErrInvalidPattern) ||
		errors.Is(err, chapters.ErrInvalidMarker) ||
		errors.Is(err, assets.ErrInvalidAssetName) ||
		errors.Is(err, dateutil.ErrInvalidDateFormat) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, quickbook.ErrSourceMissing) ||
		errors.Is(err, quickbook.ErrHTMLMissing) ||
		errors.Is(err, quickbook.ErrManifestMissing) ||
		errors.Is(err, quickbook.ErrChunksMissing) ||
		errors.Is(err, fileutil.ErrNotDirectory) {
		return ExitIO
	}

	return ExitGeneral
}
