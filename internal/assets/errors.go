package assets

import "errors"

var (
	ErrStyleNotFound    = errors.New("style not found")
	ErrTemplateNotFound = errors.New("template not found")

	// ErrInvalidAssetName rejects names that are not a bare identifier.
	ErrInvalidAssetName = errors.New("invalid asset name")

	// ErrInvalidBasePath reports a book assets directory that cannot be used.
	ErrInvalidBasePath = errors.New("invalid assets directory")
	ErrAssetRead       = errors.New("reading asset")

	// ErrPathTraversal reports a style or template resolving outside the
	// assets directory, typically through a symlink.
	ErrPathTraversal = errors.New("asset outside assets directory")
)
