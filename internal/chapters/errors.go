package chapters

import "errors"

// Sentinel errors for chapter detection and splitting.
var (
	// ErrInvalidMarker indicates a marker pattern that does not compile.
	ErrInvalidMarker = errors.New("invalid chapter marker pattern")

	// ErrParseHTML indicates the rendered document could not be parsed.
	ErrParseHTML = errors.New("failed to parse rendered HTML")

	// ErrBoundaryOrder indicates boundaries that are unsorted or outside the document.
	ErrBoundaryOrder = errors.New("chapter boundaries out of order")
)
