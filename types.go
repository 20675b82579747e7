package quickbook

import (
	"time"

	"github.com/alnah/go-quickbook/internal/book"
	"github.com/alnah/go-quickbook/internal/chunker"
	"github.com/alnah/go-quickbook/internal/latex"
)

// Re-exported domain types.
type (
	Manifest     = book.Manifest
	ChapterInfo  = book.ChapterInfo
	LatexChunk   = book.LatexChunk
	ChunkType    = book.ChunkType
	ChunkSummary = book.ChunkSummary
	Metadata     = latex.Metadata
)

// InitResult reports the files created for a new book.
type InitResult struct {
	Dir        string
	ConfigFile string
}

// ConvertResult reports a normalize-and-render run.
type ConvertResult struct {
	CleanFile string
	HTMLFile  string // empty when rendering was skipped
	Metadata  Metadata
	// Remaining lists nonstandard environment tags left after normalizing.
	Remaining []string
	// Warning holds renderer diagnostics from a run that still produced HTML.
	Warning string
}

// SplitResult reports the chapter pages written for a book.
type SplitResult struct {
	Manifest *Manifest
	Files    []string
}

// ChunkResult reports an extraction run.
type ChunkResult struct {
	Summary    ChunkSummary
	Rejections chunker.Rejections
	ReportFile string
}

// UploadResult reports a finished upload.
type UploadResult struct {
	BookID     string
	UploadedAt time.Time
	Objects    int
	Records    int
}

// ProcessResult collects the results of a full run. Upload is nil when no
// publish target is configured.
type ProcessResult struct {
	Convert *ConvertResult
	Split   *SplitResult
	Chunk   *ChunkResult
	Upload  *UploadResult
}

// BookStatus describes how far a book has progressed through the stages.
type BookStatus struct {
	Slug        string
	Title       string
	HasConfig   bool
	HasSource   bool
	HasHTML     bool
	Chapters    int
	Chunks      int
	GeneratedAt *time.Time
	BookID      string
	UploadedAt  *time.Time
}

// Uploaded reports whether the book has been published since its last split.
func (s BookStatus) Uploaded() bool {
	return s.BookID != ""
}
