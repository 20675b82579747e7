// Package book defines the data produced by the book pipeline: chapter
// boundaries, the chapter manifest and retrieval chunks, together with
// their on-disk JSON encodings.
package book

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnknownChunkType indicates a chunk type outside the closed set.
var ErrUnknownChunkType = errors.New("unknown chunk type")

// ChapterBoundary is a detected chapter start in rendered output.
// Position is a byte offset; boundaries are ordered by Position.
type ChapterBoundary struct {
	Title    string
	Position int
	Number   int
}

// ChapterInfo describes one emitted chapter document.
type ChapterInfo struct {
	Number     int    `json:"number"`
	Title      string `json:"title"`
	Filename   string `json:"filename"`
	SourceFile string `json:"sourceFile,omitempty"`
}

// Manifest enumerates a book's generated chapter files in order.
// BookID and UploadedAt are set after a successful publish.
type Manifest struct {
	BookSlug    string        `json:"bookSlug"`
	Title       string        `json:"title"`
	Author      string        `json:"author"`
	Chapters    []ChapterInfo `json:"chapters"`
	GeneratedAt time.Time     `json:"generatedAt"`
	BookID      string        `json:"bookId,omitempty"`
	UploadedAt  *time.Time    `json:"uploadedAt,omitempty"`
}

// ChunkType classifies a chunk.
type ChunkType string

// Chunk types, listed in extraction priority order.
const (
	ChunkTheorem     ChunkType = "theorem"
	ChunkDefinition  ChunkType = "definition"
	ChunkExample     ChunkType = "example"
	ChunkProof       ChunkType = "proof"
	ChunkLemma       ChunkType = "lemma"
	ChunkCorollary   ChunkType = "corollary"
	ChunkProposition ChunkType = "proposition"
	ChunkRemark      ChunkType = "remark"
	ChunkEquation    ChunkType = "equation"
	ChunkSection     ChunkType = "section"
)

// chunkTypes holds every type with its priority. A lower priority claims
// source spans first when environment candidates compete.
var chunkTypes = []ChunkType{
	ChunkTheorem,
	ChunkDefinition,
	ChunkExample,
	ChunkProof,
	ChunkLemma,
	ChunkCorollary,
	ChunkProposition,
	ChunkRemark,
	ChunkEquation,
	ChunkSection,
}

// ChunkTypes returns all chunk types in priority order.
func ChunkTypes() []ChunkType {
	out := make([]ChunkType, len(chunkTypes))
	copy(out, chunkTypes)
	return out
}

// Priority returns the extraction priority of t (0 is highest), or -1 for
// an unknown type.
func (t ChunkType) Priority() int {
	for i, ct := range chunkTypes {
		if ct == t {
			return i
		}
	}
	return -1
}

// ParseChunkType validates s against the closed set of chunk types.
func ParseChunkType(s string) (ChunkType, error) {
	t := ChunkType(s)
	if t.Priority() < 0 {
		return "", fmt.Errorf("%w: %q", ErrUnknownChunkType, s)
	}
	return t, nil
}

// LatexChunk is a typed span of LaTeX source destined for a retrieval index.
// Start and End are the claimed source offsets [Start, End).
type LatexChunk struct {
	ID            string    `json:"id"`
	BookSlug      string    `json:"bookSlug"`
	ChapterNumber int       `json:"chapterNumber"`
	Type          ChunkType `json:"type"`
	Title         string    `json:"title,omitempty"`
	Content       string    `json:"-"`
	Order         int       `json:"order"`
	Start         int       `json:"start"`
	End           int       `json:"end"`
}

// ChunkID formats the identifier of a chunk.
func ChunkID(slug string, chapter int, t ChunkType, order int) string {
	return fmt.Sprintf("%s-ch%d-%s-%d", slug, chapter, t, order)
}
