package book

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/alnah/go-quickbook/internal/fileutil"
)

// ErrManifestMissing indicates no manifest has been written for the book.
var ErrManifestMissing = errors.New("manifest not found")

// Chunk file names inside a book's chunks directory.
const (
	ChunkFileExt     = ".tex"
	ChunkSummaryFile = "summary.json"
)

// ChunkSummary records what a chunk run produced.
type ChunkSummary struct {
	BookSlug    string            `json:"bookSlug"`
	TotalChunks int               `json:"totalChunks"`
	ByType      map[ChunkType]int `json:"byType"`
	Chunks      []LatexChunk      `json:"chunks"`
}

// Summarize builds the summary of chunks, keeping their order.
func Summarize(slug string, chunks []LatexChunk) ChunkSummary {
	s := ChunkSummary{
		BookSlug:    slug,
		TotalChunks: len(chunks),
		ByType:      make(map[ChunkType]int),
		Chunks:      make([]LatexChunk, len(chunks)),
	}
	copy(s.Chunks, chunks)
	sort.SliceStable(s.Chunks, func(i, j int) bool { return s.Chunks[i].Order < s.Chunks[j].Order })
	for _, c := range chunks {
		s.ByType[c.Type]++
	}
	return s
}

// ChunkFilename returns the file name holding a chunk's content.
func ChunkFilename(c LatexChunk) string {
	return c.ID + ChunkFileExt
}

// LoadManifest reads a manifest file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path derived from book layout
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrManifestMissing, path)
		}
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return &m, nil
}

// LoadChunkSummary reads a chunk summary file.
func LoadChunkSummary(path string) (*ChunkSummary, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path derived from book layout
	if err != nil {
		return nil, fmt.Errorf("reading chunk summary: %w", err)
	}

	var s ChunkSummary
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing chunk summary %s: %w", path, err)
	}
	return &s, nil
}

// WriteJSON writes v as indented JSON, replacing path atomically.
func WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", filepath.Base(path), err)
	}
	if err := fileutil.WriteFileAtomic(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	return nil
}
