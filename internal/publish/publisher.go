package publish

import (
	"context"
	"fmt"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alnah/go-quickbook/internal/book"
)

// Collections of the document store.
const (
	BooksCollection    = "books"
	ChaptersCollection = "chapters"
)

// imageExts are the media files uploaded from the render directory.
var imageExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".svg": true, ".webp": true,
}

// Bundle is everything one upload reads.
type Bundle struct {
	Manifest    *book.Manifest
	Chunks      []book.LatexChunk // metadata from the chunk summary
	ChaptersDir string
	MediaDir    string // searched recursively for images; empty skips images
	ChunksDir   string
}

// Receipt describes a finished upload.
type Receipt struct {
	BookID     string
	UploadedAt time.Time
	Objects    int
	Records    int
}

// BookRecord is stored once per upload in the books collection.
type BookRecord struct {
	ID           string    `json:"id"`
	Slug         string    `json:"slug"`
	Title        string    `json:"title"`
	Author       string    `json:"author"`
	ChapterCount int       `json:"chapterCount"`
	ChunkCount   int       `json:"chunkCount"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ChapterRecord is stored once per chapter in the chapters collection.
type ChapterRecord struct {
	BookID    string `json:"bookId"`
	Position  int    `json:"position"`
	Number    int    `json:"number"`
	Title     string `json:"title"`
	Filename  string `json:"filename"`
	ObjectKey string `json:"objectKey"`
}

// Publisher uploads bundles.
type Publisher struct {
	objects ObjectStore
	docs    DocumentStore
	retry   RetryPolicy
	logger  *slog.Logger
	now     func() time.Time
	newID   func() string
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithRetryPolicy replaces the default retry policy.
func WithRetryPolicy(p RetryPolicy) Option {
	return func(pub *Publisher) { pub.retry = p }
}

// WithLogger sets the logger for progress and retries.
func WithLogger(l *slog.Logger) Option {
	return func(pub *Publisher) { pub.logger = l }
}

// WithClock sets the upload timestamp source.
func WithClock(now func() time.Time) Option {
	return func(pub *Publisher) { pub.now = now }
}

// WithIDGenerator sets the book id source.
func WithIDGenerator(f func() string) Option {
	return func(pub *Publisher) { pub.newID = f }
}

// NewPublisher creates a Publisher writing to the given stores.
func NewPublisher(objects ObjectStore, docs DocumentStore, opts ...Option) *Publisher {
	p := &Publisher{
		objects: objects,
		docs:    docs,
		retry:   DefaultRetryPolicy(),
		logger:  slog.New(slog.DiscardHandler),
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.retry.Logger == nil {
		p.retry.Logger = p.logger
	}
	return p
}

// Publish uploads every object, then the records. Each upload mints a new
// book id. The first write that exhausts its retries aborts the run;
// anything already written stays.
func (p *Publisher) Publish(ctx context.Context, b Bundle) (Receipt, error) {
	m := b.Manifest
	rc := Receipt{BookID: p.newID(), UploadedAt: p.now().UTC()}

	for _, ch := range m.Chapters {
		path := filepath.Join(b.ChaptersDir, ch.Filename)
		if err := p.putFile(ctx, ChapterKey(m.BookSlug, ch.Filename), path); err != nil {
			return rc, err
		}
		rc.Objects++
	}

	images, err := findImages(b.MediaDir)
	if err != nil {
		return rc, err
	}
	for _, img := range images {
		if err := p.putFile(ctx, ImageKey(m.BookSlug, img.rel), img.path); err != nil {
			return rc, err
		}
		rc.Objects++
	}

	for _, c := range b.Chunks {
		path := filepath.Join(b.ChunksDir, book.ChunkFilename(c))
		if err := p.putFile(ctx, ChunkKey(m.BookSlug, c.ID), path); err != nil {
			return rc, err
		}
		rc.Objects++
	}

	bookRec := BookRecord{
		ID:           rc.BookID,
		Slug:         m.BookSlug,
		Title:        m.Title,
		Author:       m.Author,
		ChapterCount: len(m.Chapters),
		ChunkCount:   len(b.Chunks),
		CreatedAt:    rc.UploadedAt,
	}
	if err := p.putRecord(ctx, BooksCollection, rc.BookID, bookRec); err != nil {
		return rc, err
	}
	rc.Records++

	for i, ch := range m.Chapters {
		rec := ChapterRecord{
			BookID:    rc.BookID,
			Position:  i + 1,
			Number:    ch.Number,
			Title:     ch.Title,
			Filename:  ch.Filename,
			ObjectKey: ChapterKey(m.BookSlug, ch.Filename),
		}
		if err := p.putRecord(ctx, ChaptersCollection, ChapterRecordID(rc.BookID, i+1), rec); err != nil {
			return rc, err
		}
		rc.Records++
	}

	p.logger.Info("published", "book", m.BookSlug, "id", rc.BookID, "objects", rc.Objects, "records", rc.Records)
	return rc, nil
}

func (p *Publisher) putFile(ctx context.Context, key, path string) error {
	body, err := os.ReadFile(path) // #nosec G304 -- path built from the book layout
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	ct := mime.TypeByExtension(filepath.Ext(path))
	if ct == "" {
		ct = "application/octet-stream"
	}
	p.logger.Debug("upload object", "key", key, "bytes", len(body))
	return p.retry.Do(ctx, "put "+key, func(ctx context.Context) error {
		return p.objects.Put(ctx, key, body, ct)
	})
}

func (p *Publisher) putRecord(ctx context.Context, collection, id string, rec any) error {
	p.logger.Debug("upload record", "collection", collection, "id", id)
	return p.retry.Do(ctx, "record "+collection+"/"+id, func(ctx context.Context) error {
		return p.docs.PutRecord(ctx, collection, id, rec)
	})
}

// ChapterKey returns the object key of a chapter page.
func ChapterKey(slug, filename string) string {
	return "books/" + slug + "/chapters/" + filename
}

// ImageKey returns the object key of an image, rel being slash-separated.
func ImageKey(slug, rel string) string {
	return "books/" + slug + "/images/" + rel
}

// ChunkKey returns the object key of a chunk file.
func ChunkKey(slug, id string) string {
	return "books/" + slug + "/chunks/" + id + book.ChunkFileExt
}

// ChapterRecordID returns the chapters collection id of the chapter at
// manifest position pos (1-based).
func ChapterRecordID(bookID string, pos int) string {
	return fmt.Sprintf("%s#%03d", bookID, pos)
}

type imageFile struct {
	path string
	rel  string
}

// findImages lists image files below dir in lexical order.
func findImages(dir string) ([]imageFile, error) {
	if dir == "" {
		return nil, nil
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, nil
	}

	var out []imageFile
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !imageExts[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		out = append(out, imageFile{path: path, rel: filepath.ToSlash(rel)})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing images in %s: %w", dir, err)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].rel < out[j].rel })
	return out, nil
}

// Images returns the slash-separated paths of the images below dir.
func Images(dir string) ([]string, error) {
	files, err := findImages(dir)
	if err != nil {
		return nil, err
	}
	rels := make([]string, len(files))
	for i, f := range files {
		rels[i] = f.rel
	}
	return rels, nil
}
