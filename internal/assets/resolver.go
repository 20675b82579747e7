package assets

import (
	"errors"
	"os"
)

// AssetResolver prefers a book's own assets and falls back to the embedded
// ones for names the book does not provide. Only a miss falls back: an
// invalid name or a read error is returned as is.
type AssetResolver struct {
	book     AssetLoader // nil when the book has no assets directory
	embedded AssetLoader
}

// NewAssetResolver uses bookDir when it exists. An empty or missing bookDir
// leaves only the embedded assets.
func NewAssetResolver(bookDir string) (*AssetResolver, error) {
	r := &AssetResolver{embedded: NewEmbeddedLoader()}
	if bookDir == "" {
		return r, nil
	}
	if info, err := os.Stat(bookDir); err != nil || !info.IsDir() {
		return r, nil
	}
	fsl, err := NewFilesystemLoader(bookDir)
	if err != nil {
		return nil, err
	}
	r.book = fsl
	return r, nil
}

// HasBookAssets reports whether a book assets directory is in use.
func (r *AssetResolver) HasBookAssets() bool { return r.book != nil }

func (r *AssetResolver) LoadStyle(name string) (string, error) {
	return r.first(AssetLoader.LoadStyle, name)
}

func (r *AssetResolver) LoadTemplate(name string) (string, error) {
	return r.first(AssetLoader.LoadTemplate, name)
}

func (r *AssetResolver) first(load func(AssetLoader, string) (string, error), name string) (string, error) {
	if r.book != nil {
		s, err := load(r.book, name)
		if err == nil || !isMiss(err) {
			return s, err
		}
	}
	return load(r.embedded, name)
}

func isMiss(err error) bool {
	return errors.Is(err, ErrStyleNotFound) || errors.Is(err, ErrTemplateNotFound)
}

var _ AssetLoader = (*AssetResolver)(nil)
