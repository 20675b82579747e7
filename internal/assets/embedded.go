package assets

import (
	"embed"
	"fmt"
	"path"
)

//go:embed styles/*.css templates/*.html
var builtin embed.FS

// EmbeddedLoader serves the stylesheets and templates shipped with the binary.
type EmbeddedLoader struct{}

func NewEmbeddedLoader() *EmbeddedLoader { return &EmbeddedLoader{} }

func (*EmbeddedLoader) LoadStyle(name string) (string, error) {
	return readBuiltin(kindStyle, name)
}

func (*EmbeddedLoader) LoadTemplate(name string) (string, error) {
	return readBuiltin(kindTemplate, name)
}

func readBuiltin(k kind, name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}
	data, err := builtin.ReadFile(path.Join(k.dir, name+k.ext))
	if err != nil {
		return "", fmt.Errorf("%w: %q", k.notFound, name)
	}
	return string(data), nil
}

var _ AssetLoader = (*EmbeddedLoader)(nil)
