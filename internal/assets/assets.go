package assets

import (
	"io/fs"
	"sort"
	"strings"
)

// Built-in asset names.
const (
	DefaultStyleName = "reader"
	ReportStyleName  = "report"
	ReportTemplate   = "report"
)

// AssetLoader resolves stylesheets and page templates by bare name.
// Implementations report ErrStyleNotFound or ErrTemplateNotFound for
// unknown names and ErrInvalidAssetName for names that could escape
// their directory.
type AssetLoader interface {
	LoadStyle(name string) (string, error)
	LoadTemplate(name string) (string, error)
}

// defaultLoader serves the assets compiled into the binary.
var defaultLoader = NewEmbeddedLoader()

// LoadStyle loads a CSS file by name using the default embedded loader.
// The name should not include the .css extension or path components.
func LoadStyle(name string) (string, error) {
	return defaultLoader.LoadStyle(name)
}

// LoadTemplate loads an HTML template by name using the default embedded loader.
func LoadTemplate(name string) (string, error) {
	return defaultLoader.LoadTemplate(name)
}

// Styles lists the names of the embedded styles, sorted.
func Styles() []string {
	entries, err := fs.ReadDir(builtin, kindStyle.dir)
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if name, ok := strings.CutSuffix(e.Name(), ".css"); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
