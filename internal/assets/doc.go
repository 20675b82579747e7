// Package assets provides the stylesheets injected into chapter pages and
// the templates of generated reports.
//
// # Loader Architecture
//
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - built-in styles and templates (go:embed)
//	    ├── FilesystemLoader  - a book's own assets/ directory
//	    └── AssetResolver     - book assets first, embedded as fallback
//
// A book overrides an asset by placing a file with the same name in
// books/<slug>/assets/styles/<name>.css or assets/templates/<name>.html.
// Names are validated and resolved paths must stay inside the base
// directory, symlinks included.
package assets
