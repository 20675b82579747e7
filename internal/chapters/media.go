package chapters

import (
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
)

// DefaultMediaPrefix points chapter pages at images published next to the
// chapters directory.
const DefaultMediaPrefix = "../images/"

// RewriteMedia points images extracted by the renderer at their published
// location. An img src inside mediaDir becomes prefix followed by its path
// relative to mediaDir. Other sources (URLs, data URIs, files outside
// mediaDir) are left alone. Documents without images are returned as is.
func RewriteMedia(doc, mediaDir, prefix string) (string, error) {
	if mediaDir == "" || !strings.Contains(strings.ToLower(doc), "<img") {
		return doc, nil
	}

	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		return "", err
	}

	dir := filepath.ToSlash(filepath.Clean(mediaDir))
	absDir := ""
	if abs, err := filepath.Abs(mediaDir); err == nil {
		absDir = filepath.ToSlash(abs)
	}
	rewriteImages(root, func(src string) (string, bool) {
		for _, base := range []string{dir, absDir} {
			if rel, ok := underDir(src, base); ok {
				return prefix + rel, true
			}
		}
		return "", false
	})

	var buf strings.Builder
	if err := html.Render(&buf, root); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// rewriteImages traverses the DOM and replaces img sources accepted by fn.
func rewriteImages(n *html.Node, fn func(string) (string, bool)) {
	if n.Type == html.ElementNode && n.Data == "img" {
		for i, attr := range n.Attr {
			if attr.Key != "src" || isExternal(attr.Val) {
				continue
			}
			if v, ok := fn(attr.Val); ok {
				n.Attr[i].Val = v
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rewriteImages(c, fn)
	}
}

// isExternal reports sources that never point into the media directory.
func isExternal(src string) bool {
	lower := strings.ToLower(src)
	return src == "" ||
		strings.HasPrefix(lower, "http://") ||
		strings.HasPrefix(lower, "https://") ||
		strings.HasPrefix(lower, "data:") ||
		strings.HasPrefix(src, "//") ||
		strings.HasPrefix(src, "#")
}

// underDir returns src relative to dir when src lies strictly inside dir.
// Traversal out of dir is rejected.
func underDir(src, dir string) (string, bool) {
	if dir == "" || dir == "." {
		return "", false
	}
	src = strings.TrimPrefix(src, "file://")
	clean := path.Clean(filepath.ToSlash(src))
	if !strings.HasPrefix(clean, dir+"/") {
		return "", false
	}
	return strings.TrimPrefix(clean, dir+"/"), true
}
