package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// kind describes where one class of asset lives and how a miss is reported.
type kind struct {
	dir      string
	ext      string
	notFound error
}

var (
	kindStyle    = kind{dir: "styles", ext: ".css", notFound: ErrStyleNotFound}
	kindTemplate = kind{dir: "templates", ext: ".html", notFound: ErrTemplateNotFound}
)

// FilesystemLoader reads <root>/styles/<name>.css and
// <root>/templates/<name>.html, typically from a book's assets directory.
// Files reached through symlinks must still resolve inside root.
type FilesystemLoader struct {
	root string
}

// NewFilesystemLoader fails with ErrInvalidBasePath unless root is an
// existing, readable directory.
func NewFilesystemLoader(root string) (*FilesystemLoader, error) {
	if root == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}

	_, err = os.ReadDir(abs)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("%w: %s does not exist", ErrInvalidBasePath, abs)
	case err != nil:
		// ReadDir on a regular file also lands here.
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	return &FilesystemLoader{root: abs}, nil
}

func (l *FilesystemLoader) LoadStyle(name string) (string, error) {
	return l.read(kindStyle, name)
}

func (l *FilesystemLoader) LoadTemplate(name string) (string, error) {
	return l.read(kindTemplate, name)
}

func (l *FilesystemLoader) read(k kind, name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}
	file := filepath.Join(l.root, k.dir, name+k.ext)
	if err := l.contain(file); err != nil {
		return "", err
	}
	data, err := os.ReadFile(file) // #nosec G304 -- contained in the assets root
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("%w: %q", k.notFound, name)
	case err != nil:
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	return string(data), nil
}

// contain resolves symlinks in file and checks the target is below root.
// A file that does not exist is checked as written.
func (l *FilesystemLoader) contain(file string) error {
	target := file
	if resolved, err := filepath.EvalSymlinks(file); err == nil {
		target = resolved
	}
	if !strings.HasPrefix(target, l.root+string(filepath.Separator)) {
		return fmt.Errorf("%w: %s", ErrPathTraversal, file)
	}
	return nil
}

var _ AssetLoader = (*FilesystemLoader)(nil)
