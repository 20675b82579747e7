package quickbook

import (
	"fmt"

	"github.com/alnah/go-quickbook/internal/config"
	"github.com/alnah/go-quickbook/internal/fileutil"
)

// Init creates the directory layout of a new book and a commented
// book.yaml. It refuses to overwrite an existing config.
func (s *Service) Init(slug string) (*InitResult, error) {
	layout, err := config.NewLayout(s.booksDir, slug)
	if err != nil {
		return nil, err
	}
	if fileutil.FileExists(layout.ConfigFile()) {
		return nil, fmt.Errorf("%w: %s", ErrBookExists, layout.ConfigFile())
	}

	if err := s.mkdirs(layout.Dirs()...); err != nil {
		return nil, err
	}
	data, err := config.Template(slug)
	if err != nil {
		return nil, fmt.Errorf("building book config: %w", err)
	}
	if err := s.writeFile(layout.ConfigFile(), data); err != nil {
		return nil, err
	}

	s.logger.Info("book created", "slug", slug, "dir", layout.Dir())
	return &InitResult{Dir: layout.Dir(), ConfigFile: layout.ConfigFile()}, nil
}
