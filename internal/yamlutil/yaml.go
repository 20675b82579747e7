// Package yamlutil is the single place book.yaml bytes meet the YAML library.
package yamlutil

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxConfigSize caps the size of a book configuration. Chapter title maps
// for long books stay well under it.
const MaxConfigSize = 256 << 10

var (
	ErrNilData        = errors.New("yaml: empty document")
	ErrNilDestination = errors.New("yaml: nil destination")
	ErrInputTooLarge  = errors.New("yaml: document too large")
)

// Marshal writes v in block style with indented sequences, the shape the
// book.yaml template uses.
func Marshal(v any) ([]byte, error) {
	out, err := yaml.MarshalWithOptions(v, yaml.IndentSequence(true), yaml.UseLiteralStyleIfMultiline(true))
	if err != nil {
		return nil, fmt.Errorf("yaml: %w", err)
	}
	return out, nil
}

// UnmarshalStrict decodes data into v and fails on keys v does not declare,
// so a misspelled chapterTitles is reported instead of ignored. Parser
// errors keep their line and column.
func UnmarshalStrict(data []byte, v any) error {
	switch {
	case len(data) == 0:
		return ErrNilData
	case len(data) > MaxConfigSize:
		return fmt.Errorf("%w: %d bytes, limit %d", ErrInputTooLarge, len(data), MaxConfigSize)
	case v == nil:
		return ErrNilDestination
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yaml: %s", yaml.FormatError(err, false, false))
	}
	return nil
}
