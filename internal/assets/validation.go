package assets

import "fmt"

// maxAssetName bounds style names taken from book.yaml.
const maxAssetName = 64

// ValidateAssetName accepts names made of ASCII letters, digits, '-' and '_'.
// Anything else, including dots and separators, could select a file other
// than <dir>/<name>.<ext>.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if len(name) > maxAssetName {
		return fmt.Errorf("%w: longer than %d characters", ErrInvalidAssetName, maxAssetName)
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
		}
	}
	return nil
}
