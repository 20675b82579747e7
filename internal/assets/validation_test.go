package assets

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateAssetName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		wantErr bool
	}{
		{"reader", false},
		{"my-style", false},
		{"my_style2", false},
		{"Sepia", false},
		{"", true},
		{"../secret", true},
		{`..\secret`, true},
		{"style.css", true},
		{"/etc/passwd", true},
		{"two words", true},
		{"café", true},
		{strings.Repeat("a", 64), false},
		{strings.Repeat("a", 65), true},
	}

	for _, tt := range tests {
		err := ValidateAssetName(tt.input)
		if tt.wantErr && !errors.Is(err, ErrInvalidAssetName) {
			t.Errorf("ValidateAssetName(%q) error = %v, want ErrInvalidAssetName", tt.input, err)
		}
		if !tt.wantErr && err != nil {
			t.Errorf("ValidateAssetName(%q) unexpected error: %v", tt.input, err)
		}
	}
}
