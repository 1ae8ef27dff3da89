package assets

import (
	"fmt"
	"strings"
)

// maxAssetNameLength bounds style names; they end up in file paths.
const maxAssetNameLength = 64

// ValidateAssetName checks that name can be used as a bare file name:
// non-empty, bounded, and free of separators and dots.
func ValidateAssetName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	case len(name) > maxAssetNameLength:
		return fmt.Errorf("%w: longer than %d characters", ErrInvalidAssetName, maxAssetNameLength)
	case strings.ContainsAny(name, "/\\."):
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
