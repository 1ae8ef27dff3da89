package md2html

import (
	"errors"
	"fmt"

	"github.com/alnah/go-md2html/internal/assets"
)

// DefaultStyle is the name of the built-in stylesheet.
const DefaultStyle = assets.DefaultStyleName

// StyleNames lists the built-in styles.
func StyleNames() []string {
	return assets.StyleNames()
}

// convertAssetError maps internal asset errors to public sentinels.
func convertAssetError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, assets.ErrStyleNotFound):
		return fmt.Errorf("%w: %v", ErrStyleNotFound, err)
	case errors.Is(err, assets.ErrInvalidBasePath),
		errors.Is(err, assets.ErrInvalidAssetName),
		errors.Is(err, assets.ErrPathTraversal):
		return fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	default:
		return err
	}
}
