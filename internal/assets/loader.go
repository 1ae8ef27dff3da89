package assets

// AssetLoader loads CSS styles by name.
// Implementations may read from embedded files, a directory, or anything else.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist and
	// ErrInvalidAssetName if the name is not a plain identifier.
	LoadStyle(name string) (string, error)
}
