package assets

// AssetLoader loads stylesheets and page template sets by name.
type AssetLoader interface {
	// LoadTheme returns the CSS of the named theme (without .css extension).
	// Returns ErrThemeNotFound if the theme doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadTheme(name string) (string, error)

	// LoadTemplateSet returns the post and index templates of the named set.
	// Returns ErrTemplateSetNotFound if neither template exists and
	// ErrIncompleteTemplateSet if only one does.
	LoadTemplateSet(name string) (*TemplateSet, error)
}
