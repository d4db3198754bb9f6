package assets

import "errors"

// AssetResolver tries a custom asset directory first and falls back to the
// built-in assets when a name is not found there.
type AssetResolver struct {
	custom   AssetLoader // nil if no custom directory configured
	embedded AssetLoader
}

// NewAssetResolver creates an AssetResolver. An empty customBasePath uses
// the built-in assets only.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	resolver := &AssetResolver{
		embedded: NewEmbeddedLoader(),
	}

	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		resolver.custom = fsLoader
	}

	return resolver, nil
}

// LoadTheme loads a theme, trying the custom directory first if available.
func (r *AssetResolver) LoadTheme(name string) (string, error) {
	if r.custom == nil {
		return r.embedded.LoadTheme(name)
	}

	content, err := r.custom.LoadTheme(name)
	if !errors.Is(err, ErrThemeNotFound) {
		return content, err
	}
	return r.embedded.LoadTheme(name)
}

// LoadTemplateSet loads a template set, trying the custom directory first.
// An incomplete custom set is an error, not a reason to fall back.
func (r *AssetResolver) LoadTemplateSet(name string) (*TemplateSet, error) {
	if r.custom == nil {
		return r.embedded.LoadTemplateSet(name)
	}

	ts, err := r.custom.LoadTemplateSet(name)
	if !errors.Is(err, ErrTemplateSetNotFound) {
		return ts, err
	}
	return r.embedded.LoadTemplateSet(name)
}

// HasCustomLoader reports whether a custom asset directory is configured.
func (r *AssetResolver) HasCustomLoader() bool {
	return r.custom != nil
}

// Compile-time interface check.
var _ AssetLoader = (*AssetResolver)(nil)
