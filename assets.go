package md2html

import (
	"errors"

	"github.com/alnah/go-md2html/internal/assets"
)

const (
	// DefaultTheme is the name of the built-in stylesheet picked when a
	// theme is requested without a name.
	DefaultTheme = assets.DefaultTheme

	// DefaultTemplateSet is the name of the built-in page template set.
	DefaultTemplateSet = assets.DefaultTemplateSet
)

// AssetLoader loads stylesheets and page template sets by name.
// Implementations may read from disk, embedded files, a database, etc.
type AssetLoader interface {
	// LoadTheme returns the CSS of the named theme (without .css extension),
	// typically passed to WithStyle.
	// Returns ErrThemeNotFound if the theme doesn't exist.
	LoadTheme(name string) (string, error)

	// LoadTemplateSet returns the post and index page templates of a set.
	// Returns ErrTemplateSetNotFound if the set doesn't exist.
	// Returns ErrIncompleteTemplateSet if one of the two templates is missing.
	LoadTemplateSet(name string) (*TemplateSet, error)
}

// TemplateSet holds html/template sources that wrap fragments into pages.
type TemplateSet struct {
	Name  string // Identifier (built-in name or custom set name)
	Post  string // One converted document
	Index string // Listing of every converted document
}

// NewAssetLoader creates an AssetLoader for dir.
// If dir is empty, only the built-in assets are available.
// If dir is set, {dir}/{name}.css and {dir}/templates/{name}/ take
// precedence over built-in assets of the same name.
//
// Returns ErrInvalidAssetPath if dir is set but not a readable directory.
func NewAssetLoader(dir string) (AssetLoader, error) {
	resolver, err := assets.NewAssetResolver(dir)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return &assetLoaderAdapter{resolver: resolver}, nil
}

// Themes lists the built-in theme names.
func Themes() []string {
	return assets.Themes()
}

// TemplateSets lists the built-in template set names.
func TemplateSets() []string {
	return assets.TemplateSets()
}

// assetLoaderAdapter wraps the internal resolver to return public types
// and errors.
type assetLoaderAdapter struct {
	resolver *assets.AssetResolver
}

func (a *assetLoaderAdapter) LoadTheme(name string) (string, error) {
	content, err := a.resolver.LoadTheme(name)
	if err != nil {
		return "", convertThemeError(err)
	}
	return content, nil
}

func (a *assetLoaderAdapter) LoadTemplateSet(name string) (*TemplateSet, error) {
	ts, err := a.resolver.LoadTemplateSet(name)
	if err != nil {
		return nil, convertTemplateSetError(err)
	}
	return &TemplateSet{Name: ts.Name, Post: ts.Post, Index: ts.Index}, nil
}

// convertThemeError maps an invalid theme name to ErrThemeNotFound.
func convertThemeError(err error) error {
	if errors.Is(err, assets.ErrInvalidAssetName) {
		return wrapError(ErrThemeNotFound, err)
	}
	return convertAssetError(err)
}

// convertTemplateSetError maps an invalid set name to ErrTemplateSetNotFound.
func convertTemplateSetError(err error) error {
	if errors.Is(err, assets.ErrInvalidAssetName) {
		return wrapError(ErrTemplateSetNotFound, err)
	}
	return convertAssetError(err)
}

// convertAssetError maps internal asset errors to public errors.
func convertAssetError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, assets.ErrThemeNotFound):
		return wrapError(ErrThemeNotFound, err)
	case errors.Is(err, assets.ErrTemplateSetNotFound):
		return wrapError(ErrTemplateSetNotFound, err)
	case errors.Is(err, assets.ErrIncompleteTemplateSet):
		return wrapError(ErrIncompleteTemplateSet, err)
	case errors.Is(err, assets.ErrInvalidBasePath),
		errors.Is(err, assets.ErrPathTraversal):
		return wrapError(ErrInvalidAssetPath, err)
	default:
		return err
	}
}

// wrapError keeps the original message and matches the public sentinel
// with errors.Is.
func wrapError(sentinel, original error) error {
	return &wrappedAssetError{sentinel: sentinel, original: original}
}

type wrappedAssetError struct {
	sentinel error
	original error
}

func (e *wrappedAssetError) Error() string {
	return e.original.Error()
}

// Unwrap returns the public sentinel; internal errors stay hidden.
func (e *wrappedAssetError) Unwrap() error {
	return e.sentinel
}

// Compile-time interface check.
var _ AssetLoader = (*assetLoaderAdapter)(nil)
