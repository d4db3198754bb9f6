package md2html

import (
	"errors"

	"github.com/alnah/go-md2html/internal/highlight"
	"github.com/alnah/go-md2html/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	// ErrNestingTooDeep wraps every warning in Result.Warnings. The affected
	// construct is rendered as literal text.
	ErrNestingTooDeep = pipeline.ErrNestingTooDeep

	// ErrUnknownStyle is returned by NewConverter when WithHighlighting names
	// a style chroma does not know.
	ErrUnknownStyle = highlight.ErrUnknownStyle

	// ErrInvalidBaseURL is returned by NewConverter when WithBaseURL is given
	// something that is neither an absolute URL nor a directory.
	ErrInvalidBaseURL = pipeline.ErrInvalidBase

	// ErrThemeNotFound is returned by AssetLoader.LoadTheme for a name that
	// is neither in the asset directory nor built in.
	ErrThemeNotFound = errors.New("theme not found")

	// ErrTemplateSetNotFound is returned by AssetLoader.LoadTemplateSet for
	// a set that is neither in the asset directory nor built in.
	ErrTemplateSetNotFound = errors.New("template set not found")

	// ErrIncompleteTemplateSet is returned when a custom template set ships
	// only one of post.html and index.html.
	ErrIncompleteTemplateSet = errors.New("template set missing required template")

	// ErrInvalidAssetPath is returned by NewAssetLoader when the directory
	// cannot be used, and by loads that would leave it.
	ErrInvalidAssetPath = errors.New("invalid asset directory")

	// ErrPageRender is returned when a page template fails to parse or execute.
	ErrPageRender = pipeline.ErrPageRender

	// ErrHighlightingDisabled is returned by WriteHighlightCSS on a converter
	// created without WithHighlighting.
	ErrHighlightingDisabled = errors.New("syntax highlighting is not enabled")
)
