package assets

// TemplateSet holds the html/template sources used to wrap fragments into
// standalone pages. Both templates of a set are always present.
type TemplateSet struct {
	Name  string // Identifier (built-in name or custom set name)
	Post  string // Page wrapping one converted document
	Index string // Listing of every converted document
}

// DefaultTemplateSet is the built-in set picked when page output is
// requested without a name.
const DefaultTemplateSet = "default"

// File names inside a template set directory.
const (
	postTemplateFile  = "post.html"
	indexTemplateFile = "index.html"
)

// templatesDir is the template set root, both embedded and under a custom
// asset directory.
const templatesDir = "templates"
