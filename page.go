package md2html

import (
	"github.com/alnah/go-md2html/internal/pipeline"
)

// DefaultExcerptLength is the excerpt size, in characters, used by Excerpt
// callers that list documents on an index page.
const DefaultExcerptLength = pipeline.DefaultExcerptLength

// PostPage is the data a post template receives. CSS goes in the head;
// Content is the fragment from Convert and is inserted verbatim. Every other
// field is escaped by html/template.
type PostPage = pipeline.PostPage

// IndexPage is the data an index template receives.
type IndexPage = pipeline.IndexPage

// IndexEntry is one document listed on the index page.
type IndexEntry = pipeline.IndexEntry

// PageRenderer wraps converted fragments into standalone HTML pages using a
// TemplateSet. It is safe for concurrent use.
type PageRenderer = pipeline.PageRenderer

// NewPageRenderer parses both templates of ts.
// Returns an error wrapping ErrPageRender if either fails to parse.
func NewPageRenderer(ts *TemplateSet) (*PageRenderer, error) {
	return pipeline.NewPageRenderer(ts.Post, ts.Index)
}

// Excerpt returns the plain text of the first paragraph of an HTML
// fragment, cut to limit characters with "..." appended when longer.
// A limit of 0 or less keeps the whole paragraph.
func Excerpt(fragment string, limit int) string {
	return pipeline.Excerpt(fragment, limit)
}
