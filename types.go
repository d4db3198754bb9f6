package md2html

import (
	"slices"

	"github.com/alnah/go-md2html/ast"
)

// Input is the document to convert.
type Input struct {
	Markdown string
}

// Result is the outcome of one conversion.
type Result struct {
	// HTML is the rendered fragment: no <html>, <head> or <body> wrapper.
	HTML string

	// Blocks is the parsed document, for callers that want to inspect it
	// (for example to pick the first header as a title).
	Blocks []ast.Block

	// Warnings lists each distinct nesting limit hit, in first-seen order.
	// Every entry wraps ErrNestingTooDeep.
	Warnings []error
}

// Title returns the text of the first level-one header, or "".
func (r *Result) Title() string {
	return ast.FirstHeader(r.Blocks, 1)
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds options collected before NewConverter builds the
// pipeline.
type converterConfig struct {
	maxDepth       int
	unsafeHTML     bool
	inlineTags     []string
	highlightStyle string
	baseURL        string
	css            string
}

// WithMaxDepth bounds nesting of blockquotes, list items and emphasis.
// Deeper constructs render as literal text and are reported in Result.Warnings.
// Panics if n < 1 (programmer error, similar to time.NewTicker).
func WithMaxDepth(n int) Option {
	if n < 1 {
		panic("md2html: WithMaxDepth depth must be positive")
	}
	return func(c *Converter) {
		c.cfg.maxDepth = n
	}
}

// WithUnsafeHTML passes every well-formed inline tag through verbatim and
// keeps javascript: and vbscript: link destinations. Use only for trusted input.
func WithUnsafeHTML() Option {
	return func(c *Converter) {
		c.cfg.unsafeHTML = true
	}
}

// WithInlineTags allows extra inline HTML tag names, such as custom elements.
// Tags carrying on* event handler attributes are still rejected.
func WithInlineTags(tags ...string) Option {
	return func(c *Converter) {
		c.cfg.inlineTags = append(slices.Clone(c.cfg.inlineTags), tags...)
	}
}

// WithHighlighting renders fenced code with a known language as chroma token
// spans using CSS classes. An empty style selects "github".
func WithHighlighting(style string) Option {
	return func(c *Converter) {
		if style == "" {
			style = defaultHighlightStyle
		}
		c.cfg.highlightStyle = style
	}
}

// WithBaseURL resolves relative link and image destinations against base.
// base is either an absolute URL ("https://example.com/blog/") or a local
// directory, in which case destinations become file:// URLs.
func WithBaseURL(base string) Option {
	return func(c *Converter) {
		c.cfg.baseURL = base
	}
}

// WithStyle prepends a <style> block holding css to every fragment.
func WithStyle(css string) Option {
	return func(c *Converter) {
		c.cfg.css = css
	}
}
