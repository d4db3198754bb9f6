package pipeline

import (
	"errors"
	"fmt"
)

// ErrNestingTooDeep is reported when a blockquote, list item, emphasis or
// link would nest deeper than Config.MaxDepth. The construct is rendered as
// plain text instead.
var ErrNestingTooDeep = errors.New("nesting too deep")

// DefaultMaxDepth bounds recursive block and inline parsing.
const DefaultMaxDepth = 32

// Config holds the settings shared by the parsers and the renderer.
// The zero value is usable: a zero MaxDepth means DefaultMaxDepth.
type Config struct {
	// MaxDepth bounds nesting of blockquotes and list items, and separately
	// nesting of bold, italic and link text within one span of inline text.
	MaxDepth int

	// UnsafeHTML passes every well-formed inline tag through verbatim.
	// When false only tags on the inline allowlist are passed through.
	UnsafeHTML bool

	// InlineTags extends the inline allowlist with extra tag names.
	InlineTags []string

	// Highlighter renders fenced code that carries a language tag.
	// Nil renders code blocks as escaped plain text.
	Highlighter CodeHighlighter

	// ResolveURL rewrites link and image destinations before escaping.
	// Nil keeps destinations as written.
	ResolveURL func(string) string

	// Warn receives nesting limit reports. Nil discards them.
	Warn func(error)
}

func (c Config) maxDepth() int {
	if c.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return c.MaxDepth
}

func (c Config) warnf(format string, args ...any) {
	if c.Warn == nil {
		return
	}
	c.Warn(fmt.Errorf("%w: "+format, append([]any{ErrNestingTooDeep}, args...)...))
}
