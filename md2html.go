package md2html

import (
	"context"

	"github.com/alnah/go-md2html/ast"
	"github.com/alnah/go-md2html/internal/pipeline"
)

// ToHTML converts a Markdown document to an HTML fragment with default
// settings. It never fails: malformed syntax degrades to literal text.
func ToHTML(markdown string) string {
	return Render(Parse(markdown))
}

// Parse returns the block structure of a Markdown document.
// Line endings are normalized to "\n" first.
func Parse(markdown string) []ast.Block {
	text := (&pipeline.LineEndingPreprocessor{}).PreprocessMarkdown(context.Background(), markdown)
	return pipeline.ParseBlocks(text)
}

// ParseInline returns the inline nodes of a single span of text, such as a
// paragraph or header body.
func ParseInline(text string) []ast.Inline {
	return pipeline.ParseInlines(text)
}

// Render serializes blocks to HTML. Text fields are inline-parsed here, so a
// tree built by hand renders the same as a parsed one.
func Render(blocks []ast.Block) string {
	return pipeline.Render(blocks)
}
