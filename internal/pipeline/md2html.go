package pipeline

import (
	"context"

	"github.com/alnah/go-md2html/ast"
)

// HTMLConverter abstracts Markdown to HTML conversion.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// Document is the output of one conversion.
type Document struct {
	HTML   string
	Blocks []ast.Block
}

// MarkdownConverter runs preprocessing, block parsing and rendering with one
// configuration.
type MarkdownConverter struct {
	preprocessor MarkdownPreprocessor
	blocks       *BlockParser
	renderer     *Renderer
}

// NewMarkdownConverter creates a MarkdownConverter.
func NewMarkdownConverter(cfg Config) *MarkdownConverter {
	return &MarkdownConverter{
		preprocessor: &LineEndingPreprocessor{},
		blocks:       NewBlockParser(cfg),
		renderer:     NewRenderer(cfg),
	}
}

// ToHTML converts Markdown body text to an HTML fragment.
func (c *MarkdownConverter) ToHTML(ctx context.Context, content string) (string, error) {
	doc, err := c.Convert(ctx, content)
	if err != nil {
		return "", err
	}
	return doc.HTML, nil
}

// Convert parses and renders content. Parsing itself cannot fail; the only
// error is ctx being done. Parsing runs in a goroutine so a caller blocked on
// a large document can still give up when ctx is cancelled.
func (c *MarkdownConverter) Convert(ctx context.Context, content string) (*Document, error) {
	// Fast path: check context before starting
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	done := make(chan *Document, 1)

	go func() {
		done <- c.convert(ctx, content)
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case doc := <-done:
		return doc, nil
	}
}

// ConvertSync is Convert without the goroutine, for callers that already
// run on a worker.
func (c *MarkdownConverter) ConvertSync(ctx context.Context, content string) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return c.convert(ctx, content), nil
}

func (c *MarkdownConverter) convert(ctx context.Context, content string) *Document {
	text := c.preprocessor.PreprocessMarkdown(ctx, content)
	blocks := c.blocks.Parse(text)
	return &Document{HTML: c.renderer.Render(blocks), Blocks: blocks}
}
