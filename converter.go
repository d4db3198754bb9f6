package md2html

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/alnah/go-md2html/internal/highlight"
	"github.com/alnah/go-md2html/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.LineEndingPreprocessor)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.MarkdownConverter)(nil)
	_ pipeline.CSSInjector          = (*pipeline.CSSInjection)(nil)
	_ pipeline.CodeHighlighter      = (*highlight.Highlighter)(nil)
)

// DefaultMaxDepth is the nesting limit used without WithMaxDepth.
const DefaultMaxDepth = pipeline.DefaultMaxDepth

// defaultHighlightStyle is used by WithHighlighting("").
const defaultHighlightStyle = highlight.DefaultStyle

// Converter converts Markdown to HTML fragments with a fixed set of options.
// It keeps no per-conversion state and is safe for concurrent use.
type Converter struct {
	cfg         converterConfig
	pipeline    pipeline.Config
	highlighter *highlight.Highlighter
	cssInjector pipeline.CSSInjector
}

// NewConverter creates a Converter. With no options it behaves exactly like
// ToHTML. Returns ErrUnknownStyle or ErrInvalidBaseURL for bad option values.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{cssInjector: &pipeline.CSSInjection{}}
	for _, opt := range opts {
		opt(c)
	}

	c.pipeline = pipeline.Config{
		MaxDepth:   c.cfg.maxDepth,
		UnsafeHTML: c.cfg.unsafeHTML,
		InlineTags: c.cfg.inlineTags,
	}

	if c.cfg.highlightStyle != "" {
		h, err := highlight.New(c.cfg.highlightStyle)
		if err != nil {
			return nil, err
		}
		c.highlighter = h
		c.pipeline.Highlighter = h
	}

	if c.cfg.baseURL != "" {
		resolve, err := pipeline.NewURLResolver(c.cfg.baseURL)
		if err != nil {
			return nil, err
		}
		c.pipeline.ResolveURL = resolve
	}

	return c, nil
}

// Convert parses and renders input. Empty input yields an empty fragment.
// The only errors are ctx being done and recovered internal panics.
func (c *Converter) Convert(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	warnings := &warningSet{}
	cfg := c.pipeline
	cfg.Warn = warnings.add

	mc := pipeline.NewMarkdownConverter(cfg)
	convert := mc.Convert
	if ctx.Done() == nil {
		// Never cancelled: no goroutine needed.
		convert = mc.ConvertSync
	}

	doc, err := convert(ctx, input.Markdown)
	if err != nil {
		return nil, err
	}

	html := doc.HTML
	if c.cfg.css != "" {
		html = c.cssInjector.InjectCSS(ctx, html, c.cfg.css)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}

	return &Result{
		HTML:     html,
		Blocks:   doc.Blocks,
		Warnings: warnings.list(),
	}, nil
}

// WriteHighlightCSS writes the stylesheet for the token classes emitted by
// WithHighlighting.
func (c *Converter) WriteHighlightCSS(w io.Writer) error {
	if c.highlighter == nil {
		return ErrHighlightingDisabled
	}
	return c.highlighter.WriteCSS(w)
}

// HighlightStyles returns the style names accepted by WithHighlighting.
func HighlightStyles() []string {
	return highlight.Styles()
}

// warningSet collects distinct warnings. The same construct can be reached
// more than once (a paragraph is parsed inline once per render), so reports
// are keyed by message.
type warningSet struct {
	mu    sync.Mutex
	seen  map[string]bool
	items []error
}

func (w *warningSet) add(err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.seen == nil {
		w.seen = make(map[string]bool)
	}
	msg := err.Error()
	if w.seen[msg] {
		return
	}
	w.seen[msg] = true
	w.items = append(w.items, err)
}

func (w *warningSet) list() []error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.items
}
