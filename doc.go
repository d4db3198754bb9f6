// Package md2html converts a practical subset of Markdown to HTML fragments.
//
// # Quick Start
//
// For trusted defaults, one call is enough:
//
//	html := md2html.ToHTML("# Hello\n\nSome **bold** text.")
//
// ToHTML never fails. Unterminated emphasis, links or fences degrade to
// literal text, and every character of text content is HTML-escaped.
//
// # Supported Syntax
//
// Blocks: ATX headers (#..######), fenced code with an optional language tag,
// horizontal rules, blockquotes, unordered (-, *, +) and ordered lists, and
// paragraphs. Inline: code spans, images, links with optional titles, bold,
// italic, allowlisted raw HTML tags and character entities.
//
// # Conversion Pipeline
//
//  1. Line endings are normalized to "\n".
//  2. The block parser builds an ast.Block tree.
//  3. The renderer walks the tree and inline-parses text as it serializes.
//
// Parse and Render expose the two halves, so callers can inspect or build
// the tree themselves:
//
//	blocks := md2html.Parse(markdown)
//	title := ast.FirstHeader(blocks, 1)
//	html := md2html.Render(blocks)
//
// # Configuration
//
// Use functional options to customize a Converter:
//
//	conv, err := md2html.NewConverter(
//	    md2html.WithMaxDepth(16),
//	    md2html.WithHighlighting("monokai"),
//	    md2html.WithBaseURL("https://example.com/blog/"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := conv.Convert(ctx, md2html.Input{Markdown: content})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, w := range result.Warnings {
//	    log.Println(w) // nesting limit hits, each wraps ErrNestingTooDeep
//	}
//
// A Converter is safe for concurrent use; one instance can serve a whole
// worker pool.
//
// # Themes and Pages
//
// Built-in stylesheets (see Themes) can be embedded with WithStyle:
//
//	loader, _ := md2html.NewAssetLoader("")
//	css, err := loader.LoadTheme(md2html.DefaultTheme)
//
// A non-empty directory passed to NewAssetLoader is searched for NAME.css
// and templates/NAME/{post,index}.html before the built-ins.
//
// A TemplateSet turns fragments into standalone pages. Content is inserted
// verbatim; titles, dates, tags and excerpts are escaped by html/template:
//
//	ts, _ := loader.LoadTemplateSet(md2html.DefaultTemplateSet)
//	pages, err := md2html.NewPageRenderer(ts)
//	page, err := pages.RenderPost(ctx, &md2html.PostPage{
//	    Title:   result.Title(),
//	    CSS:     css,
//	    Content: result.HTML,
//	})
//
// RenderIndex lists IndexEntry values newest first; Excerpt supplies the
// plain-text preview of each one.
//
// # Raw HTML
//
// Inline tags pass through only when their name is on a small allowlist
// (b, i, em, strong, code, kbd, span, sub, sup, br, mark and similar) and
// they carry no on* event handler. Everything else is escaped. Link and
// image destinations using javascript: or vbscript: render as "#".
// WithUnsafeHTML lifts both restrictions for trusted input.
package md2html
