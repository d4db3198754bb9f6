package pipeline

import (
	"strconv"
	"strings"

	"github.com/alnah/go-md2html/ast"
)

// Separators between rendered blocks.
const (
	topLevelSeparator = "\n\n"
	childSeparator    = "\n"
)

// CodeHighlighter renders the body of a fenced code block as HTML.
// Highlight returns false when it does not know the language; the renderer
// then falls back to escaped plain text.
type CodeHighlighter interface {
	Highlight(language, code string) (string, bool)
}

// Renderer serializes a block tree to an HTML fragment.
// Rendering is a pure function of the tree and the configuration.
type Renderer struct {
	cfg    Config
	inline *InlineParser
}

// NewRenderer creates a Renderer. Inline text is parsed with the same
// configuration.
func NewRenderer(cfg Config) *Renderer {
	return &Renderer{cfg: cfg, inline: NewInlineParser(cfg)}
}

// Render serializes blocks with the default configuration.
func Render(blocks []ast.Block) string {
	return NewRenderer(Config{}).Render(blocks)
}

// Render returns the HTML fragment for blocks. Top-level blocks are
// separated by a blank line.
func (r *Renderer) Render(blocks []ast.Block) string {
	var sb strings.Builder
	r.writeBlocks(&sb, blocks, topLevelSeparator)
	return sb.String()
}

// RenderInlines returns the HTML for a sequence of inline nodes.
func (r *Renderer) RenderInlines(nodes []ast.Inline) string {
	var sb strings.Builder
	r.writeInlines(&sb, nodes)
	return sb.String()
}

func (r *Renderer) writeBlocks(sb *strings.Builder, blocks []ast.Block, sep string) {
	for i, b := range blocks {
		if i > 0 {
			sb.WriteString(sep)
		}
		r.writeBlock(sb, b)
	}
}

func (r *Renderer) writeBlock(sb *strings.Builder, b ast.Block) {
	switch b := b.(type) {
	case *ast.Paragraph:
		sb.WriteString("<p>")
		r.writeText(sb, b.Text)
		sb.WriteString("</p>")

	case *ast.Header:
		level := strconv.Itoa(min(max(b.Level, 1), 6))
		sb.WriteString("<h" + level + ">")
		r.writeText(sb, b.Text)
		sb.WriteString("</h" + level + ">")

	case *ast.CodeBlock:
		r.writeCodeBlock(sb, b)

	case *ast.Blockquote:
		sb.WriteString("<blockquote>\n")
		r.writeBlocks(sb, b.Children, childSeparator)
		sb.WriteString("\n</blockquote>")

	case *ast.UnorderedList:
		sb.WriteString("<ul>\n")
		r.writeItems(sb, b.Items)
		sb.WriteString("\n</ul>")

	case *ast.OrderedList:
		if b.Start != 1 {
			sb.WriteString(`<ol start="` + strconv.Itoa(b.Start) + `">` + "\n")
		} else {
			sb.WriteString("<ol>\n")
		}
		r.writeItems(sb, b.Items)
		sb.WriteString("\n</ol>")

	case *ast.ListItem:
		r.writeItem(sb, b)

	case *ast.HorizontalRule:
		sb.WriteString("<hr>")

	case *ast.RawHTML:
		sb.WriteString(b.Content)
	}
}

func (r *Renderer) writeCodeBlock(sb *strings.Builder, b *ast.CodeBlock) {
	if b.Language == "" {
		sb.WriteString("<pre><code>")
		sb.WriteString(EscapeHTML(b.Content))
		sb.WriteString("</code></pre>")
		return
	}

	sb.WriteString(`<pre><code class="language-` + EscapeHTML(b.Language) + `">`)
	if r.cfg.Highlighter != nil {
		if highlighted, ok := r.cfg.Highlighter.Highlight(b.Language, b.Content); ok {
			sb.WriteString(highlighted)
			sb.WriteString("</code></pre>")
			return
		}
	}
	sb.WriteString(EscapeHTML(b.Content))
	sb.WriteString("</code></pre>")
}

func (r *Renderer) writeItems(sb *strings.Builder, items []*ast.ListItem) {
	for i, item := range items {
		if i > 0 {
			sb.WriteString(childSeparator)
		}
		r.writeItem(sb, item)
	}
}

// writeItem renders an item holding exactly one paragraph inline; any other
// shape wraps its children as blocks.
func (r *Renderer) writeItem(sb *strings.Builder, item *ast.ListItem) {
	if len(item.Children) == 1 {
		if p, ok := item.Children[0].(*ast.Paragraph); ok {
			sb.WriteString("<li>")
			r.writeText(sb, p.Text)
			sb.WriteString("</li>")
			return
		}
	}
	sb.WriteString("<li>\n")
	r.writeBlocks(sb, item.Children, childSeparator)
	sb.WriteString("\n</li>")
}

func (r *Renderer) writeText(sb *strings.Builder, text string) {
	r.writeInlines(sb, r.inline.Parse(text))
}

func (r *Renderer) writeInlines(sb *strings.Builder, nodes []ast.Inline) {
	for _, n := range nodes {
		r.writeInline(sb, n)
	}
}

func (r *Renderer) writeInline(sb *strings.Builder, n ast.Inline) {
	switch n := n.(type) {
	case *ast.Text:
		sb.WriteString(EscapeHTML(n.Content))

	case *ast.Bold:
		sb.WriteString("<strong>")
		r.writeInlines(sb, n.Children)
		sb.WriteString("</strong>")

	case *ast.Italic:
		sb.WriteString("<em>")
		r.writeInlines(sb, n.Children)
		sb.WriteString("</em>")

	case *ast.Code:
		sb.WriteString("<code>")
		sb.WriteString(EscapeHTML(n.Content))
		sb.WriteString("</code>")

	case *ast.Link:
		sb.WriteString(`<a href="` + EscapeHTML(r.resolve(n.URL)) + `"`)
		writeTitle(sb, n.Title)
		sb.WriteString(">")
		r.writeInlines(sb, n.Children)
		sb.WriteString("</a>")

	case *ast.Image:
		sb.WriteString(`<img src="` + EscapeHTML(r.resolve(n.URL)) + `" alt="` + EscapeHTML(n.Alt) + `"`)
		writeTitle(sb, n.Title)
		sb.WriteString(">")

	case *ast.RawHTMLInline:
		sb.WriteString(n.Content)
	}
}

// resolve applies Config.ResolveURL, then neutralizes script URLs unless
// unsafe HTML is enabled.
func (r *Renderer) resolve(url string) string {
	if r.cfg.ResolveURL != nil {
		url = r.cfg.ResolveURL(url)
	}
	if !r.cfg.UnsafeHTML && hasScriptScheme(url) {
		return "#"
	}
	return url
}

func writeTitle(sb *strings.Builder, title string) {
	if title == "" {
		return
	}
	sb.WriteString(` title="` + EscapeHTML(title) + `"`)
}
