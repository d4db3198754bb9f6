package pipeline

import (
	"regexp"
	"strings"

	"github.com/alnah/go-md2html/ast"
)

// specialChars stop a plain text run.
const specialChars = "`*_![<&"

// destinationPattern matches the inside of "(...)": a URL, then an optional
// double-quoted title.
var destinationPattern = regexp.MustCompile(`^(\S+)(?:\s+"([^"]+)")?$`)

// InlineParser turns a flat span of text into inline nodes.
// It is safe for concurrent use.
type InlineParser struct {
	cfg  Config
	tags *tagPolicy
}

// NewInlineParser creates an InlineParser.
func NewInlineParser(cfg Config) *InlineParser {
	return &InlineParser{cfg: cfg, tags: newTagPolicy(cfg)}
}

// ParseInlines parses text with the default configuration.
func ParseInlines(text string) []ast.Inline {
	return NewInlineParser(Config{}).Parse(text)
}

// Parse returns inline nodes covering all of text, in order.
func (p *InlineParser) Parse(text string) []ast.Inline {
	return p.parse(text, 0)
}

// inlineRule tries to match at text[start]. On success it returns the node
// and the number of bytes consumed.
type inlineRule func(text string, start, depth int) (ast.Inline, int, bool)

func (p *InlineParser) parse(text string, depth int) []ast.Inline {
	// Priority order. Plain text is the fallback.
	rules := [...]inlineRule{
		p.codeSpan,
		p.image,
		p.link,
		p.bold,
		p.italic,
		p.rawHTML,
	}

	var nodes []ast.Inline
	for i := 0; i < len(text); {
		node, n := p.match(rules[:], text, i, depth)
		nodes = append(nodes, node)
		i += n
	}
	return nodes
}

func (p *InlineParser) match(rules []inlineRule, text string, start, depth int) (ast.Inline, int) {
	for _, rule := range rules {
		if node, n, ok := rule(text, start, depth); ok {
			return node, n
		}
	}
	return plainText(text, start)
}

// nests reports whether content found at depth may be parsed recursively.
// Reaching the limit is reported once per refused construct.
func (p *InlineParser) nests(depth int, what string) bool {
	if depth < p.cfg.maxDepth() {
		return true
	}
	p.cfg.warnf("%s at inline depth %d", what, depth+1)
	return false
}

func (p *InlineParser) codeSpan(text string, start, _ int) (ast.Inline, int, bool) {
	if text[start] != '`' {
		return nil, 0, false
	}
	end := strings.IndexByte(text[start+1:], '`')
	if end < 0 {
		return nil, 0, false
	}
	return &ast.Code{Content: text[start+1 : start+1+end]}, end + 2, true
}

func (p *InlineParser) image(text string, start, _ int) (ast.Inline, int, bool) {
	if !strings.HasPrefix(text[start:], "![") {
		return nil, 0, false
	}
	ref, ok := splitReference(text, start+2)
	if !ok {
		return nil, 0, false
	}
	return &ast.Image{URL: ref.url, Alt: ref.label, Title: ref.title}, ref.end - start, true
}

func (p *InlineParser) link(text string, start, depth int) (ast.Inline, int, bool) {
	if text[start] != '[' {
		return nil, 0, false
	}
	ref, ok := splitReference(text, start+1)
	if !ok || !p.nests(depth, "link") {
		return nil, 0, false
	}
	return &ast.Link{
		URL:      ref.url,
		Title:    ref.title,
		Children: p.parse(ref.label, depth+1),
	}, ref.end - start, true
}

func (p *InlineParser) bold(text string, start, depth int) (ast.Inline, int, bool) {
	if start+1 >= len(text) {
		return nil, 0, false
	}
	delim := text[start : start+2]
	if delim != "**" && delim != "__" {
		return nil, 0, false
	}
	end := strings.Index(text[start+2:], delim)
	if end < 0 || !p.nests(depth, "bold") {
		return nil, 0, false
	}
	content := text[start+2 : start+2+end]
	return &ast.Bold{Children: p.parse(content, depth+1)}, end + 4, true
}

// italic matches a single "*" or "_" up to the next single copy of the same
// character. A doubled delimiter belongs to bold, so doubled pairs are
// skipped while looking for the close.
func (p *InlineParser) italic(text string, start, depth int) (ast.Inline, int, bool) {
	c := text[start]
	if c != '*' && c != '_' {
		return nil, 0, false
	}
	if start+1 < len(text) && text[start+1] == c {
		return nil, 0, false
	}

	for end := start + 1; end < len(text); end++ {
		if text[end] != c {
			continue
		}
		if end+1 < len(text) && text[end+1] == c {
			end++
			continue
		}
		if !p.nests(depth, "italic") {
			return nil, 0, false
		}
		content := text[start+1 : end]
		return &ast.Italic{Children: p.parse(content, depth+1)}, end - start + 1, true
	}
	return nil, 0, false
}

func (p *InlineParser) rawHTML(text string, start, _ int) (ast.Inline, int, bool) {
	var raw string
	switch text[start] {
	case '&':
		raw = matchEntity(text[start:])
	case '<':
		raw = p.tags.matchTag(text[start:])
	}
	if raw == "" {
		return nil, 0, false
	}
	return &ast.RawHTMLInline{Content: raw}, len(raw), true
}

// plainText consumes up to the next special character. A special character
// that no rule accepted is consumed alone, so scanning always advances.
func plainText(text string, start int) (ast.Inline, int) {
	n := strings.IndexAny(text[start:], specialChars)
	switch {
	case n < 0:
		n = len(text) - start
	case n == 0:
		n = 1
	}
	return &ast.Text{Content: text[start : start+n]}, n
}

// reference is the parsed "label](url "title")" tail shared by links and
// images.
type reference struct {
	label string
	url   string
	title string
	end   int // index just past ")"
}

// splitReference parses a reference whose label starts at labelStart. The
// label ends at the first "]", which must be followed by "("; the
// destination ends at the first ")" after that.
func splitReference(text string, labelStart int) (reference, bool) {
	closeBracket := strings.IndexByte(text[labelStart:], ']')
	if closeBracket < 0 {
		return reference{}, false
	}
	closeBracket += labelStart
	if closeBracket+1 >= len(text) || text[closeBracket+1] != '(' {
		return reference{}, false
	}

	destStart := closeBracket + 2
	closeParen := strings.IndexByte(text[destStart:], ')')
	if closeParen < 0 {
		return reference{}, false
	}
	closeParen += destStart

	m := destinationPattern.FindStringSubmatch(text[destStart:closeParen])
	if m == nil {
		return reference{}, false
	}
	return reference{
		label: text[labelStart:closeBracket],
		url:   m[1],
		title: m[2],
		end:   closeParen + 1,
	}, true
}
