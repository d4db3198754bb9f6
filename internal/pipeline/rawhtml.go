package pipeline

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Precompiled raw HTML patterns. Both are anchored at the scan position.
var (
	entityPattern = regexp.MustCompile(`^(?:&[a-zA-Z]+;|&#[0-9]+;|&#x[0-9a-fA-F]+;)`)

	// Opening, closing or self-closing tag with optional attributes. A
	// quoted value must close with the quote it opened with.
	tagPattern = regexp.MustCompile(`^</?([a-zA-Z][a-zA-Z0-9-]*)(?:\s+[a-zA-Z][a-zA-Z0-9-]*(?:=(?:"[^"<>]*"|'[^'<>]*'|[^\s"'<>=]+))?)*\s*/?>`)
)

// defaultInlineTags are phrasing elements that carry no URL and cannot
// execute anything.
var defaultInlineTags = []atom.Atom{
	atom.Abbr, atom.B, atom.Bdi, atom.Bdo, atom.Br, atom.Cite, atom.Code,
	atom.Data, atom.Del, atom.Dfn, atom.Em, atom.I, atom.Ins, atom.Kbd,
	atom.Mark, atom.Q, atom.S, atom.Samp, atom.Small, atom.Span, atom.Strong,
	atom.Sub, atom.Sup, atom.Time, atom.U, atom.Var, atom.Wbr,
}

// tagPolicy decides which well-formed inline tags pass through verbatim.
type tagPolicy struct {
	unsafe  bool
	allowed map[string]struct{}
}

func newTagPolicy(cfg Config) *tagPolicy {
	p := &tagPolicy{
		unsafe:  cfg.UnsafeHTML,
		allowed: make(map[string]struct{}, len(defaultInlineTags)+len(cfg.InlineTags)),
	}
	for _, a := range defaultInlineTags {
		p.allowed[a.String()] = struct{}{}
	}
	for _, name := range cfg.InlineTags {
		p.allowed[strings.ToLower(name)] = struct{}{}
	}
	return p
}

// allows reports whether the matched tag raw named name may be emitted
// unescaped.
func (p *tagPolicy) allows(name, raw string) bool {
	if p.unsafe {
		return true
	}
	if _, ok := p.allowed[strings.ToLower(name)]; !ok {
		return false
	}
	return safeTag(raw)
}

// safeTag tokenizes raw the way a browser would. It must come out as one
// complete tag token spanning all of raw, with no event handler attribute
// and no script URL in any value.
func safeTag(raw string) bool {
	z := html.NewTokenizer(strings.NewReader(raw))
	switch z.Next() {
	case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
	default:
		return false
	}
	if len(z.Raw()) != len(raw) {
		return false
	}

	for _, attr := range z.Token().Attr {
		if strings.HasPrefix(strings.ToLower(attr.Key), "on") || hasScriptScheme(attr.Val) {
			return false
		}
	}
	return true
}

// matchEntity returns the entity at the start of s, or "".
func matchEntity(s string) string {
	return entityPattern.FindString(s)
}

// matchTag returns the tag at the start of s if the policy allows it, or "".
func (p *tagPolicy) matchTag(s string) string {
	m := tagPattern.FindStringSubmatch(s)
	if m == nil || !p.allows(m[1], m[0]) {
		return ""
	}
	return m[0]
}
