// Package ast defines the document tree produced by parsing markdown.
//
// The tree has two closed node families. A [Block] is a line-oriented
// structural element; an [Inline] is a character-level element found inside a
// block's text. Both are sealed: only the types in this package implement
// them, so a type switch over the variants listed here is exhaustive.
//
// Text-bearing blocks ([Paragraph], [Header]) keep their content as raw,
// unresolved markdown. Inline markup is parsed when the tree is rendered.
//
// Nodes are built once by the parser and never mutated afterwards. Each node
// is owned by exactly one parent, or is a top-level block of a document.
package ast

// Block is a structural markdown element.
type Block interface {
	blockNode()
}

// Inline is a character-level markdown element.
type Inline interface {
	inlineNode()
}

// Paragraph is a run of text lines joined with single spaces.
type Paragraph struct {
	Text string // raw inline markdown
}

// Header is an ATX header.
type Header struct {
	Level int    // 1-6
	Text  string // raw inline markdown
}

// CodeBlock is a fenced code block. Content is literal.
type CodeBlock struct {
	Content  string
	Language string // empty when the fence has no info string
}

// Blockquote holds the blocks parsed from its stripped quote lines.
type Blockquote struct {
	Children []Block
}

// UnorderedList is a bullet list.
type UnorderedList struct {
	Items []*ListItem
}

// OrderedList is a numbered list. Start is the first item's number.
type OrderedList struct {
	Items []*ListItem
	Start int
}

// ListItem holds the blocks parsed from one list item.
type ListItem struct {
	Children []Block
}

// HorizontalRule is a thematic break.
type HorizontalRule struct{}

// RawHTML is emitted verbatim.
type RawHTML struct {
	Content string
}

func (*Paragraph) blockNode()      {}
func (*Header) blockNode()         {}
func (*CodeBlock) blockNode()      {}
func (*Blockquote) blockNode()     {}
func (*UnorderedList) blockNode()  {}
func (*OrderedList) blockNode()    {}
func (*ListItem) blockNode()       {}
func (*HorizontalRule) blockNode() {}
func (*RawHTML) blockNode()        {}

// Text is literal text, escaped on output.
type Text struct {
	Content string
}

// Bold is strong emphasis.
type Bold struct {
	Children []Inline
}

// Italic is emphasis.
type Italic struct {
	Children []Inline
}

// Code is a code span. Content is literal and never re-parsed.
type Code struct {
	Content string
}

// Link is a hyperlink; Children is the parsed link text.
type Link struct {
	URL      string
	Title    string // empty when absent
	Children []Inline
}

// Image is an inline image. Alt is literal.
type Image struct {
	URL   string
	Alt   string
	Title string // empty when absent
}

// RawHTMLInline is a tag or entity emitted verbatim.
type RawHTMLInline struct {
	Content string
}

func (*Text) inlineNode()          {}
func (*Bold) inlineNode()          {}
func (*Italic) inlineNode()        {}
func (*Code) inlineNode()          {}
func (*Link) inlineNode()          {}
func (*Image) inlineNode()         {}
func (*RawHTMLInline) inlineNode() {}
