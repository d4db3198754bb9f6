package pipeline

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/alnah/go-md2html/ast"
)

const (
	fenceOpen          = "```"
	quoteMarker        = ">"
	continuationIndent = "  "
)

// Precompiled line patterns.
var (
	headerPattern = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)

	// Matched against the trimmed line; one character, no mixing.
	rulePattern = regexp.MustCompile(`^(?:\*\*\*+|---+|___+)$`)

	bulletMarker  = regexp.MustCompile(`^[-*]\s`)
	bulletItem    = regexp.MustCompile(`^[-*]\s+(.+)$`)
	orderedMarker = regexp.MustCompile(`^\d+\.\s`)
	orderedItem   = regexp.MustCompile(`^(\d+)\.\s+(.+)$`)
)

// BlockParser splits text into lines and groups them into blocks.
// A BlockParser holds no per-document state and is safe for concurrent use.
type BlockParser struct {
	cfg Config
}

// NewBlockParser creates a BlockParser.
func NewBlockParser(cfg Config) *BlockParser {
	return &BlockParser{cfg: cfg}
}

// ParseBlocks parses text with the default configuration.
func ParseBlocks(text string) []ast.Block {
	return NewBlockParser(Config{}).Parse(text)
}

// Parse returns the blocks of text in document order. Empty or blank input
// yields no blocks.
func (p *BlockParser) Parse(text string) []ast.Block {
	return p.parse(text, 0)
}

// blockRule tries to match a block at lines[start]. On success it returns
// the block and the number of lines consumed, which is always at least one.
type blockRule func(lines []string, start, depth int) (ast.Block, int, bool)

func (p *BlockParser) parse(text string, depth int) []ast.Block {
	lines := strings.Split(text, "\n")

	var blocks []ast.Block
	for i := 0; i < len(lines); {
		if isBlank(lines[i]) {
			i++
			continue
		}
		block, n := p.parseBlock(lines, i, depth)
		blocks = append(blocks, block)
		i += n
	}
	return blocks
}

func (p *BlockParser) parseBlock(lines []string, start, depth int) (ast.Block, int) {
	// Priority order. Paragraph is the fallback.
	rules := [...]blockRule{
		p.codeBlock,
		p.header,
		p.horizontalRule,
		p.blockquote,
		p.unorderedList,
		p.orderedList,
	}
	for _, rule := range rules {
		if block, n, ok := rule(lines, start, depth); ok {
			return block, n
		}
	}
	return p.paragraph(lines, start, depth)
}

// nests reports whether a container found at depth may parse its children.
func (p *BlockParser) nests(depth int) bool {
	return depth < p.cfg.maxDepth()
}

func (p *BlockParser) codeBlock(lines []string, start, _ int) (ast.Block, int, bool) {
	line := lines[start]
	if !strings.HasPrefix(line, fenceOpen) {
		return nil, 0, false
	}

	width := leadingRun(line, '`')
	language := strings.TrimSpace(line[width:])

	for end := start + 1; end < len(lines); end++ {
		closing := strings.TrimSpace(lines[end])
		if closing != "" && leadingRun(closing, '`') == len(closing) && len(closing) >= width {
			return &ast.CodeBlock{
				Content:  strings.Join(lines[start+1:end], "\n"),
				Language: language,
			}, end - start + 1, true
		}
	}

	// Unterminated: not a code block.
	return nil, 0, false
}

func (p *BlockParser) header(lines []string, start, _ int) (ast.Block, int, bool) {
	m := headerPattern.FindStringSubmatch(lines[start])
	if m == nil {
		return nil, 0, false
	}
	return &ast.Header{Level: len(m[1]), Text: strings.TrimSpace(m[2])}, 1, true
}

func (p *BlockParser) horizontalRule(lines []string, start, _ int) (ast.Block, int, bool) {
	if !isRule(lines[start]) {
		return nil, 0, false
	}
	return &ast.HorizontalRule{}, 1, true
}

func (p *BlockParser) blockquote(lines []string, start, depth int) (ast.Block, int, bool) {
	if !strings.HasPrefix(lines[start], quoteMarker) {
		return nil, 0, false
	}
	if !p.nests(depth) {
		p.cfg.warnf("blockquote at depth %d", depth+1)
		return nil, 0, false
	}

	var quoted []string
	end := start
	for ; end < len(lines); end++ {
		line := lines[end]
		if strings.HasPrefix(line, quoteMarker) {
			quoted = append(quoted, stripQuoteMarker(line))
			continue
		}
		// A blank line stays inside the quote only if quoting resumes.
		if isBlank(line) && end+1 < len(lines) && strings.HasPrefix(lines[end+1], quoteMarker) {
			quoted = append(quoted, "")
			continue
		}
		break
	}

	return &ast.Blockquote{
		Children: p.parse(strings.Join(quoted, "\n"), depth+1),
	}, end - start, true
}

func (p *BlockParser) unorderedList(lines []string, start, depth int) (ast.Block, int, bool) {
	if !bulletItem.MatchString(lines[start]) {
		return nil, 0, false
	}
	if !p.nests(depth) {
		p.cfg.warnf("list item at depth %d", depth+1)
		return nil, 0, false
	}

	items, n := p.listItems(lines, start, depth, bulletMarker, bulletItem)
	return &ast.UnorderedList{Items: items}, n, true
}

func (p *BlockParser) orderedList(lines []string, start, depth int) (ast.Block, int, bool) {
	first, ok := orderedStart(lines[start])
	if !ok {
		return nil, 0, false
	}
	if !p.nests(depth) {
		p.cfg.warnf("list item at depth %d", depth+1)
		return nil, 0, false
	}

	items, n := p.listItems(lines, start, depth, orderedMarker, orderedItem)
	return &ast.OrderedList{Items: items, Start: first}, n, true
}

// listItems consumes consecutive items whose first line matches item. Lines
// indented by two spaces that do not start a new marker continue the current
// item; the indent is stripped and the item's lines are block-parsed on
// their own. The content of an item is the last submatch of item.
func (p *BlockParser) listItems(lines []string, start, depth int, marker, item *regexp.Regexp) ([]*ast.ListItem, int) {
	var items []*ast.ListItem

	i := start
	for i < len(lines) {
		m := item.FindStringSubmatch(lines[i])
		if m == nil {
			break
		}
		content := []string{m[len(m)-1]}
		i++

		for i < len(lines) && strings.HasPrefix(lines[i], continuationIndent) && !marker.MatchString(lines[i]) {
			content = append(content, lines[i][len(continuationIndent):])
			i++
		}

		items = append(items, &ast.ListItem{
			Children: p.parse(strings.Join(content, "\n"), depth+1),
		})
	}

	return items, i - start
}

// paragraph always takes the first line, then absorbs lines until a blank
// line or a line that starts another block. Lines are joined with spaces.
func (p *BlockParser) paragraph(lines []string, start, depth int) (ast.Block, int) {
	end := start + 1
	for end < len(lines) && !isBlank(lines[end]) && !p.interrupts(lines[end], depth) {
		end++
	}
	return &ast.Paragraph{Text: strings.Join(lines[start:end], " ")}, end - start
}

// interrupts reports whether line would start a non-paragraph block. An
// opening fence counts even if it is never closed. Past the nesting limit
// quotes and lists no longer count, matching the rules that would refuse them.
func (p *BlockParser) interrupts(line string, depth int) bool {
	if strings.HasPrefix(line, fenceOpen) || headerPattern.MatchString(line) || isRule(line) {
		return true
	}
	if !p.nests(depth) {
		return false
	}
	if strings.HasPrefix(line, quoteMarker) || bulletItem.MatchString(line) {
		return true
	}
	_, ok := orderedStart(line)
	return ok
}

// orderedStart reports whether line opens an ordered list and returns its
// number. The number must be a positive int.
func orderedStart(line string) (int, bool) {
	m := orderedItem.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

func isRule(line string) bool {
	return rulePattern.MatchString(strings.TrimSpace(line))
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// stripQuoteMarker removes the leading ">" and at most one following space.
func stripQuoteMarker(line string) string {
	line = strings.TrimPrefix(line, quoteMarker)
	return strings.TrimPrefix(line, " ")
}

func leadingRun(s string, c byte) int {
	n := 0
	for n < len(s) && s[n] == c {
		n++
	}
	return n
}
