package pipeline

import (
	"context"
	"regexp"
	"strings"
)

// byteOrderMark is dropped from the start of input.
const byteOrderMark = "\uFEFF"

// Line ending normalization
var crlfOrCR = regexp.MustCompile(`\r\n?`)

// MarkdownPreprocessor defines the contract for markdown preprocessing.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// LineEndingPreprocessor prepares raw text for line-based block parsing.
// It changes nothing but line terminators and a leading byte order mark, so
// code block content survives byte for byte.
type LineEndingPreprocessor struct{}

// PreprocessMarkdown applies all transformations to prepare Markdown for parsing.
func (p *LineEndingPreprocessor) PreprocessMarkdown(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}

	content = strings.TrimPrefix(content, byteOrderMark)
	return normalizeLineEndings(content)
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	if !strings.ContainsRune(content, '\r') {
		return content
	}
	return crlfOrCR.ReplaceAllString(content, "\n")
}
