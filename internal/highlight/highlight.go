// Package highlight renders fenced code as chroma token spans.
//
// Output uses CSS classes rather than inline styles, so one stylesheet
// (see Highlighter.WriteCSS) serves every converted document.
package highlight

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultStyle is used when no style name is given.
const DefaultStyle = "github"

// ErrUnknownStyle indicates a style name chroma does not know.
var ErrUnknownStyle = errors.New("unknown highlight style")

// Highlighter turns source code into HTML token spans for a fixed style.
// It is safe for concurrent use.
type Highlighter struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

// New creates a Highlighter for the named chroma style.
// An empty name selects DefaultStyle.
func New(styleName string) (*Highlighter, error) {
	if styleName == "" {
		styleName = DefaultStyle
	}
	if !slices.Contains(styles.Names(), styleName) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStyle, styleName)
	}

	return &Highlighter{
		style: styles.Get(styleName),
		formatter: chromahtml.New(
			chromahtml.WithClasses(true), // CSS classes for smaller HTML and external stylesheet control
			chromahtml.PreventSurroundingPre(true),
		),
	}, nil
}

// Highlight returns the token spans for code. It reports false when no lexer
// is registered for language, or when chroma fails; the caller then renders
// plain escaped text.
func (h *Highlighter) Highlight(language, code string) (string, bool) {
	lexer := lexers.Get(language)
	if lexer == nil {
		return "", false
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", false
	}

	var sb strings.Builder
	if err := h.formatter.Format(&sb, h.style, iterator); err != nil {
		return "", false
	}
	return sb.String(), true
}

// WriteCSS writes the stylesheet matching the spans Highlight produces.
func (h *Highlighter) WriteCSS(w io.Writer) error {
	return h.formatter.WriteCSS(w, h.style)
}

// Styles returns the available style names, sorted.
func Styles() []string {
	names := slices.Clone(styles.Names())
	slices.Sort(names)
	return names
}
