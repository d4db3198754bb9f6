package pipeline

import (
	"context"
	"strings"
)

// CSSInjector defines the contract for attaching a stylesheet to a fragment.
type CSSInjector interface {
	InjectCSS(ctx context.Context, fragment, css string) string
}

// CSSInjection prepends a <style> block to an HTML fragment, so the fragment
// carries its own highlighting rules when embedded in a page.
type CSSInjection struct{}

// InjectCSS returns fragment preceded by a <style> block holding css.
// CSS content is sanitized so it cannot close the style element.
func (s *CSSInjection) InjectCSS(ctx context.Context, fragment, css string) string {
	if css == "" {
		return fragment
	}

	// Check for cancellation
	if ctx.Err() != nil {
		return fragment
	}

	styleBlock := "<style>\n" + strings.TrimSpace(sanitizeCSS(css)) + "\n</style>"
	if fragment == "" {
		return styleBlock
	}
	return styleBlock + topLevelSeparator + fragment
}

// sanitizeCSS escapes sequences that could break out of a <style> block.
func sanitizeCSS(css string) string {
	// Escape </ sequences to prevent closing the style tag prematurely
	return strings.ReplaceAll(css, "</", `<\/`)
}
