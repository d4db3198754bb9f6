package pipeline

import "strings"

// htmlEscaper replaces the five HTML-significant characters. A Replacer
// works in a single pass, so "&" is never escaped twice.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// EscapeHTML escapes text for use in HTML content and quoted attributes.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}
