// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"path/filepath"
	"strconv"
	"strings"
)

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-md2html/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(filepath.ToSlash(p), "go-md2html/") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound lists the highlight styles that can be used instead.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForThemeNotFound lists the built-in themes and, when set, where custom
// themes are looked up.
func ForThemeNotFound(available []string, themeDir string) string {
	hint := "built-in: " + strings.Join(available, ", ")
	if themeDir != "" {
		hint += "; custom themes are read from " + filepath.Join(themeDir, "NAME.css")
	}
	return format(hint)
}

// ForTemplateSetNotFound lists the built-in template sets and, when set,
// where custom sets are looked up.
func ForTemplateSetNotFound(available []string, themeDir string) string {
	hint := "built-in: " + strings.Join(available, ", ")
	if themeDir != "" {
		hint += "; custom sets are read from " + filepath.Join(themeDir, "templates", "NAME")
	}
	return format(hint)
}

// ForIndexCollision explains why a document cannot be named like the index.
func ForIndexCollision() string {
	return format("rename the document or convert without --index")
}

// ForNestingTooDeep suggests raising the nesting limit.
func ForNestingTooDeep(limit int) string {
	if limit <= 0 {
		return format("raise the limit with --max-depth")
	}
	return format("content nested deeper than " + strconv.Itoa(limit) + " levels is kept as text; raise it with --max-depth")
}

// ForNoMarkdownFiles explains which files a directory walk picks up.
func ForNoMarkdownFiles(extensions []string) string {
	return format("only files ending in " + strings.Join(extensions, " or ") + " are converted")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
