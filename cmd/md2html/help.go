package main

import (
	"fmt"
	"io"

	md2html "github.com/alnah/go-md2html"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2html <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert     Convert markdown files to HTML fragments")
	fmt.Fprintln(w, "  styles      List syntax highlighting styles")
	fmt.Fprintln(w, "  themes      List built-in stylesheets")
	fmt.Fprintln(w, "  templates   List built-in page template sets")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'md2html help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2html convert <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert markdown files to HTML fragments (no <html>, <head> or <body>),")
	fmt.Fprintln(w, "or to standalone pages with --page.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file or directory (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output .html file or directory")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto, max 32)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Markdown:")
	fmt.Fprintln(w, "      --max-depth <n>       Max nesting of quotes, lists and emphasis (default 32)")
	fmt.Fprintln(w, "      --unsafe-html         Pass every inline tag and script URL through")
	fmt.Fprintln(w, "      --inline-tags <list>  Extra inline tags to allow: sl-badge,x-icon")
	fmt.Fprintln(w, "      --base-url <url|dir>  Resolve relative links and images")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Highlighting:")
	fmt.Fprintln(w, "      --highlight[=style]   Highlight fenced code (default style: github)")
	fmt.Fprintln(w, "      --highlight-css <f>   Write the matching stylesheet to a file")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "      --embed-css           Prepend a <style> block to each fragment")
	fmt.Fprintln(w, "      --css <path>          CSS file to embed")
	fmt.Fprintln(w, "      --theme[=name]        Embed a stylesheet by name (default: default)")
	fmt.Fprintln(w, "      --theme-dir <dir>     Look up NAME.css and templates/NAME here first")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Pages:")
	fmt.Fprintln(w, "      --page[=set]          Wrap each fragment in a page (default set: default)")
	fmt.Fprintln(w, "      --index               Also write index.html listing every page")
	fmt.Fprintln(w, "      --site-title <s>      Site name for page titles and the index heading")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Frontmatter:")
	fmt.Fprintln(w, "      --no-frontmatter      Keep a leading --- block in the body")
	fmt.Fprintln(w, "      --meta                Write NAME.meta.yaml with title, date and tags")
	fmt.Fprintln(w, "      --date-format <s>     Reformat the date: preset or tokens")
	fmt.Fprintln(w, "                            Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D")
	fmt.Fprintln(w, "                            Presets (case-insensitive): iso, european, us, long")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show timing and nesting warnings")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MD2HTML_CONFIG, MD2HTML_INPUT_DIR, MD2HTML_OUTPUT_DIR, MD2HTML_HIGHLIGHT,")
	fmt.Fprintln(w, "  MD2HTML_THEME, MD2HTML_MAX_DEPTH, MD2HTML_BASE_URL, MD2HTML_DATE_FORMAT,")
	fmt.Fprintln(w, "  MD2HTML_WORKERS, MD2HTML_TEMPLATE, MD2HTML_SITE_TITLE")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "styles":
		fmt.Fprintln(env.Stdout, "Usage: md2html styles")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "List the style names accepted by --highlight.")
	case "themes":
		fmt.Fprintln(env.Stdout, "Usage: md2html themes")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "List the stylesheet names accepted by --theme.")
	case "templates":
		fmt.Fprintln(env.Stdout, "Usage: md2html templates")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "List the template set names accepted by --page.")
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: md2html version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: md2html help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "unknown command: %s\n\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}

// runThemes lists built-in theme names, one per line.
func runThemes(env *Environment) {
	for _, name := range md2html.Themes() {
		fmt.Fprintln(env.Stdout, name)
	}
}

// runTemplates lists built-in template set names, one per line.
func runTemplates(env *Environment) {
	for _, name := range md2html.TemplateSets() {
		fmt.Fprintln(env.Stdout, name)
	}
}

// runStyles lists highlight style names, one per line.
func runStyles(env *Environment) {
	for _, name := range md2html.HighlightStyles() {
		fmt.Fprintln(env.Stdout, name)
	}
}
