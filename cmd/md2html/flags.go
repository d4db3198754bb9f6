package main

import (
	"io"

	flag "github.com/spf13/pflag"

	md2html "github.com/alnah/go-md2html"
	"github.com/alnah/go-md2html/internal/highlight"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// markdownFlags holds parsing and rendering flags.
type markdownFlags struct {
	maxDepth   int
	unsafeHTML bool
	inlineTags []string
	baseURL    string
}

// highlightFlags holds syntax highlighting flags.
type highlightFlags struct {
	style   string // Empty = off unless the config enables it
	cssPath string // Write the matching stylesheet here
}

// styleFlags holds flags for stylesheets embedded in each fragment.
type styleFlags struct {
	embed    bool
	cssFile  string
	theme    string
	themeDir string
}

// frontmatterFlags holds metadata block flags.
type frontmatterFlags struct {
	keep       bool
	meta       bool
	dateFormat string
}

// pageFlags holds standalone page and index flags.
type pageFlags struct {
	template  string // Empty = fragments only
	index     bool   // Implies page output
	siteTitle string
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common      commonFlags
	output      string
	workers     int
	markdown    markdownFlags
	highlight   highlightFlags
	style       styleFlags
	frontmatter frontmatterFlags
	page        pageFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show timing and nesting warnings")
}

// addMarkdownFlags adds parsing and rendering flags to a FlagSet.
func addMarkdownFlags(fs *flag.FlagSet, f *markdownFlags) {
	fs.IntVar(&f.maxDepth, "max-depth", 0, "max nesting of quotes, lists and emphasis (0 = default 32)")
	fs.BoolVar(&f.unsafeHTML, "unsafe-html", false, "pass every inline tag and script URL through")
	fs.StringSliceVar(&f.inlineTags, "inline-tags", nil, "extra inline HTML tags to allow (comma-separated)")
	fs.StringVar(&f.baseURL, "base-url", "", "resolve relative links against this URL or directory")
}

// addHighlightFlags adds syntax highlighting flags to a FlagSet.
// A bare --highlight selects the default style.
func addHighlightFlags(fs *flag.FlagSet, f *highlightFlags) {
	fs.StringVar(&f.style, "highlight", "", "highlight fenced code with a chroma style")
	fs.Lookup("highlight").NoOptDefVal = highlight.DefaultStyle
	fs.StringVar(&f.cssPath, "highlight-css", "", "write the highlight stylesheet to this file")
}

// addStyleFlags adds embedded stylesheet flags to a FlagSet.
func addStyleFlags(fs *flag.FlagSet, f *styleFlags) {
	fs.BoolVar(&f.embed, "embed-css", false, "prepend a <style> block to each fragment")
	fs.StringVar(&f.cssFile, "css", "", "CSS file to embed (implies --embed-css)")
	fs.StringVar(&f.theme, "theme", "", "embed a built-in or --theme-dir stylesheet (implies --embed-css)")
	fs.Lookup("theme").NoOptDefVal = md2html.DefaultTheme
	fs.StringVar(&f.themeDir, "theme-dir", "", "directory of NAME.css themes overriding built-ins")
}

// addFrontmatterFlags adds metadata block flags to a FlagSet.
func addFrontmatterFlags(fs *flag.FlagSet, f *frontmatterFlags) {
	fs.BoolVar(&f.keep, "no-frontmatter", false, "do not strip a leading --- metadata block")
	fs.BoolVar(&f.meta, "meta", false, "write NAME.meta.yaml next to each output")
	fs.StringVar(&f.dateFormat, "date-format", "", "reformat the metadata date (preset or tokens)")
}

// addPageFlags adds standalone page flags to a FlagSet.
// A bare --page selects the default template set.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVar(&f.template, "page", "", "wrap each fragment in a full page from a template set")
	fs.Lookup("page").NoOptDefVal = md2html.DefaultTemplateSet
	fs.BoolVar(&f.index, "index", false, "also write index.html listing every page (implies --page)")
	fs.StringVar(&f.siteTitle, "site-title", "", "site name shown on the index and in page titles")
}

// newConvertFlagSet registers every convert flag on a fresh FlagSet.
// Parsing and completion share it so both see the same flags.
func newConvertFlagSet(f *convertFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addMarkdownFlags(fs, &f.markdown)
	addHighlightFlags(fs, &f.highlight)
	addStyleFlags(fs, &f.style)
	addFrontmatterFlags(fs, &f.frontmatter)
	addPageFlags(fs, &f.page)

	return fs
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string, usageOut io.Writer) (*convertFlags, []string, error) {
	f := &convertFlags{}
	fs := newConvertFlagSet(f)
	fs.SetOutput(usageOut)
	fs.Usage = func() { printConvertUsage(usageOut) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
