package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	flag "github.com/spf13/pflag"

	md2html "github.com/alnah/go-md2html"
	"github.com/alnah/go-md2html/internal/config"
	"github.com/alnah/go-md2html/internal/fileutil"
	"github.com/alnah/go-md2html/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput           = errors.New("no input specified")
	ErrReadCSS           = errors.New("failed to read CSS file")
	ErrWriteHighlightCSS = errors.New("failed to write highlight stylesheet")
	ErrConversionFailed  = errors.New("conversion failed")
	ErrIndexCollision    = errors.New("document output collides with the index page")
)

// runConvertCmd parses flags, installs signal handling and runs a conversion.
func runConvertCmd(args []string, env *Environment) int {
	flags, positional, err := parseConvertFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintln(env.Stderr, "error:", err)
		return ExitUsage
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	if err := runConvert(ctx, positional, flags, env); err != nil {
		fmt.Fprintln(env.Stderr, "error:", err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment) error {
	// Validate numeric flags early
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}
	if err := validateMaxDepth(flags.markdown.maxDepth); err != nil {
		return err
	}

	if !flags.common.quiet {
		warnUnknownEnvVars(env.Stderr)
	}
	envCfg := loadEnvConfig()

	cfg, err := loadConfig(flags.common.config, envCfg, env)
	if err != nil {
		return err
	}

	// CLI flags > env vars > config file > defaults
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	inputPath, err := resolveInputPath(positionalArgs, cfg)
	if err != nil {
		return err
	}
	outputDir := resolveOutputDir(flags.output, cfg)

	files, err := discoverFiles(inputPath, outputDir)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w in %s%s", ErrNoMarkdownFiles, inputPath, hints.ForNoMarkdownFiles(fileutil.MarkdownExtensions))
	}

	conv, pageCSS, err := buildConverter(cfg)
	if err != nil {
		return err
	}

	params := &conversionParams{
		converter: conv,
		cfg:       cfg,
		now:       env.Now(),
	}
	if pageMode(cfg) {
		if err := setupPages(params, cfg, pageCSS, inputPath, outputDir, files); err != nil {
			return err
		}
	}

	if flags.highlight.cssPath != "" {
		if err := writeHighlightCSS(conv, flags.highlight.cssPath); err != nil {
			return err
		}
	}

	results := convertBatch(ctx, resolvePoolSize(cfg.Workers), files, params)

	failedCount := printResultsWithWriter(results, flags.common.quiet, flags.common.verbose, cfg.Markdown.MaxDepth, env)
	if err := ctx.Err(); err != nil {
		return err
	}

	// The index lists whatever converted, even when some files failed.
	if params.indexPath != "" {
		if err := writeIndex(ctx, results, params); err != nil {
			return err
		}
		if !flags.common.quiet {
			fmt.Fprintf(env.Stdout, "Created %s\n", params.indexPath)
		}
	}

	if failedCount > 0 {
		return fmt.Errorf("%w: %d of %d file(s)", ErrConversionFailed, failedCount, len(results))
	}
	return nil
}

// loadConfig returns the configuration named by the --config flag or
// MD2HTML_CONFIG, or a copy of the environment's base configuration.
func loadConfig(flagConfig string, envCfg *envConfig, env *Environment) (*config.Config, error) {
	name := flagConfig
	if name == "" {
		name = envCfg.ConfigPath
	}

	if name == "" {
		cfg := config.DefaultConfig()
		if env.Config != nil {
			*cfg = *env.Config
		}
		return cfg, nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(configSearchPaths(name)))
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// configSearchPaths lists where a config name is looked up, for hints.
func configSearchPaths(name string) []string {
	if strings.ContainsAny(name, `/\`) {
		return []string{name}
	}
	paths := []string{name + ".yaml"}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "go-md2html", name+".yaml"))
	}
	return paths
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	if flags.workers > 0 {
		cfg.Workers = flags.workers
	}

	// Markdown flags
	if flags.markdown.maxDepth > 0 {
		cfg.Markdown.MaxDepth = flags.markdown.maxDepth
	}
	if flags.markdown.unsafeHTML {
		cfg.Markdown.UnsafeHTML = true
	}
	if len(flags.markdown.inlineTags) > 0 {
		cfg.Markdown.InlineTags = append(cfg.Markdown.InlineTags, flags.markdown.inlineTags...)
	}
	if flags.markdown.baseURL != "" {
		cfg.Markdown.BaseURL = flags.markdown.baseURL
	}

	// Highlight flags (auto-enable)
	if flags.highlight.style != "" {
		cfg.Highlight.Style = flags.highlight.style
		cfg.Highlight.Enabled = true
	}
	if flags.highlight.cssPath != "" {
		cfg.Highlight.Enabled = true
	}

	// Style flags
	if flags.style.embed {
		cfg.Output.EmbedCSS = true
	}
	if flags.style.cssFile != "" {
		cfg.Output.CSSFile = flags.style.cssFile
		cfg.Output.EmbedCSS = true
	}
	if flags.style.theme != "" {
		cfg.Output.Theme = flags.style.theme
		cfg.Output.EmbedCSS = true
	}
	if flags.style.themeDir != "" {
		cfg.Output.ThemeDir = flags.style.themeDir
	}

	// Frontmatter flags
	if flags.frontmatter.keep {
		cfg.Frontmatter.Keep = true
	}
	if flags.frontmatter.meta {
		cfg.Frontmatter.WriteMeta = true
	}
	if flags.frontmatter.dateFormat != "" {
		cfg.Frontmatter.DateFormat = flags.frontmatter.dateFormat
	}

	// Page flags (auto-enable)
	if flags.page.template != "" {
		cfg.Page.Template = flags.page.template
		cfg.Page.Enabled = true
	}
	if flags.page.index {
		cfg.Page.Index = true
	}
	if flags.page.siteTitle != "" {
		cfg.Page.SiteTitle = flags.page.siteTitle
	}
}

// pageMode reports whether fragments are wrapped into standalone pages.
// Writing an index implies it.
func pageMode(cfg *config.Config) bool {
	return cfg.Page.Enabled || cfg.Page.Index
}

// resolveInputPath determines the input path from args or config.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	return "", ErrNoInput
}

// resolveOutputDir determines the output directory from flag or config.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}

// buildConverter turns the merged configuration into converter options.
// When CSS is embedded, the highlight stylesheet follows the --css file.
// In page mode the stylesheet is returned for the page head instead of
// being prepended to each fragment.
func buildConverter(cfg *config.Config) (*md2html.Converter, string, error) {
	var opts []md2html.Option
	if cfg.Markdown.MaxDepth > 0 {
		opts = append(opts, md2html.WithMaxDepth(cfg.Markdown.MaxDepth))
	}
	if cfg.Markdown.UnsafeHTML {
		opts = append(opts, md2html.WithUnsafeHTML())
	}
	if len(cfg.Markdown.InlineTags) > 0 {
		opts = append(opts, md2html.WithInlineTags(cfg.Markdown.InlineTags...))
	}
	if cfg.Markdown.BaseURL != "" {
		opts = append(opts, md2html.WithBaseURL(cfg.Markdown.BaseURL))
	}
	if cfg.Highlight.Enabled {
		opts = append(opts, md2html.WithHighlighting(cfg.Highlight.Style))
	}

	conv, err := md2html.NewConverter(opts...)
	if err != nil {
		if errors.Is(err, md2html.ErrUnknownStyle) {
			return nil, "", fmt.Errorf("%w%s", err, hints.ForStyleNotFound(md2html.HighlightStyles()))
		}
		return nil, "", err
	}

	pages := pageMode(cfg)
	if !cfg.Output.EmbedCSS && !pages {
		return conv, "", nil
	}

	css, err := resolveEmbeddedCSS(conv, cfg)
	if err != nil {
		return nil, "", err
	}
	if pages || css == "" {
		return conv, css, nil
	}
	conv, err = md2html.NewConverter(append(opts, md2html.WithStyle(css))...)
	return conv, "", err
}

// buildPageRenderer loads the configured template set from the theme
// directory or the built-ins.
func buildPageRenderer(cfg *config.Config) (*md2html.PageRenderer, error) {
	name := cfg.Page.Template
	if name == "" {
		name = md2html.DefaultTemplateSet
	}

	loader, err := md2html.NewAssetLoader(cfg.Output.ThemeDir)
	if err != nil {
		return nil, err
	}
	ts, err := loader.LoadTemplateSet(name)
	if err != nil {
		if errors.Is(err, md2html.ErrTemplateSetNotFound) {
			return nil, fmt.Errorf("%w%s", err, hints.ForTemplateSetNotFound(md2html.TemplateSets(), cfg.Output.ThemeDir))
		}
		return nil, err
	}
	return md2html.NewPageRenderer(ts)
}

// setupPages fills the page fields of params. With an index, it also
// places index.html at the root of the output tree and rejects a document
// that would be written to the same path.
func setupPages(params *conversionParams, cfg *config.Config, css, inputPath, outputDir string, files []FileToConvert) error {
	renderer, err := buildPageRenderer(cfg)
	if err != nil {
		return err
	}
	params.pages = renderer
	params.pageCSS = css
	params.siteTitle = cfg.Page.SiteTitle

	if !cfg.Page.Index {
		return nil
	}
	path, err := indexOutputPath(inputPath, outputDir)
	if err != nil {
		return err
	}
	for _, f := range files {
		if filepath.Clean(f.OutputPath) == path {
			return fmt.Errorf("%w: %s%s", ErrIndexCollision, f.InputPath, hints.ForIndexCollision())
		}
	}
	params.indexPath = path
	return nil
}

// resolveEmbeddedCSS concatenates the theme, the configured CSS file and,
// when highlighting is on, the highlight stylesheet. Pages without a theme
// or CSS file get the default theme.
func resolveEmbeddedCSS(conv *md2html.Converter, cfg *config.Config) (string, error) {
	var sb strings.Builder

	theme := cfg.Output.Theme
	if theme == "" && cfg.Output.CSSFile == "" && pageMode(cfg) {
		theme = md2html.DefaultTheme
	}
	if theme != "" {
		css, err := loadTheme(theme, cfg.Output.ThemeDir)
		if err != nil {
			return "", err
		}
		sb.WriteString(css)
	}

	if cfg.Output.CSSFile != "" {
		content, err := os.ReadFile(cfg.Output.CSSFile) // #nosec G304 -- user-provided path
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrReadCSS, err)
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.Write(content)
	}

	if cfg.Highlight.Enabled {
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		if err := conv.WriteHighlightCSS(&sb); err != nil {
			return "", err
		}
	}

	return sb.String(), nil
}

// loadTheme reads a theme from themeDir or the built-in set.
func loadTheme(name, themeDir string) (string, error) {
	loader, err := md2html.NewAssetLoader(themeDir)
	if err != nil {
		return "", err
	}
	css, err := loader.LoadTheme(name)
	if err != nil {
		if errors.Is(err, md2html.ErrThemeNotFound) {
			return "", fmt.Errorf("%w%s", err, hints.ForThemeNotFound(md2html.Themes(), themeDir))
		}
		return "", err
	}
	return css, nil
}

// writeHighlightCSS writes the highlight stylesheet to path.
func writeHighlightCSS(conv *md2html.Converter, path string) error {
	var sb strings.Builder
	if err := conv.WriteHighlightCSS(&sb); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteHighlightCSS, err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, dirPermissions); err != nil {
			return fmt.Errorf("%w: %v%s", ErrWriteHighlightCSS, err, hints.ForOutputDirectory())
		}
	}
	if err := fileutil.WriteFileAtomic(path, []byte(sb.String()), filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteHighlightCSS, err)
	}
	return nil
}
