package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	md2html "github.com/alnah/go-md2html"
	"github.com/alnah/go-md2html/internal/config"
	"github.com/alnah/go-md2html/internal/dateutil"
	"github.com/alnah/go-md2html/internal/fileutil"
	"github.com/alnah/go-md2html/internal/frontmatter"
	"github.com/alnah/go-md2html/internal/hints"
	"github.com/alnah/go-md2html/internal/yamlutil"
)

// defaultSiteTitle heads an index page when no site title is configured.
const defaultSiteTitle = "Index"

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Sentinel errors for batch operations.
var (
	ErrReadMarkdown = errors.New("failed to read markdown file")
	ErrWriteHTML    = errors.New("failed to write HTML file")
	ErrWriteMeta    = errors.New("failed to write metadata file")
	ErrWriteIndex   = errors.New("failed to write index page")
)

// CLIConverter is the interface for the conversion service.
type CLIConverter interface {
	Convert(ctx context.Context, input md2html.Input) (*md2html.Result, error)
}

// Compile-time interface implementation check.
var _ CLIConverter = (*md2html.Converter)(nil)

// conversionParams groups parameters shared across batch/file conversion.
type conversionParams struct {
	converter CLIConverter
	cfg       *config.Config
	now       time.Time // Resolves "auto" dates once for the whole batch

	// Page mode; pages is nil when fragments are written bare.
	pages     *md2html.PageRenderer
	pageCSS   string
	siteTitle string
	indexPath string // Empty without an index
}

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Warnings   []error
	Err        error
	Duration   time.Duration
	Entry      *md2html.IndexEntry // Set in page mode
}

// convertBatch processes files concurrently with at most workers goroutines.
// Results are in the order of files.
func convertBatch(ctx context.Context, workers int, files []FileToConvert, params *conversionParams) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := min(max(workers, 1), len(files))

	results := make([]ConversionResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = convertFile(ctx, files[idx], params)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// convertFile processes a single file and returns the result.
func convertFile(ctx context.Context, f FileToConvert, params *conversionParams) ConversionResult {
	start := time.Now()
	result := ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}
	fail := func(err error) ConversionResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		return fail(fmt.Errorf("%w: %v", ErrReadMarkdown, err))
	}

	markdown := string(content)
	var meta frontmatter.Meta
	if !params.cfg.Frontmatter.Keep {
		meta, markdown = frontmatter.Split(markdown)
	}

	convResult, err := params.converter.Convert(ctx, md2html.Input{Markdown: markdown})
	if err != nil {
		return fail(err)
	}
	result.Warnings = convResult.Warnings

	output := convResult.HTML
	sortKey := meta.Date
	if params.cfg.Frontmatter.WriteMeta || params.pages != nil {
		meta, err = completeMeta(meta, convResult, f.InputPath, params.cfg.Frontmatter.DateFormat, params.now)
		if err != nil {
			return fail(fmt.Errorf("%s: %w", f.InputPath, err))
		}
	}
	if params.pages != nil {
		output, result.Entry, err = renderPost(ctx, f, meta, sortKey, convResult.HTML, params)
		if err != nil {
			return fail(err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(f.OutputPath), dirPermissions); err != nil {
		return fail(fmt.Errorf("creating output directory: %w%s", err, hints.ForOutputDirectory()))
	}

	if err := fileutil.WriteFileAtomic(f.OutputPath, []byte(output), filePermissions); err != nil {
		return fail(fmt.Errorf("%w: %v", ErrWriteHTML, err))
	}

	if params.cfg.Frontmatter.WriteMeta {
		if err := writeMeta(f, meta); err != nil {
			return fail(err)
		}
	}

	result.Duration = time.Since(start)
	return result
}

// renderPost wraps a fragment in the post template and returns the page
// with the entry that lists it on the index. An "auto" date sorts by the
// resolved value.
func renderPost(ctx context.Context, f FileToConvert, meta frontmatter.Meta, sortKey, fragment string, params *conversionParams) (string, *md2html.IndexEntry, error) {
	page := &md2html.PostPage{
		SiteTitle: params.siteTitle,
		Title:     meta.Title,
		Date:      meta.Date,
		Tags:      meta.Tags,
		CSS:       params.pageCSS,
		Content:   fragment,
	}
	entry := &md2html.IndexEntry{
		Title:   meta.Title,
		Date:    meta.Date,
		SortKey: sortKey,
		Tags:    meta.Tags,
		Excerpt: md2html.Excerpt(fragment, md2html.DefaultExcerptLength),
	}
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(sortKey)), "auto") {
		entry.SortKey = ""
	}

	if params.indexPath != "" {
		back, err := relativeURL(filepath.Dir(f.OutputPath), params.indexPath)
		if err != nil {
			return "", nil, fmt.Errorf("%s: %w", f.InputPath, err)
		}
		page.IndexURL = back

		url, err := relativeURL(filepath.Dir(params.indexPath), f.OutputPath)
		if err != nil {
			return "", nil, fmt.Errorf("%s: %w", f.InputPath, err)
		}
		entry.URL = url
	}

	html, err := params.pages.RenderPost(ctx, page)
	if err != nil {
		return "", nil, err
	}
	return html, entry, nil
}

// writeIndex renders the index page from every successful result.
func writeIndex(ctx context.Context, results []ConversionResult, params *conversionParams) error {
	page := &md2html.IndexPage{
		SiteTitle: params.siteTitle,
		CSS:       params.pageCSS,
	}
	if page.SiteTitle == "" {
		page.SiteTitle = defaultSiteTitle
	}
	for _, r := range results {
		if r.Err == nil && r.Entry != nil {
			page.Posts = append(page.Posts, *r.Entry)
		}
	}

	html, err := params.pages.RenderIndex(ctx, page)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(params.indexPath), dirPermissions); err != nil {
		return fmt.Errorf("%w: %v%s", ErrWriteIndex, err, hints.ForOutputDirectory())
	}
	if err := fileutil.WriteFileAtomic(params.indexPath, []byte(html), filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteIndex, err)
	}
	return nil
}

// writeMeta writes the completed metadata sidecar for f.
func writeMeta(f FileToConvert, meta frontmatter.Meta) error {
	data, err := yamlutil.Marshal(meta)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWriteMeta, err)
	}
	if err := fileutil.WriteFileAtomic(metaOutputPath(f.OutputPath), data, filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteMeta, err)
	}
	return nil
}

// completeMeta fills the title from the first level-one header, then the
// file name, and reformats the date when a format is configured.
func completeMeta(meta frontmatter.Meta, res *md2html.Result, inputPath, dateFormat string, now time.Time) (frontmatter.Meta, error) {
	if meta.Title == "" {
		meta.Title = res.Title()
	}
	if meta.Title == "" {
		meta.Title = strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	}

	date, err := dateutil.Reformat(meta.Date, dateFormat, now)
	if err != nil {
		return meta, err
	}
	meta.Date = date

	return meta, nil
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Failed    int
	Warned    int
}

// countResults tallies succeeded and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
			continue
		}
		summary.Succeeded++
		if len(r.Warnings) > 0 {
			summary.Warned++
		}
	}
	return summary
}

// printResultsWithWriter outputs conversion results using the provided writers.
// Nesting warnings are listed in verbose mode and counted otherwise.
func printResultsWithWriter(results []ConversionResult, quiet, verbose bool, maxDepth int, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
			for _, w := range r.Warnings {
				fmt.Fprintf(env.Stderr, "  warning: %v\n", w)
			}
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if quiet {
		return summary.Failed
	}

	if summary.Warned > 0 {
		if maxDepth == 0 {
			maxDepth = md2html.DefaultMaxDepth
		}
		if !verbose {
			fmt.Fprintf(env.Stderr, "warning: %d file(s) nested too deeply; run with -v for details\n", summary.Warned)
		}
		fmt.Fprintln(env.Stderr, strings.TrimPrefix(hints.ForNestingTooDeep(maxDepth), "\n"))
	}

	if len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary.Failed
}
