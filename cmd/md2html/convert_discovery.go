package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2html/internal/config"
	"github.com/alnah/go-md2html/internal/fileutil"
)

// htmlExt is the extension of every output fragment.
const htmlExt = ".html"

// indexFileName names the generated index page.
const indexFileName = "index" + htmlExt

// Sentinel errors for file discovery.
var (
	ErrInvalidExtension   = errors.New("file must have .md or .markdown extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrInvalidMaxDepth    = errors.New("invalid max depth")
	ErrNoMarkdownFiles    = errors.New("no markdown files found")
)

// FileToConvert represents a single file to process.
type FileToConvert struct {
	InputPath  string
	OutputPath string
}

// discoverFiles finds all markdown files to convert. Directories are walked
// recursively in lexical order.
func discoverFiles(inputPath, outputDir string) ([]FileToConvert, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if err := validateMarkdownExtension(inputPath); err != nil {
			return nil, err
		}
		outPath := resolveOutputPath(inputPath, outputDir, "")
		return []FileToConvert{{InputPath: inputPath, OutputPath: outPath}}, nil
	}

	var files []FileToConvert
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() || !fileutil.IsMarkdown(path) {
			return nil
		}
		outPath := resolveOutputPath(path, outputDir, inputPath)
		files = append(files, FileToConvert{InputPath: path, OutputPath: outPath})
		return nil
	})

	return files, err
}

// resolveOutputPath determines the HTML output path for a markdown file.
// An outputDir ending in .html names the output file directly.
func resolveOutputPath(inputPath, outputDir, baseInputDir string) string {
	name := fileutil.ReplaceExt(filepath.Base(inputPath), htmlExt)

	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), name)
	}

	if strings.HasSuffix(strings.ToLower(outputDir), htmlExt) {
		return outputDir
	}

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil {
			return filepath.Join(outputDir, filepath.Dir(relPath), name)
		}
	}

	return filepath.Join(outputDir, name)
}

// indexOutputPath returns where the index page goes: the root of the output
// tree. That is outputDir for a directory, or the directory of the single
// output file.
func indexOutputPath(inputPath, outputDir string) (string, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return "", err
	}

	root := outputDir
	switch {
	case !info.IsDir():
		root = filepath.Dir(resolveOutputPath(inputPath, outputDir, ""))
	case root == "":
		root = inputPath
	}
	return filepath.Join(filepath.Clean(root), indexFileName), nil
}

// relativeURL returns the slash-separated link from a page in fromDir to
// target.
func relativeURL(fromDir, target string) (string, error) {
	rel, err := filepath.Rel(fromDir, target)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

// metaOutputPath returns the metadata sidecar path for an HTML output path.
func metaOutputPath(htmlPath string) string {
	return fileutil.ReplaceExt(htmlPath, ".meta.yaml")
}

// validateMarkdownExtension checks that the file has a .md or .markdown extension.
func validateMarkdownExtension(path string) error {
	if !fileutil.IsMarkdown(path) {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(path))
	}
	return nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > config.MaxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, config.MaxWorkers)
	}
	return nil
}

// validateMaxDepth checks the --max-depth flag.
func validateMaxDepth(n int) error {
	if n < 0 || n > config.MaxDepthLimit {
		return fmt.Errorf("%w: %d (must be between 0 and %d, 0 means default)", ErrInvalidMaxDepth, n, config.MaxDepthLimit)
	}
	return nil
}
