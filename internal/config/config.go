// Package config loads and validates md2html configuration files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/alnah/go-md2html/internal/dateutil"
	"github.com/alnah/go-md2html/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidTagName  = errors.New("invalid inline tag name")
	ErrOutOfRange      = errors.New("value out of range")
)

// Field length limits.
const (
	MaxURLLength     = 2048 // Browser limit
	MaxPathLength    = 4096 // PATH_MAX on Linux
	MaxStyleLength   = 50   // "github", "monokai", "solarized-dark"
	MaxTagNameLength = 50   // Custom elements can be long
	MaxTitleLength   = 200
	MaxInlineTags    = 64
)

// Nesting and worker limits.
const (
	MaxDepthLimit = 1000
	MaxWorkers    = 32
)

// configDirName is the directory searched under os.UserConfigDir.
const configDirName = "go-md2html"

// tagNamePattern accepts HTML element names, including custom elements.
var tagNamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9-]*$`)

// Config holds all configuration for conversion.
type Config struct {
	Input       InputConfig       `yaml:"input"`
	Output      OutputConfig      `yaml:"output"`
	Markdown    MarkdownConfig    `yaml:"markdown"`
	Highlight   HighlightConfig   `yaml:"highlight"`
	Frontmatter FrontmatterConfig `yaml:"frontmatter"`
	Page        PageConfig        `yaml:"page"`
	Workers     int               `yaml:"workers"` // 0 = auto
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
	EmbedCSS   bool   `yaml:"embedCSS"`   // Prepend a <style> block to each fragment
	CSSFile    string `yaml:"cssFile"`    // Stylesheet embedded when EmbedCSS is set
	Theme      string `yaml:"theme"`      // Built-in or ThemeDir stylesheet, embedded first
	ThemeDir   string `yaml:"themeDir"`   // Directory of {name}.css themes and templates/{name}/ sets
}

// MarkdownConfig defines parsing and rendering options.
type MarkdownConfig struct {
	MaxDepth   int      `yaml:"maxDepth"`   // 0 = library default
	UnsafeHTML bool     `yaml:"unsafeHTML"` // Pass every raw tag through
	InlineTags []string `yaml:"inlineTags"` // Extra tags allowed inline
	BaseURL    string   `yaml:"baseURL"`    // Base for relative links and images
}

// HighlightConfig defines syntax highlighting of fenced code.
type HighlightConfig struct {
	Enabled bool   `yaml:"enabled"`
	Style   string `yaml:"style"` // Chroma style name (empty = github)
}

// FrontmatterConfig defines how a leading metadata block is handled.
type FrontmatterConfig struct {
	Keep       bool   `yaml:"keep"`       // Leave the block in the markdown body
	WriteMeta  bool   `yaml:"writeMeta"`  // Write NAME.meta.yaml next to each output
	DateFormat string `yaml:"dateFormat"` // Reformat the date field, e.g. "long" or "DD/MM/YYYY"
}

// PageConfig defines standalone page output.
type PageConfig struct {
	Enabled   bool   `yaml:"enabled"`   // Wrap each fragment in the post template
	Template  string `yaml:"template"`  // Template set name (empty = default)
	Index     bool   `yaml:"index"`     // Write index.html listing every page
	SiteTitle string `yaml:"siteTitle"` // Index heading and page title suffix
}

// Validate checks field lengths and ranges. Empty fields are always valid.
func (c *Config) Validate() error {
	if err := validateFieldLength("input.defaultDir", c.Input.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.cssFile", c.Output.CSSFile, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.theme", c.Output.Theme, MaxStyleLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.themeDir", c.Output.ThemeDir, MaxPathLength); err != nil {
		return err
	}

	if c.Markdown.MaxDepth < 0 || c.Markdown.MaxDepth > MaxDepthLimit {
		return fmt.Errorf("%w: markdown.maxDepth must be between 0 and %d, got %d", ErrOutOfRange, MaxDepthLimit, c.Markdown.MaxDepth)
	}
	if err := validateFieldLength("markdown.baseURL", c.Markdown.BaseURL, MaxURLLength); err != nil {
		return err
	}
	if len(c.Markdown.InlineTags) > MaxInlineTags {
		return fmt.Errorf("%w: markdown.inlineTags holds at most %d tags, got %d", ErrOutOfRange, MaxInlineTags, len(c.Markdown.InlineTags))
	}
	for i, tag := range c.Markdown.InlineTags {
		field := fmt.Sprintf("markdown.inlineTags[%d]", i)
		if err := validateFieldLength(field, tag, MaxTagNameLength); err != nil {
			return err
		}
		if !tagNamePattern.MatchString(tag) {
			return fmt.Errorf("%w: %s %q", ErrInvalidTagName, field, tag)
		}
	}

	if err := validateFieldLength("highlight.style", c.Highlight.Style, MaxStyleLength); err != nil {
		return err
	}

	if c.Frontmatter.DateFormat != "" {
		if _, err := dateutil.ResolveFormat(c.Frontmatter.DateFormat); err != nil {
			return fmt.Errorf("frontmatter.dateFormat: %w", err)
		}
	}

	if err := validateFieldLength("page.template", c.Page.Template, MaxStyleLength); err != nil {
		return err
	}
	if err := validateFieldLength("page.siteTitle", c.Page.SiteTitle, MaxTitleLength); err != nil {
		return err
	}

	if c.Workers < 0 || c.Workers > MaxWorkers {
		return fmt.Errorf("%w: workers must be between 0 and %d, got %d", ErrOutOfRange, MaxWorkers, c.Workers)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a neutral configuration: safe HTML, no highlighting,
// frontmatter stripped and not written anywhere.
func DefaultConfig() *Config {
	return &Config{
		Input:       InputConfig{DefaultDir: ""},
		Output:      OutputConfig{DefaultDir: ""},
		Markdown:    MarkdownConfig{MaxDepth: 0},
		Highlight:   HighlightConfig{Enabled: false},
		Frontmatter: FrontmatterConfig{Keep: false},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-md2html/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, configDirName, name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
