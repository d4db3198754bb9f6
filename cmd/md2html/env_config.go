package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alnah/go-md2html/internal/config"
)

// envPrefix starts every environment variable the CLI reads.
const envPrefix = "MD2HTML_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // MD2HTML_CONFIG: config file name or path
	InputDir   string // MD2HTML_INPUT_DIR: default input directory
	OutputDir  string // MD2HTML_OUTPUT_DIR: default output directory
	Highlight  string // MD2HTML_HIGHLIGHT: chroma style, enables highlighting
	Theme      string // MD2HTML_THEME: embedded stylesheet, enables embedding
	MaxDepth   int    // MD2HTML_MAX_DEPTH: nesting limit
	BaseURL    string // MD2HTML_BASE_URL: base for relative links
	DateFormat string // MD2HTML_DATE_FORMAT: metadata date format
	Workers    int    // MD2HTML_WORKERS: parallel workers
	Template   string // MD2HTML_TEMPLATE: template set, enables page output
	SiteTitle  string // MD2HTML_SITE_TITLE: site name for pages and index
}

// knownEnvVars lists valid MD2HTML_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MD2HTML_CONFIG":      true,
	"MD2HTML_INPUT_DIR":   true,
	"MD2HTML_OUTPUT_DIR":  true,
	"MD2HTML_HIGHLIGHT":   true,
	"MD2HTML_THEME":       true,
	"MD2HTML_MAX_DEPTH":   true,
	"MD2HTML_BASE_URL":    true,
	"MD2HTML_DATE_FORMAT": true,
	"MD2HTML_WORKERS":     true,
	"MD2HTML_TEMPLATE":    true,
	"MD2HTML_SITE_TITLE":  true,
}

// loadEnvConfig reads configuration from environment variables.
// Integers that do not parse or are not positive are ignored.
func loadEnvConfig() *envConfig {
	return &envConfig{
		ConfigPath: os.Getenv("MD2HTML_CONFIG"),
		InputDir:   os.Getenv("MD2HTML_INPUT_DIR"),
		OutputDir:  os.Getenv("MD2HTML_OUTPUT_DIR"),
		Highlight:  os.Getenv("MD2HTML_HIGHLIGHT"),
		Theme:      os.Getenv("MD2HTML_THEME"),
		MaxDepth:   positiveEnvInt("MD2HTML_MAX_DEPTH"),
		BaseURL:    os.Getenv("MD2HTML_BASE_URL"),
		DateFormat: os.Getenv("MD2HTML_DATE_FORMAT"),
		Workers:    positiveEnvInt("MD2HTML_WORKERS"),
		Template:   os.Getenv("MD2HTML_TEMPLATE"),
		SiteTitle:  os.Getenv("MD2HTML_SITE_TITLE"),
	}
}

func positiveEnvInt(name string) int {
	v := os.Getenv(name)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 0
	}
	return n
}

// warnUnknownEnvVars logs warnings for unrecognized MD2HTML_* variables.
// Helps catch typos like MD2HTML_HIGHLIGHTS.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, envPrefix) {
			name, _, _ := strings.Cut(env, "=")
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Only sets values if the env var is set AND the config value is empty/zero.
// This ensures: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.InputDir != "" && cfg.Input.DefaultDir == "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" && cfg.Output.DefaultDir == "" {
		cfg.Output.DefaultDir = env.OutputDir
	}

	// Highlight style (auto-enable)
	if env.Highlight != "" && cfg.Highlight.Style == "" {
		cfg.Highlight.Style = env.Highlight
		cfg.Highlight.Enabled = true
	}

	// Theme (auto-enable embedding)
	if env.Theme != "" && cfg.Output.Theme == "" {
		cfg.Output.Theme = env.Theme
		cfg.Output.EmbedCSS = true
	}

	if env.MaxDepth > 0 && cfg.Markdown.MaxDepth == 0 {
		cfg.Markdown.MaxDepth = env.MaxDepth
	}
	if env.BaseURL != "" && cfg.Markdown.BaseURL == "" {
		cfg.Markdown.BaseURL = env.BaseURL
	}
	if env.DateFormat != "" && cfg.Frontmatter.DateFormat == "" {
		cfg.Frontmatter.DateFormat = env.DateFormat
	}
	if env.Workers > 0 && cfg.Workers == 0 {
		cfg.Workers = env.Workers
	}

	// Template set (auto-enable pages)
	if env.Template != "" && cfg.Page.Template == "" {
		cfg.Page.Template = env.Template
		cfg.Page.Enabled = true
	}
	if env.SiteTitle != "" && cfg.Page.SiteTitle == "" {
		cfg.Page.SiteTitle = env.SiteTitle
	}
}
