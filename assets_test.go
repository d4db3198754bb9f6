package md2html

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestNewAssetLoader(t *testing.T) {
	t.Parallel()

	t.Run("built-in themes only", func(t *testing.T) {
		t.Parallel()

		loader, err := NewAssetLoader("")
		if err != nil {
			t.Fatalf("NewAssetLoader(\"\") error = %v", err)
		}
		css, err := loader.LoadTheme(DefaultTheme)
		if err != nil {
			t.Fatalf("LoadTheme(DefaultTheme) error = %v", err)
		}
		if !strings.Contains(css, "body") {
			t.Errorf("default theme = %q, want body rules", css)
		}
	})

	t.Run("directory overrides built-in", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "dark.css"), []byte("/* mine */"), 0o644); err != nil {
			t.Fatalf("setup: %v", err)
		}

		loader, err := NewAssetLoader(dir)
		if err != nil {
			t.Fatalf("NewAssetLoader() error = %v", err)
		}
		css, err := loader.LoadTheme("dark")
		if err != nil {
			t.Fatalf("LoadTheme() error = %v", err)
		}
		if css != "/* mine */" {
			t.Errorf("LoadTheme(dark) = %q, want override", css)
		}
	})

	t.Run("bad directory", func(t *testing.T) {
		t.Parallel()

		_, err := NewAssetLoader(filepath.Join(t.TempDir(), "missing"))
		if !errors.Is(err, ErrInvalidAssetPath) {
			t.Errorf("NewAssetLoader() error = %v, want ErrInvalidAssetPath", err)
		}
	})
}

func TestAssetLoader_ThemeErrors(t *testing.T) {
	t.Parallel()

	loader, err := NewAssetLoader("")
	if err != nil {
		t.Fatalf("NewAssetLoader() error = %v", err)
	}

	for _, name := range []string{"nope", "../etc/passwd", "a.b", ""} {
		if _, err := loader.LoadTheme(name); !errors.Is(err, ErrThemeNotFound) {
			t.Errorf("LoadTheme(%q) error = %v, want ErrThemeNotFound", name, err)
		}
	}
}

func TestThemes(t *testing.T) {
	t.Parallel()

	themes := Themes()
	if !slices.Contains(themes, DefaultTheme) {
		t.Errorf("Themes() = %v, want it to contain %q", themes, DefaultTheme)
	}
	if !slices.IsSorted(themes) {
		t.Errorf("Themes() = %v, want sorted", themes)
	}
}

func TestAssetLoader_TemplateSets(t *testing.T) {
	t.Parallel()

	t.Run("built-in set renders pages", func(t *testing.T) {
		t.Parallel()

		loader, err := NewAssetLoader("")
		if err != nil {
			t.Fatalf("NewAssetLoader() error = %v", err)
		}
		ts, err := loader.LoadTemplateSet(DefaultTemplateSet)
		if err != nil {
			t.Fatalf("LoadTemplateSet() error = %v", err)
		}
		pages, err := NewPageRenderer(ts)
		if err != nil {
			t.Fatalf("NewPageRenderer() error = %v", err)
		}

		post, err := pages.RenderPost(context.Background(), &PostPage{
			SiteTitle: "Blog",
			Title:     "Hello",
			Date:      "2024-01-02",
			Tags:      []string{"go"},
			IndexURL:  "index.html",
			Content:   ToHTML("# Hello\n\nBody."),
		})
		if err != nil {
			t.Fatalf("RenderPost() error = %v", err)
		}
		for _, want := range []string{
			"<!DOCTYPE html>",
			"<title>Hello - Blog</title>",
			`<a href="index.html">`,
			`<span class="tag">go</span>`,
			"<h1>Hello</h1>\n\n<p>Body.</p>",
		} {
			if !strings.Contains(post, want) {
				t.Errorf("post page missing %q:\n%s", want, post)
			}
		}

		index, err := pages.RenderIndex(context.Background(), &IndexPage{
			SiteTitle: "Blog",
			Posts:     []IndexEntry{{Title: "Hello", URL: "hello.html", Excerpt: "Body."}},
		})
		if err != nil {
			t.Fatalf("RenderIndex() error = %v", err)
		}
		if !strings.Contains(index, `<h2><a href="hello.html">Hello</a></h2>`) || !strings.Contains(index, "<p>Body.</p>") {
			t.Errorf("index page missing entry:\n%s", index)
		}
	})

	t.Run("custom set and errors", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		setDir := filepath.Join(dir, "templates", "plain")
		if err := os.MkdirAll(setDir, 0o755); err != nil {
			t.Fatalf("setup: %v", err)
		}
		if err := os.WriteFile(filepath.Join(setDir, "post.html"), []byte("{{.Content}}"), 0o644); err != nil {
			t.Fatalf("setup: %v", err)
		}

		loader, err := NewAssetLoader(dir)
		if err != nil {
			t.Fatalf("NewAssetLoader() error = %v", err)
		}

		tests := []struct {
			set     string
			wantErr error
		}{
			{"plain", ErrIncompleteTemplateSet},
			{"missing", ErrTemplateSetNotFound},
			{"../plain", ErrTemplateSetNotFound},
		}
		for _, tt := range tests {
			if _, err := loader.LoadTemplateSet(tt.set); !errors.Is(err, tt.wantErr) {
				t.Errorf("LoadTemplateSet(%q) error = %v, want %v", tt.set, err, tt.wantErr)
			}
		}
	})
}

func TestTemplateSets(t *testing.T) {
	t.Parallel()

	if !slices.Contains(TemplateSets(), DefaultTemplateSet) {
		t.Errorf("TemplateSets() = %v, want it to contain %q", TemplateSets(), DefaultTemplateSet)
	}
}

func TestExcerpt(t *testing.T) {
	t.Parallel()

	got := Excerpt(ToHTML("# Title\n\nFirst *line* here.\n\nMore."), DefaultExcerptLength)
	if got != "First line here." {
		t.Errorf("Excerpt() = %q, want %q", got, "First line here.")
	}
}
