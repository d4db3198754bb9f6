package assets

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
)

//go:embed themes/*.css templates
var builtin embed.FS

const themeExt = ".css"

// EmbeddedLoader serves the themes and template sets compiled into the binary.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadTheme loads a built-in theme by name.
func (e *EmbeddedLoader) LoadTheme(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	content, err := builtin.ReadFile(path.Join("themes", name+themeExt))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrThemeNotFound, name)
	}
	return string(content), nil
}

// LoadTemplateSet loads a built-in template set by name.
func (e *EmbeddedLoader) LoadTemplateSet(name string) (*TemplateSet, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}
	return assembleTemplateSet(name, func(file string) ([]byte, error) {
		return builtin.ReadFile(path.Join(templatesDir, name, file))
	})
}

// Names lists the built-in themes.
func (e *EmbeddedLoader) Names() []string {
	entries, err := fs.ReadDir(builtin, "themes")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if name, ok := strings.CutSuffix(entry.Name(), themeExt); ok {
			names = append(names, name)
		}
	}
	return names
}

// TemplateSetNames lists the built-in template sets.
func (e *EmbeddedLoader) TemplateSetNames() []string {
	entries, err := fs.ReadDir(builtin, templatesDir)
	if err != nil {
		return nil
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	return names
}

// assembleTemplateSet reads both templates of a set through read. A set
// with neither file does not exist; a set with one file is incomplete.
func assembleTemplateSet(name string, read func(file string) ([]byte, error)) (*TemplateSet, error) {
	ts := &TemplateSet{Name: name}
	parts := []struct {
		file string
		dst  *string
	}{
		{postTemplateFile, &ts.Post},
		{indexTemplateFile, &ts.Index},
	}

	var missing []string
	for _, part := range parts {
		data, err := read(part.file)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			missing = append(missing, part.file)
			continue
		case errors.Is(err, ErrPathTraversal):
			return nil, err
		case err != nil:
			return nil, fmt.Errorf("%w: reading %s: %v", ErrAssetRead, part.file, err)
		}
		*part.dst = string(data)
	}

	switch len(missing) {
	case 0:
		return ts, nil
	case len(parts):
		return nil, fmt.Errorf("%w: %q", ErrTemplateSetNotFound, name)
	default:
		return nil, fmt.Errorf("%w: %q missing %s", ErrIncompleteTemplateSet, name, strings.Join(missing, ", "))
	}
}

// Compile-time interface check.
var _ AssetLoader = (*EmbeddedLoader)(nil)
