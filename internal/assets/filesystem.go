package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FilesystemLoader reads user assets laid out as:
//
//	{root}/{name}.css                   themes
//	{root}/templates/{name}/post.html   template sets
//	{root}/templates/{name}/index.html
type FilesystemLoader struct {
	root string // absolute, symlinks resolved
}

// NewFilesystemLoader creates a FilesystemLoader rooted at dir.
// Returns ErrInvalidBasePath if dir is not a readable directory.
func NewFilesystemLoader(dir string) (*FilesystemLoader, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}
	root, err := resolveRoot(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	return &FilesystemLoader{root: root}, nil
}

// resolveRoot returns the canonical form of dir once it is known to be a
// directory we can list.
func resolveRoot(dir string) (string, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}

	info, err := os.Stat(root)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("directory does not exist: %s", root)
	case err != nil:
		return "", err
	case !info.IsDir():
		return "", fmt.Errorf("not a directory: %s", root)
	}
	if _, err := os.ReadDir(root); err != nil {
		return "", fmt.Errorf("cannot read directory: %w", err)
	}
	return root, nil
}

// LoadTheme reads {root}/{name}.css.
func (f *FilesystemLoader) LoadTheme(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	data, err := f.read(name + themeExt)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("%w: %q", ErrThemeNotFound, name)
	case errors.Is(err, ErrPathTraversal):
		return "", err
	case err != nil:
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	return string(data), nil
}

// LoadTemplateSet reads {root}/templates/{name}/post.html and index.html.
func (f *FilesystemLoader) LoadTemplateSet(name string) (*TemplateSet, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}
	return assembleTemplateSet(name, func(file string) ([]byte, error) {
		return f.read(filepath.Join(templatesDir, name, file))
	})
}

// read returns the content of rel under the root. The path is checked after
// symlink resolution, so a link pointing outside the root is refused.
func (f *FilesystemLoader) read(rel string) ([]byte, error) {
	target := filepath.Join(f.root, rel)
	if resolved, err := filepath.EvalSymlinks(target); err == nil {
		target = resolved
	}
	if !within(f.root, target) {
		return nil, fmt.Errorf("%w: %s resolves outside %s", ErrPathTraversal, rel, f.root)
	}
	return os.ReadFile(target) // #nosec G304 -- contained in root
}

// within reports whether target lies strictly below root.
func within(root, target string) bool {
	rel, err := filepath.Rel(root, target)
	if err != nil || rel == "." {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// Compile-time interface check.
var _ AssetLoader = (*FilesystemLoader)(nil)
