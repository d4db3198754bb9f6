package pipeline

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// ErrInvalidBase indicates a base for link resolution that is neither an
// absolute URL nor a usable directory.
var ErrInvalidBase = errors.New("invalid link base")

// NewURLResolver returns a function resolving relative link and image
// destinations against base. It is meant for Config.ResolveURL.
//
// If base is an absolute URL (https://example.com/posts/), relative
// destinations are resolved as a browser would. Otherwise base is a source
// directory and relative destinations become file:// URLs under it.
//
// Left unchanged:
//   - absolute URLs of any scheme, including mailto: and data:
//   - protocol-relative URLs and anchors
//   - absolute paths
//   - file paths escaping the source directory
func NewURLResolver(base string) (func(string) string, error) {
	if base == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidBase)
	}

	if u, err := url.Parse(base); err == nil && u.IsAbs() && u.Host != "" {
		return func(dest string) string {
			return resolveAgainstURL(u, dest)
		}, nil
	}

	// A one-letter scheme is a Windows drive, not a URL.
	if hasScheme(base) && strings.IndexByte(base, ':') > 1 {
		return nil, fmt.Errorf("%w: %q has a scheme but no host", ErrInvalidBase, base)
	}

	// Make the directory absolute for consistent path resolution
	absDir, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBase, err)
	}
	return func(dest string) string {
		return resolveAgainstDir(absDir, dest)
	}, nil
}

func resolveAgainstURL(base *url.URL, dest string) string {
	if !isRelativePath(dest) {
		return dest
	}
	ref, err := url.Parse(dest)
	if err != nil {
		return dest
	}
	return base.ResolveReference(ref).String()
}

func resolveAgainstDir(dir, dest string) string {
	if !isRelativePath(dest) || filepath.IsAbs(dest) {
		return dest
	}

	absPath := filepath.Join(dir, dest)

	// Security: validate path is under dir (prevent traversal)
	if !isPathUnderDir(absPath, dir) {
		return dest
	}

	return pathToFileURL(absPath)
}

// isRelativePath reports whether dest should be resolved.
func isRelativePath(dest string) bool {
	if dest == "" {
		return false
	}

	// Anchors, protocol-relative URLs and site-absolute paths
	if strings.HasPrefix(dest, "#") || strings.HasPrefix(dest, "/") {
		return false
	}

	// Any scheme: http, https, file, data, mailto...
	return !hasScheme(dest)
}

// hasScheme reports whether dest starts with a URL scheme followed by ":".
func hasScheme(dest string) bool {
	i := strings.IndexByte(dest, ':')
	if i <= 0 {
		return false
	}
	for j, r := range dest[:i] {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case j > 0 && (r >= '0' && r <= '9' || r == '+' || r == '-' || r == '.'):
		default:
			return false
		}
	}
	return true
}

var urlNoise = strings.NewReplacer("\t", "", "\n", "", "\r", "")

// scriptSchemes run code when a link is followed.
var scriptSchemes = []string{"javascript:", "vbscript:"}

// hasScriptScheme reports whether a browser would treat dest as a script
// URL. Browsers ignore leading control characters and spaces, and drop
// tabs and newlines anywhere in a URL.
func hasScriptScheme(dest string) bool {
	dest = strings.TrimLeftFunc(dest, func(r rune) bool { return r <= ' ' })
	dest = urlNoise.Replace(dest)
	for _, scheme := range scriptSchemes {
		if len(dest) >= len(scheme) && strings.EqualFold(dest[:len(scheme)], scheme) {
			return true
		}
	}
	return false
}

// isPathUnderDir checks if absPath is under dir (prevents path traversal).
func isPathUnderDir(absPath, dir string) bool {
	cleanPath := filepath.Clean(absPath)
	cleanDir := filepath.Clean(dir)

	// Ensure dir ends with separator for correct prefix matching
	if !strings.HasSuffix(cleanDir, string(filepath.Separator)) {
		cleanDir += string(filepath.Separator)
	}

	// Path is under dir if it starts with dir/ or equals dir
	return strings.HasPrefix(cleanPath+string(filepath.Separator), cleanDir)
}

// pathToFileURL converts an absolute path to a file:// URL.
// Handles both Unix and Windows paths correctly.
func pathToFileURL(absPath string) string {
	// filepath.ToSlash handles Windows backslashes
	u := url.URL{
		Scheme: "file",
		Path:   filepath.ToSlash(absPath),
	}
	return u.String()
}
