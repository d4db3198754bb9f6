package assets

import (
	"fmt"
	"regexp"
)

// assetNamePattern is a file stem: letters, digits, hyphens and underscores.
var assetNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

// ValidateAssetName rejects names that could leave the asset directory or
// pick up an extension, such as "../x", "a/b" or "dark.css".
func ValidateAssetName(name string) error {
	if !assetNamePattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
