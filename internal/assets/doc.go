// Package assets provides the stylesheets embedded into HTML fragments and
// the template sets that wrap fragments into pages.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - built-in themes and template sets
//	    ├── FilesystemLoader  - the same layout read from a directory on disk
//	    └── AssetResolver     - custom directory first, embedded as fallback
//
// Layout, both embedded and on disk:
//
//	themes/{name}.css              (on disk: {dir}/{name}.css)
//	templates/{name}/post.html
//	templates/{name}/index.html
//
// A custom directory may override a built-in theme or template set by
// shipping one of the same name; every other name still resolves to the
// embedded copy.
//
// # Security
//
// Names are validated as plain file stems. FilesystemLoader resolves
// symlinks and verifies paths stay within its root directory.
package assets
