package assets

// DefaultTheme is the built-in theme used when a theme is requested by flag
// without a name.
const DefaultTheme = "default"

// defaultLoader serves the package-level helpers.
var defaultLoader = NewEmbeddedLoader()

// LoadTheme loads a built-in theme by name.
func LoadTheme(name string) (string, error) {
	return defaultLoader.LoadTheme(name)
}

// Themes lists the built-in theme names in lexical order.
func Themes() []string {
	return defaultLoader.Names()
}

// TemplateSets lists the built-in template set names in lexical order.
func TemplateSets() []string {
	return defaultLoader.TemplateSetNames()
}
