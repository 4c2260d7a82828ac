package assets

// AssetLoader loads stylesheets and template sets by name.
type AssetLoader interface {
	// LoadStyle loads a stylesheet by name, without the .css extension.
	LoadStyle(name string) (string, error)

	// LoadTemplateSet loads the page and pandoc templates of a set.
	LoadTemplateSet(name string) (*TemplateSet, error)
}
