package assets

// Template file names inside a template set directory.
const (
	PageTemplateFile   = "page.html"
	PandocTemplateFile = "pandoc.html"
)

// Built-in asset names.
const (
	DefaultStyleName       = "default"
	PrintStyleName         = "print"
	DefaultTemplateSetName = "default"
)

// TemplateSet holds the layouts of one site theme. Page feeds the goldmark
// converter and Pandoc the pandoc converter; both render the same markup.
type TemplateSet struct {
	Name   string
	Page   string
	Pandoc string
}
