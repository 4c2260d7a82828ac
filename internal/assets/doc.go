// Package assets provides the page templates and stylesheets of a talks site.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - built-in assets compiled in with go:embed
//	    ├── FilesystemLoader  - overrides from a directory on disk
//	    └── AssetResolver     - custom first, embedded as fallback
//
// The resolver only falls back on "not found": a custom asset that exists
// but cannot be read is an error, not a silent switch to the default.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   ├── default.css          # site stylesheet, copied to assets/style.css
//	│   └── print.css            # injected before PDF export
//	└── templates/
//	    └── {name}/
//	        ├── page.html        # html/template layout for the goldmark converter
//	        └── pandoc.html      # pandoc template for the pandoc converter
//
// # Security
//
// Asset names are validated against path traversal, and FilesystemLoader
// resolves symlinks before checking that a path stays within basePath.
package assets
