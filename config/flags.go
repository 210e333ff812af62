package config

import "github.com/spf13/pflag"

// Flags holds command line overrides. Only flags the user actually set are
// applied.
type Flags struct {
	fs     *pflag.FlagSet
	values Config
}

// AddFlags registers the configuration flags on fs.
func AddFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{fs: fs}
	d := Default()
	v := &f.values

	fs.StringVar(&v.BuildDir, "build-dir", d.BuildDir, "Docusaurus build output directory")
	fs.StringVar(&v.OutputDir, "output-dir", d.OutputDir, "Directory for generated files")
	fs.StringVar(&v.BaseURL, "base-url", "", "Public URL of the documentation site")
	fs.StringVar(&v.ProductName, "product-name", "", "Product name used in headings")
	fs.StringVar(&v.Tagline, "tagline", "", "Short description shown under the heading")
	fs.StringVar(&v.SidebarPath, "sidebar", d.SidebarPath, "Sidebar description (JSON or YAML)")
	fs.BoolVar(&v.IncludeDescriptions, "descriptions", d.IncludeDescriptions, "Append page descriptions in llms.txt")
	fs.BoolVar(&v.StripHTML, "strip-html", d.StripHTML, "Remove raw HTML left after conversion")
	fs.BoolVar(&v.InjectSidebar, "inject-sidebar", false, "Add LLM Resources links to the built HTML sidebar")
	fs.StringVar(&v.ArchiveFormat, "archive-format", d.ArchiveFormat, "Archive format: zip or tar.gz")
	fs.BoolVar(&v.DirectoryIndexes, "directory-indexes", false, "Write index.md listings for markdown subdirectories")
	fs.BoolVar(&v.TableOfContents, "toc", false, "Add a table of contents to llms.txt")
	fs.BoolVar(&v.Stats, "stats", false, "Add page and section counts to llms.txt")
	fs.StringVar(&v.WorkspaceDir, "workspace", "", "Directory relative paths are resolved against")
	return f
}

// Apply copies every flag the user set onto cfg.
func (f *Flags) Apply(cfg *Config) {
	v := &f.values
	overrides := map[string]func(){
		"build-dir":         func() { cfg.BuildDir = v.BuildDir },
		"output-dir":        func() { cfg.OutputDir = v.OutputDir },
		"base-url":          func() { cfg.BaseURL = v.BaseURL },
		"product-name":      func() { cfg.ProductName = v.ProductName },
		"tagline":           func() { cfg.Tagline = v.Tagline },
		"sidebar":           func() { cfg.SidebarPath = v.SidebarPath },
		"descriptions":      func() { cfg.IncludeDescriptions = v.IncludeDescriptions },
		"strip-html":        func() { cfg.StripHTML = v.StripHTML },
		"inject-sidebar":    func() { cfg.InjectSidebar = v.InjectSidebar },
		"archive-format":    func() { cfg.ArchiveFormat = v.ArchiveFormat },
		"directory-indexes": func() { cfg.DirectoryIndexes = v.DirectoryIndexes },
		"toc":               func() { cfg.TableOfContents = v.TableOfContents },
		"stats":             func() { cfg.Stats = v.Stats },
		"workspace":         func() { cfg.WorkspaceDir = v.WorkspaceDir },
	}
	for name, apply := range overrides {
		if f.fs.Changed(name) {
			apply()
		}
	}
}
