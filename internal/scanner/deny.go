package scanner

// ignoredDivePaths are dependency, build and version-control directories the
// walker never descends into, regardless of ignore patterns.
var ignoredDivePaths = map[string]bool{
	".git":             true,
	".svn":             true,
	".hg":              true,
	"node_modules":     true,
	"bower_components": true,
	"vendor":           true,
	"dist":             true,
	"build":            true,
	"out":              true,
	"target":           true,
	"coverage":         true,
	".nyc_output":      true,
	"__pycache__":      true,
	".venv":            true,
	"venv":             true,
	".idea":            true,
	".vscode":          true,
	".cache":           true,
	".next":            true,
	".nuxt":            true,
}

// shouldDive reports whether the walker may descend into a directory name
func shouldDive(name string) bool {
	return !ignoredDivePaths[name]
}
