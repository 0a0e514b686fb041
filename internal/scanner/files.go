package scanner

import (
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/iconlens/iconlens/internal/config"
	"github.com/iconlens/iconlens/internal/ignore"
	"github.com/iconlens/iconlens/internal/types"
)

// collectFiles enumerates files under the provider root whose slash-relative
// path matches includeGlob (minus excludeGlob), bounded by cfg.MaxFiles and
// cfg.MaxDepth. An unreadable directory is recorded as a ScanError and not
// searched; the second return reports truncation.
func collectFiles(provider types.Provider, ignorer *ignore.Matcher, includeGlob, excludeGlob string, cfg config.ScannerConfig) ([]string, bool, []types.ScanError) {
	root := provider.BasePath()
	var files []string
	var errs []types.ScanError
	truncated := walkFiles(provider, ignorer, root, root, includeGlob, excludeGlob, 0, cfg, &files, &errs)
	return files, truncated, errs
}

func walkFiles(provider types.Provider, ignorer *ignore.Matcher, root, dir, includeGlob, excludeGlob string, depth int, cfg config.ScannerConfig, out *[]string, errs *[]types.ScanError) (truncated bool) {
	if depth > cfg.MaxDepth {
		return true
	}
	entries, err := provider.ListDir(dir)
	if err != nil {
		// Permission or transient I/O failure: record, siblings continue
		*errs = append(*errs, types.ScanError{FilePath: dir, Message: err.Error()})
		return false
	}

	for _, entry := range entries {
		if len(*out) >= cfg.MaxFiles {
			return true
		}

		if entry.IsDir {
			if !shouldDive(entry.Name) {
				continue
			}
			if ignorer != nil && ignorer.IsIgnored(entry.Path) {
				continue
			}
			if walkFiles(provider, ignorer, root, entry.Path, includeGlob, excludeGlob, depth+1, cfg, out, errs) {
				truncated = true
			}
			continue
		}

		rel, err := filepath.Rel(root, entry.Path)
		if err != nil {
			continue
		}
		relPath := filepath.ToSlash(rel)

		if ok, _ := doublestar.Match(includeGlob, relPath); !ok {
			continue
		}
		if excludeGlob != "" {
			if excluded, _ := doublestar.Match(excludeGlob, relPath); excluded {
				continue
			}
		}
		if ignorer != nil && ignorer.IsIgnored(entry.Path) {
			continue
		}

		*out = append(*out, entry.Path)
	}

	return truncated
}
