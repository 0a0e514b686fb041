package scanner

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"log/slog"

	"github.com/iconlens/iconlens/internal/batch"
	"github.com/iconlens/iconlens/internal/config"
	"github.com/iconlens/iconlens/internal/ignore"
	"github.com/iconlens/iconlens/internal/progress"
	"github.com/iconlens/iconlens/internal/types"
)

// DefaultUsageInclude bounds the usage scan to source files that can
// plausibly reference an icon by identifier.
const DefaultUsageInclude = "**/*.{html,htm,js,jsx,ts,tsx,vue,svelte,astro,md,mdx}"

// previewLimit caps the stored line preview
const previewLimit = 80

// UsageScanner finds occurrences of known icon identifiers inside a bounded
// set of source files, one combined search pass per file.
type UsageScanner struct {
	provider types.Provider
	ignorer  *ignore.Matcher
	progress *progress.Progress
	logger   *slog.Logger
}

// NewUsageScanner creates a usage scanner over the given provider
func NewUsageScanner(provider types.Provider, ignorer *ignore.Matcher, prog *progress.Progress, logger *slog.Logger) *UsageScanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &UsageScanner{provider: provider, ignorer: ignorer, progress: prog, logger: logger}
}

// fileUsages is the per-file scan outcome
type fileUsages struct {
	path   string
	byName map[string][]types.Usage
}

// ScanUsages searches for every known identifier in files matching
// includeGlob (minus excludeGlob), bounded by cfg.MaxFiles. Every known name
// gets an entry in the result, empty when unused, so "unused" can be told
// apart from "not yet scanned".
func (s *UsageScanner) ScanUsages(ctx context.Context, names []string, includeGlob, excludeGlob string, cfg config.ScannerConfig) types.ScanResult[map[string][]types.Usage] {
	start := time.Now()

	usages := make(map[string][]types.Usage, len(names))
	for _, name := range names {
		usages[name] = []types.Usage{}
	}

	result := types.ScanResult[map[string][]types.Usage]{Items: usages}

	if len(names) == 0 {
		result.Duration = time.Since(start)
		return result
	}

	s.progress.Preparing()

	// One combined pattern keeps per-file cost linear in file size no matter
	// how many icons exist
	pattern, err := combinedPattern(names)
	if err != nil {
		result.AddError("", err)
		result.Duration = time.Since(start)
		return result
	}

	candidates, truncated, walkErrs := s.collectCandidates(includeGlob, excludeGlob, cfg)
	result.Truncated = truncated
	result.Errors = append(result.Errors, walkErrs...)

	processed := 0
	results := batch.Run(ctx, batch.Options[string, *fileUsages]{
		Items:       candidates,
		BatchSize:   cfg.BatchSize,
		Concurrency: cfg.ConcurrencyLimit,
		Processor: func(_ context.Context, path string) (*fileUsages, error) {
			return s.scanFile(path, pattern)
		},
		OnBatchComplete: func(done, total int) {
			processed = done
			s.progress.Processing(done, total, "")
		},
	})

	for i, r := range results {
		if r.Err != nil {
			// A read failure on one file does not stop the scan
			result.AddError(candidates[i], r.Err)
			continue
		}
		if r.Value == nil {
			continue
		}
		for name, found := range r.Value.byName {
			usages[name] = append(usages[name], found...)
		}
	}

	// Deterministic ordering regardless of completion order
	for name := range usages {
		sort.Slice(usages[name], func(i, j int) bool {
			a, b := usages[name][i], usages[name][j]
			if a.File != b.File {
				return a.File < b.File
			}
			return a.Line < b.Line
		})
	}

	result.FilesScanned = len(candidates)
	for _, found := range usages {
		result.ItemsFound += len(found)
	}
	result.Duration = time.Since(start)

	s.progress.Complete(processed)
	s.logger.Debug("Usage scan complete",
		"names", len(names),
		"files_scanned", result.FilesScanned,
		"usages", result.ItemsFound,
		"duration", result.Duration)

	return result
}

// combinedPattern builds one alternation matching any known identifier in an
// attribute-like context, longest names first so shorter names never shadow
// longer ones.
func combinedPattern(names []string) (*regexp.Regexp, error) {
	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = regexp.QuoteMeta(name)
	}
	sort.Slice(quoted, func(i, j int) bool { return len(quoted[i]) > len(quoted[j]) })

	src := fmt.Sprintf(`(?:name|icon)\s*=\s*["'](%s)["']`, strings.Join(quoted, "|"))
	return regexp.Compile(src)
}

// scanFile runs the combined pattern over one file, deduplicating repeated
// matches at the same file+line.
func (s *UsageScanner) scanFile(path string, pattern *regexp.Regexp) (*fileUsages, error) {
	data, err := s.provider.ReadFile(path)
	if err != nil {
		return nil, err
	}
	content := string(data)

	// Cheap pre-check, no stricter than the pattern: the pattern allows
	// whitespace around '=', so only the attribute word itself can gate
	if !strings.Contains(content, "name") && !strings.Contains(content, "icon") {
		return nil, nil
	}

	matches := pattern.FindAllStringSubmatchIndex(content, -1)
	if len(matches) == 0 {
		return nil, nil
	}

	found := &fileUsages{path: path, byName: make(map[string][]types.Usage)}
	seen := make(map[string]bool) // name + line dedupe

	for _, m := range matches {
		name := content[m[2]:m[3]]
		line := 1 + strings.Count(content[:m[0]], "\n")

		key := fmt.Sprintf("%s:%d", name, line)
		if seen[key] {
			continue
		}
		seen[key] = true

		found.byName[name] = append(found.byName[name], types.Usage{
			File:    path,
			Line:    line,
			Preview: linePreview(content, m[0]),
		})
	}

	return found, nil
}

// linePreview extracts the trimmed line containing offset, capped at
// previewLimit characters.
func linePreview(content string, offset int) string {
	lineStart := strings.LastIndexByte(content[:offset], '\n') + 1
	lineEnd := strings.IndexByte(content[offset:], '\n')
	if lineEnd < 0 {
		lineEnd = len(content)
	} else {
		lineEnd += offset
	}

	preview := strings.TrimSpace(content[lineStart:lineEnd])
	if len(preview) > previewLimit {
		preview = preview[:previewLimit]
	}
	return preview
}

// collectCandidates enumerates files matching the include glob under the
// provider root, bounded by cfg.MaxFiles.
func (s *UsageScanner) collectCandidates(includeGlob, excludeGlob string, cfg config.ScannerConfig) ([]string, bool, []types.ScanError) {
	if includeGlob == "" {
		includeGlob = DefaultUsageInclude
	}
	return collectFiles(s.provider, s.ignorer, includeGlob, excludeGlob, cfg)
}
