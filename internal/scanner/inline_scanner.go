package scanner

import (
	"context"
	"fmt"
	"path/filepath"
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

// DefaultInlineInclude bounds the inline scan to markup-bearing source files
const DefaultInlineInclude = "**/*.{html,htm,js,jsx,ts,tsx,vue,svelte,astro,md,mdx,css}"

var (
	inlineSvgRe = regexp.MustCompile(`(?s)<svg\b[^>]*>.*?</svg>`)
	svgIDRe     = regexp.MustCompile(`\bid\s*=\s*["']([^"']+)["']`)
	imgRefRe    = regexp.MustCompile(`<img[^>]+src\s*=\s*["']([^"']+\.svg)["']`)
	cssURLRefRe = regexp.MustCompile(`url\(\s*["']?([^"')]+\.svg)["']?\s*\)`)
)

// InlineScanner finds SVG markup embedded in source files and references to
// SVG files (img tags, CSS url()), producing inline and img-ref entities.
type InlineScanner struct {
	provider types.Provider
	ignorer  *ignore.Matcher
	progress *progress.Progress
	logger   *slog.Logger
}

// NewInlineScanner creates an inline-markup scanner over the given provider
func NewInlineScanner(provider types.Provider, ignorer *ignore.Matcher, prog *progress.Progress, logger *slog.Logger) *InlineScanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &InlineScanner{provider: provider, ignorer: ignorer, progress: prog, logger: logger}
}

// Scan searches candidate source files for embedded <svg> blocks and *.svg
// references. Entities carry FilePath+Line; reference entities additionally
// resolve Exists against the filesystem.
func (s *InlineScanner) Scan(ctx context.Context, includeGlob, excludeGlob string, cfg config.ScannerConfig) types.ScanResult[[]*types.IconEntity] {
	start := time.Now()
	s.progress.Preparing()

	if includeGlob == "" {
		includeGlob = DefaultInlineInclude
	}

	candidates, truncated, walkErrs := collectFiles(s.provider, s.ignorer, includeGlob, excludeGlob, cfg)

	result := types.ScanResult[[]*types.IconEntity]{Truncated: truncated, Errors: walkErrs}

	results := batch.Run(ctx, batch.Options[string, []*types.IconEntity]{
		Items:       candidates,
		BatchSize:   cfg.BatchSize,
		Concurrency: cfg.ConcurrencyLimit,
		Processor: func(_ context.Context, path string) ([]*types.IconEntity, error) {
			return s.scanFile(path)
		},
		OnBatchComplete: func(done, total int) {
			s.progress.Processing(done, total, "")
		},
	})

	var entities []*types.IconEntity
	for i, r := range results {
		if r.Err != nil {
			result.AddError(candidates[i], r.Err)
			continue
		}
		entities = append(entities, r.Value...)
	}

	// Deterministic ordering regardless of completion order
	sort.Slice(entities, func(i, j int) bool {
		if entities[i].FilePath != entities[j].FilePath {
			return entities[i].FilePath < entities[j].FilePath
		}
		return entities[i].Line < entities[j].Line
	})

	result.Items = entities
	result.FilesScanned = len(candidates)
	result.ItemsFound = len(entities)
	result.Duration = time.Since(start)

	s.progress.Complete(result.FilesScanned)
	s.logger.Debug("Inline scan complete",
		"files_scanned", result.FilesScanned,
		"entities", result.ItemsFound,
		"truncated", result.Truncated,
		"duration", result.Duration)

	return result
}

// scanFile extracts inline blocks and references from one file
func (s *InlineScanner) scanFile(path string) ([]*types.IconEntity, error) {
	data, err := s.provider.ReadFile(path)
	if err != nil {
		return nil, err
	}
	content := string(data)

	// Pre-check: most source files carry no SVG markup at all
	if !strings.Contains(content, "<svg") && !strings.Contains(content, ".svg") {
		return nil, nil
	}

	var entities []*types.IconEntity

	// Matches are non-overlapping, so every one is a distinct element even
	// when minified markup puts several on one line
	for _, m := range inlineSvgRe.FindAllStringIndex(content, -1) {
		line := 1 + strings.Count(content[:m[0]], "\n")
		markup := content[m[0]:m[1]]
		entities = append(entities, &types.IconEntity{
			Name:     inlineName(markup, path, line),
			Path:     path,
			Source:   types.SourceInline,
			Content:  markup,
			FilePath: path,
			Line:     line,
		})
	}

	entities = append(entities, s.references(content, path, imgRefRe)...)
	entities = append(entities, s.references(content, path, cssURLRefRe)...)

	return entities, nil
}

// references extracts *.svg reference entities matched by re
func (s *InlineScanner) references(content, path string, re *regexp.Regexp) []*types.IconEntity {
	var entities []*types.IconEntity

	for _, m := range re.FindAllStringSubmatchIndex(content, -1) {
		target := content[m[2]:m[3]]
		if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") ||
			strings.HasPrefix(target, "data:") {
			continue
		}

		line := 1 + strings.Count(content[:m[0]], "\n")
		resolved := s.resolveTarget(path, target)

		exists := types.ExistsNo
		if s.provider.Exists(resolved) {
			exists = types.ExistsYes
		}

		base := filepath.Base(target)
		entities = append(entities, &types.IconEntity{
			Name:     strings.TrimSuffix(base, filepath.Ext(base)),
			Path:     resolved,
			Source:   types.SourceWorkspace,
			Category: types.CategoryImgRef,
			FilePath: path,
			Line:     line,
			Exists:   exists,
		})
	}

	return entities
}

// resolveTarget resolves a reference relative to the containing file, or to
// the workspace root when the reference is site-absolute.
func (s *InlineScanner) resolveTarget(fromFile, target string) string {
	if strings.HasPrefix(target, "/") {
		return filepath.Join(s.provider.BasePath(), filepath.FromSlash(target))
	}
	return filepath.Clean(filepath.Join(filepath.Dir(fromFile), filepath.FromSlash(target)))
}

// inlineName derives a stable identifier for an inline block: its id
// attribute when present, otherwise file basename and line.
func inlineName(markup, path string, line int) string {
	if m := svgIDRe.FindStringSubmatch(markup); m != nil {
		return m[1]
	}
	base := filepath.Base(path)
	return fmt.Sprintf("%s:%d", strings.TrimSuffix(base, filepath.Ext(base)), line)
}
