package index

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"log/slog"

	"github.com/iconlens/iconlens/internal/config"
	"github.com/iconlens/iconlens/internal/ignore"
	"github.com/iconlens/iconlens/internal/library"
	"github.com/iconlens/iconlens/internal/metadata"
	"github.com/iconlens/iconlens/internal/progress"
	"github.com/iconlens/iconlens/internal/scanner"
	"github.com/iconlens/iconlens/internal/types"
)

// Report is the outcome of one full index build
type Report struct {
	Metadata  *metadata.ScanMetadata `json:"metadata" yaml:"metadata"`
	Truncated bool                   `json:"truncated" yaml:"truncated"`
	Errors    []types.ScanError      `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// inflight tracks one running scan so concurrent callers can share its result
type inflight struct {
	done   chan struct{}
	report *Report
	err    error
}

// Engine runs full index builds: file scan, library load, inline scan and
// usage scan, merged into the store in one deterministic pass.
type Engine struct {
	store    *Store
	provider types.Provider
	ignorer  *ignore.Matcher
	project  *config.ProjectConfig
	progress *progress.Progress
	logger   *slog.Logger

	mu      sync.Mutex
	current *inflight
}

// NewEngine wires an engine over the given store and configuration
func NewEngine(store *Store, provider types.Provider, ignorer *ignore.Matcher, project *config.ProjectConfig, prog *progress.Progress, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	if project == nil {
		project = &config.ProjectConfig{}
	}
	return &Engine{
		store:    store,
		provider: provider,
		ignorer:  ignorer,
		project:  project,
		progress: prog,
		logger:   logger,
	}
}

// Store returns the store the engine populates
func (e *Engine) Store() *Store { return e.store }

// Scan runs a full index build. A Scan issued while another is in flight
// does not start a second traversal: it waits for the running build and
// returns its report.
func (e *Engine) Scan(ctx context.Context) (*Report, error) {
	e.mu.Lock()
	if e.current != nil {
		running := e.current
		e.mu.Unlock()
		select {
		case <-running.done:
			return running.report, running.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	run := &inflight{done: make(chan struct{})}
	e.current = run
	e.mu.Unlock()

	run.report, run.err = e.scan(ctx)

	e.mu.Lock()
	e.current = nil
	e.mu.Unlock()
	close(run.done)

	return run.report, run.err
}

// Refresh clears the store and rebuilds it from scratch
func (e *Engine) Refresh(ctx context.Context) (*Report, error) {
	e.store.Clear()
	return e.Scan(ctx)
}

// scan performs the actual build. Results replace the store's sub-maps
// wholesale so a rebuild never leaves stale entries behind.
func (e *Engine) scan(ctx context.Context) (*Report, error) {
	start := time.Now()
	base := e.provider.BasePath()
	cfg := config.CurrentScannerConfig()

	meta := metadata.NewScanMetadata(base)
	report := &Report{Metadata: meta}

	bundlePath, spritePath := e.artifactPaths(base)

	fileScanner := scanner.NewFileScanner(e.provider, e.ignorer, e.progress, e.logger)
	fileScanner.SkipOutputArtifact(bundlePath)
	fileScanner.SkipOutputArtifact(spritePath)

	files := fileScanner.Scan(ctx, e.scanRoots(base), ".svg", cfg)
	report.Errors = append(report.Errors, files.Errors...)
	report.Truncated = report.Truncated || files.Truncated

	if err := ctx.Err(); err != nil {
		return report, err
	}

	icons, variants, libErrs := library.Load(e.provider, bundlePath, spritePath, e.logger)
	report.Errors = append(report.Errors, libErrs...)

	inlineScanner := scanner.NewInlineScanner(e.provider, e.ignorer, e.progress, e.logger)
	inline := inlineScanner.Scan(ctx, e.project.UsageInclude, e.project.UsageExclude, cfg)
	report.Errors = append(report.Errors, inline.Errors...)
	report.Truncated = report.Truncated || inline.Truncated

	if err := ctx.Err(); err != nil {
		return report, err
	}

	names := make([]string, 0, len(icons))
	for _, icon := range icons {
		names = append(names, icon.Name)
	}

	usageScanner := scanner.NewUsageScanner(e.provider, e.ignorer, e.progress, e.logger)
	usages := usageScanner.ScanUsages(ctx, names, e.project.UsageInclude, e.project.UsageExclude, cfg)
	report.Errors = append(report.Errors, usages.Errors...)
	report.Truncated = report.Truncated || usages.Truncated

	if err := ctx.Err(); err != nil {
		return report, err
	}

	e.store.Init()
	e.store.SetWorkspace(files.Items)
	e.store.SetLibrary(icons, variants)
	e.store.SetInline(inline.Items)
	e.store.SetUsages(usages.Items)

	workspace, libCount, inlineCount, refCount := e.store.Counts()
	meta.SetCounts(workspace, libCount, inlineCount, refCount)
	meta.FilesScanned = files.FilesScanned + inline.FilesScanned + usages.FilesScanned
	meta.UsageCount = usages.ItemsFound
	meta.ErrorCount = len(report.Errors)
	meta.Truncated = report.Truncated
	meta.SetDuration(time.Since(start))

	e.logger.Info("Index build complete",
		"workspace", workspace,
		"library", libCount,
		"inline", inlineCount,
		"refs", refCount,
		"usages", usages.ItemsFound,
		"errors", len(report.Errors),
		"duration", time.Since(start))

	return report, nil
}

// scanRoots resolves configured paths against the workspace root. No
// configured paths means the whole workspace.
func (e *Engine) scanRoots(base string) []string {
	if len(e.project.Paths) == 0 {
		return []string{base}
	}
	roots := make([]string, 0, len(e.project.Paths))
	for _, p := range e.project.Paths {
		roots = append(roots, filepath.Join(base, filepath.FromSlash(p)))
	}
	return roots
}

// artifactPaths resolves the configured bundle and sprite files
func (e *Engine) artifactPaths(base string) (bundle, sprite string) {
	if e.project.BundleFile != "" {
		bundle = filepath.Join(base, filepath.FromSlash(e.project.BundleFile))
	}
	if e.project.SpriteFile != "" {
		sprite = filepath.Join(base, filepath.FromSlash(e.project.SpriteFile))
	}
	return bundle, sprite
}
