// Package scanner discovers icons across a source tree: loose SVG files,
// inline markup and references, and usages of known icon identifiers.
package scanner

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"log/slog"

	"github.com/iconlens/iconlens/internal/batch"
	"github.com/iconlens/iconlens/internal/config"
	"github.com/iconlens/iconlens/internal/ignore"
	"github.com/iconlens/iconlens/internal/progress"
	"github.com/iconlens/iconlens/internal/types"
)

// FileScanner recursively enumerates files of a target extension under one
// or more roots, skipping build/dependency directories and ignored paths.
type FileScanner struct {
	provider types.Provider
	ignorer  *ignore.Matcher
	progress *progress.Progress
	logger   *slog.Logger

	// outputArtifacts are absolute paths of generated files (bundle, sprite)
	// that must never be indexed as workspace sources
	outputArtifacts map[string]bool
}

// NewFileScanner creates a file scanner over the given provider
func NewFileScanner(provider types.Provider, ignorer *ignore.Matcher, prog *progress.Progress, logger *slog.Logger) *FileScanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileScanner{
		provider:        provider,
		ignorer:         ignorer,
		progress:        prog,
		logger:          logger,
		outputArtifacts: make(map[string]bool),
	}
}

// SkipOutputArtifact excludes a generated file from workspace scanning
func (s *FileScanner) SkipOutputArtifact(absPath string) {
	if absPath != "" {
		s.outputArtifacts[filepath.Clean(absPath)] = true
	}
}

// fileScanState is the shared mutable state of one scan invocation
type fileScanState struct {
	mu           sync.Mutex
	entities     map[string]*types.IconEntity
	filesScanned int
	truncated    bool
	errors       []types.ScanError
}

func (st *fileScanState) full(maxFiles int) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.entities) >= maxFiles
}

func (st *fileScanState) addError(path string, err error) {
	st.mu.Lock()
	st.errors = append(st.errors, types.ScanError{FilePath: path, Message: err.Error()})
	st.mu.Unlock()
}

func (st *fileScanState) markTruncated() {
	st.mu.Lock()
	st.truncated = true
	st.mu.Unlock()
}

// Scan walks each root and returns every qualifying file as an IconEntity
// keyed by absolute path. Roots are scanned in order; the aggregate entity
// count is bounded by cfg.MaxFiles and depth per root by cfg.MaxDepth.
// Per-directory errors are collected and never abort the traversal.
func (s *FileScanner) Scan(ctx context.Context, roots []string, targetExt string, cfg config.ScannerConfig) types.ScanResult[map[string]*types.IconEntity] {
	start := time.Now()
	s.progress.Preparing()

	if !strings.HasPrefix(targetExt, ".") {
		targetExt = "." + targetExt
	}

	st := &fileScanState{entities: make(map[string]*types.IconEntity)}

	for _, root := range roots {
		if st.full(cfg.MaxFiles) {
			break
		}
		s.scanDir(ctx, st, filepath.Clean(root), filepath.Clean(root), targetExt, 0, cfg)
	}

	result := types.ScanResult[map[string]*types.IconEntity]{
		Items:        st.entities,
		FilesScanned: st.filesScanned,
		ItemsFound:   len(st.entities),
		Duration:     time.Since(start),
		Truncated:    st.truncated,
		Errors:       st.errors,
	}

	s.progress.Complete(result.FilesScanned)
	s.logger.Debug("File scan complete",
		"roots", len(roots),
		"files_scanned", result.FilesScanned,
		"icons", result.ItemsFound,
		"truncated", result.Truncated,
		"errors", len(result.Errors),
		"duration", result.Duration)

	return result
}

// scanDir processes one directory level: files of the target extension are
// admitted synchronously, subdirectories fan out through the batch runner.
func (s *FileScanner) scanDir(ctx context.Context, st *fileScanState, root, dir, targetExt string, depth int, cfg config.ScannerConfig) {
	if depth > cfg.MaxDepth {
		st.markTruncated()
		return
	}

	entries, err := s.provider.ListDir(dir)
	if err != nil {
		// Permission or transient I/O failure: record, siblings continue
		st.addError(dir, err)
		return
	}

	var subdirs []string
	for _, entry := range entries {
		if entry.IsDir {
			if !shouldDive(entry.Name) {
				continue
			}
			if s.ignorer != nil && s.ignorer.IsIgnored(entry.Path) {
				continue
			}
			subdirs = append(subdirs, entry.Path)
			continue
		}

		st.mu.Lock()
		st.filesScanned++
		st.mu.Unlock()

		if !strings.HasSuffix(entry.Name, targetExt) {
			continue
		}
		if s.outputArtifacts[entry.Path] {
			continue // the generated bundle is not a source file
		}
		if s.ignorer != nil && s.ignorer.IsIgnored(entry.Path) {
			continue
		}

		if !s.admit(st, root, entry, cfg.MaxFiles) {
			return
		}
	}

	if len(subdirs) == 0 || st.full(cfg.MaxFiles) {
		return
	}

	batch.Run(ctx, batch.Options[string, struct{}]{
		Items:       subdirs,
		BatchSize:   cfg.BatchSize,
		Concurrency: cfg.ConcurrencyLimit,
		Processor: func(ctx context.Context, subdir string) (struct{}, error) {
			if !st.full(cfg.MaxFiles) {
				s.scanDir(ctx, st, root, subdir, targetExt, depth+1, cfg)
			}
			return struct{}{}, nil
		},
		OnBatchComplete: func(processed, total int) {
			st.mu.Lock()
			scanned := st.filesScanned
			st.mu.Unlock()
			s.progress.Scanning(scanned, 0)
		},
	})
}

// admit inserts one entity unless the scan already hit MaxFiles. Returns
// false when the directory should stop admitting files.
func (s *FileScanner) admit(st *fileScanState, root string, entry types.File, maxFiles int) bool {
	st.mu.Lock()
	defer st.mu.Unlock()

	if len(st.entities) >= maxFiles {
		st.truncated = true
		return false
	}

	name := strings.TrimSuffix(entry.Name, filepath.Ext(entry.Name))
	category := "root"
	if rel, err := filepath.Rel(root, filepath.Dir(entry.Path)); err == nil && rel != "." {
		category = filepath.ToSlash(rel)
	}

	st.entities[entry.Path] = &types.IconEntity{
		Name:     name,
		Path:     entry.Path,
		Source:   types.SourceWorkspace,
		Category: category,
	}
	return true
}
