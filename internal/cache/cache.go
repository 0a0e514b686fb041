// Package cache memoizes file content and derived per-file analysis keyed by
// path, invalidated by modification time.
package cache

import (
	"context"
	"sync"
	"time"

	"log/slog"

	"github.com/iconlens/iconlens/internal/batch"
	"github.com/iconlens/iconlens/internal/config"
	"github.com/iconlens/iconlens/internal/types"
)

// entry holds cached content plus lazily computed analyses
type entry struct {
	content string
	modTime time.Time

	colorCount *int
	rasterized *bool
	animation  *string
}

// ContentCache serves file content and derived analyses. Content is loaded on
// first access; a later request re-checks the file's modification time and
// reloads when it changed, dropping stale derived values with it.
type ContentCache struct {
	provider   types.Provider
	maxEntries int
	threshold  int // unique-color count above which an SVG counts as rasterized
	logger     *slog.Logger

	mu      sync.Mutex
	entries map[string]*entry
	order   []string // insertion order, for FIFO-approximate eviction
}

// New creates a cache reading through the given provider
func New(provider types.Provider, maxEntries, rasterizedThreshold int, logger *slog.Logger) *ContentCache {
	if maxEntries <= 0 {
		maxEntries = config.DefaultMaxCacheEntries
	}
	if rasterizedThreshold <= 0 {
		rasterizedThreshold = config.DefaultRasterizedColorThreshold
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ContentCache{
		provider:   provider,
		maxEntries: maxEntries,
		threshold:  rasterizedThreshold,
		logger:     logger,
		entries:    make(map[string]*entry),
	}
}

// GetContent returns the file's content, loading or reloading as needed.
// The second return is false when the file cannot be read.
func (c *ContentCache) GetContent(path string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.fresh(path)
	if !ok {
		return "", false
	}
	return e.content, true
}

// IsRasterized reports whether the file looks like a raster-to-vector
// conversion (embedded raster image, or more unique colors than the
// configured threshold). Unreadable files are not rasterized.
func (c *ContentCache) IsRasterized(path string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.fresh(path)
	if !ok {
		return false
	}
	if e.rasterized == nil {
		count := countUniqueColors(e.content)
		rasterized := count > c.threshold || hasEmbeddedRaster(e.content)
		e.colorCount = &count
		e.rasterized = &rasterized
	}
	return *e.rasterized
}

// ColorCount returns the unique color count of the file's markup
func (c *ContentCache) ColorCount(path string) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.fresh(path)
	if !ok {
		return 0, false
	}
	if e.colorCount == nil {
		count := countUniqueColors(e.content)
		e.colorCount = &count
	}
	return *e.colorCount, true
}

// AnimationType returns the detected animation type ("" when none)
func (c *ContentCache) AnimationType(path string) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.fresh(path)
	if !ok {
		return ""
	}
	if e.animation == nil {
		animation := detectAnimationType(e.content)
		e.animation = &animation
	}
	return *e.animation
}

// Invalidate removes a single path's entry; the next access reloads content
// and recomputes every derived analysis.
func (c *ContentCache) Invalidate(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[path]; !ok {
		return
	}
	delete(c.entries, path)
	for i, p := range c.order {
		if p == path {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of cached entries
func (c *ContentCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// PreloadBatch warms the cache for a set of paths in the background, in
// bounded batches. Fire and forget; failures are ignored.
func (c *ContentCache) PreloadBatch(paths []string) {
	cfg := config.CurrentScannerConfig()
	go func() {
		batch.Run(context.Background(), batch.Options[string, struct{}]{
			Items:       paths,
			BatchSize:   cfg.BatchSize,
			Concurrency: cfg.ConcurrencyLimit,
			Processor: func(_ context.Context, path string) (struct{}, error) {
				c.GetContent(path)
				return struct{}{}, nil
			},
		})
	}()
}

// fresh returns a current entry for path, loading or reloading as needed.
// Caller holds c.mu.
func (c *ContentCache) fresh(path string) (*entry, bool) {
	info, err := c.provider.Stat(path)
	if err != nil {
		return nil, false
	}

	if e, ok := c.entries[path]; ok {
		if e.modTime.Equal(info.ModTime) {
			return e, true
		}
		// Modified on disk: reload and recompute everything
		c.logger.Debug("Cache entry stale, reloading", "path", path)
	}

	data, err := c.provider.ReadFile(path)
	if err != nil {
		return nil, false
	}

	if _, exists := c.entries[path]; !exists {
		c.evictIfNeeded()
		c.order = append(c.order, path)
	}
	e := &entry{content: string(data), modTime: info.ModTime}
	c.entries[path] = e
	return e, true
}

// evictIfNeeded drops the oldest ~20% of entries (by insertion order) once
// the cache reaches 90% of its capacity. FIFO-approximate, not strict LRU.
func (c *ContentCache) evictIfNeeded() {
	if len(c.entries) < c.maxEntries*9/10 {
		return
	}
	drop := len(c.order) / 5
	if drop < 1 {
		drop = 1
	}
	for _, path := range c.order[:drop] {
		delete(c.entries, path)
	}
	c.order = append([]string(nil), c.order[drop:]...)
	c.logger.Debug("Evicted cache entries", "count", drop, "remaining", len(c.entries))
}
