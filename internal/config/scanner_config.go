package config

import "sync"

// Default scan limits. The rasterized color threshold and cache capacity are
// heuristics carried over from the original generator; they are surfaced here
// as configuration rather than hard-coded in the analysis code.
const (
	DefaultMaxFiles         = 5000
	DefaultMaxDepth         = 25
	DefaultBatchSize        = 50
	DefaultConcurrencyLimit = 8

	DefaultRasterizedColorThreshold = 32
	DefaultMaxCacheEntries          = 500
)

// ScannerConfig tunes every scan invocation (file, inline and usage scans
// accept the same shape so one call configures all of them).
type ScannerConfig struct {
	MaxFiles         int `yaml:"max_files" json:"max_files"`
	MaxDepth         int `yaml:"max_depth" json:"max_depth"`
	BatchSize        int `yaml:"batch_size" json:"batch_size"`
	ConcurrencyLimit int `yaml:"concurrency_limit" json:"concurrency_limit"`
}

// DefaultScannerConfig returns the default scan limits
func DefaultScannerConfig() ScannerConfig {
	return ScannerConfig{
		MaxFiles:         DefaultMaxFiles,
		MaxDepth:         DefaultMaxDepth,
		BatchSize:        DefaultBatchSize,
		ConcurrencyLimit: DefaultConcurrencyLimit,
	}
}

var (
	scannerMu     sync.RWMutex
	scannerConfig = DefaultScannerConfig()
)

// SetScannerConfig replaces the process-wide scan configuration. Fields left
// at zero keep their current value. An in-flight scan holds its own copy, so
// changing the configuration does not affect it retroactively.
func SetScannerConfig(cfg ScannerConfig) {
	scannerMu.Lock()
	defer scannerMu.Unlock()
	if cfg.MaxFiles > 0 {
		scannerConfig.MaxFiles = cfg.MaxFiles
	}
	if cfg.MaxDepth > 0 {
		scannerConfig.MaxDepth = cfg.MaxDepth
	}
	if cfg.BatchSize > 0 {
		scannerConfig.BatchSize = cfg.BatchSize
	}
	if cfg.ConcurrencyLimit > 0 {
		scannerConfig.ConcurrencyLimit = cfg.ConcurrencyLimit
	}
}

// CurrentScannerConfig returns a copy of the process-wide scan configuration
func CurrentScannerConfig() ScannerConfig {
	scannerMu.RLock()
	defer scannerMu.RUnlock()
	return scannerConfig
}

// ResetScannerConfig restores the default scan configuration
func ResetScannerConfig() {
	scannerMu.Lock()
	defer scannerMu.Unlock()
	scannerConfig = DefaultScannerConfig()
}
