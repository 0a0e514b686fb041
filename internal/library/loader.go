package library

import (
	"log/slog"

	"github.com/iconlens/iconlens/internal/types"
)

// Load reads the configured build outputs and returns every library entity.
// An unconfigured or missing output file means "nothing built yet" and yields
// an empty result; a file that exists but cannot be read is recorded as a
// scan error.
func Load(provider types.Provider, bundlePath, spritePath string, logger *slog.Logger) ([]*types.IconEntity, map[string][]string, []types.ScanError) {
	if logger == nil {
		logger = slog.Default()
	}

	var (
		icons    []*types.IconEntity
		variants map[string][]string
		errs     []types.ScanError
	)

	fromBundle := make(map[string]bool)

	if bundlePath != "" && provider.Exists(bundlePath) {
		data, err := provider.ReadFile(bundlePath)
		if err != nil {
			errs = append(errs, types.ScanError{FilePath: bundlePath, Message: err.Error()})
		} else {
			bundle := ParseBundle(string(data), bundlePath, logger)
			icons = append(icons, bundle.Icons...)
			variants = bundle.Variants
			for _, icon := range bundle.Icons {
				fromBundle[icon.Name] = true
			}
			if bundle.Skipped > 0 {
				logger.Debug("Bundle parse skipped malformed entries", "path", bundlePath, "skipped", bundle.Skipped)
			}
		}
	}

	if spritePath != "" && provider.Exists(spritePath) {
		data, err := provider.ReadFile(spritePath)
		if err != nil {
			errs = append(errs, types.ScanError{FilePath: spritePath, Message: err.Error()})
		} else {
			icons = append(icons, ParseSprite(string(data), spritePath, fromBundle, logger)...)
		}
	}

	return icons, variants, errs
}
