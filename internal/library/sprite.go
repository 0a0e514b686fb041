package library

import (
	"fmt"
	"regexp"

	"log/slog"

	"github.com/iconlens/iconlens/internal/types"
)

var (
	symbolRe  = regexp.MustCompile(`(?s)<symbol\b([^>]*)>(.*?)</symbol>`)
	idAttrRe  = regexp.MustCompile(`\bid\s*=\s*["']([^"']+)["']`)
	viewBoxRe = regexp.MustCompile(`\bviewBox\s*=\s*["']([^"']+)["']`)
)

// ParseSprite extracts one entity per <symbol id viewBox> in an SVG sprite.
// Ids listed in skip (already recovered from the bundle) are left out: the
// bundle takes precedence on duplicate names. Symbols without an id are
// dropped individually.
func ParseSprite(content, spritePath string, skip map[string]bool, logger *slog.Logger) []*types.IconEntity {
	if logger == nil {
		logger = slog.Default()
	}

	var icons []*types.IconEntity
	seen := make(map[string]bool)

	for _, m := range symbolRe.FindAllStringSubmatch(content, -1) {
		attrs, body := m[1], m[2]

		idMatch := idAttrRe.FindStringSubmatch(attrs)
		if idMatch == nil {
			logger.Debug("Skipping sprite symbol without id", "sprite", spritePath)
			continue
		}
		id := idMatch[1]

		if skip[id] || seen[id] {
			continue
		}
		seen[id] = true

		viewBox := "0 0 24 24"
		if vbMatch := viewBoxRe.FindStringSubmatch(attrs); vbMatch != nil {
			viewBox = vbMatch[1]
		}

		icons = append(icons, &types.IconEntity{
			Name:    id,
			Path:    spritePath,
			Source:  types.SourceLibrary,
			Content: fmt.Sprintf(`<svg viewBox="%s">%s</svg>`, viewBox, body),
		})
	}

	return icons
}
