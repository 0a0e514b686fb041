package cache

import (
	"regexp"
	"strings"
)

// Animation type names reported by detectAnimationType
const (
	AnimationCSS        = "css"
	AnimationSMIL       = "smil"
	AnimationTransition = "transition"
)

var (
	hexColorRe    = regexp.MustCompile(`#(?:[0-9a-fA-F]{3,4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})\b`)
	rgbColorRe    = regexp.MustCompile(`(?:rgb|rgba|hsl|hsla)\([^)]*\)`)
	paintAttrRe   = regexp.MustCompile(`(?:fill|stroke|stop-color|color)\s*[:=]\s*["']?([^"';)}\s>]+)`)
	embeddedImgRe = regexp.MustCompile(`<image[^>]+(?:href|xlink:href)\s*=\s*["']data:image/`)
)

// nonPaints are paint values that never count as colors
var nonPaints = map[string]bool{
	"none":         true,
	"transparent":  true,
	"currentcolor": true,
	"inherit":      true,
	"initial":      true,
	"unset":        true,
}

// countUniqueColors counts distinct paint values in SVG markup: hex literals,
// rgb()/hsl() functions and named fill/stroke/stop-color values.
func countUniqueColors(content string) int {
	colors := make(map[string]bool)

	for _, m := range hexColorRe.FindAllString(content, -1) {
		colors[strings.ToLower(m)] = true
	}
	for _, m := range rgbColorRe.FindAllString(content, -1) {
		colors[strings.ToLower(strings.ReplaceAll(m, " ", ""))] = true
	}
	for _, m := range paintAttrRe.FindAllStringSubmatch(content, -1) {
		value := strings.ToLower(m[1])
		if nonPaints[value] || strings.HasPrefix(value, "url(") ||
			strings.HasPrefix(value, "#") || strings.HasPrefix(value, "rgb") ||
			strings.HasPrefix(value, "hsl") {
			continue // handled above, a reference, or not a paint
		}
		colors[value] = true
	}

	return len(colors)
}

// hasEmbeddedRaster reports whether the markup embeds a base64 raster image
func hasEmbeddedRaster(content string) bool {
	return embeddedImgRe.MatchString(content)
}

// detectAnimationType classifies how an icon animates by substring search
// over style/attribute text. Heuristic: unusual CSS can slip through.
func detectAnimationType(content string) string {
	lower := strings.ToLower(content)

	switch {
	case strings.Contains(lower, "@keyframes"):
		return AnimationCSS
	case strings.Contains(lower, "<animate") || strings.Contains(lower, "<set "):
		return AnimationSMIL
	case strings.Contains(lower, "transition:") || strings.Contains(lower, "transition-property"):
		return AnimationTransition
	case strings.Contains(lower, "animation:") || strings.Contains(lower, "animation-name"):
		return AnimationCSS
	default:
		return ""
	}
}
