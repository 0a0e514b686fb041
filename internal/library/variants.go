package library

import (
	"encoding/json"
	"strings"
)

// variantsMarker introduces the structured variants declaration the bundle
// generator emits alongside the icon declarations. The payload is plain
// JSON mapping an icon name to its variant suffixes, which replaces the
// object-literal text the legacy generator expected consumers to evaluate.
const variantsMarker = "// @variants "

// parseVariantsLine decodes a `// @variants {...}` line. Returns false when
// the line is not a variants declaration or the JSON payload is malformed.
func parseVariantsLine(line string) (map[string][]string, bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, variantsMarker) {
		return nil, false
	}

	payload := strings.TrimPrefix(trimmed, variantsMarker)
	var variants map[string][]string
	if err := json.Unmarshal([]byte(payload), &variants); err != nil {
		return nil, false
	}
	return variants, true
}
