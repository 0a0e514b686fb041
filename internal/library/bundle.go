// Package library recovers icon entities from generated build output: the
// icons bundle and the SVG sprite. Both are narrowly-shaped machine-generated
// files, so extraction is deliberately pattern-based rather than a full
// language parse, with per-entry failure semantics: a malformed declaration
// is skipped, never fatal to the whole load.
package library

import (
	"bufio"
	"fmt"
	"regexp"
	"strings"

	"log/slog"

	"github.com/iconlens/iconlens/internal/types"
)

var (
	declStartRe = regexp.MustCompile(`^\s*(?:export\s+)?(?:const|var|let)\s+([A-Za-z_$][\w$]*)\s*(?::\s*[\w.$<>\[\]]+\s*)?=\s*\{`)
	fieldRe     = regexp.MustCompile(`^\s*["']?([\w-]+)["']?\s*:\s*(.+?),?\s*$`)
	declEndRe   = regexp.MustCompile(`^\s*\}\s*[;,]?\s*$`)
	animStartRe = regexp.MustCompile(`^\s*["']?animation["']?\s*:\s*\{`)
)

// Bundle is the parsed content of the generated icons bundle
type Bundle struct {
	Icons    []*types.IconEntity
	Variants map[string][]string
	Skipped  int // malformed declarations dropped during parsing
}

// ParseBundle runs a line-oriented parse over bundle source, recovering one
// entity per `identifier = { name, body, viewBox, animation? }` declaration.
func ParseBundle(content, bundlePath string, logger *slog.Logger) *Bundle {
	if logger == nil {
		logger = slog.Default()
	}

	bundle := &Bundle{Variants: make(map[string][]string)}
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(strings.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var (
		identifier string
		fields     map[string]string
		anim       map[string]string
		inDecl     bool
		inAnim     bool
	)

	reset := func() {
		identifier, fields, anim = "", nil, nil
		inDecl, inAnim = false, false
	}

	for scanner.Scan() {
		line := scanner.Text()

		if !inDecl {
			if variants, ok := parseVariantsLine(line); ok {
				bundle.Variants = variants
				continue
			}
			if m := declStartRe.FindStringSubmatch(line); m != nil {
				identifier = m[1]
				fields = make(map[string]string)
				inDecl = true
			}
			continue
		}

		if inAnim {
			if declEndRe.MatchString(line) {
				inAnim = false
				continue
			}
			if m := fieldRe.FindStringSubmatch(line); m != nil {
				if value, ok := unquote(m[2]); ok {
					anim[m[1]] = value
				}
			}
			continue
		}

		if animStartRe.MatchString(line) {
			anim = make(map[string]string)
			inAnim = true
			continue
		}

		if declEndRe.MatchString(line) {
			entity, err := buildEntity(identifier, fields, anim, bundlePath)
			if err != nil {
				bundle.Skipped++
				logger.Debug("Skipping malformed bundle entry", "identifier", identifier, "error", err)
			} else if !seen[entity.Name] {
				seen[entity.Name] = true
				bundle.Icons = append(bundle.Icons, entity)
			}
			reset()
			continue
		}

		if m := fieldRe.FindStringSubmatch(line); m != nil {
			if value, ok := unquote(m[2]); ok {
				fields[m[1]] = value
			}
		}
	}

	return bundle
}

// buildEntity validates one parsed declaration and reconstructs its markup
func buildEntity(identifier string, fields, anim map[string]string, bundlePath string) (*types.IconEntity, error) {
	name := fields["name"]
	if name == "" {
		name = identifier
	}
	if name == "" {
		return nil, fmt.Errorf("declaration without a name")
	}

	body, ok := fields["body"]
	if !ok || body == "" {
		return nil, fmt.Errorf("declaration %q without a body", name)
	}

	viewBox := fields["viewBox"]
	if viewBox == "" {
		viewBox = "0 0 24 24"
	}

	entity := &types.IconEntity{
		Name:    name,
		Path:    bundlePath,
		Source:  types.SourceLibrary,
		Content: fmt.Sprintf(`<svg viewBox="%s">%s</svg>`, viewBox, body),
	}

	if len(anim) > 0 {
		if anim["type"] == "" || anim["duration"] == "" {
			return nil, fmt.Errorf("declaration %q with incomplete animation", name)
		}
		entity.Animation = &types.Animation{
			Type:      anim["type"],
			Duration:  anim["duration"],
			Timing:    anim["timing"],
			Iteration: anim["iteration"],
			Delay:     anim["delay"],
			Direction: anim["direction"],
		}
	}

	return entity, nil
}

// unquote strips one level of matching quotes from a field value. Values
// that are not string literals (nested objects, numbers, identifiers) are
// rejected so callers skip them.
func unquote(value string) (string, bool) {
	value = strings.TrimSuffix(strings.TrimSpace(value), ",")
	if len(value) < 2 {
		return "", false
	}
	first, last := value[0], value[len(value)-1]
	if first != last {
		return "", false
	}
	switch first {
	case '\'', '"', '`':
		return value[1 : len(value)-1], true
	}
	return "", false
}
