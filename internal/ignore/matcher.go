// Package ignore compiles gitignore-style exclusion patterns and tests
// candidate paths against them. Matching is case-sensitive and always runs
// on forward-slash-normalized paths relative to the workspace root.
package ignore

import (
	"path/filepath"
	"regexp"
	"strings"
	"sync"
)

// Pattern is one compiled exclusion rule
type Pattern struct {
	raw     string
	re      *regexp.Regexp
	dirOnly bool
	rooted  bool
}

// Raw returns the original pattern text
func (p Pattern) Raw() string { return p.raw }

// Matches tests a slash-separated path relative to the workspace root
func (p Pattern) Matches(relPath string) bool {
	if p.re == nil {
		return false
	}
	return p.re.MatchString(relPath)
}

// Compile turns raw text lines into a pattern set. Blank lines and lines
// starting with '#' are skipped; a line that fails to translate is dropped.
func Compile(lines []string) []Pattern {
	patterns := make([]Pattern, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if p, ok := compilePattern(trimmed); ok {
			patterns = append(patterns, p)
		}
	}
	return patterns
}

func compilePattern(raw string) (Pattern, bool) {
	pattern := strings.ReplaceAll(raw, "\\", "/")

	dirOnly := strings.HasSuffix(pattern, "/")
	pattern = strings.TrimSuffix(pattern, "/")

	rooted := strings.HasPrefix(pattern, "/")
	pattern = strings.TrimPrefix(pattern, "/")

	if pattern == "" {
		return Pattern{}, false
	}

	var sb strings.Builder
	if rooted {
		sb.WriteString("^")
	} else {
		// Unanchored patterns match the name at any depth
		sb.WriteString("(^|.*/)")
	}
	sb.WriteString(translateGlob(pattern))
	// A match on a directory also covers everything under it
	sb.WriteString("(/.*)?$")

	re, err := regexp.Compile(sb.String())
	if err != nil {
		return Pattern{}, false
	}

	return Pattern{raw: raw, re: re, dirOnly: dirOnly, rooted: rooted}, true
}

// translateGlob converts one glob into regexp source: '**' crosses directory
// boundaries, '*' stays within one path segment, '?' is a single
// non-separator character, everything else is literal.
func translateGlob(glob string) string {
	var sb strings.Builder
	i := 0
	for i < len(glob) {
		c := glob[i]
		switch c {
		case '*':
			if strings.HasPrefix(glob[i:], "**/") {
				sb.WriteString("(.*/)?")
				i += 3
				continue
			}
			if strings.HasPrefix(glob[i:], "**") {
				sb.WriteString(".*")
				i += 2
				continue
			}
			sb.WriteString("[^/]*")
		case '?':
			sb.WriteString("[^/]")
		case '/':
			if strings.HasPrefix(glob[i:], "/**") && i+3 == len(glob) {
				sb.WriteString("(/.*)?")
				i += 3
				continue
			}
			sb.WriteByte('/')
		case '.', '+', '(', ')', '[', ']', '{', '}', '^', '$', '|', '\\':
			sb.WriteByte('\\')
			sb.WriteByte(c)
		default:
			sb.WriteByte(c)
		}
		i++
	}
	return sb.String()
}

// Matcher tests absolute paths against the currently loaded pattern set.
// The pattern set is swapped atomically on reload, so scans observe either
// the old or the new set, never a mix.
type Matcher struct {
	root string

	mu       sync.RWMutex
	patterns []Pattern
}

// NewMatcher creates a matcher for the given workspace root with no patterns
func NewMatcher(root string) *Matcher {
	return &Matcher{root: filepath.Clean(root)}
}

// Root returns the workspace root this matcher is anchored at
func (m *Matcher) Root() string { return m.root }

// SetPatterns atomically replaces the in-memory pattern set
func (m *Matcher) SetPatterns(patterns []Pattern) {
	m.mu.Lock()
	m.patterns = patterns
	m.mu.Unlock()
}

// Patterns returns the current pattern set
func (m *Matcher) Patterns() []Pattern {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.patterns
}

// IsIgnored reports whether an absolute path is excluded by the current
// pattern set. Paths outside the workspace root are never ignored.
func (m *Matcher) IsIgnored(absPath string) bool {
	rel, err := filepath.Rel(m.root, absPath)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return false
	}
	relPath := filepath.ToSlash(rel)

	m.mu.RLock()
	patterns := m.patterns
	m.mu.RUnlock()

	for _, p := range patterns {
		if p.Matches(relPath) {
			return true
		}
	}
	return false
}
