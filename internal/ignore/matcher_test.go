package ignore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileSkipsBlanksAndComments(t *testing.T) {
	patterns := Compile([]string{"", "  ", "# comment", "*.log", "  # indented comment"})
	require.Len(t, patterns, 1)
	assert.Equal(t, "*.log", patterns[0].Raw())
}

func TestPatternMatching(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		path    string
		want    bool
	}{
		{"star any depth", "*.log", "debug.log", true},
		{"star nested", "*.log", "logs/debug.log", true},
		{"star does not cross segments", "*.log", "logs/debug.log.d/keep", false},
		{"star stays in segment", "a*b", "a/b", false},
		{"question mark", "icon?.svg", "icon1.svg", true},
		{"question mark not separator", "icon?.svg", "icon/.svg", false},
		{"rooted matches at root", "/build", "build", true},
		{"rooted covers contents", "/build", "build/out.svg", true},
		{"rooted does not match nested", "/build", "src/build", false},
		{"unrooted matches nested dir", "node_modules", "pkg/node_modules/x/y.svg", true},
		{"dir pattern covers contents", "dist/", "dist/icons/a.svg", true},
		{"double star prefix bare name", "**/icon.svg", "icon.svg", true},
		{"double star prefix nested", "**/icon.svg", "a/b/icon.svg", true},
		{"double star suffix", "doc/**", "doc/a/b.svg", true},
		{"double star middle", "a/**/b.svg", "a/x/y/b.svg", true},
		{"double star middle direct", "a/**/b.svg", "a/b.svg", true},
		{"literal dot escaped", "a.svg", "axsvg", false},
		{"no partial name match", "icon", "iconography/a.svg", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			patterns := Compile([]string{tt.pattern})
			require.Len(t, patterns, 1)
			assert.Equal(t, tt.want, patterns[0].Matches(tt.path))
		})
	}
}

func TestMatcherIsIgnored(t *testing.T) {
	m := NewMatcher("/workspace")
	m.SetPatterns(Compile([]string{"*.tmp", "/generated"}))

	assert.True(t, m.IsIgnored("/workspace/a.tmp"))
	assert.True(t, m.IsIgnored("/workspace/sub/deep/b.tmp"))
	assert.True(t, m.IsIgnored("/workspace/generated/icons.svg"))
	assert.False(t, m.IsIgnored("/workspace/src/generated/icons.svg"))
	assert.False(t, m.IsIgnored("/workspace/a.svg"))
}

func TestMatcherPathsOutsideRootNeverIgnored(t *testing.T) {
	m := NewMatcher("/workspace")
	m.SetPatterns(Compile([]string{"**"}))

	assert.False(t, m.IsIgnored("/elsewhere/a.svg"))
	assert.False(t, m.IsIgnored("/workspace"))
	assert.True(t, m.IsIgnored("/workspace/a.svg"))
}

func TestMatcherSetPatternsReplacesWholesale(t *testing.T) {
	m := NewMatcher("/workspace")
	m.SetPatterns(Compile([]string{"*.tmp"}))
	require.True(t, m.IsIgnored("/workspace/a.tmp"))

	m.SetPatterns(Compile([]string{"*.bak"}))
	assert.False(t, m.IsIgnored("/workspace/a.tmp"))
	assert.True(t, m.IsIgnored("/workspace/a.bak"))

	m.SetPatterns(nil)
	assert.False(t, m.IsIgnored("/workspace/a.bak"))
}
