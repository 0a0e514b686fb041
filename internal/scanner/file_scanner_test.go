package scanner

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iconlens/iconlens/internal/config"
	"github.com/iconlens/iconlens/internal/ignore"
	"github.com/iconlens/iconlens/internal/provider"
	"github.com/iconlens/iconlens/internal/types"
)

func testScannerConfig() config.ScannerConfig {
	return config.DefaultScannerConfig()
}

func newTestTree() *provider.FakeProvider {
	fake := provider.NewFakeProvider()
	fake.AddFile("/logo.svg", "<svg/>")
	fake.AddFile("/assets/home.svg", "<svg/>")
	fake.AddFile("/assets/social/x.svg", "<svg/>")
	fake.AddFile("/assets/readme.md", "docs")
	fake.AddFile("/node_modules/pkg/icon.svg", "<svg/>")
	return fake
}

func TestFileScannerFindsSVGs(t *testing.T) {
	fake := newTestTree()
	s := NewFileScanner(fake, nil, nil, nil)

	result := s.Scan(context.Background(), []string{"/"}, ".svg", testScannerConfig())

	require.Len(t, result.Items, 3)
	assert.Equal(t, 3, result.ItemsFound)
	assert.False(t, result.Truncated)
	assert.Empty(t, result.Errors)

	logo := result.Items["/logo.svg"]
	require.NotNil(t, logo)
	assert.Equal(t, "logo", logo.Name)
	assert.Equal(t, "root", logo.Category)
	assert.Equal(t, types.SourceWorkspace, logo.Source)

	x := result.Items["/assets/social/x.svg"]
	require.NotNil(t, x)
	assert.Equal(t, "assets/social", x.Category)

	// Dependency directories are never entered
	assert.NotContains(t, result.Items, "/node_modules/pkg/icon.svg")
}

func TestFileScannerIsIdempotent(t *testing.T) {
	fake := newTestTree()
	s := NewFileScanner(fake, nil, nil, nil)

	first := s.Scan(context.Background(), []string{"/"}, ".svg", testScannerConfig())
	second := s.Scan(context.Background(), []string{"/"}, ".svg", testScannerConfig())

	assert.Equal(t, first.ItemsFound, second.ItemsFound)
	for path := range first.Items {
		assert.Contains(t, second.Items, path)
	}
}

func TestFileScannerRespectsIgnorePatterns(t *testing.T) {
	fake := newTestTree()
	matcher := ignore.NewMatcher("/")
	matcher.SetPatterns(ignore.Compile([]string{"assets/social/"}))

	s := NewFileScanner(fake, matcher, nil, nil)
	result := s.Scan(context.Background(), []string{"/"}, ".svg", testScannerConfig())

	assert.Contains(t, result.Items, "/assets/home.svg")
	assert.NotContains(t, result.Items, "/assets/social/x.svg")
}

func TestFileScannerTruncatesAtMaxFiles(t *testing.T) {
	fake := newTestTree()
	cfg := testScannerConfig()
	cfg.MaxFiles = 2

	s := NewFileScanner(fake, nil, nil, nil)
	result := s.Scan(context.Background(), []string{"/"}, ".svg", cfg)

	assert.True(t, result.Truncated)
	assert.LessOrEqual(t, len(result.Items), 2)
}

func TestFileScannerTruncatesAtMaxDepth(t *testing.T) {
	fake := newTestTree()
	cfg := testScannerConfig()
	cfg.MaxDepth = 1

	s := NewFileScanner(fake, nil, nil, nil)
	result := s.Scan(context.Background(), []string{"/"}, ".svg", cfg)

	assert.True(t, result.Truncated)
	assert.Contains(t, result.Items, "/assets/home.svg")
	assert.NotContains(t, result.Items, "/assets/social/x.svg")
}

func TestFileScannerSkipsOutputArtifacts(t *testing.T) {
	fake := newTestTree()
	fake.AddFile("/dist2/sprite.svg", "<svg/>")

	s := NewFileScanner(fake, nil, nil, nil)
	s.SkipOutputArtifact("/dist2/sprite.svg")

	result := s.Scan(context.Background(), []string{"/"}, ".svg", testScannerConfig())
	assert.NotContains(t, result.Items, "/dist2/sprite.svg")
}

// failingProvider makes one directory unreadable
type failingProvider struct {
	*provider.FakeProvider
	failPath string
}

func (p *failingProvider) ListDir(path string) ([]types.File, error) {
	if path == p.failPath {
		return nil, errors.New("permission denied")
	}
	return p.FakeProvider.ListDir(path)
}

func TestFileScannerRecordsDirectoryErrors(t *testing.T) {
	fake := newTestTree()
	fake.AddDir("/locked")

	s := NewFileScanner(&failingProvider{FakeProvider: fake, failPath: "/locked"}, nil, nil, nil)
	result := s.Scan(context.Background(), []string{"/"}, ".svg", testScannerConfig())

	// Siblings are still scanned
	assert.Len(t, result.Items, 3)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "/locked", result.Errors[0].FilePath)
	assert.Contains(t, result.Errors[0].Message, "permission denied")
}
