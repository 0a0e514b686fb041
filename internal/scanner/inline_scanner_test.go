package scanner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iconlens/iconlens/internal/provider"
	"github.com/iconlens/iconlens/internal/types"
)

func TestInlineScannerFindsEmbeddedMarkup(t *testing.T) {
	fake := provider.NewFakeProvider()
	fake.AddFile("/web/index.html", `<div>
<svg id="logo" viewBox="0 0 10 10"><path d="M0 0"/></svg>
</div>
<svg width="4"><circle r="1"/></svg>`)

	s := NewInlineScanner(fake, nil, nil, nil)
	result := s.Scan(context.Background(), "", "", testScannerConfig())

	require.Empty(t, result.Errors)
	require.Len(t, result.Items, 2)

	logo := result.Items[0]
	assert.Equal(t, "logo", logo.Name)
	assert.Equal(t, types.SourceInline, logo.Source)
	assert.Equal(t, "/web/index.html", logo.FilePath)
	assert.Equal(t, 2, logo.Line)
	assert.Contains(t, logo.Content, `viewBox="0 0 10 10"`)

	// No id attribute: name falls back to basename and line
	anon := result.Items[1]
	assert.Equal(t, "index:4", anon.Name)
	assert.Equal(t, 4, anon.Line)
}

func TestInlineScannerResolvesReferences(t *testing.T) {
	fake := provider.NewFakeProvider()
	fake.AddFile("/web/icons/home.svg", "<svg/>")
	fake.AddFile("/web/page.html", `<img src="./icons/home.svg">
<img src="/gone.svg">
<img src="https://cdn.example.com/x.svg">
<img src="data:image/svg+xml;base64,AAAA">`)

	s := NewInlineScanner(fake, nil, nil, nil)
	result := s.Scan(context.Background(), "", "", testScannerConfig())

	require.Len(t, result.Items, 2)

	home := result.Items[0]
	assert.Equal(t, "home", home.Name)
	assert.Equal(t, types.CategoryImgRef, home.Category)
	assert.Equal(t, "/web/icons/home.svg", home.Path)
	assert.Equal(t, types.ExistsYes, home.Exists)

	gone := result.Items[1]
	assert.Equal(t, "gone", gone.Name)
	assert.Equal(t, "/gone.svg", gone.Path)
	assert.Equal(t, types.ExistsNo, gone.Exists)
}

func TestInlineScannerFindsCSSReferences(t *testing.T) {
	fake := provider.NewFakeProvider()
	fake.AddFile("/web/icons/bg.svg", "<svg/>")
	fake.AddFile("/web/site.css", `.hero { background: url("./icons/bg.svg"); }`)

	s := NewInlineScanner(fake, nil, nil, nil)
	result := s.Scan(context.Background(), "", "", testScannerConfig())

	require.Len(t, result.Items, 1)
	assert.Equal(t, "bg", result.Items[0].Name)
	assert.Equal(t, types.ExistsYes, result.Items[0].Exists)
}

func TestInlineScannerMinifiedMarkupSameLine(t *testing.T) {
	fake := provider.NewFakeProvider()
	fake.AddFile("/web/min.html", `<svg id="a"><path/></svg><svg id="b"><path/></svg>`)

	s := NewInlineScanner(fake, nil, nil, nil)
	result := s.Scan(context.Background(), "", "", testScannerConfig())

	require.Len(t, result.Items, 2)
	names := []string{result.Items[0].Name, result.Items[1].Name}
	assert.ElementsMatch(t, []string{"a", "b"}, names)
	assert.Equal(t, 1, result.Items[0].Line)
	assert.Equal(t, 1, result.Items[1].Line)
}

func TestInlineScannerRecordsDirectoryErrors(t *testing.T) {
	fake := provider.NewFakeProvider()
	fake.AddFile("/web/a.html", `<svg id="one"><path/></svg>`)
	fake.AddDir("/locked")

	s := NewInlineScanner(&failingProvider{FakeProvider: fake, failPath: "/locked"}, nil, nil, nil)
	result := s.Scan(context.Background(), "", "", testScannerConfig())

	require.Len(t, result.Errors, 1)
	assert.Equal(t, "/locked", result.Errors[0].FilePath)
	require.Len(t, result.Items, 1)
}

func TestInlineScannerOrdering(t *testing.T) {
	fake := provider.NewFakeProvider()
	fake.AddFile("/web/b.html", `<svg id="two"><path/></svg>`)
	fake.AddFile("/web/a.html", `<svg id="one"><path/></svg>`)

	s := NewInlineScanner(fake, nil, nil, nil)
	result := s.Scan(context.Background(), "", "", testScannerConfig())

	require.Len(t, result.Items, 2)
	assert.Equal(t, "/web/a.html", result.Items[0].FilePath)
	assert.Equal(t, "/web/b.html", result.Items[1].FilePath)
}
