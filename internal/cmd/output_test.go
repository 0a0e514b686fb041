package cmd

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iconlens/iconlens/internal/index"
	"github.com/iconlens/iconlens/internal/metadata"
	"github.com/iconlens/iconlens/internal/types"
)

func newRenderFixture() (*index.Store, *index.Report) {
	store := index.NewStore("/workspace")
	store.Init()
	store.SetWorkspace(map[string]*types.IconEntity{
		"/workspace/logo.svg": {Name: "logo", Path: "/workspace/logo.svg", Source: types.SourceWorkspace, Category: "root"},
	})
	store.SetLibrary([]*types.IconEntity{
		{Name: "home", Path: "/workspace/lib/icons.ts", Source: types.SourceLibrary},
	}, nil)
	store.SetUsages(map[string][]types.Usage{
		"home": {{File: "/workspace/src/App.tsx", Line: 2, Preview: `<Icon name="home"/>`}},
	})

	meta := metadata.NewScanMetadata("/workspace")
	meta.SetCounts(1, 1, 0, 0)
	meta.UsageCount = 1

	return store, &index.Report{Metadata: meta}
}

func TestRenderIndexJSON(t *testing.T) {
	store, report := newRenderFixture()

	data, err := renderIndex(store, report, "json", false)
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Contains(t, doc, "metadata")
	assert.Contains(t, doc, "icons")

	icons, ok := doc["icons"].([]interface{})
	require.True(t, ok)
	assert.Len(t, icons, 2)
}

func TestRenderIndexYAML(t *testing.T) {
	store, report := newRenderFixture()

	data, err := renderIndex(store, report, "yaml", false)
	require.NoError(t, err)
	assert.Contains(t, string(data), "name: home")
}

func TestRenderIndexText(t *testing.T) {
	store, report := newRenderFixture()

	data, err := renderIndex(store, report, "text", false)
	require.NoError(t, err)

	text := string(data)
	assert.Contains(t, text, "folder:root")
	assert.Contains(t, text, "library:icons.ts")
	assert.Contains(t, text, "1 usages")
}

func TestRenderIndexUnknownFormat(t *testing.T) {
	store, report := newRenderFixture()

	_, err := renderIndex(store, report, "xml", false)
	assert.Error(t, err)
}
