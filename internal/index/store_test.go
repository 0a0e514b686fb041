package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iconlens/iconlens/internal/types"
)

func newPopulatedStore() *Store {
	s := NewStore("/workspace")
	s.Init()

	s.SetWorkspace(map[string]*types.IconEntity{
		"/workspace/logo.svg":        {Name: "logo", Path: "/workspace/logo.svg", Source: types.SourceWorkspace, Category: "root"},
		"/workspace/assets/home.svg": {Name: "home", Path: "/workspace/assets/home.svg", Source: types.SourceWorkspace, Category: "assets"},
	})
	s.SetLibrary([]*types.IconEntity{
		{Name: "home", Path: "/workspace/lib/icons.ts", Source: types.SourceLibrary},
		{Name: "spinner", Path: "/workspace/lib/icons.ts", Source: types.SourceLibrary},
	}, map[string][]string{"home": {"outline"}})
	s.SetInline([]*types.IconEntity{
		{Name: "banner", Path: "/workspace/web/index.html", Source: types.SourceInline, FilePath: "/workspace/web/index.html", Line: 3},
		{Name: "gone", Path: "/workspace/gone.svg", Source: types.SourceWorkspace, Category: types.CategoryImgRef, FilePath: "/workspace/web/index.html", Line: 9, Exists: types.ExistsNo},
	})
	s.SetUsages(map[string][]types.Usage{
		"home":    {{File: "/workspace/src/App.tsx", Line: 4, Preview: `<Icon name="home"/>`}},
		"spinner": {},
	})
	return s
}

func TestStoreLifecycle(t *testing.T) {
	s := newPopulatedStore()

	workspace, library, inline, refs := s.Counts()
	assert.Equal(t, 2, workspace)
	assert.Equal(t, 2, library)
	assert.Equal(t, 1, inline)
	assert.Equal(t, 1, refs)

	s.Clear()
	workspace, library, inline, refs = s.Counts()
	assert.Zero(t, workspace+library+inline+refs)
	assert.Empty(t, s.Variants("home"))
}

func TestStoreSubMapsClearIndependently(t *testing.T) {
	s := newPopulatedStore()

	s.ClearWorkspace()
	workspace, library, _, _ := s.Counts()
	assert.Zero(t, workspace)
	assert.Equal(t, 2, library)

	s.ClearLibrary()
	_, library, inline, refs := s.Counts()
	assert.Zero(t, library)
	assert.Equal(t, 1, inline)
	assert.Equal(t, 1, refs)

	s.ClearInline()
	_, _, inline, refs = s.Counts()
	assert.Zero(t, inline+refs)
}

func TestStoreSetUsagesSyncsCounts(t *testing.T) {
	s := newPopulatedStore()

	home := s.ByName("home")[0]
	require.Equal(t, types.SourceLibrary, home.Source)
	assert.Equal(t, 1, home.UsageCount)
	require.Len(t, home.Usages, 1)

	usages, known := s.Usages("home")
	assert.True(t, known)
	assert.Len(t, usages, 1)

	// Scanned but unused is distinguishable from never scanned
	usages, known = s.Usages("spinner")
	assert.True(t, known)
	assert.Empty(t, usages)

	_, known = s.Usages("never-scanned")
	assert.False(t, known)

	s.ClearUsages()
	assert.Zero(t, s.ByName("home")[0].UsageCount)
}

func TestStoreAddRemoveIcon(t *testing.T) {
	s := newPopulatedStore()

	s.AddIcon(&types.IconEntity{Name: "new", Path: "/workspace/icons/new.svg", Source: types.SourceWorkspace})
	added := s.ByPath("/workspace/icons/new.svg")
	require.NotNil(t, added)
	assert.Equal(t, "icons", added.Category)

	s.RemoveIcon("/workspace/icons/new.svg")
	assert.Nil(t, s.ByPath("/workspace/icons/new.svg"))
}

func TestStoreRenameIcon(t *testing.T) {
	s := newPopulatedStore()

	ok := s.RenameIcon("/workspace/assets/home.svg", "/workspace/assets/social/house.svg")
	require.True(t, ok)

	assert.Nil(t, s.ByPath("/workspace/assets/home.svg"))

	renamed := s.ByPath("/workspace/assets/social/house.svg")
	require.NotNil(t, renamed)
	assert.Equal(t, "house", renamed.Name)
	assert.Equal(t, "assets/social", renamed.Category)

	assert.False(t, s.RenameIcon("/workspace/nope.svg", "/workspace/other.svg"))
}

func TestStoreVariants(t *testing.T) {
	s := newPopulatedStore()
	assert.Equal(t, []string{"outline"}, s.Variants("home"))
	assert.Empty(t, s.Variants("spinner"))
}
