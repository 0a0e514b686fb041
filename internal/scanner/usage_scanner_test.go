package scanner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iconlens/iconlens/internal/provider"
)

func TestScanUsagesFindsAllOccurrences(t *testing.T) {
	fake := provider.NewFakeProvider()
	fake.AddFile("/src/App.tsx", `import React from "react";
<Icon name="arrow" />
const x = 1;
<Button icon='arrow' />
<Icon name="home" />`)

	s := NewUsageScanner(fake, nil, nil, nil)
	result := s.ScanUsages(context.Background(), []string{"arrow", "home", "spare"}, "", "", testScannerConfig())

	require.Empty(t, result.Errors)
	assert.Equal(t, 3, result.ItemsFound)

	arrow := result.Items["arrow"]
	require.Len(t, arrow, 2)
	assert.Equal(t, "/src/App.tsx", arrow[0].File)
	assert.Equal(t, 2, arrow[0].Line)
	assert.Equal(t, 4, arrow[1].Line)
	assert.Contains(t, arrow[0].Preview, `name="arrow"`)

	home := result.Items["home"]
	require.Len(t, home, 1)
	assert.Equal(t, 5, home[0].Line)

	// Unused names are present but empty: unused, not unscanned
	spare, ok := result.Items["spare"]
	require.True(t, ok)
	assert.Empty(t, spare)
}

func TestScanUsagesLongerNamesWinOverPrefixes(t *testing.T) {
	fake := provider.NewFakeProvider()
	fake.AddFile("/src/App.tsx", `<Icon name="arrowhead" />`)

	s := NewUsageScanner(fake, nil, nil, nil)
	result := s.ScanUsages(context.Background(), []string{"arrow", "arrowhead"}, "", "", testScannerConfig())

	assert.Empty(t, result.Items["arrow"])
	assert.Len(t, result.Items["arrowhead"], 1)
}

func TestScanUsagesSpacedAttributeAssignment(t *testing.T) {
	fake := provider.NewFakeProvider()
	fake.AddFile("/src/App.tsx", `<Icon name = "home" />
<Button icon ='home' />`)

	s := NewUsageScanner(fake, nil, nil, nil)
	result := s.ScanUsages(context.Background(), []string{"home"}, "", "", testScannerConfig())

	require.Len(t, result.Items["home"], 2)
	assert.Equal(t, 1, result.Items["home"][0].Line)
	assert.Equal(t, 2, result.Items["home"][1].Line)
}

func TestScanUsagesDeduplicatesSameLine(t *testing.T) {
	fake := provider.NewFakeProvider()
	fake.AddFile("/src/App.tsx", `<Icon name="home" /><Icon name="home" />`)

	s := NewUsageScanner(fake, nil, nil, nil)
	result := s.ScanUsages(context.Background(), []string{"home"}, "", "", testScannerConfig())

	assert.Len(t, result.Items["home"], 1)
}

func TestScanUsagesRespectsExcludeGlob(t *testing.T) {
	fake := provider.NewFakeProvider()
	fake.AddFile("/src/App.tsx", `<Icon name="home" />`)
	fake.AddFile("/src/fixtures/Sample.tsx", `<Icon name="home" />`)

	s := NewUsageScanner(fake, nil, nil, nil)
	result := s.ScanUsages(context.Background(), []string{"home"}, "", "src/fixtures/**", testScannerConfig())

	home := result.Items["home"]
	require.Len(t, home, 1)
	assert.Equal(t, "/src/App.tsx", home[0].File)
}

func TestScanUsagesEmptyNames(t *testing.T) {
	fake := provider.NewFakeProvider()
	fake.AddFile("/src/App.tsx", `<Icon name="home" />`)

	s := NewUsageScanner(fake, nil, nil, nil)
	result := s.ScanUsages(context.Background(), nil, "", "", testScannerConfig())

	assert.Empty(t, result.Items)
	assert.Zero(t, result.FilesScanned)
}

func TestScanUsagesRecordsDirectoryErrors(t *testing.T) {
	fake := provider.NewFakeProvider()
	fake.AddFile("/src/App.tsx", `<Icon name="home" />`)
	fake.AddDir("/locked")

	s := NewUsageScanner(&failingProvider{FakeProvider: fake, failPath: "/locked"}, nil, nil, nil)
	result := s.ScanUsages(context.Background(), []string{"home"}, "", "", testScannerConfig())

	// The unreadable directory is reported; siblings are still searched
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "/locked", result.Errors[0].FilePath)
	assert.Len(t, result.Items["home"], 1)
}

func TestScanUsagesDeterministicOrdering(t *testing.T) {
	fake := provider.NewFakeProvider()
	fake.AddFile("/src/b.tsx", `<Icon name="home" />`)
	fake.AddFile("/src/a.tsx", "\n\n"+`<Icon name="home" />`)

	s := NewUsageScanner(fake, nil, nil, nil)
	result := s.ScanUsages(context.Background(), []string{"home"}, "", "", testScannerConfig())

	home := result.Items["home"]
	require.Len(t, home, 2)
	assert.Equal(t, "/src/a.tsx", home[0].File)
	assert.Equal(t, 3, home[0].Line)
	assert.Equal(t, "/src/b.tsx", home[1].File)
}
