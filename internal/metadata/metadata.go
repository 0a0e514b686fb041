package metadata

import (
	"path/filepath"
	"time"
)

// FormatVersion identifies the structure of the JSON output. Bump it when
// breaking changes are made to the report shape.
const FormatVersion = "0.1"

// ScanMetadata contains information about an index build
type ScanMetadata struct {
	Timestamp      string `json:"timestamp" yaml:"timestamp"`
	ScanPath       string `json:"scan_path" yaml:"scan_path"`
	FormatVersion  string `json:"format_version" yaml:"format_version"`
	DurationMs     int64  `json:"duration_ms,omitempty" yaml:"duration_ms,omitempty"`
	FilesScanned   int    `json:"files_scanned,omitempty" yaml:"files_scanned,omitempty"`
	WorkspaceIcons int    `json:"workspace_icons,omitempty" yaml:"workspace_icons,omitempty"`
	LibraryIcons   int    `json:"library_icons,omitempty" yaml:"library_icons,omitempty"`
	InlineIcons    int    `json:"inline_icons,omitempty" yaml:"inline_icons,omitempty"`
	ReferenceIcons int    `json:"reference_icons,omitempty" yaml:"reference_icons,omitempty"`
	UsageCount     int    `json:"usage_count,omitempty" yaml:"usage_count,omitempty"`
	ErrorCount     int    `json:"error_count,omitempty" yaml:"error_count,omitempty"`
	Truncated      bool   `json:"truncated,omitempty" yaml:"truncated,omitempty"`
}

// NewScanMetadata creates metadata for a scan rooted at scanPath
func NewScanMetadata(scanPath string) *ScanMetadata {
	absPath, _ := filepath.Abs(scanPath)

	return &ScanMetadata{
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		ScanPath:      absPath,
		FormatVersion: FormatVersion,
	}
}

// SetDuration sets the scan duration in milliseconds
func (m *ScanMetadata) SetDuration(duration time.Duration) {
	m.DurationMs = duration.Milliseconds()
}

// SetCounts records per-source icon counts
func (m *ScanMetadata) SetCounts(workspace, library, inline, refs int) {
	m.WorkspaceIcons = workspace
	m.LibraryIcons = library
	m.InlineIcons = inline
	m.ReferenceIcons = refs
}
