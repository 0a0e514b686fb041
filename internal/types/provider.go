package types

import "time"

// Provider defines the interface for file system operations used by the
// scanners. The index engine never touches the filesystem directly so that
// scans can run against a fake tree in tests.
type Provider interface {
	// ListDir returns the contents of a directory
	ListDir(path string) ([]File, error)

	// ReadFile reads file content as bytes
	ReadFile(path string) ([]byte, error)

	// Stat returns the entry for a single path
	Stat(path string) (File, error)

	// Exists checks if a file or directory exists
	Exists(path string) bool

	// BasePath returns the root this provider serves
	BasePath() string
}

// File represents a file or directory entry
type File struct {
	Name    string    `json:"name"`
	Path    string    `json:"path"`
	IsDir   bool      `json:"is_dir"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
}
