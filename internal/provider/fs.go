package provider

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/iconlens/iconlens/internal/types"
)

// FSProvider implements the Provider interface for local file systems
type FSProvider struct {
	rootPath string
}

// NewFSProvider creates a new file system provider rooted at rootPath
func NewFSProvider(rootPath string) *FSProvider {
	return &FSProvider{
		rootPath: strings.TrimSuffix(rootPath, string(os.PathSeparator)),
	}
}

// ListDir returns the contents of a directory
func (p *FSProvider) ListDir(path string) ([]types.File, error) {
	fullPath := p.fullPath(path)

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, err
	}

	files := make([]types.File, 0, len(entries))
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			continue // Skip entries we can't stat
		}

		files = append(files, types.File{
			Name:    entry.Name(),
			Path:    filepath.Join(fullPath, entry.Name()),
			IsDir:   entry.IsDir(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	return files, nil
}

// ReadFile reads file content as bytes
func (p *FSProvider) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(p.fullPath(path))
}

// Stat returns the entry for a single path
func (p *FSProvider) Stat(path string) (types.File, error) {
	fullPath := p.fullPath(path)
	info, err := os.Stat(fullPath)
	if err != nil {
		return types.File{}, err
	}
	return types.File{
		Name:    info.Name(),
		Path:    fullPath,
		IsDir:   info.IsDir(),
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}

// Exists checks if a file or directory exists
func (p *FSProvider) Exists(path string) bool {
	_, err := os.Stat(p.fullPath(path))
	return err == nil
}

// BasePath returns the root this provider serves
func (p *FSProvider) BasePath() string {
	return p.rootPath
}

// fullPath resolves a possibly-relative path against the provider root
func (p *FSProvider) fullPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if path == "." || path == "" {
		return p.rootPath
	}
	return filepath.Join(p.rootPath, path)
}
