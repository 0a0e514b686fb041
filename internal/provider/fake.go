package provider

import (
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/iconlens/iconlens/internal/types"
)

// FakeProvider implements the Provider interface for testing
type FakeProvider struct {
	dirs    map[string]bool
	content map[string][]byte
	mtimes  map[string]time.Time
}

// NewFakeProvider creates a new empty fake provider
func NewFakeProvider() *FakeProvider {
	return &FakeProvider{
		dirs:    map[string]bool{"/": true},
		content: make(map[string][]byte),
		mtimes:  make(map[string]time.Time),
	}
}

// AddFile adds a file (and its parent directories) to the fake tree
func (p *FakeProvider) AddFile(path, content string) {
	p.content[path] = []byte(content)
	p.mtimes[path] = time.Now()
	for dir := filepath.Dir(path); dir != "/" && dir != "."; dir = filepath.Dir(dir) {
		p.dirs[dir] = true
	}
}

// Touch bumps a file's modification time
func (p *FakeProvider) Touch(path string, at time.Time) {
	p.mtimes[path] = at
}

// AddDir adds an empty directory
func (p *FakeProvider) AddDir(path string) {
	p.dirs[path] = true
}

// ListDir returns the direct children of a directory
func (p *FakeProvider) ListDir(path string) ([]types.File, error) {
	if !p.dirs[path] {
		return nil, os.ErrNotExist
	}

	var files []types.File
	seen := make(map[string]bool)

	for filePath, data := range p.content {
		if filepath.Dir(filePath) == path {
			files = append(files, types.File{
				Name:    filepath.Base(filePath),
				Path:    filePath,
				Size:    int64(len(data)),
				ModTime: p.mtimes[filePath],
			})
		}
	}
	for dir := range p.dirs {
		if dir == path {
			// filepath.Dir("/") == "/": the root must not list itself
			continue
		}
		if filepath.Dir(dir) == path && !seen[dir] {
			seen[dir] = true
			files = append(files, types.File{
				Name:  filepath.Base(dir),
				Path:  dir,
				IsDir: true,
			})
		}
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

// ReadFile returns the content of a file
func (p *FakeProvider) ReadFile(path string) ([]byte, error) {
	data, ok := p.content[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return data, nil
}

// Stat returns the entry for a single path
func (p *FakeProvider) Stat(path string) (types.File, error) {
	if data, ok := p.content[path]; ok {
		return types.File{
			Name:    filepath.Base(path),
			Path:    path,
			Size:    int64(len(data)),
			ModTime: p.mtimes[path],
		}, nil
	}
	if p.dirs[path] {
		return types.File{Name: filepath.Base(path), Path: path, IsDir: true}, nil
	}
	return types.File{}, os.ErrNotExist
}

// Exists checks if a file or directory exists
func (p *FakeProvider) Exists(path string) bool {
	if _, ok := p.content[path]; ok {
		return true
	}
	return p.dirs[path]
}

// BasePath returns the fake root
func (p *FakeProvider) BasePath() string {
	return "/"
}
