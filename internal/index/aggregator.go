package index

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/iconlens/iconlens/internal/types"
)

// Category key kinds. Keys are synthesized as "<kind>:<value>" so a flat
// string key stays machine-parseable, with the value being a bundle/sprite
// file name, a workspace-relative folder, or a source file path.
const (
	CategoryKindLibrary = "library"
	CategoryKindFolder  = "folder"
	CategoryKindInline  = "inline"
	CategoryKindRef     = "ref"
)

// ParseCategoryKey splits a synthesized category key into kind and value
func ParseCategoryKey(key string) (kind, value string, err error) {
	kind, value, ok := strings.Cut(key, ":")
	if !ok || value == "" {
		return "", "", fmt.Errorf("malformed category key %q", key)
	}
	switch kind {
	case CategoryKindLibrary, CategoryKindFolder, CategoryKindInline, CategoryKindRef:
		return kind, value, nil
	}
	return "", "", fmt.Errorf("unknown category kind %q", kind)
}

// ByName returns every entity carrying the given name, library entities
// first, then workspace files, then inline/reference occurrences.
func (s *Store) ByName(name string) []*types.IconEntity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*types.IconEntity
	if entity, ok := s.library[name]; ok {
		out = append(out, entity)
	}
	var files []*types.IconEntity
	for _, entity := range s.workspace {
		if entity.Name == name {
			files = append(files, entity)
		}
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	out = append(out, files...)
	for _, entity := range s.inline {
		if entity.Name == name {
			out = append(out, entity)
		}
	}
	for _, entity := range s.refs {
		if entity.Name == name {
			out = append(out, entity)
		}
	}
	return out
}

// ByPath returns the workspace entity indexed under an absolute path
func (s *Store) ByPath(path string) *types.IconEntity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.workspace[path]
}

// All returns every entity across all sub-maps, sorted by name, with path
// as a tie-break so repeated calls produce the same order.
func (s *Store) All() []*types.IconEntity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*types.IconEntity, 0, len(s.workspace)+len(s.library)+len(s.inline)+len(s.refs))
	for _, entity := range s.workspace {
		out = append(out, entity)
	}
	for _, entity := range s.library {
		out = append(out, entity)
	}
	out = append(out, s.inline...)
	out = append(out, s.refs...)

	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		if out[i].Path != out[j].Path {
			return out[i].Path < out[j].Path
		}
		return out[i].Line < out[j].Line
	})
	return out
}

// WorkspaceFiles returns the workspace sub-map as a path-sorted slice
func (s *Store) WorkspaceFiles() []*types.IconEntity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*types.IconEntity, 0, len(s.workspace))
	for _, entity := range s.workspace {
		out = append(out, entity)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// IsBuilt reports whether a name resolves to a library icon. Library entries
// win over same-named workspace files, so a true result means consumers can
// reference the icon without shipping the loose file.
func (s *Store) IsBuilt(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.library[name]
	return ok
}

// Counts returns per-source entity totals
func (s *Store) Counts() (workspace, library, inline, refs int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.workspace), len(s.library), len(s.inline), len(s.refs)
}

// Categories groups every entity under a synthesized category key. Entities
// within a group are name-sorted; iteration order over the map is up to the
// caller (sort the keys for stable output).
func (s *Store) Categories() map[string][]*types.IconEntity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	groups := make(map[string][]*types.IconEntity)
	add := func(key string, entity *types.IconEntity) {
		groups[key] = append(groups[key], entity)
	}

	for _, entity := range s.workspace {
		category := entity.Category
		if category == "" {
			category = "root"
		}
		add(CategoryKindFolder+":"+category, entity)
	}
	for _, entity := range s.library {
		add(CategoryKindLibrary+":"+filepath.Base(entity.Path), entity)
	}
	for _, entity := range s.inline {
		add(CategoryKindInline+":"+s.relTo(entity.FilePath), entity)
	}
	for _, entity := range s.refs {
		add(CategoryKindRef+":"+s.relTo(entity.FilePath), entity)
	}

	for _, group := range groups {
		sort.Slice(group, func(i, j int) bool {
			if group[i].Name != group[j].Name {
				return group[i].Name < group[j].Name
			}
			return group[i].Line < group[j].Line
		})
	}
	return groups
}

func (s *Store) relTo(path string) string {
	rel, err := filepath.Rel(s.root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
