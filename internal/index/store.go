// Package index owns the unified icon index: the entity maps populated by
// the scanners, merge/query logic over them, and full-scan orchestration.
package index

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/iconlens/iconlens/internal/types"
)

// Store holds every entity sub-map behind one explicit object with an
// init/clear/shutdown lifecycle. Scanners receive it by reference; nothing
// reads it as ambient state. Partial mutations are sequenced by the caller
// and are not safe to interleave with a full rescan.
type Store struct {
	mu   sync.RWMutex
	root string

	workspace map[string]*types.IconEntity // keyed by absolute path
	library   map[string]*types.IconEntity // keyed by name
	inline    []*types.IconEntity
	refs      []*types.IconEntity
	usages    map[string][]types.Usage
	variants  map[string][]string

	initialized bool
}

// NewStore creates an empty, uninitialized store for the given workspace root
func NewStore(root string) *Store {
	return &Store{root: filepath.Clean(root)}
}

// Init prepares empty sub-maps; it is idempotent
func (s *Store) Init() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.initialized {
		return
	}
	s.resetLocked()
	s.initialized = true
}

// Clear empties every sub-map but keeps the store usable
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
}

// Shutdown clears the store and marks it uninitialized
func (s *Store) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
	s.initialized = false
}

func (s *Store) resetLocked() {
	s.workspace = make(map[string]*types.IconEntity)
	s.library = make(map[string]*types.IconEntity)
	s.inline = nil
	s.refs = nil
	s.usages = make(map[string][]types.Usage)
	s.variants = make(map[string][]string)
}

// Root returns the workspace root the store indexes
func (s *Store) Root() string { return s.root }

// SetWorkspace replaces the workspace file sub-map
func (s *Store) SetWorkspace(entities map[string]*types.IconEntity) {
	s.mu.Lock()
	s.workspace = entities
	s.mu.Unlock()
}

// ClearWorkspace empties just the workspace sub-map
func (s *Store) ClearWorkspace() {
	s.mu.Lock()
	s.workspace = make(map[string]*types.IconEntity)
	s.mu.Unlock()
}

// SetLibrary replaces the library sub-map and the variants declaration
func (s *Store) SetLibrary(icons []*types.IconEntity, variants map[string][]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.library = make(map[string]*types.IconEntity, len(icons))
	for _, icon := range icons {
		if _, dup := s.library[icon.Name]; !dup {
			s.library[icon.Name] = icon
		}
	}
	if variants == nil {
		variants = make(map[string][]string)
	}
	s.variants = variants
}

// ClearLibrary empties just the library sub-map
func (s *Store) ClearLibrary() {
	s.mu.Lock()
	s.library = make(map[string]*types.IconEntity)
	s.variants = make(map[string][]string)
	s.mu.Unlock()
}

// SetInline replaces inline and reference occurrences
func (s *Store) SetInline(entities []*types.IconEntity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inline = nil
	s.refs = nil
	for _, e := range entities {
		if e.Source == types.SourceInline {
			s.inline = append(s.inline, e)
		} else {
			s.refs = append(s.refs, e)
		}
	}
}

// ClearInline empties inline and reference occurrences
func (s *Store) ClearInline() {
	s.mu.Lock()
	s.inline = nil
	s.refs = nil
	s.mu.Unlock()
}

// SetUsages replaces the usage sub-map and keeps every library entity's
// derived usage count consistent with it.
func (s *Store) SetUsages(usages map[string][]types.Usage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if usages == nil {
		usages = make(map[string][]types.Usage)
	}
	s.usages = usages
	for name, entity := range s.library {
		entity.SetUsages(usages[name])
	}
}

// ClearUsages empties the usage sub-map and the derived per-entity lists
func (s *Store) ClearUsages() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.usages = make(map[string][]types.Usage)
	for _, entity := range s.library {
		entity.Usages = nil
		entity.UsageCount = 0
	}
}

// Usages returns the recorded usages for one name and whether the name has
// been scanned at all (an empty non-nil list means "scanned, unused").
func (s *Store) Usages(name string) ([]types.Usage, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	usages, ok := s.usages[name]
	return usages, ok
}

// Variants returns the variant suffixes declared for one library icon
func (s *Store) Variants(name string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.variants[name]
}

// AddIcon inserts or replaces a single workspace entity without a rescan
func (s *Store) AddIcon(entity *types.IconEntity) {
	if entity == nil || entity.Path == "" {
		return
	}
	if entity.Category == "" {
		entity.Category = s.categoryFor(entity.Path)
	}
	s.mu.Lock()
	s.workspace[entity.Path] = entity
	s.mu.Unlock()
}

// RemoveIcon drops a single workspace entity by path
func (s *Store) RemoveIcon(path string) {
	s.mu.Lock()
	delete(s.workspace, path)
	s.mu.Unlock()
}

// RenameIcon moves a workspace entity to a new path, recomputing its name
// and folder grouping so derived fields stay consistent.
func (s *Store) RenameIcon(oldPath, newPath string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	entity, ok := s.workspace[oldPath]
	if !ok {
		return false
	}
	delete(s.workspace, oldPath)

	base := filepath.Base(newPath)
	entity.Path = newPath
	entity.Name = strings.TrimSuffix(base, filepath.Ext(base))
	entity.Category = s.categoryFor(newPath)
	s.workspace[newPath] = entity
	return true
}

// categoryFor derives the folder grouping for a workspace path
func (s *Store) categoryFor(path string) string {
	rel, err := filepath.Rel(s.root, filepath.Dir(path))
	if err != nil || rel == "." {
		return "root"
	}
	return filepath.ToSlash(rel)
}
