package service

import (
	"errors"
	"sync"

	"polygo/internal/pattern/compositor"
	"polygo/internal/pattern/scheme"

	"github.com/google/uuid"
)

// ErrNotFound is returned for unknown workspace ids.
var ErrNotFound = errors.New("workspace not found")

// ============================================================
// Workspace
// ============================================================

// Workspace owns one scheme. Edits and regenerations are serialized by its
// mutex, so a regeneration always sees a fully applied edit.
type Workspace struct {
	ID string

	mu     sync.Mutex
	scheme *scheme.Scheme
}

// Apply runs one named edit. It reports whether the scheme changed; an error
// means the edit itself was malformed.
func (w *Workspace) Apply(e Edit) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return e.Apply(w.scheme)
}

// Snapshot returns a copy of the scheme that is safe to use without the lock.
func (w *Workspace) Snapshot() *scheme.Scheme {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.scheme.Clone()
}

// Replace swaps in a whole scheme, e.g. one loaded from storage.
func (w *Workspace) Replace(s *scheme.Scheme) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.scheme = s.Clone()
}

// Regenerate composes a fresh frame from the current scheme.
func (w *Workspace) Regenerate(surface compositor.Surface) (*compositor.Frame, error) {
	if err := surface.Validate(); err != nil {
		return nil, err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return compositor.Compose(w.scheme, surface), nil
}

// ============================================================
// Workspace Store
// ============================================================

type Store struct {
	mu         sync.Mutex
	workspaces map[string]*Workspace // id -> workspace
}

func NewStore() *Store {
	return &Store{
		workspaces: make(map[string]*Workspace),
	}
}

// Create opens a workspace with default parameters.
func (s *Store) Create() *Workspace {
	return s.CreateFrom(scheme.New())
}

// CreateFrom opens a workspace holding a copy of sc.
func (s *Store) CreateFrom(sc *scheme.Scheme) *Workspace {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := &Workspace{ID: uuid.NewString(), scheme: sc.Clone()}
	s.workspaces[w.ID] = w
	return w
}

func (s *Store) Get(id string) (*Workspace, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.workspaces[id]
	if !ok {
		return nil, ErrNotFound
	}
	return w, nil
}

func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.workspaces[id]; !ok {
		return ErrNotFound
	}
	delete(s.workspaces, id)
	return nil
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.workspaces)
}
