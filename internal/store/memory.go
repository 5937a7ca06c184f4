// internal/store/memory.go
//
// In-memory implementation of Store.
// Used for single-process deployments, development and tests.
//
// Characteristics:
//   - Keeps copies of *game.Session values keyed by ID in a map; callers
//     never share a pointer with the store, as with the Redis backend.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.
//   - Get returns ErrNotFound for unknown IDs.

package store

import (
	"context"
	"errors"
	"sync"

	"github.com/robalobadob/wordle-engine/internal/game"
)

// ErrNotFound is returned when no session is stored under an ID.
var ErrNotFound = errors.New("session not found")

// Store defines the persistence interface for game sessions.
// Implementations may be backed by memory (this file) or Redis.
type Store interface {
	// Save persists or updates a session.
	Save(ctx context.Context, s *game.Session) error

	// Get retrieves a session by ID.
	Get(ctx context.Context, id string) (*game.Session, error)

	// Delete removes a session; deleting a missing ID is not an error.
	Delete(ctx context.Context, id string) error
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex             // guards sessions
	sessions map[string]*game.Session // keyed by Session.ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*game.Session)}
}

// Save adds or updates the session in the map.
func (m *memory) Save(_ context.Context, s *game.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID()] = s.Clone()
	return nil
}

// Get looks up a session by ID.
func (m *memory) Get(_ context.Context, id string) (*game.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[id]; ok {
		return s.Clone(), nil
	}
	return nil, ErrNotFound
}

// Delete drops the session.
func (m *memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}
