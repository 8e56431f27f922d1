// internal/domain/session/state.go
package session

import (
	"context"
	"errors"
	"sync"
)

// ErrNoSession is returned by Store.Load when nothing is stored for the id
var ErrNoSession = errors.New("session not found")

// State is the persisted client-side session
type State struct {
	LoggedIn bool   `json:"loggedIn"`
	Username string `json:"username"`
	Avatar   string `json:"avatar,omitempty"`
}

// Store persists session state keyed by session id
type Store interface {
	Load(ctx context.Context, sessionID string) (State, error)
	Save(ctx context.Context, sessionID string, state State) error
	Clear(ctx context.Context, sessionID string) error
}

// MemoryStore keeps sessions in process memory
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]State
}

// NewMemoryStore creates an empty in-memory session store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]State)}
}

// Load implements Store
func (m *MemoryStore) Load(_ context.Context, sessionID string) (State, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	state, ok := m.sessions[sessionID]
	if !ok {
		return State{}, ErrNoSession
	}
	return state, nil
}

// Save implements Store
func (m *MemoryStore) Save(_ context.Context, sessionID string, state State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sessionID] = state
	return nil
}

// Clear implements Store
func (m *MemoryStore) Clear(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
	return nil
}
