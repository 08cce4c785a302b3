// Package session provides conversation session state storage.
package session

import (
	"context"
	"sync"

	"github.com/dealsmart/concierge/internal/domain"
)

// Message is one prior turn in a conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// State is the per-session conversation state: the lead being built plus the
// turn history used for the agent context window.
type State struct {
	Lead    domain.Lead `json:"lead"`
	History []Message   `json:"history,omitempty"`
}

// Clone returns an independent copy of the state.
func (s *State) Clone() *State {
	if s == nil {
		return nil
	}
	out := &State{Lead: s.Lead}
	if len(s.History) > 0 {
		out.History = make([]Message, len(s.History))
		copy(out.History, s.History)
	}
	return out
}

// Store persists session state keyed by session id.
type Store interface {
	// Get returns the state for a session, or nil when unknown.
	Get(ctx context.Context, sessionID string) (*State, error)

	// Put creates or replaces the state for a session.
	Put(ctx context.Context, sessionID string, state *State) error

	// Delete removes a session.
	Delete(ctx context.Context, sessionID string) error

	// Close releases store resources.
	Close() error
}

// MemoryStore is a process-lifetime in-memory store. There is no expiry; keys
// live until the process exits or Delete is called.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*State
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*State)}
}

// Get returns a copy of the stored state.
func (m *MemoryStore) Get(_ context.Context, sessionID string) (*State, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[sessionID].Clone(), nil
}

// Put stores a copy of the state.
func (m *MemoryStore) Put(_ context.Context, sessionID string, state *State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sessionID] = state.Clone()
	return nil
}

// Delete removes a session.
func (m *MemoryStore) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
	return nil
}

// Close is a no-op for the in-memory store.
func (m *MemoryStore) Close() error { return nil }
