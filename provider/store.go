package provider

import (
	"context"
	"sync"
)

// MemoryStore is an in-process TokenStore.
type MemoryStore struct {
	mu     sync.RWMutex
	tokens map[string]string
}

var _ TokenStore = (*MemoryStore)(nil)

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tokens: make(map[string]string)}
}

// Load returns the stored token, empty when none.
func (m *MemoryStore) Load(_ context.Context, app string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tokens[app], nil
}

// Save stores token for app.
func (m *MemoryStore) Save(_ context.Context, app, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[app] = token
	return nil
}

// Clear removes the token for app.
func (m *MemoryStore) Clear(_ context.Context, app string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tokens, app)
	return nil
}
