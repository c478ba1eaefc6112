package cart

import (
	"context"
	"sync"
)

// Manager hands out the Store for each live identity scope. Stores are
// created on first access, loading whatever the scope last persisted.
type Manager struct {
	mu      sync.Mutex
	storage Storage
	stores  map[string]*Store
}

func NewManager(storage Storage) *Manager {
	return &Manager{
		storage: storage,
		stores:  map[string]*Store{},
	}
}

// ForScope returns the store bound to the scope, creating and loading it on
// first access.
func (m *Manager) ForScope(ctx context.Context, scope string) (*Store, error) {
	if scope == "" {
		return nil, ErrNoScope
	}

	m.mu.Lock()
	s, ok := m.stores[scope]
	if !ok {
		s = NewStore(m.storage)
		m.stores[scope] = s
	}
	m.mu.Unlock()

	if s.Scope() != scope {
		if err := s.SetScope(ctx, scope); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// EndScope is called when an identity signs out or its session expires: the
// scope's store transitions to "no identity" (which also drops a guest
// scope's persisted copy) and is forgotten.
func (m *Manager) EndScope(ctx context.Context, scope string) {
	m.mu.Lock()
	s, ok := m.stores[scope]
	delete(m.stores, scope)
	m.mu.Unlock()

	if ok {
		_ = s.SetScope(ctx, "")
	}
}
