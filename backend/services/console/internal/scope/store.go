// Package scope keeps the filter scope a console client has selected.
package scope

import (
	"sync"

	"evzone/backend/libs/access"
	"evzone/backend/services/console/internal/notify"
)

// Store holds one client's scope. It starts at access.DefaultScope.
type Store struct {
	mu        sync.RWMutex
	scope     access.Scope
	listeners notify.Listeners[access.Scope]
}

// NewStore returns a store selecting everything.
func NewStore() *Store {
	return &Store{scope: access.DefaultScope()}
}

// Get returns the current scope.
func (s *Store) Get() access.Scope {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scope
}

// Set merges patch into the scope and notifies subscribers with the result.
func (s *Store) Set(patch access.ScopePatch) access.Scope {
	s.mu.Lock()
	s.scope = s.scope.Merge(patch)
	next := s.scope
	s.mu.Unlock()

	s.listeners.Publish(next)
	return next
}

// Subscribe registers fn for scope changes. The returned function unsubscribes.
func (s *Store) Subscribe(fn func(access.Scope)) func() {
	return s.listeners.Subscribe(fn)
}
