// Package appctx binds the identity and scope stores of one console client.
package appctx

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"evzone/backend/services/console/internal/identity"
	"evzone/backend/services/console/internal/scope"
)

// Context is the state of one console client.
type Context struct {
	ClientID string
	Identity *identity.Store
	Scope    *scope.Store

	lastSeen atomic.Int64
	holds    atomic.Int32
}

// Hold keeps the context from being evicted until the returned release is called.
func (c *Context) Hold() (release func()) {
	c.holds.Add(1)
	var once sync.Once
	return func() {
		once.Do(func() { c.holds.Add(-1) })
	}
}

// SlotsFactory returns the identity slots for a client.
type SlotsFactory func(clientID string) identity.Slots

// Registry creates contexts on first use and drops idle ones.
type Registry struct {
	mu       sync.Mutex
	contexts map[string]*Context
	newSlots SlotsFactory
	logger   *zap.Logger
	now      func() time.Time
}

// NewRegistry builds a registry whose contexts persist identity through newSlots.
func NewRegistry(newSlots SlotsFactory, logger *zap.Logger) *Registry {
	return &Registry{
		contexts: make(map[string]*Context),
		newSlots: newSlots,
		logger:   logger,
		now:      time.Now,
	}
}

// Resolve returns the context for clientID, creating it if needed.
func (r *Registry) Resolve(clientID string) *Context {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.contexts[clientID]
	if !ok {
		c = &Context{
			ClientID: clientID,
			Identity: identity.NewStore(r.newSlots(clientID), r.logger.With(zap.String("client_id", clientID))),
			Scope:    scope.NewStore(),
		}
		r.contexts[clientID] = c
		r.logger.Debug("client context created", zap.String("client_id", clientID))
	}
	c.lastSeen.Store(r.now().UnixNano())
	return c
}

// Evict drops contexts unused for longer than idle and returns how many were dropped.
// Scope is lost with the context. Identity survives only when the factory's slots
// outlive it (Redis); per-context memory slots log the client out.
func (r *Registry) Evict(idle time.Duration) int {
	cutoff := r.now().Add(-idle).UnixNano()

	r.mu.Lock()
	defer r.mu.Unlock()
	evicted := 0
	for id, c := range r.contexts {
		if c.holds.Load() > 0 || c.lastSeen.Load() >= cutoff {
			continue
		}
		delete(r.contexts, id)
		evicted++
	}
	return evicted
}

// Len returns the number of live contexts.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.contexts)
}

// Run evicts idle contexts every interval until ctx is cancelled.
func (r *Registry) Run(ctx context.Context, interval, idle time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Evict(idle); n > 0 {
				r.logger.Info("evicted idle client contexts", zap.Int("count", n))
			}
		}
	}
}
