package identity

import (
	"context"
	"errors"
	"sync"
)

// Slot keys holding the persisted identity state of one client.
const (
	SessionKey      = "evzone:session"
	ImpersonatorKey = "evzone:impersonator"
	ReturnToKey     = "evzone:impersonation:returnTo"
)

// Keys lists every slot the store writes.
func Keys() []string {
	return []string{SessionKey, ImpersonatorKey, ReturnToKey}
}

// ErrSlotNotFound is returned by Slots.Get for an absent key.
var ErrSlotNotFound = errors.New("identity: slot not found")

// Slots is the string key-value storage behind a Store. Update applies every
// write and delete of one call atomically: either all land or none do.
type Slots interface {
	Get(ctx context.Context, key string) (string, error)
	Update(ctx context.Context, set map[string]string, del ...string) error
}

// MemorySlots keeps slots in process memory.
type MemorySlots struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemorySlots returns empty slots.
func NewMemorySlots() *MemorySlots {
	return &MemorySlots{values: make(map[string]string)}
}

func (m *MemorySlots) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	if !ok {
		return "", ErrSlotNotFound
	}
	return v, nil
}

func (m *MemorySlots) Update(_ context.Context, set map[string]string, del ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range del {
		delete(m.values, key)
	}
	for key, value := range set {
		m.values[key] = value
	}
	return nil
}

func (m *MemorySlots) Set(ctx context.Context, key, value string) error {
	return m.Update(ctx, map[string]string{key: value})
}

func (m *MemorySlots) Delete(ctx context.Context, keys ...string) error {
	return m.Update(ctx, nil, keys...)
}
