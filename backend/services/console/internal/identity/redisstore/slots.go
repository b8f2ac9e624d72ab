package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"evzone/backend/services/console/internal/identity"
)

// Slots stores one client's identity slots in redis. Keys expire after ttl
// without writes; every write refreshes all of the client's keys.
type Slots struct {
	client   redis.Cmdable
	clientID string
	ttl      time.Duration
}

// NewSlots returns redis-backed slots for clientID.
func NewSlots(client redis.Cmdable, clientID string, ttl time.Duration) *Slots {
	return &Slots{client: client, clientID: clientID, ttl: ttl}
}

// Key returns the redis key for slot.
func Key(clientID, slot string) string {
	return fmt.Sprintf("console:%s:%s", clientID, slot)
}

func (s *Slots) key(slot string) string {
	return Key(s.clientID, slot)
}

// Get returns identity.ErrSlotNotFound for missing keys.
func (s *Slots) Get(ctx context.Context, slot string) (string, error) {
	result, err := s.client.Get(ctx, s.key(slot)).Result()
	if errors.Is(err, redis.Nil) {
		return "", identity.ErrSlotNotFound
	}
	if err != nil {
		return "", err
	}
	return result, nil
}

// Update runs the deletes and writes in one MULTI/EXEC transaction.
func (s *Slots) Update(ctx context.Context, set map[string]string, del ...string) error {
	if len(set) == 0 && len(del) == 0 {
		return nil
	}
	written := make([]string, 0, len(set)+len(del))
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if len(del) > 0 {
			keys := make([]string, len(del))
			for i, slot := range del {
				keys[i] = s.key(slot)
			}
			pipe.Del(ctx, keys...)
			written = append(written, del...)
		}
		for slot, value := range set {
			pipe.Set(ctx, s.key(slot), value, s.ttl)
			written = append(written, slot)
		}
		s.touch(ctx, pipe, written...)
		return nil
	})
	return err
}

func (s *Slots) Set(ctx context.Context, slot, value string) error {
	return s.Update(ctx, map[string]string{slot: value})
}

func (s *Slots) Delete(ctx context.Context, slots ...string) error {
	return s.Update(ctx, nil, slots...)
}

// touch refreshes the ttl of the client's other slots.
func (s *Slots) touch(ctx context.Context, pipe redis.Pipeliner, skip ...string) {
	if s.ttl <= 0 {
		return
	}
	for _, slot := range identity.Keys() {
		if contains(skip, slot) {
			continue
		}
		pipe.Expire(ctx, s.key(slot), s.ttl)
	}
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
