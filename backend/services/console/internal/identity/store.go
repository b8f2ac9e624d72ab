package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"evzone/backend/libs/access"
	"evzone/backend/services/console/internal/notify"
)

// EventKind names an identity mutation.
type EventKind string

const (
	EventLogin                EventKind = "login"
	EventLogout               EventKind = "logout"
	EventImpersonationStarted EventKind = "impersonation_started"
	EventImpersonationStopped EventKind = "impersonation_stopped"
)

// Event describes the identity state after a mutation.
type Event struct {
	Kind         EventKind           `json:"kind"`
	User         *access.UserProfile `json:"user"`
	Impersonator *access.UserProfile `json:"impersonator"`
}

var newID = func() string { return uuid.NewString() }

// Store is the identity of one console client: who is acting, and who they
// were before impersonating. Mutations write the slots, then notify listeners.
type Store struct {
	mu        sync.Mutex
	slots     Slots
	logger    *zap.Logger
	listeners notify.Listeners[Event]
}

// NewStore builds a store over slots.
func NewStore(slots Slots, logger *zap.Logger) *Store {
	return &Store{slots: slots, logger: logger}
}

// Login fabricates a profile for role and makes it the acting identity.
// An empty name becomes "Demo <role label>". Any impersonation state is cleared.
func (s *Store) Login(ctx context.Context, role access.Role, name string, capability access.OwnerCapability) (access.UserProfile, error) {
	if !role.Valid() {
		return access.UserProfile{}, fmt.Errorf("%w: %d", access.ErrUnknownRole, uint8(role))
	}
	if capability != 0 && !capability.Valid() {
		return access.UserProfile{}, fmt.Errorf("%w: %d", access.ErrUnknownCapability, uint8(capability))
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = "Demo " + role.Label()
	}
	profile := access.UserProfile{
		ID:              newID(),
		Name:            name,
		Role:            role,
		OwnerCapability: capability,
	}.Normalize()

	session, err := encodeProfile(profile)
	if err != nil {
		return access.UserProfile{}, err
	}
	s.mu.Lock()
	err = s.slots.Update(ctx, map[string]string{SessionKey: session}, ImpersonatorKey, ReturnToKey)
	s.mu.Unlock()
	if err != nil {
		return access.UserProfile{}, err
	}

	s.logger.Info("console login", zap.String("user_id", profile.ID), zap.Stringer("role", profile.Role))
	s.listeners.Publish(Event{Kind: EventLogin, User: &profile})
	return profile, nil
}

// Logout clears all identity slots.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	err := s.slots.Update(ctx, nil, Keys()...)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.listeners.Publish(Event{Kind: EventLogout})
	return nil
}

// StartImpersonation switches the acting identity to target when the current
// identity is an EVzone admin. It reports false without touching state otherwise.
// Starting again while impersonating replaces the saved impersonator and returnTo.
func (s *Store) StartImpersonation(ctx context.Context, target access.UserProfile, returnTo string) (bool, error) {
	target = target.Normalize()
	if err := target.Validate(); err != nil {
		return false, err
	}

	s.mu.Lock()
	current, err := s.readProfile(ctx, SessionKey)
	if err != nil || current == nil || current.Role != access.RoleEVzoneAdmin {
		s.mu.Unlock()
		return false, err
	}
	saved, err := encodeProfile(*current)
	if err != nil {
		s.mu.Unlock()
		return false, err
	}
	session, err := encodeProfile(target)
	if err != nil {
		s.mu.Unlock()
		return false, err
	}
	err = s.slots.Update(ctx, map[string]string{
		ImpersonatorKey: saved,
		ReturnToKey:     returnTo,
		SessionKey:      session,
	})
	s.mu.Unlock()
	if err != nil {
		return false, err
	}

	s.logger.Info("impersonation started",
		zap.String("impersonator_id", current.ID),
		zap.String("target_id", target.ID),
		zap.Stringer("target_role", target.Role),
	)
	s.listeners.Publish(Event{Kind: EventImpersonationStarted, User: &target, Impersonator: current})
	return true, nil
}

// StopImpersonation restores the saved impersonator and returns the saved
// return target. stopped is false when nobody is being impersonated.
func (s *Store) StopImpersonation(ctx context.Context) (returnTo string, stopped bool, err error) {
	s.mu.Lock()
	impersonator, err := s.readProfile(ctx, ImpersonatorKey)
	if err != nil || impersonator == nil {
		s.mu.Unlock()
		return "", false, err
	}
	returnTo, err = s.readString(ctx, ReturnToKey)
	var session string
	if err == nil {
		session, err = encodeProfile(*impersonator)
	}
	if err == nil {
		err = s.slots.Update(ctx, map[string]string{SessionKey: session}, ImpersonatorKey, ReturnToKey)
	}
	s.mu.Unlock()
	if err != nil {
		return "", false, err
	}

	s.logger.Info("impersonation stopped", zap.String("user_id", impersonator.ID))
	s.listeners.Publish(Event{Kind: EventImpersonationStopped, User: impersonator})
	return returnTo, true, nil
}

// Current returns the acting identity, or nil when logged out.
func (s *Store) Current(ctx context.Context) (*access.UserProfile, error) {
	return s.readProfile(ctx, SessionKey)
}

// Impersonator returns the saved original identity, or nil.
func (s *Store) Impersonator(ctx context.Context) (*access.UserProfile, error) {
	return s.readProfile(ctx, ImpersonatorKey)
}

// ReturnTo returns the saved return target, or "".
func (s *Store) ReturnTo(ctx context.Context) (string, error) {
	return s.readString(ctx, ReturnToKey)
}

// Subscribe registers fn for every mutation. The returned function unsubscribes.
func (s *Store) Subscribe(fn func(Event)) func() {
	return s.listeners.Subscribe(fn)
}

func (s *Store) readString(ctx context.Context, key string) (string, error) {
	raw, err := s.slots.Get(ctx, key)
	if errors.Is(err, ErrSlotNotFound) {
		return "", nil
	}
	return raw, err
}

// readProfile treats unparseable or invalid slot content as absent.
func (s *Store) readProfile(ctx context.Context, key string) (*access.UserProfile, error) {
	raw, err := s.readString(ctx, key)
	if err != nil || raw == "" {
		return nil, err
	}
	var profile access.UserProfile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		s.logger.Debug("ignoring unreadable identity slot", zap.String("key", key), zap.Error(err))
		return nil, nil
	}
	profile = profile.Normalize()
	if err := profile.Validate(); err != nil {
		s.logger.Debug("ignoring invalid identity slot", zap.String("key", key), zap.Error(err))
		return nil, nil
	}
	return &profile, nil
}

func encodeProfile(profile access.UserProfile) (string, error) {
	data, err := json.Marshal(profile)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
