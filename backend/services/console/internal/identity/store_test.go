package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"evzone/backend/libs/access"
)

func newTestStore(t *testing.T) (*Store, *MemorySlots) {
	t.Helper()
	slots := NewMemorySlots()
	return NewStore(slots, zap.NewNop()), slots
}

func login(t *testing.T, s *Store, role access.Role) access.UserProfile {
	t.Helper()
	profile, err := s.Login(context.Background(), role, "", 0)
	require.NoError(t, err)
	return profile
}

func TestLoginFabricatesProfile(t *testing.T) {
	prev := newID
	newID = func() string { return "user-1" }
	t.Cleanup(func() { newID = prev })

	s, _ := newTestStore(t)
	ctx := context.Background()

	profile, err := s.Login(ctx, access.RoleEVzoneOperator, "", access.CapabilityCharge)
	require.NoError(t, err)
	assert.Equal(t, access.UserProfile{ID: "user-1", Name: "Demo EVzone Operator", Role: access.RoleEVzoneOperator}, profile)

	current, err := s.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, &profile, current)

	owner, err := s.Login(ctx, access.RoleOwner, "  Ama  ", access.CapabilitySwap)
	require.NoError(t, err)
	assert.Equal(t, "Ama", owner.Name)
	assert.Equal(t, access.CapabilitySwap, owner.OwnerCapability)
}

func TestLoginRejectsUnknownRole(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.Login(context.Background(), access.Role(0), "", 0)
	require.ErrorIs(t, err, access.ErrUnknownRole)
}

func TestLoginClearsImpersonation(t *testing.T) {
	s, slots := newTestStore(t)
	ctx := context.Background()
	login(t, s, access.RoleEVzoneAdmin)

	started, err := s.StartImpersonation(ctx, access.UserProfile{ID: "o-1", Role: access.RoleOwner}, "/users/impersonate")
	require.NoError(t, err)
	require.True(t, started)

	login(t, s, access.RoleManager)
	_, err = slots.Get(ctx, ImpersonatorKey)
	assert.ErrorIs(t, err, ErrSlotNotFound)
	_, err = slots.Get(ctx, ReturnToKey)
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestStartImpersonationRequiresEVzoneAdmin(t *testing.T) {
	target := access.UserProfile{ID: "o-1", Role: access.RoleOwner}
	for _, role := range access.Roles() {
		if role == access.RoleEVzoneAdmin {
			continue
		}
		t.Run(role.String(), func(t *testing.T) {
			s, _ := newTestStore(t)
			ctx := context.Background()
			before := login(t, s, role)

			started, err := s.StartImpersonation(ctx, target, "/somewhere")
			require.NoError(t, err)
			assert.False(t, started)

			current, err := s.Current(ctx)
			require.NoError(t, err)
			assert.Equal(t, &before, current)
			imp, err := s.Impersonator(ctx)
			require.NoError(t, err)
			assert.Nil(t, imp)
		})
	}
}

func TestStartImpersonationWhenLoggedOut(t *testing.T) {
	s, _ := newTestStore(t)
	started, err := s.StartImpersonation(context.Background(), access.UserProfile{ID: "o-1", Role: access.RoleOwner}, "/")
	require.NoError(t, err)
	assert.False(t, started)
}

func TestStopWithoutImpersonationIsNoop(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	admin := login(t, s, access.RoleEVzoneAdmin)

	returnTo, stopped, err := s.StopImpersonation(ctx)
	require.NoError(t, err)
	assert.False(t, stopped)
	assert.Empty(t, returnTo)

	current, err := s.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, &admin, current)
}

func TestImpersonationRoundTrip(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	admin := login(t, s, access.RoleEVzoneAdmin)
	owner := access.UserProfile{ID: "o-9", Name: "Kato", Role: access.RoleOwner, OwnerCapability: access.CapabilityCharge}

	_, stopped, err := s.StopImpersonation(ctx)
	require.NoError(t, err)
	require.False(t, stopped)

	started, err := s.StartImpersonation(ctx, owner, "/users/impersonate")
	require.NoError(t, err)
	require.True(t, started)

	current, err := s.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, &owner, current)
	imp, err := s.Impersonator(ctx)
	require.NoError(t, err)
	assert.Equal(t, &admin, imp)
	saved, err := s.ReturnTo(ctx)
	require.NoError(t, err)
	assert.Equal(t, "/users/impersonate", saved)

	returnTo, stopped, err := s.StopImpersonation(ctx)
	require.NoError(t, err)
	assert.True(t, stopped)
	assert.Equal(t, "/users/impersonate", returnTo)

	current, err = s.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, &admin, current)
	imp, err = s.Impersonator(ctx)
	require.NoError(t, err)
	assert.Nil(t, imp)
	saved, err = s.ReturnTo(ctx)
	require.NoError(t, err)
	assert.Empty(t, saved)
}

func TestNestedImpersonationOverwritesImpersonator(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	login(t, s, access.RoleEVzoneAdmin)
	second := access.UserProfile{ID: "a-2", Name: "Other admin", Role: access.RoleEVzoneAdmin}

	_, err := s.StartImpersonation(ctx, second, "/first")
	require.NoError(t, err)
	_, err = s.StartImpersonation(ctx, access.UserProfile{ID: "m-1", Role: access.RoleManager}, "/second")
	require.NoError(t, err)

	imp, err := s.Impersonator(ctx)
	require.NoError(t, err)
	assert.Equal(t, &second, imp)

	returnTo, stopped, err := s.StopImpersonation(ctx)
	require.NoError(t, err)
	assert.True(t, stopped)
	assert.Equal(t, "/second", returnTo)
	current, err := s.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, &second, current)
}

func TestStartImpersonationRejectsInvalidTarget(t *testing.T) {
	s, _ := newTestStore(t)
	login(t, s, access.RoleEVzoneAdmin)
	_, err := s.StartImpersonation(context.Background(), access.UserProfile{Role: access.RoleOwner}, "/")
	require.ErrorIs(t, err, access.ErrInvalidProfile)
}

func TestOwnerCapabilityDroppedForOtherRoles(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	login(t, s, access.RoleEVzoneAdmin)

	_, err := s.StartImpersonation(ctx, access.UserProfile{ID: "m-1", Role: access.RoleManager, OwnerCapability: access.CapabilityBoth}, "/")
	require.NoError(t, err)
	current, err := s.Current(ctx)
	require.NoError(t, err)
	assert.Zero(t, current.OwnerCapability)
}

func TestCorruptSlotsReadAsAbsent(t *testing.T) {
	s, slots := newTestStore(t)
	ctx := context.Background()

	for _, raw := range []string{`{not json`, `{"id":"x","role":"WIZARD"}`, `{"id":"","role":"OWNER"}`} {
		require.NoError(t, slots.Set(ctx, SessionKey, raw))
		current, err := s.Current(ctx)
		require.NoError(t, err)
		assert.Nil(t, current, raw)
	}

	require.NoError(t, slots.Set(ctx, ImpersonatorKey, `[]`))
	_, stopped, err := s.StopImpersonation(ctx)
	require.NoError(t, err)
	assert.False(t, stopped)
}

func TestLogoutClearsEverything(t *testing.T) {
	s, slots := newTestStore(t)
	ctx := context.Background()
	login(t, s, access.RoleEVzoneAdmin)
	_, err := s.StartImpersonation(ctx, access.UserProfile{ID: "o-1", Role: access.RoleOwner}, "/x")
	require.NoError(t, err)

	require.NoError(t, s.Logout(ctx))
	for _, key := range Keys() {
		_, err := slots.Get(ctx, key)
		assert.ErrorIs(t, err, ErrSlotNotFound, key)
	}
}

func TestSubscribersSeeUpdatedState(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	var kinds []EventKind
	var observed []*access.UserProfile
	unsubscribe := s.Subscribe(func(e Event) {
		kinds = append(kinds, e.Kind)
		current, err := s.Current(ctx)
		require.NoError(t, err)
		observed = append(observed, current)
	})

	admin := login(t, s, access.RoleEVzoneAdmin)
	owner := access.UserProfile{ID: "o-1", Role: access.RoleOwner}
	_, err := s.StartImpersonation(ctx, owner, "/")
	require.NoError(t, err)
	_, _, err = s.StopImpersonation(ctx)
	require.NoError(t, err)
	require.NoError(t, s.Logout(ctx))

	assert.Equal(t, []EventKind{EventLogin, EventImpersonationStarted, EventImpersonationStopped, EventLogout}, kinds)
	assert.Equal(t, []*access.UserProfile{&admin, &owner, &admin, nil}, observed)

	unsubscribe()
	login(t, s, access.RoleManager)
	assert.Len(t, kinds, 4)
}

type failingSlots struct {
	*MemorySlots
	err error
}

func (f failingSlots) Update(context.Context, map[string]string, ...string) error { return f.err }

// flakySlots fails the next Update once armed.
type flakySlots struct {
	*MemorySlots
	fail error
}

func (f *flakySlots) Update(ctx context.Context, set map[string]string, del ...string) error {
	if f.fail != nil {
		return f.fail
	}
	return f.MemorySlots.Update(ctx, set, del...)
}

func TestPersistenceErrorsPropagate(t *testing.T) {
	boom := errors.New("redis down")
	s := NewStore(failingSlots{MemorySlots: NewMemorySlots(), err: boom}, zap.NewNop())

	notified := false
	s.Subscribe(func(Event) { notified = true })

	_, err := s.Login(context.Background(), access.RoleManager, "", 0)
	require.ErrorIs(t, err, boom)
	assert.False(t, notified)
}

func TestFailedImpersonationLeavesNoPartialState(t *testing.T) {
	ctx := context.Background()
	slots := &flakySlots{MemorySlots: NewMemorySlots()}
	s := NewStore(slots, zap.NewNop())
	admin := login(t, s, access.RoleEVzoneAdmin)

	slots.fail = errors.New("redis down")
	started, err := s.StartImpersonation(ctx, access.UserProfile{ID: "owner-1", Role: access.RoleOwner}, "/admin")
	require.Error(t, err)
	assert.False(t, started)

	for _, key := range []string{ImpersonatorKey, ReturnToKey} {
		_, err := slots.Get(ctx, key)
		assert.ErrorIs(t, err, ErrSlotNotFound, key)
	}
	current, err := s.Current(ctx)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, admin.ID, current.ID)

	slots.fail = nil
	started, err = s.StartImpersonation(ctx, access.UserProfile{ID: "owner-1", Role: access.RoleOwner}, "/admin")
	require.NoError(t, err)
	assert.True(t, started)

	slots.fail = errors.New("redis down")
	_, stopped, err := s.StopImpersonation(ctx)
	require.Error(t, err)
	assert.False(t, stopped)
	impersonator, err := s.Impersonator(ctx)
	require.NoError(t, err)
	require.NotNil(t, impersonator)
	assert.Equal(t, admin.ID, impersonator.ID)
}
