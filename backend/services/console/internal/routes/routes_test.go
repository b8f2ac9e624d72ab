package routes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evzone/backend/libs/access"
)

func TestEveryRoleHasARegisteredDashboard(t *testing.T) {
	for _, role := range access.Roles() {
		path := DashboardPath(role, 0)
		route, ok := Lookup(path)
		require.True(t, ok, role.String())
		assert.Equal(t, KindDashboard, route.Kind)
		assert.True(t, role.In(route.Roles...), role.String())
	}
}

func TestOwnerDashboardFollowsCapability(t *testing.T) {
	assert.Equal(t, "/owner/charge", DashboardPath(access.RoleOwner, access.CapabilityCharge))
	assert.Equal(t, "/owner/swap", DashboardPath(access.RoleOwner, access.CapabilitySwap))
	assert.Equal(t, "/owner", DashboardPath(access.RoleOwner, access.CapabilityBoth))
	assert.Equal(t, "/owner", DashboardPath(access.RoleOwner, 0))
	assert.Equal(t, ManagerDashboard, DashboardPath(access.RoleManager, access.CapabilitySwap))
}

func TestUnknownRoleLandsOnLogin(t *testing.T) {
	assert.Equal(t, Login, DashboardPath(access.Role(0), 0))
}

func TestPathsAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, r := range All() {
		assert.False(t, seen[r.Path], r.Path)
		seen[r.Path] = true
		if r.Public() {
			assert.Empty(t, r.Roles)
		} else {
			assert.NotEmpty(t, r.Roles, r.Path)
		}
	}
}

func TestFeatureRoutes(t *testing.T) {
	var paths []string
	for _, r := range OfKind(KindFeature) {
		paths = append(paths, r.Path)
	}
	assert.Equal(t, []string{"/sessions", "/bookings", "/payments/invoices", "/payments/transactions", "/users/impersonate"}, paths)

	r, ok := Lookup(Impersonate)
	require.True(t, ok)
	assert.Equal(t, []access.Role{access.RoleEVzoneAdmin}, r.Roles)

	_, ok = Lookup("/nope")
	assert.False(t, ok)
}

func TestAllReturnsCopy(t *testing.T) {
	all := All()
	all[0].Path = "/mutated"
	_, ok := Lookup(Login)
	assert.True(t, ok)
	assert.Equal(t, Login, All()[0].Path)
}
