// Package routes is the static page table of the console.
package routes

import "evzone/backend/libs/access"

// Kind groups routes by how they are served.
type Kind uint8

const (
	KindPublic Kind = iota + 1
	KindDashboard
	KindFeature
)

// Route is one console page.
type Route struct {
	Path  string        `json:"path"`
	Title string        `json:"title"`
	Kind  Kind          `json:"-"`
	Roles []access.Role `json:"roles,omitempty"`
}

// Public reports whether the route needs no identity.
func (r Route) Public() bool {
	return r.Kind == KindPublic
}

const (
	Login        = "/auth/login"
	Unauthorized = "/unauthorized"

	SuperAdminDashboard       = "/dashboard/super-admin"
	EVzoneAdminDashboard      = "/dashboard/evzone-admin"
	OperatorDashboard         = "/dashboard/operator"
	SiteOwnerDashboard        = "/dashboard/site-owner"
	OwnerChargeDashboard      = "/owner/charge"
	OwnerSwapDashboard        = "/owner/swap"
	OwnerDashboard            = "/owner"
	StationAdminDashboard     = "/dashboard/station-admin"
	ManagerDashboard          = "/dashboard/manager"
	AttendantDashboard        = "/dashboard/attendant"
	TechnicianOrgDashboard    = "/dashboard/technician-org"
	TechnicianPublicDashboard = "/dashboard/technician-public"

	Sessions            = "/sessions"
	Bookings            = "/bookings"
	PaymentInvoices     = "/payments/invoices"
	PaymentTransactions = "/payments/transactions"
	Impersonate         = "/users/impersonate"
)

var operations = []access.Role{
	access.RoleEVzoneAdmin,
	access.RoleEVzoneOperator,
	access.RoleSiteOwner,
	access.RoleOwner,
	access.RoleStationAdmin,
	access.RoleManager,
	access.RoleAttendant,
}

var finance = []access.Role{
	access.RoleEVzoneAdmin,
	access.RoleEVzoneOperator,
	access.RoleSiteOwner,
	access.RoleOwner,
	access.RoleStationAdmin,
}

var table = []Route{
	{Path: Login, Title: "Sign in", Kind: KindPublic},
	{Path: Unauthorized, Title: "Unauthorized", Kind: KindPublic},

	{Path: SuperAdminDashboard, Title: "Super Admin Dashboard", Kind: KindDashboard, Roles: []access.Role{access.RoleSuperAdmin}},
	{Path: EVzoneAdminDashboard, Title: "EVzone Admin Dashboard", Kind: KindDashboard, Roles: []access.Role{access.RoleEVzoneAdmin}},
	{Path: OperatorDashboard, Title: "Operator Dashboard", Kind: KindDashboard, Roles: []access.Role{access.RoleEVzoneOperator}},
	{Path: SiteOwnerDashboard, Title: "Site Owner Dashboard", Kind: KindDashboard, Roles: []access.Role{access.RoleSiteOwner}},
	{Path: OwnerChargeDashboard, Title: "Owner Dashboard (Charging)", Kind: KindDashboard, Roles: []access.Role{access.RoleOwner}},
	{Path: OwnerSwapDashboard, Title: "Owner Dashboard (Swapping)", Kind: KindDashboard, Roles: []access.Role{access.RoleOwner}},
	{Path: OwnerDashboard, Title: "Owner Dashboard", Kind: KindDashboard, Roles: []access.Role{access.RoleOwner}},
	{Path: StationAdminDashboard, Title: "Station Admin Dashboard", Kind: KindDashboard, Roles: []access.Role{access.RoleStationAdmin}},
	{Path: ManagerDashboard, Title: "Manager Dashboard", Kind: KindDashboard, Roles: []access.Role{access.RoleManager}},
	{Path: AttendantDashboard, Title: "Attendant Dashboard", Kind: KindDashboard, Roles: []access.Role{access.RoleAttendant}},
	{Path: TechnicianOrgDashboard, Title: "Technician Dashboard", Kind: KindDashboard, Roles: []access.Role{access.RoleTechnicianOrg}},
	{Path: TechnicianPublicDashboard, Title: "Technician Dashboard", Kind: KindDashboard, Roles: []access.Role{access.RoleTechnicianPublic}},

	{Path: Sessions, Title: "Charging Sessions", Kind: KindFeature, Roles: operations},
	{Path: Bookings, Title: "Bookings", Kind: KindFeature, Roles: operations},
	{Path: PaymentInvoices, Title: "Invoices", Kind: KindFeature, Roles: finance},
	{Path: PaymentTransactions, Title: "Transactions", Kind: KindFeature, Roles: append(append([]access.Role{}, finance...), access.RoleManager)},
	{Path: Impersonate, Title: "Impersonate User", Kind: KindFeature, Roles: []access.Role{access.RoleEVzoneAdmin}},
}

var byPath = func() map[string]Route {
	m := make(map[string]Route, len(table))
	for _, r := range table {
		m[r.Path] = r
	}
	return m
}()

// All returns every route in table order.
func All() []Route {
	out := make([]Route, len(table))
	copy(out, table)
	return out
}

// Lookup finds the route registered at path.
func Lookup(path string) (Route, bool) {
	r, ok := byPath[path]
	return r, ok
}

// OfKind returns the routes of kind k in table order.
func OfKind(k Kind) []Route {
	var out []Route
	for _, r := range table {
		if r.Kind == k {
			out = append(out, r)
		}
	}
	return out
}

// DashboardPath returns the landing dashboard of a role. Owners without a
// capability get the combined dashboard.
func DashboardPath(role access.Role, capability access.OwnerCapability) string {
	switch role {
	case access.RoleSuperAdmin:
		return SuperAdminDashboard
	case access.RoleEVzoneAdmin:
		return EVzoneAdminDashboard
	case access.RoleEVzoneOperator:
		return OperatorDashboard
	case access.RoleSiteOwner:
		return SiteOwnerDashboard
	case access.RoleOwner:
		switch capability {
		case access.CapabilityCharge:
			return OwnerChargeDashboard
		case access.CapabilitySwap:
			return OwnerSwapDashboard
		default:
			return OwnerDashboard
		}
	case access.RoleStationAdmin:
		return StationAdminDashboard
	case access.RoleManager:
		return ManagerDashboard
	case access.RoleAttendant:
		return AttendantDashboard
	case access.RoleTechnicianOrg:
		return TechnicianOrgDashboard
	case access.RoleTechnicianPublic:
		return TechnicianPublicDashboard
	}
	return Login
}
