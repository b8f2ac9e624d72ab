package access

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownRole is returned when a role name is not part of the enumeration.
var ErrUnknownRole = errors.New("access: unknown role")

// Role is the closed set of console roles. The zero value is not a valid role.
type Role uint8

const (
	RoleSuperAdmin Role = iota + 1
	RoleEVzoneAdmin
	RoleEVzoneOperator
	RoleSiteOwner
	RoleOwner
	RoleStationAdmin
	RoleManager
	RoleAttendant
	RoleTechnicianOrg
	RoleTechnicianPublic
)

var roleNames = [...]string{
	RoleSuperAdmin:       "SUPER_ADMIN",
	RoleEVzoneAdmin:      "EVZONE_ADMIN",
	RoleEVzoneOperator:   "EVZONE_OPERATOR",
	RoleSiteOwner:        "SITE_OWNER",
	RoleOwner:            "OWNER",
	RoleStationAdmin:     "STATION_ADMIN",
	RoleManager:          "MANAGER",
	RoleAttendant:        "ATTENDANT",
	RoleTechnicianOrg:    "TECHNICIAN_ORG",
	RoleTechnicianPublic: "TECHNICIAN_PUBLIC",
}

// Roles lists every role in declaration order.
func Roles() []Role {
	roles := make([]Role, 0, len(roleNames)-1)
	for r := RoleSuperAdmin; r <= RoleTechnicianPublic; r++ {
		roles = append(roles, r)
	}
	return roles
}

// ParseRole maps a canonical role name to its Role.
func ParseRole(name string) (Role, error) {
	name = strings.TrimSpace(name)
	for _, r := range Roles() {
		if roleNames[r] == name {
			return r, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownRole, name)
}

// Valid reports whether r is one of the declared roles.
func (r Role) Valid() bool {
	return r >= RoleSuperAdmin && r <= RoleTechnicianPublic
}

// String returns the canonical name.
func (r Role) String() string {
	if !r.Valid() {
		return fmt.Sprintf("Role(%d)", uint8(r))
	}
	return roleNames[r]
}

// Label is the display name shown on dashboards.
func (r Role) Label() string {
	switch r {
	case RoleSuperAdmin:
		return "Super Admin"
	case RoleEVzoneAdmin:
		return "EVzone Admin"
	case RoleEVzoneOperator:
		return "EVzone Operator"
	case RoleSiteOwner:
		return "Site Owner"
	case RoleOwner:
		return "Owner"
	case RoleStationAdmin:
		return "Station Admin"
	case RoleManager:
		return "Manager"
	case RoleAttendant:
		return "Attendant"
	case RoleTechnicianOrg:
		return "Technician (Org)"
	case RoleTechnicianPublic:
		return "Technician (Public)"
	}
	return "Unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownRole, uint8(r))
	}
	return []byte(roleNames[r]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Role) UnmarshalText(text []byte) error {
	parsed, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// In reports whether r is one of roles.
func (r Role) In(roles ...Role) bool {
	for _, candidate := range roles {
		if candidate == r {
			return true
		}
	}
	return false
}
