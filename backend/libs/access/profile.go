package access

import (
	"errors"
	"strings"
)

// ErrInvalidProfile is returned when a profile lacks an id or a valid role.
var ErrInvalidProfile = errors.New("access: invalid user profile")

// UserProfile is the identity acting in the console.
type UserProfile struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Role            Role            `json:"role"`
	OwnerCapability OwnerCapability `json:"ownerCapability,omitempty"`
}

// Normalize drops the owner capability from non-owner profiles.
func (p UserProfile) Normalize() UserProfile {
	p.ID = strings.TrimSpace(p.ID)
	p.Name = strings.TrimSpace(p.Name)
	if p.Role != RoleOwner {
		p.OwnerCapability = 0
	}
	return p
}

// Validate checks the invariants every stored profile must satisfy.
func (p UserProfile) Validate() error {
	if strings.TrimSpace(p.ID) == "" || !p.Role.Valid() {
		return ErrInvalidProfile
	}
	if p.OwnerCapability != 0 && !p.OwnerCapability.Valid() {
		return ErrInvalidProfile
	}
	return nil
}
