package access

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCapability is returned for owner capability names outside the enumeration.
var ErrUnknownCapability = errors.New("access: unknown owner capability")

// OwnerCapability selects the owner dashboard variant. The zero value means absent.
type OwnerCapability uint8

const (
	CapabilityCharge OwnerCapability = iota + 1
	CapabilitySwap
	CapabilityBoth
)

var capabilityNames = [...]string{
	CapabilityCharge: "CHARGE",
	CapabilitySwap:   "SWAP",
	CapabilityBoth:   "BOTH",
}

// ParseOwnerCapability maps a canonical name to its capability. An empty name yields the zero value.
func ParseOwnerCapability(name string) (OwnerCapability, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, nil
	}
	for c := CapabilityCharge; c <= CapabilityBoth; c++ {
		if capabilityNames[c] == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCapability, name)
}

// Valid reports whether c is a declared capability.
func (c OwnerCapability) Valid() bool {
	return c >= CapabilityCharge && c <= CapabilityBoth
}

func (c OwnerCapability) String() string {
	if !c.Valid() {
		return ""
	}
	return capabilityNames[c]
}

// MarshalText implements encoding.TextMarshaler.
func (c OwnerCapability) MarshalText() ([]byte, error) {
	if c == 0 {
		return []byte{}, nil
	}
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCapability, uint8(c))
	}
	return []byte(capabilityNames[c]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *OwnerCapability) UnmarshalText(text []byte) error {
	parsed, err := ParseOwnerCapability(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
