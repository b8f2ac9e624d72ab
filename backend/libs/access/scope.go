package access

import (
	"strings"
	"unicode"
)

// All is the sentinel that disables filtering on a scope field.
const All = "ALL"

// Scope holds the filter dimensions selected in the console.
type Scope struct {
	Region    string `json:"region"`
	OrgID     string `json:"orgId"`
	StationID string `json:"stationId"`
	SiteID    string `json:"siteId"`
	DateRange string `json:"dateRange"`
}

// ScopePatch is a partial scope update; nil fields are left untouched.
type ScopePatch struct {
	Region    *string `json:"region,omitempty"`
	OrgID     *string `json:"orgId,omitempty"`
	StationID *string `json:"stationId,omitempty"`
	SiteID    *string `json:"siteId,omitempty"`
	DateRange *string `json:"dateRange,omitempty"`
}

// Target is the scoped view of a record.
type Target struct {
	Region    string
	OrgID     string
	StationID string
}

// DefaultScope selects everything.
func DefaultScope() Scope {
	return Scope{Region: All, OrgID: All, StationID: All, SiteID: All, DateRange: All}
}

// Merge applies a shallow patch. Identifiers are not checked for existence.
func (s Scope) Merge(patch ScopePatch) Scope {
	if patch.Region != nil {
		s.Region = *patch.Region
	}
	if patch.OrgID != nil {
		s.OrgID = *patch.OrgID
	}
	if patch.StationID != nil {
		s.StationID = *patch.StationID
	}
	if patch.SiteID != nil {
		s.SiteID = *patch.SiteID
	}
	if patch.DateRange != nil {
		s.DateRange = *patch.DateRange
	}
	return s
}

func isAll(value string) bool {
	return value == "" || value == All
}

var regionAliases = map[string][]string{
	"AFRICA":      {"AFRICA", "AF"},
	"EUROPE":      {"EUROPE", "EU"},
	"AMERICAS":    {"AMERICAS", "AMERICA", "NORTH_AMERICA", "SOUTH_AMERICA", "NA", "SA", "LATAM"},
	"ASIA":        {"ASIA", "APAC", "AS"},
	"MIDDLE_EAST": {"MIDDLE_EAST", "ME", "MENA"},
}

// RegionAliases returns the raw region tags accepted for a scope region. Unknown
// regions only accept themselves.
func RegionAliases(region string) []string {
	if aliases, ok := regionAliases[region]; ok {
		out := make([]string, len(aliases))
		copy(out, aliases)
		return out
	}
	return []string{region}
}

// NormalizeRegion upper-cases a raw region tag and collapses whitespace runs to underscores.
func NormalizeRegion(value string) string {
	fields := strings.FieldsFunc(strings.ToUpper(value), unicode.IsSpace)
	return strings.Join(fields, "_")
}

// RegionInScope reports whether a record tagged with value is visible under the scope region.
func RegionInScope(scope Scope, value string) bool {
	if isAll(scope.Region) || value == "" {
		return true
	}
	normalized := NormalizeRegion(value)
	aliases, ok := regionAliases[scope.Region]
	if !ok {
		return normalized == scope.Region
	}
	for _, alias := range aliases {
		if alias == normalized {
			return true
		}
	}
	return false
}

// OrgInScope reports whether a record owned by orgID is visible under the scope.
func OrgInScope(scope Scope, orgID string) bool {
	return isAll(scope.OrgID) || orgID == "" || scope.OrgID == orgID
}

// StationInScope reports whether a record at stationID is visible under the scope.
func StationInScope(scope Scope, stationID string) bool {
	return isAll(scope.StationID) || stationID == "" || scope.StationID == stationID
}

// IsInScope is the single gate used for list filtering.
func IsInScope(scope Scope, target Target) bool {
	return RegionInScope(scope, target.Region) &&
		OrgInScope(scope, target.OrgID) &&
		StationInScope(scope, target.StationID)
}

// Filter keeps the items whose target is in scope. The input slice is not modified.
func Filter[T any](items []T, scope Scope, target func(T) Target) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if IsInScope(scope, target(item)) {
			out = append(out, item)
		}
	}
	return out
}
