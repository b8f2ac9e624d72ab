package models

// ListFilter is the conjunctive filter shared by session and booking listings.
// Empty fields are ignored.
type ListFilter struct {
	Query     string
	StationID string
	UserID    string
	Status    string
	Scope     *ScopeFilter
}

// ScopeFilter restricts rows to stations matching the caller's token scope.
type ScopeFilter struct {
	Regions   []string
	OrgID     string
	StationID string
}
