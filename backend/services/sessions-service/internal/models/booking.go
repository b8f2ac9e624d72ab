package models

import (
	"time"

	"evzone/backend/libs/access"
)

// Booking is a reserved charging or swap slot at a station.
type Booking struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	StationID   string    `json:"stationId"`
	StationName string    `json:"stationName,omitempty"`
	Region      string    `json:"region,omitempty"`
	OrgID       string    `json:"orgId,omitempty"`
	Status      string    `json:"status"`
	StartsAt    time.Time `json:"startsAt"`
	EndsAt      time.Time `json:"endsAt"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ScopeTarget exposes the fields consulted by scope predicates.
func (b Booking) ScopeTarget() access.Target {
	return access.Target{Region: b.Region, OrgID: b.OrgID, StationID: b.StationID}
}
