package models

import (
	"time"

	"evzone/backend/libs/access"
)

// Session represents a charging session joined with its station metadata.
type Session struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	StationID   string     `json:"stationId"`
	StationName string     `json:"stationName,omitempty"`
	Region      string     `json:"region,omitempty"`
	OrgID       string     `json:"orgId,omitempty"`
	Status      string     `json:"status"`
	StartedAt   time.Time  `json:"startedAt"`
	EndedAt     *time.Time `json:"endedAt,omitempty"`
	EnergyKWh   float64    `json:"energyKwh"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// ScopeTarget exposes the fields consulted by scope predicates.
func (s Session) ScopeTarget() access.Target {
	return access.Target{Region: s.Region, OrgID: s.OrgID, StationID: s.StationID}
}
