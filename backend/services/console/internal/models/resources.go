package models

import (
	"time"

	"evzone/backend/libs/access"
)

// Page mirrors the paged envelope of the resource services.
type Page[T any] struct {
	Items    []T `json:"items"`
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
	Total    int `json:"total"`
}

// SessionDTO mirrors sessions-service payload.
type SessionDTO struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	StationID   string     `json:"stationId"`
	StationName string     `json:"stationName"`
	Region      string     `json:"region"`
	OrgID       string     `json:"orgId"`
	Status      string     `json:"status"`
	StartedAt   time.Time  `json:"startedAt"`
	EndedAt     *time.Time `json:"endedAt"`
	EnergyKWh   float64    `json:"energyKwh"`
}

func (s SessionDTO) ScopeTarget() access.Target {
	return access.Target{Region: s.Region, OrgID: s.OrgID, StationID: s.StationID}
}

// BookingDTO mirrors sessions-service booking payload.
type BookingDTO struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	StationID   string    `json:"stationId"`
	StationName string    `json:"stationName"`
	Region      string    `json:"region"`
	OrgID       string    `json:"orgId"`
	Status      string    `json:"status"`
	StartsAt    time.Time `json:"startsAt"`
	EndsAt      time.Time `json:"endsAt"`
}

func (b BookingDTO) ScopeTarget() access.Target {
	return access.Target{Region: b.Region, OrgID: b.OrgID, StationID: b.StationID}
}

// InvoiceDTO mirrors payments-service invoice payload.
type InvoiceDTO struct {
	ID       string    `json:"id"`
	UserID   string    `json:"userId"`
	Number   string    `json:"number"`
	Amount   float64   `json:"amount"`
	Currency string    `json:"currency"`
	Status   string    `json:"status"`
	IssuedAt time.Time `json:"issuedAt"`
}

// ScopeTarget is empty: invoices carry no station, so every scope admits them.
func (InvoiceDTO) ScopeTarget() access.Target {
	return access.Target{}
}

// TransactionDTO mirrors payments-service transaction payload.
type TransactionDTO struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Amount    float64   `json:"amount"`
	Currency  string    `json:"currency"`
	Kind      string    `json:"kind"`
	Status    string    `json:"status"`
	Reference string    `json:"reference"`
	CreatedAt time.Time `json:"createdAt"`
}

func (TransactionDTO) ScopeTarget() access.Target {
	return access.Target{}
}
