package models

import "time"

// Transaction represents a wallet or card movement.
type Transaction struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Amount    float64   `json:"amount"`
	Currency  string    `json:"currency"`
	Kind      string    `json:"kind"`
	Status    string    `json:"status"`
	Reference string    `json:"reference"`
	CreatedAt time.Time `json:"createdAt"`
}
