package models

import "time"

// Invoice is an issued bill for a user.
type Invoice struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Number    string    `json:"number"`
	Amount    float64   `json:"amount"`
	Currency  string    `json:"currency"`
	Status    string    `json:"status"`
	IssuedAt  time.Time `json:"issuedAt"`
	CreatedAt time.Time `json:"createdAt"`
}
