package repository

import (
	"context"
	"database/sql"

	"evzone/backend/services/payments-service/internal/models"
)

// IntentRepository persists payment intents.
type IntentRepository struct {
	db *sql.DB
}

// NewIntentRepository returns repository.
func NewIntentRepository(db *sql.DB) *IntentRepository {
	return &IntentRepository{db: db}
}

// Create inserts a new intent and fills in its creation time.
func (r *IntentRepository) Create(ctx context.Context, intent *models.PaymentIntent) error {
	const query = `
		INSERT INTO payment_intents (id, user_id, amount, currency, provider, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING created_at
	`
	return r.db.QueryRowContext(ctx, query,
		intent.ID,
		intent.UserID,
		intent.Amount,
		intent.Currency,
		intent.Provider,
		intent.Status,
	).Scan(&intent.CreatedAt)
}
