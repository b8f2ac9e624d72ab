package repository

import (
	"context"
	"database/sql"

	"evzone/backend/libs/request"
	"evzone/backend/services/payments-service/internal/models"
)

const transactionColumns = `id, user_id, amount, currency, kind, status, reference, created_at`

// TransactionRepository reads payment transactions.
type TransactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository returns repository.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// List returns latest transactions matching filter.
func (r *TransactionRepository) List(ctx context.Context, filter models.ListFilter, page request.Pagination) ([]models.Transaction, error) {
	w := buildWhere(filter)
	query := "SELECT " + transactionColumns + " FROM transactions" + w.SQL() +
		" ORDER BY created_at DESC, id LIMIT " + w.Placeholder(1) + " OFFSET " + w.Placeholder(2)
	rows, err := r.db.QueryContext(ctx, query, append(w.Args(), page.Limit(), page.Offset())...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []models.Transaction
	for rows.Next() {
		var tx models.Transaction
		if err := rows.Scan(
			&tx.ID,
			&tx.UserID,
			&tx.Amount,
			&tx.Currency,
			&tx.Kind,
			&tx.Status,
			&tx.Reference,
			&tx.CreatedAt,
		); err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return txs, nil
}

// Count returns the number of transactions matching filter.
func (r *TransactionRepository) Count(ctx context.Context, filter models.ListFilter) (int, error) {
	w := buildWhere(filter)
	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM transactions"+w.SQL(), w.Args()...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}
