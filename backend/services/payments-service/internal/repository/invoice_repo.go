package repository

import (
	"context"
	"database/sql"

	"evzone/backend/libs/request"
	"evzone/backend/services/payments-service/internal/models"
)

const invoiceColumns = `id, user_id, number, amount, currency, status, issued_at, created_at`

// InvoiceRepository reads invoices.
type InvoiceRepository struct {
	db *sql.DB
}

// NewInvoiceRepository returns repository.
func NewInvoiceRepository(db *sql.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

// List returns one page of invoices, most recently issued first.
func (r *InvoiceRepository) List(ctx context.Context, filter models.ListFilter, page request.Pagination) ([]models.Invoice, error) {
	w := buildWhere(filter)
	query := "SELECT " + invoiceColumns + " FROM invoices" + w.SQL() +
		" ORDER BY issued_at DESC, id LIMIT " + w.Placeholder(1) + " OFFSET " + w.Placeholder(2)
	rows, err := r.db.QueryContext(ctx, query, append(w.Args(), page.Limit(), page.Offset())...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []models.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return invoices, nil
}

// Count returns the number of invoices matching filter.
func (r *InvoiceRepository) Count(ctx context.Context, filter models.ListFilter) (int, error) {
	w := buildWhere(filter)
	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM invoices"+w.SQL(), w.Args()...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func scanInvoice(row scanner) (models.Invoice, error) {
	var inv models.Invoice
	err := row.Scan(
		&inv.ID,
		&inv.UserID,
		&inv.Number,
		&inv.Amount,
		&inv.Currency,
		&inv.Status,
		&inv.IssuedAt,
		&inv.CreatedAt,
	)
	return inv, err
}
