package clients

import (
	"context"
	"net/url"

	"evzone/backend/services/console/internal/models"
)

// PaymentsClient calls payments-service.
type PaymentsClient struct {
	base *BaseClient
}

// NewPaymentsClient returns client instance.
func NewPaymentsClient(baseURL string, httpClient HTTPDoer) *PaymentsClient {
	return &PaymentsClient{base: NewBaseClient(baseURL, httpClient)}
}

// ListInvoices forwards query to GET /payments/invoices.
func (c *PaymentsClient) ListInvoices(ctx context.Context, token string, query url.Values) (models.Page[models.InvoiceDTO], error) {
	var page models.Page[models.InvoiceDTO]
	err := c.base.GetJSON(ctx, "/payments/invoices", query, token, &page)
	return page, err
}

// ListTransactions forwards query to GET /payments/transactions.
func (c *PaymentsClient) ListTransactions(ctx context.Context, token string, query url.Values) (models.Page[models.TransactionDTO], error) {
	var page models.Page[models.TransactionDTO]
	err := c.base.GetJSON(ctx, "/payments/transactions", query, token, &page)
	return page, err
}
