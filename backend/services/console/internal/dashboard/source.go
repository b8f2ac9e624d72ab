package dashboard

import (
	"context"
	"fmt"
	"net/url"

	"evzone/backend/services/console/internal/models"
)

// SessionsAPI is the sessions-service surface dashboards read.
type SessionsAPI interface {
	ListSessions(ctx context.Context, token string, query url.Values) (models.Page[models.SessionDTO], error)
	ListBookings(ctx context.Context, token string, query url.Values) (models.Page[models.BookingDTO], error)
}

// PaymentsAPI is the payments-service surface dashboards read.
type PaymentsAPI interface {
	ListInvoices(ctx context.Context, token string, query url.Values) (models.Page[models.InvoiceDTO], error)
	ListTransactions(ctx context.Context, token string, query url.Values) (models.Page[models.TransactionDTO], error)
}

// ClientSource reads the first page of each collection from the resource services.
type ClientSource struct {
	Sessions SessionsAPI
	Payments PaymentsAPI
	PageSize int
}

func (s ClientSource) Fetch(ctx context.Context, source Source, token string) ([]Record, error) {
	pageSize := s.PageSize
	if pageSize <= 0 {
		pageSize = 100
	}
	query := FetchQuery(pageSize)

	switch source {
	case SourceSessions:
		page, err := s.Sessions.ListSessions(ctx, token, query)
		if err != nil {
			return nil, err
		}
		out := make([]Record, 0, len(page.Items))
		for _, item := range page.Items {
			out = append(out, Record{Target: item.ScopeTarget(), Status: item.Status, EnergyKWh: item.EnergyKWh, Row: item})
		}
		return out, nil
	case SourceBookings:
		page, err := s.Sessions.ListBookings(ctx, token, query)
		if err != nil {
			return nil, err
		}
		out := make([]Record, 0, len(page.Items))
		for _, item := range page.Items {
			out = append(out, Record{Target: item.ScopeTarget(), Status: item.Status, Row: item})
		}
		return out, nil
	case SourceInvoices:
		page, err := s.Payments.ListInvoices(ctx, token, query)
		if err != nil {
			return nil, err
		}
		out := make([]Record, 0, len(page.Items))
		for _, item := range page.Items {
			out = append(out, Record{Target: item.ScopeTarget(), Status: item.Status, Amount: item.Amount, Currency: item.Currency, Row: item})
		}
		return out, nil
	case SourceTransactions:
		page, err := s.Payments.ListTransactions(ctx, token, query)
		if err != nil {
			return nil, err
		}
		out := make([]Record, 0, len(page.Items))
		for _, item := range page.Items {
			out = append(out, Record{Target: item.ScopeTarget(), Status: item.Status, Amount: item.Amount, Currency: item.Currency, Row: item})
		}
		return out, nil
	}
	return nil, fmt.Errorf("dashboard: unknown source %q", source)
}
