package clients

import (
	"context"
	"net/url"

	"evzone/backend/services/console/internal/models"
)

// SessionsClient calls sessions-service.
type SessionsClient struct {
	base *BaseClient
}

// NewSessionsClient returns client.
func NewSessionsClient(baseURL string, httpClient HTTPDoer) *SessionsClient {
	return &SessionsClient{base: NewBaseClient(baseURL, httpClient)}
}

// ListSessions forwards query to GET /sessions.
func (c *SessionsClient) ListSessions(ctx context.Context, token string, query url.Values) (models.Page[models.SessionDTO], error) {
	var page models.Page[models.SessionDTO]
	err := c.base.GetJSON(ctx, "/sessions", query, token, &page)
	return page, err
}

// ListBookings forwards query to GET /bookings.
func (c *SessionsClient) ListBookings(ctx context.Context, token string, query url.Values) (models.Page[models.BookingDTO], error) {
	var page models.Page[models.BookingDTO]
	err := c.base.GetJSON(ctx, "/bookings", query, token, &page)
	return page, err
}
