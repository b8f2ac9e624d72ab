package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"evzone/backend/libs/access"
	"evzone/backend/libs/auth"
	"evzone/backend/libs/request"
	"evzone/backend/services/payments-service/internal/http/handlers"
	"evzone/backend/services/payments-service/internal/models"
	"evzone/backend/services/payments-service/internal/service"
)

type stubInvoices struct{ items []models.Invoice }

func (s *stubInvoices) List(context.Context, models.ListFilter, request.Pagination) ([]models.Invoice, error) {
	return s.items, nil
}

func (s *stubInvoices) Count(context.Context, models.ListFilter) (int, error) {
	return len(s.items), nil
}

type stubTransactions struct{}

func (stubTransactions) List(context.Context, models.ListFilter, request.Pagination) ([]models.Transaction, error) {
	return nil, nil
}

func (stubTransactions) Count(context.Context, models.ListFilter) (int, error) {
	return 0, nil
}

type stubIntents struct{ created []models.PaymentIntent }

func (s *stubIntents) Create(_ context.Context, intent *models.PaymentIntent) error {
	intent.CreatedAt = time.Now()
	s.created = append(s.created, *intent)
	return nil
}

func newTestRouter(t *testing.T) (http.Handler, *stubIntents, string) {
	t.Helper()
	intents := &stubIntents{}
	invoices := &stubInvoices{items: []models.Invoice{{ID: "INV-1", UserID: "u-1", Status: "paid"}}}
	logger := zap.NewNop()
	svc := service.NewPaymentsService(invoices, stubTransactions{}, intents, logger)
	tokens := auth.NewTokenService("test-secret", time.Minute)

	router := NewRouter(Routes{
		Payments: handlers.NewPaymentsHandler(svc, logger),
		Health:   handlers.NewHealthHandler(),
	}, auth.Middleware(tokens))

	token, err := tokens.GenerateToken(access.UserProfile{ID: "u-1", Role: access.RoleOwner}, nil, nil)
	require.NoError(t, err)
	return router, intents, token
}

func do(router http.Handler, method, target, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", auth.BearerHeader(token))
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreateIntentUsesTokenSubject(t *testing.T) {
	router, intents, token := newTestRouter(t)

	rec := do(router, http.MethodPost, "/payments/intent", `{"amount": 42}`, token)
	require.Equal(t, http.StatusCreated, rec.Code)

	var intent models.PaymentIntent
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &intent))
	assert.Equal(t, "u-1", intent.UserID)
	assert.Equal(t, "USD", intent.Currency)
	assert.Equal(t, "manual", intent.Provider)
	assert.Equal(t, "created", intent.Status)
	assert.NotEmpty(t, intent.ID)
	require.Len(t, intents.created, 1)
}

func TestCreateIntentRejectsBadBodies(t *testing.T) {
	router, intents, token := newTestRouter(t)

	rec := do(router, http.MethodPost, "/payments/intent", `{"amount": -1}`, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"amount":"gt=0"`)

	rec = do(router, http.MethodPost, "/payments/intent", `{"amount":`, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "malformed request body")

	assert.Empty(t, intents.created)
}

func TestPaymentsRoutesRequireToken(t *testing.T) {
	router, _, _ := newTestRouter(t)
	assert.Equal(t, http.StatusUnauthorized, do(router, http.MethodGet, "/payments/invoices", "", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(router, http.MethodPost, "/payments/intent", `{"amount":1}`, "").Code)
}

func TestListInvoices(t *testing.T) {
	router, _, token := newTestRouter(t)

	rec := do(router, http.MethodGet, "/payments/invoices?status=paid&page=1&pageSize=5", "", token)
	require.Equal(t, http.StatusOK, rec.Code)

	var page request.Page[models.Invoice]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, 1, page.Total)
	assert.Equal(t, 5, page.PageSize)

	rec = do(router, http.MethodGet, "/payments/transactions", "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"items":[]`)
}

func TestIntentRejectsGet(t *testing.T) {
	router, _, token := newTestRouter(t)
	assert.Equal(t, http.StatusMethodNotAllowed, do(router, http.MethodGet, "/payments/intent", "", token).Code)
}
