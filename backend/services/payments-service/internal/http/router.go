package httpserver

import (
	"net/http"

	"evzone/backend/libs/httpx"
	"evzone/backend/services/payments-service/internal/http/handlers"
)

// Routes groups HTTP handlers.
type Routes struct {
	Payments *handlers.PaymentsHandler
	Health   http.HandlerFunc
}

// NewRouter registers service endpoints.
func NewRouter(routes Routes, authMiddleware func(http.Handler) http.Handler) http.Handler {
	mux := http.NewServeMux()

	authenticated := func(method string, handler http.HandlerFunc) http.Handler {
		return httpx.Method(method, httpx.Chain(handler, authMiddleware))
	}

	if routes.Payments != nil {
		mux.Handle("/payments/invoices", authenticated(http.MethodGet, routes.Payments.Invoices))
		mux.Handle("/payments/transactions", authenticated(http.MethodGet, routes.Payments.Transactions))
		mux.Handle("/payments/intent", authenticated(http.MethodPost, routes.Payments.CreateIntent))
	}
	if routes.Health != nil {
		mux.Handle("/health", httpx.Method(http.MethodGet, routes.Health))
	}
	return mux
}
