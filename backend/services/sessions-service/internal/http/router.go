package httpserver

import (
	"net/http"

	"evzone/backend/libs/httpx"
	"evzone/backend/services/sessions-service/internal/http/handlers"
)

// Routes groups handlers.
type Routes struct {
	Sessions *handlers.SessionsHandler
	Bookings *handlers.BookingsHandler
	Health   http.HandlerFunc
}

// NewRouter registers endpoints. Resource routes sit behind the bearer middleware.
func NewRouter(routes Routes, authMiddleware func(http.Handler) http.Handler) http.Handler {
	mux := http.NewServeMux()

	authenticated := func(handler http.HandlerFunc) http.Handler {
		return httpx.Method(http.MethodGet, httpx.Chain(handler, authMiddleware))
	}

	if routes.Sessions != nil {
		mux.Handle("/sessions", authenticated(routes.Sessions.List))
		mux.Handle("/sessions/{id}", authenticated(routes.Sessions.Get))
	}
	if routes.Bookings != nil {
		mux.Handle("/bookings", authenticated(routes.Bookings.List))
		mux.Handle("/bookings/{id}", authenticated(routes.Bookings.Get))
	}
	if routes.Health != nil {
		mux.Handle("/health", httpx.Method(http.MethodGet, routes.Health))
	}
	return mux
}
