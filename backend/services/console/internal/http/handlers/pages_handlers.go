package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"evzone/backend/libs/access"
	"evzone/backend/libs/auth"
	"evzone/backend/libs/httpx"
	"evzone/backend/services/console/internal/clients"
	"evzone/backend/services/console/internal/dashboard"
	"evzone/backend/services/console/internal/models"
	"evzone/backend/services/console/internal/routes"
)

// PagesHandlers serves dashboards and feature pages.
type PagesHandlers struct {
	composer *dashboard.Composer
	sessions dashboard.SessionsAPI
	payments dashboard.PaymentsAPI
	tokens   *auth.TokenService
	logger   *zap.Logger
}

// NewPagesHandlers returns handler struct.
func NewPagesHandlers(composer *dashboard.Composer, sessions dashboard.SessionsAPI, payments dashboard.PaymentsAPI, tokens *auth.TokenService, logger *zap.Logger) *PagesHandlers {
	return &PagesHandlers{
		composer: composer,
		sessions: sessions,
		payments: payments,
		tokens:   tokens,
		logger:   logger,
	}
}

// Root handles GET / by sending the client to its dashboard or the login page.
func (h *PagesHandlers) Root(w http.ResponseWriter, r *http.Request) {
	target := routes.Login
	if c, err := clientContext(r); err == nil {
		profile, err := c.Identity.Current(r.Context())
		if err != nil {
			writeError(w, h.logger, err, "failed to load identity")
			return
		}
		if profile != nil {
			target = routes.DashboardPath(profile.Role, profile.OwnerCapability)
		}
	}
	http.Redirect(w, r, target, http.StatusFound)
}

// Static returns a handler describing a page without data.
func (h *PagesHandlers) Static(route routes.Route) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, map[string]interface{}{"page": route})
	}
}

// Dashboard returns the handler of the dashboard at route.
func (h *PagesHandlers) Dashboard(route routes.Route) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := clientContext(r)
		if err != nil {
			writeError(w, h.logger, err, "failed to render dashboard")
			return
		}
		profile := actingProfile(r)
		token, err := mintToken(r.Context(), h.tokens, c, profile)
		if err != nil {
			writeError(w, h.logger, err, "failed to render dashboard")
			return
		}
		scope := c.Scope.Get()
		d := h.composer.ComposePath(r.Context(), route.Path, scope, token)
		httpx.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"page":    route,
			"user":    profile,
			"scope":   scope,
			"widgets": d.Widgets,
		})
	}
}

// Impersonate handles GET /users/impersonate: the identities an admin can act as.
func (h *PagesHandlers) Impersonate(w http.ResponseWriter, r *http.Request) {
	route, _ := routes.Lookup(routes.Impersonate)
	httpx.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"page":    route,
		"targets": roleOptions(),
	})
}

// Sessions handles GET /sessions.
func (h *PagesHandlers) Sessions(w http.ResponseWriter, r *http.Request) {
	serveFeature(h, w, r, routes.Sessions, "sessions unavailable", h.sessions.ListSessions)
}

// Bookings handles GET /bookings.
func (h *PagesHandlers) Bookings(w http.ResponseWriter, r *http.Request) {
	serveFeature(h, w, r, routes.Bookings, "bookings unavailable", h.sessions.ListBookings)
}

// Invoices handles GET /payments/invoices.
func (h *PagesHandlers) Invoices(w http.ResponseWriter, r *http.Request) {
	serveFeature(h, w, r, routes.PaymentInvoices, "invoices unavailable", h.payments.ListInvoices)
}

// Transactions handles GET /payments/transactions.
func (h *PagesHandlers) Transactions(w http.ResponseWriter, r *http.Request) {
	serveFeature(h, w, r, routes.PaymentTransactions, "transactions unavailable", h.payments.ListTransactions)
}

type scoped interface {
	ScopeTarget() access.Target
}

// serveFeature proxies the query string upstream and narrows the page to the client's scope.
// total is the upstream count before scoping.
func serveFeature[T scoped](h *PagesHandlers, w http.ResponseWriter, r *http.Request, path, failure string, list func(context.Context, string, url.Values) (models.Page[T], error)) {
	c, err := clientContext(r)
	if err != nil {
		writeError(w, h.logger, err, failure)
		return
	}
	token, err := mintToken(r.Context(), h.tokens, c, actingProfile(r))
	if err != nil {
		writeError(w, h.logger, err, failure)
		return
	}

	page, err := list(r.Context(), token, r.URL.Query())
	if err != nil {
		var upstream *clients.UpstreamError
		if errors.As(err, &upstream) && upstream.Status == http.StatusBadRequest {
			httpx.WriteRaw(w, http.StatusBadRequest, upstream.Body)
			return
		}
		h.logger.Warn(failure, zap.Error(err))
		httpx.WriteError(w, http.StatusBadGateway, failure)
		return
	}

	scope := c.Scope.Get()
	items := access.Filter(page.Items, scope, func(item T) access.Target { return item.ScopeTarget() })
	route, _ := routes.Lookup(path)
	httpx.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"page":       route,
		"items":      items,
		"total":      page.Total,
		"pageNumber": page.Page,
		"pageSize":   page.PageSize,
		"scope":      scope,
	})
}
