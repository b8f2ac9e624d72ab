package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"evzone/backend/libs/access"
	"evzone/backend/libs/auth"
	"evzone/backend/services/console/internal/appctx"
	"evzone/backend/services/console/internal/dashboard"
	"evzone/backend/services/console/internal/http/handlers"
	"evzone/backend/services/console/internal/http/middleware"
	"evzone/backend/services/console/internal/identity"
	"evzone/backend/services/console/internal/models"
)

type fakeAPIs struct {
	mu          sync.Mutex
	tokens      []string
	queries     []url.Values
	sessions    []models.SessionDTO
	sessionsErr error
}

func (f *fakeAPIs) record(token string, q url.Values) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens = append(f.tokens, token)
	f.queries = append(f.queries, q)
}

func (f *fakeAPIs) ListSessions(_ context.Context, token string, q url.Values) (models.Page[models.SessionDTO], error) {
	f.record(token, q)
	if f.sessionsErr != nil {
		return models.Page[models.SessionDTO]{}, f.sessionsErr
	}
	return models.Page[models.SessionDTO]{Items: f.sessions, Page: 1, PageSize: 25, Total: len(f.sessions)}, nil
}

func (f *fakeAPIs) ListBookings(_ context.Context, token string, q url.Values) (models.Page[models.BookingDTO], error) {
	f.record(token, q)
	return models.Page[models.BookingDTO]{Items: []models.BookingDTO{}, Page: 1, PageSize: 25}, nil
}

func (f *fakeAPIs) ListInvoices(_ context.Context, token string, q url.Values) (models.Page[models.InvoiceDTO], error) {
	f.record(token, q)
	return models.Page[models.InvoiceDTO]{Items: []models.InvoiceDTO{{ID: "INV-1", Amount: 20}}, Page: 1, PageSize: 25, Total: 1}, nil
}

func (f *fakeAPIs) ListTransactions(_ context.Context, token string, q url.Values) (models.Page[models.TransactionDTO], error) {
	f.record(token, q)
	return models.Page[models.TransactionDTO]{Items: []models.TransactionDTO{}, Page: 1, PageSize: 25}, nil
}

type harness struct {
	server   *httptest.Server
	router   http.Handler
	apis     *fakeAPIs
	tokens   *auth.TokenService
	registry *appctx.Registry
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return newHarnessWithLimiter(t, middleware.NewRateLimiter(100, 100))
}

func newHarnessWithLimiter(t *testing.T, limiter *middleware.RateLimiter) *harness {
	t.Helper()
	logger := zap.NewNop()
	apis := &fakeAPIs{sessions: []models.SessionDTO{
		{ID: "SES-1", Region: "EU", StationID: "ST-1", Status: "Completed", EnergyKWh: 4},
		{ID: "SES-2", Region: "AFRICA", StationID: "ST-2", Status: "Active", EnergyKWh: 6},
	}}
	tokens := auth.NewTokenService("console-secret", time.Minute)
	registry := appctx.NewRegistry(func(string) identity.Slots { return identity.NewMemorySlots() }, logger)
	composer := dashboard.NewComposer(dashboard.ClientSource{Sessions: apis, Payments: apis}, logger)

	router := NewRouter(RouterDeps{
		Auth:         handlers.NewAuthHandlers(logger),
		Identity:     handlers.NewIdentityHandlers(logger),
		Scope:        handlers.NewScopeHandlers(logger),
		Pages:        handlers.NewPagesHandlers(composer, apis, apis, tokens, logger),
		Health:       handlers.NewHealthHandler(),
		LoginLimiter: limiter,
		Registry:     registry,
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return &harness{server: srv, router: router, apis: apis, tokens: tokens, registry: registry}
}

// newBrowser returns a client that keeps cookies and does not follow redirects.
func (h *harness) newBrowser(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func (h *harness) do(t *testing.T, c *http.Client, method, path, body string) (*http.Response, map[string]interface{}) {
	t.Helper()
	req, err := http.NewRequest(method, h.server.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	resp, err := c.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var decoded map[string]interface{}
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") && len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded), string(raw))
	}
	return resp, decoded
}

func (h *harness) login(t *testing.T, c *http.Client, body string) map[string]interface{} {
	t.Helper()
	resp, decoded := h.do(t, c, http.MethodPost, "/auth/login", body)
	require.Equal(t, http.StatusOK, resp.StatusCode, decoded)
	return decoded
}

func TestAnonymousFeatureRequestRedirectsToLogin(t *testing.T) {
	h := newHarness(t)
	resp, _ := h.do(t, h.newBrowser(t), http.MethodGet, "/sessions", "")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/auth/login", resp.Header.Get("Location"))
	assert.Empty(t, h.apis.tokens)
}

func TestRootRedirects(t *testing.T) {
	h := newHarness(t)
	browser := h.newBrowser(t)

	resp, _ := h.do(t, browser, http.MethodGet, "/", "")
	assert.Equal(t, "/auth/login", resp.Header.Get("Location"))

	h.login(t, browser, `{"role":"OWNER","ownerCapability":"SWAP"}`)
	resp, _ = h.do(t, browser, http.MethodGet, "/", "")
	assert.Equal(t, "/owner/swap", resp.Header.Get("Location"))
}

func TestLoginValidation(t *testing.T) {
	h := newHarness(t)
	browser := h.newBrowser(t)

	resp, body := h.do(t, browser, http.MethodPost, "/auth/login", `{"role":"WIZARD"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "unknown role", body["error"])

	resp, _ = h.do(t, browser, http.MethodPost, "/auth/login", `{}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = h.do(t, browser, http.MethodPost, "/auth/login", `{"role":"OWNER","ownerCapability":"FLY"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body = h.login(t, browser, `{"role":"MANAGER"}`)
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "Demo Manager", user["name"])
	assert.Equal(t, "/dashboard/manager", body["dashboard"])
}

func TestAdminImpersonatesOwnerAndReturns(t *testing.T) {
	h := newHarness(t)
	browser := h.newBrowser(t)
	admin := h.login(t, browser, `{"role":"EVZONE_ADMIN","name":"Ada"}`)["user"].(map[string]interface{})

	resp, body := h.do(t, browser, http.MethodPost, "/api/impersonation/start",
		`{"target":{"id":"owner-7","name":"Kato","role":"OWNER","ownerCapability":"CHARGE"},"returnTo":"/users/impersonate"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["started"])
	assert.Equal(t, "/owner/charge", body["dashboard"])

	_, me := h.do(t, browser, http.MethodGet, "/api/me", "")
	assert.Equal(t, "owner-7", me["user"].(map[string]interface{})["id"])
	assert.Equal(t, admin["id"], me["impersonator"].(map[string]interface{})["id"])
	assert.Equal(t, "/users/impersonate", me["returnTo"])

	resp, _ = h.do(t, browser, http.MethodGet, "/users/impersonate", "")
	assert.Equal(t, "/unauthorized", resp.Header.Get("Location"))

	resp, body = h.do(t, browser, http.MethodPost, "/api/impersonation/stop", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["stopped"])
	assert.Equal(t, "/users/impersonate", body["returnTo"])

	_, me = h.do(t, browser, http.MethodGet, "/api/me", "")
	assert.Equal(t, admin["id"], me["user"].(map[string]interface{})["id"])
	assert.Nil(t, me["impersonator"])
	assert.Equal(t, "", me["returnTo"])
}

func TestNonAdminCannotImpersonate(t *testing.T) {
	h := newHarness(t)
	browser := h.newBrowser(t)
	h.login(t, browser, `{"role":"MANAGER"}`)

	resp, _ := h.do(t, browser, http.MethodPost, "/api/impersonation/start",
		`{"target":{"id":"owner-7","role":"OWNER"},"returnTo":"/"}`)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/unauthorized", resp.Header.Get("Location"))
}

func TestSuperAdminPassesGuardButCannotImpersonate(t *testing.T) {
	h := newHarness(t)
	browser := h.newBrowser(t)
	h.login(t, browser, `{"role":"SUPER_ADMIN"}`)

	resp, body := h.do(t, browser, http.MethodPost, "/api/impersonation/start",
		`{"target":{"id":"owner-7","role":"OWNER"},"returnTo":"/"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, body["started"])
}

func TestClientsAreIsolated(t *testing.T) {
	h := newHarness(t)
	first, second := h.newBrowser(t), h.newBrowser(t)
	h.login(t, first, `{"role":"MANAGER"}`)

	resp, _ := h.do(t, second, http.MethodGet, "/api/me", "")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
}

func TestFeaturePageAppliesScopeAndForwardsQuery(t *testing.T) {
	h := newHarness(t)
	browser := h.newBrowser(t)
	h.login(t, browser, `{"role":"STATION_ADMIN"}`)

	resp, scope := h.do(t, browser, http.MethodPatch, "/api/scope", `{"region":"EUROPE"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "EUROPE", scope["region"])
	assert.Equal(t, "ALL", scope["orgId"])

	resp, body := h.do(t, browser, http.MethodGet, "/sessions?status=Completed&page=1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	items := body["items"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, "SES-1", items[0].(map[string]interface{})["id"])
	assert.Equal(t, float64(2), body["total"])

	last := len(h.apis.queries) - 1
	assert.Equal(t, "Completed", h.apis.queries[last].Get("status"))
	claims, err := h.tokens.ValidateToken(h.apis.tokens[last])
	require.NoError(t, err)
	assert.Equal(t, access.RoleStationAdmin, claims.Role)
	require.NotNil(t, claims.Scope)
	assert.Equal(t, "EUROPE", claims.Scope.Region)
}

func TestFeaturePageUpstreamFailure(t *testing.T) {
	h := newHarness(t)
	h.apis.sessionsErr = errors.New("connection refused")
	browser := h.newBrowser(t)
	h.login(t, browser, `{"role":"ATTENDANT"}`)

	resp, body := h.do(t, browser, http.MethodGet, "/sessions", "")
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, "sessions unavailable", body["error"])
}

func TestRoleGuardOnFeatureAndDashboard(t *testing.T) {
	h := newHarness(t)
	browser := h.newBrowser(t)
	h.login(t, browser, `{"role":"TECHNICIAN_PUBLIC"}`)

	resp, _ := h.do(t, browser, http.MethodGet, "/payments/invoices", "")
	assert.Equal(t, "/unauthorized", resp.Header.Get("Location"))
	resp, _ = h.do(t, browser, http.MethodGet, "/dashboard/manager", "")
	assert.Equal(t, "/unauthorized", resp.Header.Get("Location"))

	resp, _ = h.do(t, browser, http.MethodGet, "/unauthorized", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestDashboardRendersWidgets(t *testing.T) {
	h := newHarness(t)
	browser := h.newBrowser(t)
	h.login(t, browser, `{"role":"OWNER","ownerCapability":"CHARGE"}`)

	resp, body := h.do(t, browser, http.MethodGet, "/owner/charge", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	widgets := body["widgets"].([]interface{})
	require.NotEmpty(t, widgets)
	first := widgets[0].(map[string]interface{})
	assert.Equal(t, "sessions-count", first["id"])
	assert.Equal(t, float64(2), first["value"])
	assert.Equal(t, "OWNER", body["user"].(map[string]interface{})["role"])
}

func TestLogoutEndsSession(t *testing.T) {
	h := newHarness(t)
	browser := h.newBrowser(t)
	h.login(t, browser, `{"role":"MANAGER"}`)

	resp, _ := h.do(t, browser, http.MethodPost, "/auth/logout", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = h.do(t, browser, http.MethodGet, "/api/me", "")
	assert.Equal(t, "/auth/login", resp.Header.Get("Location"))
}

func TestHealthAndMethods(t *testing.T) {
	h := newHarness(t)
	browser := h.newBrowser(t)

	resp, body := h.do(t, browser, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])

	resp, _ = h.do(t, browser, http.MethodDelete, "/auth/login", "")
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	assert.Equal(t, "GET, POST", resp.Header.Get("Allow"))
}

func TestLoginLimitHoldsWithoutCookie(t *testing.T) {
	h := newHarnessWithLimiter(t, middleware.NewRateLimiter(0.0001, 5))

	ok, limited := 0, 0
	for i := 0; i < 50; i++ {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"role":"MANAGER"}`))
		req.RemoteAddr = "198.51.100.7:40000"
		rec := httptest.NewRecorder()
		h.router.ServeHTTP(rec, req)
		switch rec.Code {
		case http.StatusOK:
			ok++
		case http.StatusTooManyRequests:
			limited++
		}
	}

	assert.Equal(t, 5, ok)
	assert.Equal(t, 45, limited)
	assert.Equal(t, 5, h.registry.Len())

	req := httptest.NewRequest(http.MethodGet, "/auth/login", nil)
	req.RemoteAddr = "198.51.100.7:40000"
	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
