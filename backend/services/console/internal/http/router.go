package httpserver

import (
	"net/http"

	"evzone/backend/libs/access"
	"evzone/backend/libs/httpx"
	"evzone/backend/services/console/internal/appctx"
	"evzone/backend/services/console/internal/http/handlers"
	"evzone/backend/services/console/internal/http/middleware"
	"evzone/backend/services/console/internal/routes"
)

// RouterDeps collects handler dependencies.
type RouterDeps struct {
	Auth         *handlers.AuthHandlers
	Identity     *handlers.IdentityHandlers
	Scope        *handlers.ScopeHandlers
	Pages        *handlers.PagesHandlers
	Live         http.HandlerFunc
	Health       http.HandlerFunc
	LoginLimiter *middleware.RateLimiter
	Registry     *appctx.Registry
}

// NewRouter wires console routes. Everything except /health runs with a client context.
func NewRouter(deps RouterDeps) http.Handler {
	console := http.NewServeMux()

	get := func(h http.Handler) http.Handler { return httpx.Method(http.MethodGet, h) }
	post := func(h http.Handler) http.Handler { return httpx.Method(http.MethodPost, h) }

	console.Handle("/{$}", get(http.HandlerFunc(deps.Pages.Root)))
	console.Handle(routes.Login, httpx.Methods(map[string]http.Handler{
		http.MethodGet:  http.HandlerFunc(deps.Auth.LoginPage),
		http.MethodPost: http.HandlerFunc(deps.Auth.Login),
	}))
	console.Handle("/auth/logout", post(http.HandlerFunc(deps.Auth.Logout)))
	if route, ok := routes.Lookup(routes.Unauthorized); ok {
		console.Handle(route.Path, get(deps.Pages.Static(route)))
	}

	console.Handle("/api/me", get(middleware.RequireAuth(http.HandlerFunc(deps.Identity.Me))))
	console.Handle("/api/impersonation/start", post(middleware.RequireRole(access.RoleEVzoneAdmin)(http.HandlerFunc(deps.Identity.StartImpersonation))))
	console.Handle("/api/impersonation/stop", post(middleware.RequireAuth(http.HandlerFunc(deps.Identity.StopImpersonation))))
	console.Handle("/api/scope", middleware.RequireAuth(httpx.Methods(map[string]http.Handler{
		http.MethodGet:   http.HandlerFunc(deps.Scope.Get),
		http.MethodPatch: http.HandlerFunc(deps.Scope.Patch),
	})))
	if deps.Live != nil {
		console.Handle("/api/ws", get(middleware.RequireAuth(deps.Live)))
	}

	for _, route := range routes.OfKind(routes.KindDashboard) {
		console.Handle(route.Path, get(middleware.RequireRole(route.Roles...)(deps.Pages.Dashboard(route))))
	}

	features := map[string]http.HandlerFunc{
		routes.Sessions:            deps.Pages.Sessions,
		routes.Bookings:            deps.Pages.Bookings,
		routes.PaymentInvoices:     deps.Pages.Invoices,
		routes.PaymentTransactions: deps.Pages.Transactions,
		routes.Impersonate:         deps.Pages.Impersonate,
	}
	for _, route := range routes.OfKind(routes.KindFeature) {
		if h, ok := features[route.Path]; ok {
			console.Handle(route.Path, get(middleware.RequireRole(route.Roles...)(h)))
		}
	}

	mux := http.NewServeMux()
	if deps.Health != nil {
		mux.Handle("/health", get(deps.Health))
	}
	withClient := appctx.WithContext(deps.Registry)(console)
	mux.Handle("/", withClient)
	if deps.LoginLimiter != nil {
		// Limited before WithContext: rejected logins allocate no client state.
		mux.Handle(http.MethodPost+" "+routes.Login, deps.LoginLimiter.Middleware(withClient))
	}
	return mux
}
