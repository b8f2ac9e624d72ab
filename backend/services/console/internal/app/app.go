package app

import (
	"context"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"evzone/backend/libs/auth"
	"evzone/backend/libs/httpx"
	libredis "evzone/backend/libs/redis"
	"evzone/backend/services/console/internal/appctx"
	"evzone/backend/services/console/internal/clients"
	"evzone/backend/services/console/internal/config"
	"evzone/backend/services/console/internal/dashboard"
	httpserver "evzone/backend/services/console/internal/http"
	"evzone/backend/services/console/internal/http/handlers"
	"evzone/backend/services/console/internal/http/middleware"
	"evzone/backend/services/console/internal/identity"
	"evzone/backend/services/console/internal/identity/redisstore"
	"evzone/backend/services/console/internal/live"
)

// App wires console dependencies.
type App struct {
	server   *httpx.Server
	registry *appctx.Registry
	limiter  *middleware.RateLimiter
	redis    *goredis.Client
	cfg      *config.Config
	logger   *zap.Logger
}

// New constructs the application graph.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	var (
		redisClient *goredis.Client
		newSlots    appctx.SlotsFactory
	)
	if cfg.UseRedis() {
		client, err := libredis.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, err
		}
		redisClient = client
		newSlots = func(clientID string) identity.Slots {
			return redisstore.NewSlots(client, clientID, cfg.Redis.TTL)
		}
	} else {
		logger.Warn("redis address not set, identity is kept in memory")
		newSlots = func(string) identity.Slots { return identity.NewMemorySlots() }
	}

	httpClient := clients.NewDefaultHTTPClient(cfg.HTTPTimeout())
	sessionsClient := clients.NewSessionsClient(cfg.Services.SessionsURL, httpClient)
	paymentsClient := clients.NewPaymentsClient(cfg.Services.PaymentsURL, httpClient)

	tokens := auth.NewTokenService(cfg.JWT.Secret, 0)
	registry := appctx.NewRegistry(newSlots, logger)
	composer := dashboard.NewComposer(dashboard.ClientSource{
		Sessions: sessionsClient,
		Payments: paymentsClient,
		PageSize: cfg.Dashboard.PageSize,
	}, logger)
	limiter := middleware.NewRateLimiter(cfg.LoginRate.PerSecond, cfg.LoginRate.Burst)
	liveServer := live.NewServer(live.NewHub(logger), cfg.WebSocket.WriteTimeout, cfg.WebSocket.AllowedOrigins, logger)

	router := httpserver.NewRouter(httpserver.RouterDeps{
		Auth:         handlers.NewAuthHandlers(logger),
		Identity:     handlers.NewIdentityHandlers(logger),
		Scope:        handlers.NewScopeHandlers(logger),
		Pages:        handlers.NewPagesHandlers(composer, sessionsClient, paymentsClient, tokens, logger),
		Live:         liveServer.HandleWS,
		Health:       handlers.NewHealthHandler(),
		LoginLimiter: limiter,
		Registry:     registry,
	})

	server := httpx.NewServer(
		cfg.HTTPAddress(),
		router,
		logger,
		httpx.RequestID(),
		httpx.LoggingMiddleware(logger),
		httpx.RecoveryMiddleware(logger),
	)

	return &App{
		server:   server,
		registry: registry,
		limiter:  limiter,
		redis:    redisClient,
		cfg:      cfg,
		logger:   logger,
	}, nil
}

// Run starts the HTTP server and the idle client and limiter sweepers.
func (a *App) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.server.Run(ctx)
	})
	g.Go(func() error {
		a.registry.Run(ctx, a.cfg.Clients.EvictInterval, a.cfg.Clients.Idle)
		return nil
	})
	g.Go(func() error {
		a.limiter.Run(ctx, a.cfg.Clients.EvictInterval, a.cfg.Clients.Idle)
		return nil
	})
	return g.Wait()
}

// Close releases resources.
func (a *App) Close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("failed to close redis", zap.Error(err))
		}
	}
}
