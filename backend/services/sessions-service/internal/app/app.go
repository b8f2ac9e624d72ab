package app

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"evzone/backend/libs/auth"
	libdb "evzone/backend/libs/db"
	"evzone/backend/libs/httpx"
	"evzone/backend/services/sessions-service/internal/config"
	httpserver "evzone/backend/services/sessions-service/internal/http"
	"evzone/backend/services/sessions-service/internal/http/handlers"
	"evzone/backend/services/sessions-service/internal/repository"
	"evzone/backend/services/sessions-service/internal/service"
)

// App wires sessions-service dependencies.
type App struct {
	server *httpx.Server
	db     *sql.DB
	logger *zap.Logger
}

// New constructs the application graph.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	sqlDB, err := libdb.NewPostgresDB(cfg.Database.DSN, libdb.PoolOptions{MaxOpenConns: cfg.Database.MaxOpenConns})
	if err != nil {
		return nil, err
	}

	sessionsService := service.NewSessionsService(repository.NewSessionRepository(sqlDB), cfg.Scope.Enforce, logger)
	bookingsService := service.NewBookingsService(repository.NewBookingRepository(sqlDB), cfg.Scope.Enforce, logger)
	tokens := auth.NewTokenService(cfg.JWT.Secret, 0)

	router := httpserver.NewRouter(httpserver.Routes{
		Sessions: handlers.NewSessionsHandler(sessionsService, logger),
		Bookings: handlers.NewBookingsHandler(bookingsService, logger),
		Health:   handlers.NewHealthHandler(),
	}, auth.Middleware(tokens))

	server := httpx.NewServer(
		cfg.HTTPAddress(),
		router,
		logger,
		httpx.RequestID(),
		httpx.LoggingMiddleware(logger),
		httpx.RecoveryMiddleware(logger),
	)

	if cfg.Scope.Enforce {
		logger.Info("token scope enforcement enabled")
	}

	return &App{
		server: server,
		db:     sqlDB,
		logger: logger,
	}, nil
}

// Run starts HTTP server.
func (a *App) Run(ctx context.Context) error {
	return a.server.Run(ctx)
}

// Close releases resources.
func (a *App) Close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("failed to close db", zap.Error(err))
		}
	}
}
