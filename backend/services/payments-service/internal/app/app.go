package app

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"evzone/backend/libs/auth"
	libdb "evzone/backend/libs/db"
	"evzone/backend/libs/httpx"
	"evzone/backend/services/payments-service/internal/config"
	httpserver "evzone/backend/services/payments-service/internal/http"
	"evzone/backend/services/payments-service/internal/http/handlers"
	"evzone/backend/services/payments-service/internal/repository"
	"evzone/backend/services/payments-service/internal/service"
)

// App wires payments service dependencies.
type App struct {
	server *httpx.Server
	db     *sql.DB
	logger *zap.Logger
}

// New constructs application graph.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	sqlDB, err := libdb.NewPostgresDB(cfg.Database.DSN, libdb.PoolOptions{MaxOpenConns: cfg.Database.MaxOpenConns})
	if err != nil {
		return nil, err
	}

	paymentsService := service.NewPaymentsService(
		repository.NewInvoiceRepository(sqlDB),
		repository.NewTransactionRepository(sqlDB),
		repository.NewIntentRepository(sqlDB),
		logger,
	)

	routes := httpserver.Routes{
		Payments: handlers.NewPaymentsHandler(paymentsService, logger),
		Health:   handlers.NewHealthHandler(),
	}

	router := httpserver.NewRouter(routes, auth.Middleware(auth.NewTokenService(cfg.JWT.Secret, 0)))
	server := httpx.NewServer(
		cfg.HTTPAddress(),
		router,
		logger,
		httpx.RequestID(),
		httpx.LoggingMiddleware(logger),
		httpx.RecoveryMiddleware(logger),
	)

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
