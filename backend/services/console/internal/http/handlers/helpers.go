package handlers

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"evzone/backend/libs/access"
	"evzone/backend/libs/auth"
	"evzone/backend/libs/httpx"
	"evzone/backend/libs/request"
	"evzone/backend/services/console/internal/appctx"
	"evzone/backend/services/console/internal/clients"
	"evzone/backend/services/console/internal/http/middleware"
)

var errNoClientContext = errors.New("console: request has no client context")

func clientContext(r *http.Request) (*appctx.Context, error) {
	c, ok := appctx.FromContext(r.Context())
	if !ok {
		return nil, errNoClientContext
	}
	return c, nil
}

// mintToken issues a bearer token for the acting identity carrying its impersonator and scope.
func mintToken(ctx context.Context, tokens *auth.TokenService, c *appctx.Context, profile access.UserProfile) (string, error) {
	impersonator, err := c.Identity.Impersonator(ctx)
	if err != nil {
		return "", err
	}
	scope := c.Scope.Get()
	return tokens.GenerateToken(profile, impersonator, &scope)
}

func actingProfile(r *http.Request) access.UserProfile {
	profile, _ := middleware.ProfileFromContext(r.Context())
	return *profile
}

// writeError maps client errors to 4xx, upstream failures to 502 and the rest to 500.
func writeError(w http.ResponseWriter, logger *zap.Logger, err error, message string) {
	var (
		verr     *request.ValidationError
		upstream *clients.UpstreamError
	)
	switch {
	case errors.As(err, &verr):
		httpx.WriteJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":  "validation failed",
			"fields": verr.Fields,
		})
	case errors.Is(err, request.ErrMalformedBody):
		httpx.WriteError(w, http.StatusBadRequest, "malformed request body")
	case errors.Is(err, access.ErrUnknownRole):
		httpx.WriteError(w, http.StatusBadRequest, "unknown role")
	case errors.Is(err, access.ErrUnknownCapability):
		httpx.WriteError(w, http.StatusBadRequest, "unknown owner capability")
	case errors.Is(err, access.ErrInvalidProfile):
		httpx.WriteError(w, http.StatusBadRequest, "invalid user profile")
	case errors.As(err, &upstream):
		logger.Warn(message, zap.Int("upstream_status", upstream.Status), zap.Error(err))
		httpx.WriteError(w, http.StatusBadGateway, message)
	default:
		logger.Error(message, zap.Error(err))
		httpx.WriteError(w, http.StatusInternalServerError, "something went wrong")
	}
}

// NewHealthHandler returns GET /health handler.
func NewHealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
