package handlers

import (
	"errors"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"evzone/backend/libs/httpx"
	"evzone/backend/libs/request"
	"evzone/backend/services/payments-service/internal/service"
)

func parseListInput(values url.Values) (service.ListInput, error) {
	page, err := request.ParsePagination(values)
	if err != nil {
		return service.ListInput{}, err
	}
	return service.ListInput{
		UserID:     request.String(values, "userId"),
		Status:     request.String(values, "status"),
		Pagination: page,
	}, nil
}

func writeServiceError(w http.ResponseWriter, logger *zap.Logger, err error, message string) {
	var verr *request.ValidationError
	switch {
	case errors.As(err, &verr):
		httpx.WriteJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":  "validation failed",
			"fields": verr.Fields,
		})
	case errors.Is(err, request.ErrMalformedBody):
		httpx.WriteError(w, http.StatusBadRequest, "malformed request body")
	case errors.Is(err, service.ErrMissingUser):
		httpx.WriteError(w, http.StatusUnauthorized, "missing user")
	default:
		logger.Error(message, zap.Error(err))
		httpx.WriteError(w, http.StatusInternalServerError, message)
	}
}

// NewHealthHandler returns GET /health handler.
func NewHealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
