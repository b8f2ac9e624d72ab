package handlers

import (
	"errors"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"evzone/backend/libs/httpx"
	"evzone/backend/libs/request"
	"evzone/backend/services/sessions-service/internal/service"
)

func parseListInput(values url.Values) (service.ListInput, error) {
	page, err := request.ParsePagination(values)
	if err != nil {
		return service.ListInput{}, err
	}
	return service.ListInput{
		Query:      request.String(values, "q"),
		StationID:  request.String(values, "stationId"),
		UserID:     request.String(values, "userId"),
		Status:     request.String(values, "status"),
		Pagination: page,
	}, nil
}

// writeServiceError maps validation failures to 400 and everything else to 500.
func writeServiceError(w http.ResponseWriter, logger *zap.Logger, err error, message string) {
	var verr *request.ValidationError
	if errors.As(err, &verr) {
		httpx.WriteJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":  "validation failed",
			"fields": verr.Fields,
		})
		return
	}
	logger.Error(message, zap.Error(err))
	httpx.WriteError(w, http.StatusInternalServerError, message)
}

// writeOptional renders a JSON null body for absent results.
func writeOptional[T any](w http.ResponseWriter, item *T) {
	if item == nil {
		httpx.WriteRaw(w, http.StatusOK, []byte("null\n"))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, item)
}
