package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"evzone/backend/libs/httpx"
	"evzone/backend/services/sessions-service/internal/service"
)

// BookingsHandler serves the bookings resource.
type BookingsHandler struct {
	svc    *service.BookingsService
	logger *zap.Logger
}

// NewBookingsHandler builds handler set.
func NewBookingsHandler(svc *service.BookingsService, logger *zap.Logger) *BookingsHandler {
	return &BookingsHandler{svc: svc, logger: logger}
}

// List handles GET /bookings.
func (h *BookingsHandler) List(w http.ResponseWriter, r *http.Request) {
	input, err := parseListInput(r.URL.Query())
	if err != nil {
		writeServiceError(w, h.logger, err, "failed to list bookings")
		return
	}
	page, err := h.svc.List(r.Context(), input)
	if err != nil {
		writeServiceError(w, h.logger, err, "failed to list bookings")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, page)
}

// Get handles GET /bookings/{id}.
func (h *BookingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	booking, err := h.svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, h.logger, err, "failed to fetch booking")
		return
	}
	writeOptional(w, booking)
}
