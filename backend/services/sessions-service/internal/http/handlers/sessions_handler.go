package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"evzone/backend/libs/httpx"
	"evzone/backend/services/sessions-service/internal/service"
)

// SessionsHandler serves the sessions resource.
type SessionsHandler struct {
	svc    *service.SessionsService
	logger *zap.Logger
}

// NewSessionsHandler builds handler set.
func NewSessionsHandler(svc *service.SessionsService, logger *zap.Logger) *SessionsHandler {
	return &SessionsHandler{svc: svc, logger: logger}
}

// List handles GET /sessions.
func (h *SessionsHandler) List(w http.ResponseWriter, r *http.Request) {
	input, err := parseListInput(r.URL.Query())
	if err != nil {
		writeServiceError(w, h.logger, err, "failed to list sessions")
		return
	}
	page, err := h.svc.List(r.Context(), input)
	if err != nil {
		writeServiceError(w, h.logger, err, "failed to list sessions")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, page)
}

// Get handles GET /sessions/{id}.
func (h *SessionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	session, err := h.svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, h.logger, err, "failed to fetch session")
		return
	}
	writeOptional(w, session)
}
