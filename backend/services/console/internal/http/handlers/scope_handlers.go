package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"evzone/backend/libs/access"
	"evzone/backend/libs/httpx"
	"evzone/backend/libs/request"
)

// ScopeHandlers reads and patches the client's scope.
type ScopeHandlers struct {
	logger *zap.Logger
}

// NewScopeHandlers returns handler struct.
func NewScopeHandlers(logger *zap.Logger) *ScopeHandlers {
	return &ScopeHandlers{logger: logger}
}

// Get handles GET /api/scope.
func (h *ScopeHandlers) Get(w http.ResponseWriter, r *http.Request) {
	c, err := clientContext(r)
	if err != nil {
		writeError(w, h.logger, err, "failed to load scope")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, c.Scope.Get())
}

// Patch handles PATCH /api/scope. Omitted fields keep their value.
func (h *ScopeHandlers) Patch(w http.ResponseWriter, r *http.Request) {
	c, err := clientContext(r)
	if err != nil {
		writeError(w, h.logger, err, "failed to update scope")
		return
	}
	var patch access.ScopePatch
	if err := request.DecodeJSON(r, &patch); err != nil {
		writeError(w, h.logger, err, "failed to update scope")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, c.Scope.Set(patch))
}
