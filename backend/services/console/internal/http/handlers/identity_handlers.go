package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"evzone/backend/libs/access"
	"evzone/backend/libs/httpx"
	"evzone/backend/libs/request"
	"evzone/backend/services/console/internal/routes"
)

// StartImpersonationRequest is the POST /api/impersonation/start body.
type StartImpersonationRequest struct {
	Target   access.UserProfile `json:"target"`
	ReturnTo string             `json:"returnTo" validate:"max=256"`
}

// IdentityHandlers exposes the acting identity and impersonation.
type IdentityHandlers struct {
	logger *zap.Logger
}

// NewIdentityHandlers returns handler struct.
func NewIdentityHandlers(logger *zap.Logger) *IdentityHandlers {
	return &IdentityHandlers{logger: logger}
}

// Me handles GET /api/me.
func (h *IdentityHandlers) Me(w http.ResponseWriter, r *http.Request) {
	c, err := clientContext(r)
	if err != nil {
		writeError(w, h.logger, err, "failed to load identity")
		return
	}
	user := actingProfile(r)
	impersonator, err := c.Identity.Impersonator(r.Context())
	if err != nil {
		writeError(w, h.logger, err, "failed to load identity")
		return
	}
	returnTo, err := c.Identity.ReturnTo(r.Context())
	if err != nil {
		writeError(w, h.logger, err, "failed to load identity")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"user":         user,
		"impersonator": impersonator,
		"returnTo":     returnTo,
		"dashboard":    routes.DashboardPath(user.Role, user.OwnerCapability),
	})
}

// StartImpersonation handles POST /api/impersonation/start.
func (h *IdentityHandlers) StartImpersonation(w http.ResponseWriter, r *http.Request) {
	c, err := clientContext(r)
	if err != nil {
		writeError(w, h.logger, err, "failed to start impersonation")
		return
	}
	var body StartImpersonationRequest
	if err := request.DecodeJSON(r, &body); err != nil {
		writeError(w, h.logger, err, "failed to start impersonation")
		return
	}
	started, err := c.Identity.StartImpersonation(r.Context(), body.Target, body.ReturnTo)
	if err != nil {
		writeError(w, h.logger, err, "failed to start impersonation")
		return
	}
	resp := map[string]interface{}{"started": started}
	if started {
		resp["dashboard"] = routes.DashboardPath(body.Target.Role, body.Target.OwnerCapability)
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// StopImpersonation handles POST /api/impersonation/stop.
func (h *IdentityHandlers) StopImpersonation(w http.ResponseWriter, r *http.Request) {
	c, err := clientContext(r)
	if err != nil {
		writeError(w, h.logger, err, "failed to stop impersonation")
		return
	}
	returnTo, stopped, err := c.Identity.StopImpersonation(r.Context())
	if err != nil {
		writeError(w, h.logger, err, "failed to stop impersonation")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"stopped":  stopped,
		"returnTo": returnTo,
	})
}
