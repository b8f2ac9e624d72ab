package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"evzone/backend/libs/access"
	"evzone/backend/libs/httpx"
	"evzone/backend/libs/request"
	"evzone/backend/services/console/internal/routes"
)

// LoginRequest is the POST /auth/login body. There is no credential.
type LoginRequest struct {
	Role            string `json:"role" validate:"required"`
	Name            string `json:"name" validate:"max=128"`
	OwnerCapability string `json:"ownerCapability"`
}

// AuthHandlers handles demo login and logout.
type AuthHandlers struct {
	logger *zap.Logger
}

// NewAuthHandlers returns handler struct.
func NewAuthHandlers(logger *zap.Logger) *AuthHandlers {
	return &AuthHandlers{logger: logger}
}

type roleOption struct {
	Role      access.Role `json:"role"`
	Label     string      `json:"label"`
	Dashboard string      `json:"dashboard"`
}

func roleOptions() []roleOption {
	out := make([]roleOption, 0, len(access.Roles()))
	for _, role := range access.Roles() {
		out = append(out, roleOption{Role: role, Label: role.Label(), Dashboard: routes.DashboardPath(role, 0)})
	}
	return out
}

// LoginPage handles GET /auth/login.
func (h *AuthHandlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	route, _ := routes.Lookup(routes.Login)
	httpx.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"page":  route,
		"roles": roleOptions(),
	})
}

// Login handles POST /auth/login.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	c, err := clientContext(r)
	if err != nil {
		writeError(w, h.logger, err, "login failed")
		return
	}
	var body LoginRequest
	if err := request.DecodeJSON(r, &body); err != nil {
		writeError(w, h.logger, err, "login failed")
		return
	}
	role, err := access.ParseRole(body.Role)
	if err != nil {
		writeError(w, h.logger, err, "login failed")
		return
	}
	capability, err := access.ParseOwnerCapability(body.OwnerCapability)
	if err != nil {
		writeError(w, h.logger, err, "login failed")
		return
	}

	profile, err := c.Identity.Login(r.Context(), role, body.Name, capability)
	if err != nil {
		writeError(w, h.logger, err, "login failed")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"user":      profile,
		"dashboard": routes.DashboardPath(profile.Role, profile.OwnerCapability),
	})
}

// Logout handles POST /auth/logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	c, err := clientContext(r)
	if err == nil {
		err = c.Identity.Logout(r.Context())
	}
	if err != nil {
		writeError(w, h.logger, err, "logout failed")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"redirect": routes.Login})
}
