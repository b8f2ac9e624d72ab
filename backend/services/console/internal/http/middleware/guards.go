package middleware

import (
	"context"
	"net/http"

	"evzone/backend/libs/access"
	"evzone/backend/libs/httpx"
	"evzone/backend/services/console/internal/appctx"
	"evzone/backend/services/console/internal/routes"
)

type contextKey struct{}

// WithProfile attaches the acting profile to ctx.
func WithProfile(ctx context.Context, profile *access.UserProfile) context.Context {
	return context.WithValue(ctx, contextKey{}, profile)
}

// ProfileFromContext returns the profile a guard resolved.
func ProfileFromContext(ctx context.Context) (*access.UserProfile, bool) {
	p, ok := ctx.Value(contextKey{}).(*access.UserProfile)
	return p, ok && p != nil
}

func resolve(w http.ResponseWriter, r *http.Request) (*access.UserProfile, bool) {
	c, ok := appctx.FromContext(r.Context())
	if !ok {
		http.Redirect(w, r, routes.Login, http.StatusFound)
		return nil, false
	}
	profile, err := c.Identity.Current(r.Context())
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "something went wrong")
		return nil, false
	}
	if profile == nil {
		http.Redirect(w, r, routes.Login, http.StatusFound)
		return nil, false
	}
	return profile, true
}

// RequireAuth redirects anonymous clients to the login page.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		profile, ok := resolve(w, r)
		if !ok {
			return
		}
		next.ServeHTTP(w, r.WithContext(WithProfile(r.Context(), profile)))
	})
}

// RequireRole admits clients whose role is listed. Super admins are always admitted.
// Anonymous clients go to the login page, everyone else to the unauthorized page.
func RequireRole(roles ...access.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			profile, ok := resolve(w, r)
			if !ok {
				return
			}
			if profile.Role != access.RoleSuperAdmin && !profile.Role.In(roles...) {
				http.Redirect(w, r, routes.Unauthorized, http.StatusFound)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithProfile(r.Context(), profile)))
		})
	}
}
