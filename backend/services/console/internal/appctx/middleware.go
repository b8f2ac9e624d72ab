package appctx

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// CookieName carries the console client id.
const CookieName = "evzone_client"

type contextKey struct{}

// WithContext resolves the client's Context from its cookie, issuing a new
// client id when the cookie is missing or malformed.
func WithContext(registry *Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientID := ""
			if cookie, err := r.Cookie(CookieName); err == nil {
				if id, err := uuid.Parse(cookie.Value); err == nil {
					clientID = id.String()
				}
			}
			if clientID == "" {
				clientID = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     CookieName,
					Value:    clientID,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			c := registry.Resolve(clientID)
			next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), c)))
		})
	}
}

// NewContext attaches c to ctx.
func NewContext(ctx context.Context, c *Context) context.Context {
	return context.WithValue(ctx, contextKey{}, c)
}

// FromContext returns the client Context attached by WithContext.
func FromContext(ctx context.Context) (*Context, bool) {
	c, ok := ctx.Value(contextKey{}).(*Context)
	return c, ok
}
