package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/shashiranjanraj/merchdesk/pkg/auth"
	"github.com/shashiranjanraj/merchdesk/pkg/response"
)

// claimsKey is the unexported context key for the validated session claims.
type claimsKey struct{}

// Auth gates a route behind a valid session token. The token is read from
// the Authorization header (Bearer scheme) or, failing that, a "token"
// cookie set by the UI. Validated claims are stored in the request context
// for handlers that need the acting admin.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			response.Unauthorized(w)
			return
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			response.Error(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClaimsFromCtx returns the session claims stored by Auth, or nil.
func ClaimsFromCtx(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(claimsKey{}).(*auth.Claims)
	return claims
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}

	if cookie, err := r.Cookie("token"); err == nil {
		return cookie.Value
	}

	return ""
}
