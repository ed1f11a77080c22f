package middleware

import (
	"context"
	"net/http"
	"strings"

	jwttoken "rbconsole/internal/jwt_token"
	"rbconsole/pkg/requestcontext"
)

type contextKeySubject struct{}

// ContextKeySubject is exported for tests that build contexts by hand.
var ContextKeySubject = contextKeySubject{}

// GetSubject returns the token subject recorded by BearerToken, if any.
func GetSubject(ctx context.Context) string {
	if sub, ok := ctx.Value(ContextKeySubject).(string); ok {
		return sub
	}
	return ""
}

// BearerToken lifts the caller's token from the Authorization header or, failing
// that, from cookieName. The gateway never validates signatures; the backend does.
// The unverified subject is kept for audit attribution only.
func BearerToken(cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := TokenFromRequest(r, cookieName)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}
			ctx := requestcontext.WithBearerToken(r.Context(), token)
			if info, err := jwttoken.Inspect(token); err == nil && info.Subject != "" {
				ctx = context.WithValue(ctx, ContextKeySubject, info.Subject)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// TokenFromRequest returns the bearer token, or "" when none is present.
func TokenFromRequest(r *http.Request, cookieName string) string {
	const bearerPrefix = "Bearer "
	if after, ok := strings.CutPrefix(r.Header.Get("Authorization"), bearerPrefix); ok {
		return strings.TrimSpace(after)
	}
	if cookieName == "" {
		return ""
	}
	if c, err := r.Cookie(cookieName); err == nil {
		return c.Value
	}
	return ""
}
