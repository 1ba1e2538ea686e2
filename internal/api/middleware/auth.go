package middleware

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/poolcraft/backoffice/internal/services"
	appErr "github.com/poolcraft/backoffice/pkg/errors"
	"github.com/poolcraft/backoffice/pkg/logger"
)

type principalKeyType struct{}

// TokenCookie is set on login and accepted when no Authorization header is sent.
const TokenCookie = "token"

// TokenParser verifies a raw token and returns its principal.
type TokenParser interface {
	ParseToken(token string) (*services.Principal, error)
}

// Auth requires a valid HMAC-signed JWT, read from the Bearer header or the
// token cookie. A missing token is 401; a bad or expired one is 403.
func Auth(parser TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" {
				writeError(w, http.StatusUnauthorized, string(appErr.CodeUnauthorized), "access token required")
				return
			}
			p, err := parser.ParseToken(raw)
			if err != nil {
				logger.FromContext(r.Context()).Debug("token rejected", zap.Error(err))
				writeError(w, http.StatusForbidden, string(appErr.CodeForbidden), "invalid or expired token")
				return
			}
			ctx := context.WithValue(r.Context(), principalKeyType{}, p)
			ctx = logger.WithFields(ctx, zap.Uint("user_id", p.ID))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin must run after Auth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := GetPrincipal(r.Context())
		if p == nil {
			writeError(w, http.StatusUnauthorized, string(appErr.CodeUnauthorized), "access token required")
			return
		}
		if !p.IsAdmin() {
			writeError(w, http.StatusForbidden, string(appErr.CodeForbidden), "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) string {
	ah := r.Header.Get("Authorization")
	if len(ah) > len("bearer ") && strings.EqualFold(ah[:len("bearer ")], "bearer ") {
		return strings.TrimSpace(ah[len("bearer "):])
	}
	if c, err := r.Cookie(TokenCookie); err == nil {
		return c.Value
	}
	return ""
}

// GetPrincipal returns the authenticated caller, or nil on public routes.
func GetPrincipal(ctx context.Context) *services.Principal {
	p, _ := ctx.Value(principalKeyType{}).(*services.Principal)
	return p
}

// WithPrincipal stores p in ctx. Handler tests use it to skip token parsing.
func WithPrincipal(ctx context.Context, p *services.Principal) context.Context {
	return context.WithValue(ctx, principalKeyType{}, p)
}
