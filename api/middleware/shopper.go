package middleware

import (
	"net/http"
	"strings"

	"github.com/adorzia/adorzia-backend/api/responses"
	pkgauth "github.com/adorzia/adorzia-backend/pkg/auth"
	"github.com/adorzia/adorzia-backend/pkg/config"
	pkgerrors "github.com/adorzia/adorzia-backend/pkg/errors"
	"github.com/adorzia/adorzia-backend/pkg/logger"
	"github.com/adorzia/adorzia-backend/pkg/types"
)

const sessionIDHeader = "X-Session-Id"

const maxSessionIDLength = 128

// ShopperContext resolves the shopper identity for cart and checkout routes.
// A bearer token wins over the session header; a malformed token is rejected
// rather than silently downgraded to an anonymous session.
func ShopperContext(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw != "" {
				token := raw
				if strings.HasPrefix(strings.ToLower(token), "bearer ") {
					token = strings.TrimSpace(token[7:])
				}
				if token == "" {
					responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
					return
				}

				claims, err := pkgauth.ParseCustomerToken(cfg, token)
				if err != nil {
					responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
					return
				}

				shopper := types.CustomerShopper(claims.CustomerID)
				ctx = WithShopper(ctx, shopper)
				if logg != nil {
					ctx = logg.WithCustomerID(ctx, claims.CustomerID.String())
				}
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			sessionID := strings.TrimSpace(r.Header.Get(sessionIDHeader))
			if sessionID == "" && r.Method == http.MethodGet {
				sessionID = strings.TrimSpace(r.URL.Query().Get("session_id"))
			}
			if len(sessionID) > maxSessionIDLength {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "session id too long"))
				return
			}
			if sessionID != "" {
				ctx = WithShopper(ctx, types.SessionShopper(sessionID))
				if logg != nil {
					ctx = logg.WithSessionID(ctx, sessionID)
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireShopper rejects requests that carry no shopper identity at all.
func RequireShopper(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !ShopperFromContext(r.Context()).Valid() {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "a bearer token or session id is required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
