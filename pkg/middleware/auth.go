package middleware

import (
	"net/http"

	"shop-mkononi/pkg/token"
	"shop-mkononi/pkg/utils"

	"go.uber.org/zap"
)

// Authenticate validates the session token and stores the claims on the
// request context. No database round-trip; the claims carry everything.
func Authenticate(tokens *token.Manager, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := tokens.FromRequest(r)
			if raw == "" {
				utils.ResponseUnauthorized(w, "Missing session token")
				return
			}

			claims, err := tokens.Validate(raw)
			if err != nil {
				logger.Warn("Invalid session token",
					zap.Error(err),
					zap.String("path", r.URL.Path))
				utils.ResponseUnauthorized(w, "Invalid or expired session")
				return
			}

			ctx := token.WithClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin gates admin endpoints on the role claim
func RequireAdmin(logger *zap.Logger) func(http.Handler) http.Handler {
	return requireRole("Admin access required", logger, "ADMIN")
}

// RequireSeller gates seller endpoints on the role claim. Administrators pass
// too; ownership checks in the services decide what they may touch.
func RequireSeller(logger *zap.Logger) func(http.Handler) http.Handler {
	return requireRole("Seller access required", logger, "SELLER", "ADMIN")
}

func requireRole(message string, logger *zap.Logger, roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := token.ClaimsFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			for _, role := range roles {
				if claims.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			logger.Warn("Role check failed",
				zap.String("user_id", claims.UserID),
				zap.String("role", claims.Role),
				zap.String("path", r.URL.Path))
			utils.ResponseForbidden(w, message)
		})
	}
}
