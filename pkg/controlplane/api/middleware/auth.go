// Package middleware provides HTTP middleware for the paperbay API.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/paperbay/paperbay/internal/logger"
	"github.com/paperbay/paperbay/pkg/controlplane/api/auth"
	"github.com/paperbay/paperbay/pkg/controlplane/models"
	"github.com/paperbay/paperbay/pkg/controlplane/store"
)

// Context key type for storing claims
type contextKey string

const claimsContextKey contextKey = "claims"

// GetClaimsFromContext retrieves JWT claims from the request context.
// Returns nil if no claims are present (route without JWTAuth, or called
// before the middleware ran).
func GetClaimsFromContext(ctx context.Context) *auth.Claims {
	claims, ok := ctx.Value(claimsContextKey).(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}

// extractBearerToken extracts the token from a Bearer Authorization header.
func extractBearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

// JWTAuth validates Bearer tokens and stores the claims in the request
// context. The subject's directory entry is refreshed from the claims so
// friend search and share listings can resolve usernames without talking
// to the identity provider.
func JWTAuth(jwtService *auth.JWTService, users store.FriendshipStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := extractBearerToken(r)
			if !ok {
				writeAuthProblem(w, "Authorization header required")
				return
			}

			claims, err := jwtService.ValidateToken(tokenString)
			if err != nil {
				writeAuthProblem(w, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), claimsContextKey, claims)
			if rc := logger.FromContext(ctx); rc != nil {
				ctx = logger.WithContext(ctx, rc.WithSubject(claims.SubjectID()))
			}

			if claims.Username != "" {
				err := users.UpsertUser(ctx, &models.User{
					ID:       claims.SubjectID(),
					Username: claims.Username,
				})
				if err != nil {
					logger.WarnCtx(ctx, "failed to refresh user directory entry",
						logger.KeySubject, claims.SubjectID(),
						logger.KeyError, err)
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// writeAuthProblem writes a minimal RFC 7807 401 response. Kept local to
// avoid an import cycle with the handlers package.
func writeAuthProblem(w http.ResponseWriter, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"type":"about:blank","title":"Unauthorized","status":401,"detail":"` + detail + `"}`))
}
