package middleware

import (
	"context"
	"net/http"
	"strings"

	"signoff/internal/utils"
)

type contextKey string

const claimsKey contextKey = "claims"

func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondWithError(w, http.StatusUnauthorized, "Missing or invalid Authorization header")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ValidateJWT(tokenString)
		if err != nil {
			utils.RespondWithError(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CurrentUser returns the authenticated caller's id and role.
func CurrentUser(r *http.Request) (int, string, bool) {
	claims, ok := r.Context().Value(claimsKey).(*utils.Claims)
	if !ok {
		return 0, "", false
	}
	return claims.UserID, claims.Role, true
}

// WithClaims injects claims into a request context, for handler tests.
func WithClaims(r *http.Request, claims *utils.Claims) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), claimsKey, claims))
}
