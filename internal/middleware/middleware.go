package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/anjalik06/bookshare-backend/internal/utils"
)

type contextKey string

const ContextUserID contextKey = "user_id"

func JSONMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// JWTAuthMiddleware extracts the authenticated user id from the bearer token
// and stashes it on the request context. Downstream code trusts it as-is;
// token issuance happens in the identity service.
func JWTAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			utils.JSONError(w, "unauthorized", "Unauthorized", http.StatusUnauthorized)
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")

		claims, err := utils.ParseJWT(tokenStr)
		if err != nil {
			utils.JSONError(w, "unauthorized", "Invalid token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), ContextUserID, claims.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserID returns the authenticated user id placed by JWTAuthMiddleware.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(ContextUserID).(string)
	return id
}
