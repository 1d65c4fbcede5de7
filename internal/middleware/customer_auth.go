package middleware

import (
	"context"
	"net/http"
	"strings"

	"mfin-backend/internal/auth"
)

const CustomerIDKey contextKey = "customer_id"

// CustomerAuthMiddleware authenticates portal requests with a borrower JWT
type CustomerAuthMiddleware struct {
	jwtManager *auth.JWTManager
}

func NewCustomerAuthMiddleware(jwtManager *auth.JWTManager) *CustomerAuthMiddleware {
	return &CustomerAuthMiddleware{jwtManager: jwtManager}
}

func (m *CustomerAuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Authorization header required", http.StatusUnauthorized)
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			http.Error(w, "Invalid authorization format", http.StatusUnauthorized)
			return
		}

		claims, err := m.jwtManager.ValidateCustomerToken(parts[1])
		if err != nil {
			http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), CustomerIDKey, claims.CustomerID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetCustomerIDFromContext extracts the borrower id from request context
func GetCustomerIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(CustomerIDKey).(string)
	return id, ok
}
