package middleware

import (
	"context"
	"net/http"

	"mfin-backend/internal/auth"
	"mfin-backend/internal/models"
)

type contextKey string

const UserIDKey contextKey = "user_id"
const UsernameKey contextKey = "username"
const RoleKey contextKey = "role"

// userGetter resolves a staff user id to the current roster record
type userGetter interface {
	Get(ctx context.Context, id string) (*models.User, error)
}

// SessionMiddleware authenticates staff requests from the session cookie.
// The cookie value is the staff user id; the roster is consulted on every
// request so a deleted user loses access immediately.
type SessionMiddleware struct {
	users userGetter
}

func NewSessionMiddleware(users userGetter) *SessionMiddleware {
	return &SessionMiddleware{users: users}
}

func (m *SessionMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.SessionUserID(r)
		if !ok {
			http.Error(w, "Not logged in", http.StatusUnauthorized)
			return
		}

		user, err := m.users.Get(r.Context(), userID)
		if err != nil {
			http.Error(w, "Session user not found", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, user.ID)
		ctx = context.WithValue(ctx, UsernameKey, user.Username)
		ctx = context.WithValue(ctx, RoleKey, user.Role)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin layers an admin-role check on top of Authenticate
func (m *SessionMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, _ := GetRoleFromContext(r.Context())
		if role != models.RoleAdmin {
			http.Error(w, "Forbidden: Insufficient permissions", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	}))
}

// GetUserIDFromContext extracts the staff user id from request context
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDKey).(string)
	return userID, ok
}

// GetUsernameFromContext extracts the username from request context
func GetUsernameFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(UsernameKey).(string)
	return username, ok
}

// GetRoleFromContext extracts the role from request context
func GetRoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(RoleKey).(string)
	return role, ok
}
