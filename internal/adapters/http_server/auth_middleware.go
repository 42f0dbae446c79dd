package httpserver

import (
	"context"
	"net/http"
	"strings"

	"sentimentpulse/internal/domain"
)

type ctxKey int

const userCtxKey ctxKey = iota

func currentUser(r *http.Request) domain.User {
	u, _ := r.Context().Value(userCtxKey).(domain.User)
	return u
}

// requireUser resolves the Authorization bearer token to a user and
// stores it on the request context.
func (h *Handlers) requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeProblem(w, http.StatusUnauthorized, "Unauthorized", "missing bearer token")
			return
		}

		user, err := h.Users.Authenticate(r.Context(), token)
		if err != nil {
			writeProblem(w, http.StatusUnauthorized, "Unauthorized", "invalid token")
			return
		}
		if !user.IsActive {
			writeProblem(w, http.StatusUnauthorized, "Unauthorized", "account disabled")
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userCtxKey, user)))
	})
}

func (h *Handlers) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if currentUser(r).Role != domain.RoleAdmin {
			writeProblem(w, http.StatusForbidden, "Forbidden", "admin privileges required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
