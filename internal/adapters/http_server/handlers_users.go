package httpserver

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"sentimentpulse/internal/domain"
)

type createUserRequest struct {
	Email    string  `json:"email"`
	FullName *string `json:"full_name"`
	Password string  `json:"password"`
	Role     string  `json:"role"`
}

func (h *Handlers) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Users.ListUsers(r.Context())
	if err != nil {
		respondErr(w, err)
		return
	}
	out := make([]userJSON, 0, len(users))
	for _, u := range users {
		out = append(out, toUserJSON(u))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) createUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !strings.Contains(req.Email, "@") {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "a valid email is required")
		return
	}
	if len(req.Password) < 8 {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "password must be at least 8 characters")
		return
	}
	role := req.Role
	if role == "" {
		role = domain.RoleUser
	}
	if role != domain.RoleUser && role != domain.RoleAdmin {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "role must be user or admin")
		return
	}

	user, err := h.Users.CreateUser(r.Context(), req.Email, req.FullName, req.Password, role)
	if err != nil {
		respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toUserJSON(user))
}

func (h *Handlers) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	if err := h.Users.DeleteUser(r.Context(), currentUser(r).ID, id); err != nil {
		respondErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
