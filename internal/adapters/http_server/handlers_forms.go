package httpserver

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"sentimentpulse/internal/app"
)

type formRequest struct {
	Name     string `json:"name"`
	Question string `json:"question"`
}

func (h *Handlers) createForm(w http.ResponseWriter, r *http.Request) {
	var req formRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Name == "" {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "name is required")
		return
	}

	form, err := h.Commands.CreateForm(r.Context(), currentUser(r).ID, req.Name, req.Question)
	if err != nil {
		respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toFormJSON(form))
}

func (h *Handlers) listForms(w http.ResponseWriter, r *http.Request) {
	forms, err := h.Queries.ListForms(r.Context(), currentUser(r).ID)
	if err != nil {
		respondErr(w, err)
		return
	}
	out := make([]formJSON, 0, len(forms))
	for _, f := range forms {
		out = append(out, toFormJSON(f))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) deleteForm(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	if err := h.Commands.DeleteForm(r.Context(), currentUser(r).ID, id); err != nil {
		respondErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) formStats(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	sum, err := h.Queries.FormStats(r.Context(), currentUser(r).ID, id)
	if err != nil {
		respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSummaryJSON(sum))
}

// ---- public, unauthenticated ----

func (h *Handlers) getPublicForm(w http.ResponseWriter, r *http.Request) {
	form, err := h.Queries.GetPublicForm(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toFormJSON(form))
}

func (h *Handlers) submitPublicReview(w http.ResponseWriter, r *http.Request) {
	var req reviewRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Content == "" {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "content is required")
		return
	}

	rv, err := h.Commands.SubmitPublicReview(r.Context(), chi.URLParam(r, "uuid"), app.ReviewInput{
		Author:  req.Author,
		Content: req.Content,
	})
	if err != nil {
		respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toReviewJSON(rv))
}
