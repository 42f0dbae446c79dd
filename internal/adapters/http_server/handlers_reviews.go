package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"sentimentpulse/internal/app"
)

type reviewRequest struct {
	Source  string  `json:"source"`
	Author  *string `json:"author"`
	Content string  `json:"content"`
}

func (h *Handlers) createReview(w http.ResponseWriter, r *http.Request) {
	var req reviewRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Content == "" {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "content is required")
		return
	}

	rv, err := h.Commands.CreateReview(r.Context(), currentUser(r).ID, app.ReviewInput{
		Source:  req.Source,
		Author:  req.Author,
		Content: req.Content,
	})
	if err != nil {
		respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toReviewJSON(rv))
}

func (h *Handlers) listReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.Queries.ListReviews(r.Context(), currentUser(r).ID)
	if err != nil {
		respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toReviewsJSON(reviews))
}

// importReviews accepts a multipart CSV upload and annotates every row
// before anything is written.
func (h *Handlers) importReviews(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "a 'file' upload is required")
		return
	}
	defer file.Close()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".csv") {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "only CSV files are supported")
		return
	}

	imported, err := h.Commands.ImportCSV(r.Context(), currentUser(r).ID, file)
	if err != nil {
		if errors.Is(err, app.ErrMissingContentColumn) || strings.Contains(err.Error(), "csv line") {
			writeProblem(w, http.StatusBadRequest, "Bad Request", err.Error())
			return
		}
		respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int{"imported": imported})
}

func (h *Handlers) dashboard(w http.ResponseWriter, r *http.Request) {
	sum, err := h.Queries.DashboardSummary(r.Context(), currentUser(r).ID)
	if err != nil {
		respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSummaryJSON(sum))
}
