// internal/adapters/http_server/handlers.go
package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"sentimentpulse/internal/app"
	"sentimentpulse/internal/domain"
)

type Handlers struct {
	Users    *app.UserService
	Commands *app.CommandService
	Queries  *app.QueryService
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", h.register)
		r.Post("/auth/login", h.login)

		// public form endpoints, no auth
		r.Get("/public/{uuid}", h.getPublicForm)
		r.Post("/public/{uuid}", h.submitPublicReview)

		r.Group(func(r chi.Router) {
			r.Use(h.requireUser)
			r.Get("/auth/me", h.me)

			r.Post("/reviews", h.createReview)
			r.Get("/reviews", h.listReviews)
			r.Post("/reviews/import", h.importReviews)

			r.Get("/dashboard", h.dashboard)

			r.Post("/forms", h.createForm)
			r.Get("/forms", h.listForms)
			r.Delete("/forms/{id}", h.deleteForm)
			r.Get("/forms/{id}/stats", h.formStats)

			r.Group(func(r chi.Router) {
				r.Use(h.requireAdmin)
				r.Get("/users", h.listUsers)
				r.Post("/users", h.createUser)
				r.Delete("/users/{id}", h.deleteUser)
			})
		})
	})
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// respondErr maps domain errors onto problem responses; anything
// unrecognized is a 500 with the detail kept out of the body.
func respondErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, domain.ErrForbidden):
		writeProblem(w, http.StatusForbidden, "Forbidden", err.Error())
	case errors.Is(err, domain.ErrEmailTaken), errors.Is(err, domain.ErrSelfDelete):
		writeProblem(w, http.StatusBadRequest, "Bad Request", err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeProblem(w, http.StatusUnauthorized, "Unauthorized", err.Error())
	default:
		log.Error().Err(err).Msg("request failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return false
	}
	return true
}

// ---- wire DTOs ----

type reviewJSON struct {
	ID             int64      `json:"id"`
	Source         string     `json:"source"`
	Author         *string    `json:"author"`
	Content        string     `json:"content"`
	Sentiment      *string    `json:"sentiment"`
	SentimentScore *float64   `json:"sentiment_score"`
	KeyEntities    *string    `json:"key_entities"`
	CreatedAt      time.Time  `json:"created_at"`
	AnalyzedAt     *time.Time `json:"analyzed_at"`
}

type formJSON struct {
	ID        int64     `json:"id"`
	UUID      string    `json:"uuid"`
	Name      string    `json:"name"`
	Question  string    `json:"question"`
	OwnerID   int64     `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

type userJSON struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	FullName  *string   `json:"full_name"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type summaryJSON struct {
	TotalReviews  int          `json:"total_reviews"`
	Positive      int          `json:"positive"`
	Neutral       int          `json:"neutral"`
	Negative      int          `json:"negative"`
	LatestReviews []reviewJSON `json:"latest_reviews"`
}

func toReviewJSON(rv domain.Review) reviewJSON {
	return reviewJSON{
		ID:             rv.ID,
		Source:         rv.Source,
		Author:         rv.Author,
		Content:        rv.Content,
		Sentiment:      rv.Sentiment,
		SentimentScore: rv.SentimentScore,
		KeyEntities:    rv.KeyEntities,
		CreatedAt:      rv.CreatedAt,
		AnalyzedAt:     rv.AnalyzedAt,
	}
}

func toReviewsJSON(rvs []domain.Review) []reviewJSON {
	out := make([]reviewJSON, 0, len(rvs))
	for _, rv := range rvs {
		out = append(out, toReviewJSON(rv))
	}
	return out
}

func toFormJSON(f domain.FeedbackForm) formJSON {
	return formJSON{ID: f.ID, UUID: f.UUID, Name: f.Name, Question: f.Question, OwnerID: f.OwnerID, CreatedAt: f.CreatedAt}
}

func toUserJSON(u domain.User) userJSON {
	return userJSON{ID: u.ID, Email: u.Email, FullName: u.FullName, Role: u.Role, IsActive: u.IsActive, CreatedAt: u.CreatedAt}
}

func toSummaryJSON(sum app.Summary) summaryJSON {
	return summaryJSON{
		TotalReviews:  sum.Counts.Total,
		Positive:      sum.Counts.Positive,
		Neutral:       sum.Counts.Neutral,
		Negative:      sum.Counts.Negative,
		LatestReviews: toReviewsJSON(sum.Latest),
	}
}
