package app

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"sentimentpulse/internal/analysis"
	"sentimentpulse/internal/domain"
)

// Preview sizes of the two aggregation call sites. The aggregation
// itself is shared (analysis.Summarize); only the filter and limit
// differ.
const (
	dashboardPreviewLimit = 5
	formStatsPreviewLimit = 50
)

// Summary is the aggregate exposed by the dashboard and form-stats
// endpoints.
type Summary struct {
	Counts domain.SentimentCounts
	Latest []domain.Review
}

type QueryService struct {
	reviews  domain.ReviewRepository
	forms    domain.FormRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewQueryService(rr domain.ReviewRepository, fr domain.FormRepository, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{reviews: rr, forms: fr, cache: c, cacheTTL: ttl}
}

// DashboardSummary aggregates all of an owner's reviews plus the 5
// most recent.
func (s *QueryService) DashboardSummary(ctx context.Context, ownerID int64) (Summary, error) {
	key := dashboardKey(ownerID)
	var out Summary
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}

	reviews, err := s.reviews.ListReviewsByOwner(ctx, ownerID)
	if err != nil {
		return Summary{}, err
	}
	counts, latest := analysis.Summarize(reviews, dashboardPreviewLimit)

	// copy the preview to avoid aliasing the repo's backing array
	result := deepCopySummary(Summary{Counts: counts, Latest: latest})
	s.cacheSet(ctx, key, result)
	return result, nil
}

// FormStats aggregates one form's reviews plus the 50 most recent.
// The caller must own the form.
func (s *QueryService) FormStats(ctx context.Context, ownerID, formID int64) (Summary, error) {
	form, err := s.forms.GetForm(ctx, formID)
	if err != nil {
		return Summary{}, err
	}
	if form.OwnerID != ownerID {
		return Summary{}, domain.ErrForbidden
	}

	key := formStatsKey(formID)
	var out Summary
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}

	reviews, err := s.reviews.ListReviewsByForm(ctx, formID)
	if err != nil {
		return Summary{}, err
	}
	counts, latest := analysis.Summarize(reviews, formStatsPreviewLimit)

	result := deepCopySummary(Summary{Counts: counts, Latest: latest})
	s.cacheSet(ctx, key, result)
	return result, nil
}

func (s *QueryService) ListReviews(ctx context.Context, ownerID int64) ([]domain.Review, error) {
	return s.reviews.ListReviewsByOwner(ctx, ownerID)
}

func (s *QueryService) ListForms(ctx context.Context, ownerID int64) ([]domain.FeedbackForm, error) {
	return s.forms.ListFormsByOwner(ctx, ownerID)
}

func (s *QueryService) GetPublicForm(ctx context.Context, formUUID string) (domain.FeedbackForm, error) {
	return s.forms.GetFormByUUID(ctx, formUUID)
}

func (s *QueryService) cacheSet(ctx context.Context, key string, v Summary) {
	// size guard: an owner with a huge preview never bloats redis
	if b, _ := json.Marshal(v); len(b) < 1_000_000 {
		_ = s.cache.Set(ctx, key, v, int(s.cacheTTL.Seconds()))
	}
}

func dashboardKey(ownerID int64) string { return fmt.Sprintf("dashboard:%d", ownerID) }
func formStatsKey(formID int64) string  { return fmt.Sprintf("formstats:%d", formID) }

func deepCopySummary(in Summary) Summary {
	out := Summary{Counts: in.Counts}
	if n := len(in.Latest); n > 0 {
		out.Latest = make([]domain.Review, n)
		copy(out.Latest, in.Latest)
	}
	return out
}
