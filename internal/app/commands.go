package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"sentimentpulse/internal/adapters/observability"
	"sentimentpulse/internal/analysis"
	"sentimentpulse/internal/domain"
)

// ReviewInput is what callers provide; everything else on a review is
// derived or server-assigned.
type ReviewInput struct {
	Source  string
	Author  *string
	Content string
}

type CommandService struct {
	reviews       domain.ReviewRepository
	forms         domain.FormRepository
	annotator     *analysis.Annotator
	cache         domain.Cache
	importWorkers int
}

func NewCommandService(rr domain.ReviewRepository, fr domain.FormRepository, a *analysis.Annotator, cache domain.Cache, importWorkers int) *CommandService {
	if importWorkers <= 0 {
		importWorkers = 1
	}
	return &CommandService{reviews: rr, forms: fr, annotator: a, cache: cache, importWorkers: importWorkers}
}

// CreateReview annotates and persists one owner-submitted review.
// Annotation happens before the insert, so a model failure means no
// row is written.
func (s *CommandService) CreateReview(ctx context.Context, ownerID int64, in ReviewInput) (domain.Review, error) {
	rv := domain.Review{
		OwnerID: ownerID,
		Source:  in.Source,
		Author:  in.Author,
		Content: in.Content,
	}
	if rv.Source == "" {
		rv.Source = domain.SourceManual
	}

	rv, err := s.annotate(ctx, rv)
	if err != nil {
		return domain.Review{}, err
	}
	saved, err := s.reviews.InsertReview(ctx, rv)
	if err != nil {
		return domain.Review{}, err
	}
	s.invalidateOwner(ctx, ownerID)
	return saved, nil
}

// SubmitPublicReview stores a review submitted through a form's public
// link. The review is attributed to the form's owner.
func (s *CommandService) SubmitPublicReview(ctx context.Context, formUUID string, in ReviewInput) (domain.Review, error) {
	form, err := s.forms.GetFormByUUID(ctx, formUUID)
	if err != nil {
		return domain.Review{}, err
	}

	author := "Anonymous"
	if in.Author != nil && *in.Author != "" {
		author = *in.Author
	}
	rv := domain.Review{
		OwnerID: form.OwnerID,
		FormID:  &form.ID,
		Source:  domain.SourcePublicForm,
		Author:  &author,
		Content: in.Content,
	}

	rv, err = s.annotate(ctx, rv)
	if err != nil {
		return domain.Review{}, err
	}
	saved, err := s.reviews.InsertReview(ctx, rv)
	if err != nil {
		return domain.Review{}, err
	}
	s.invalidateOwner(ctx, form.OwnerID)
	s.invalidateForm(ctx, form.ID)
	return saved, nil
}

// ImportCSV validates the whole batch up front, annotates rows with
// bounded concurrency, then bulk-inserts. Returns the imported count.
func (s *CommandService) ImportCSV(ctx context.Context, ownerID int64, r io.Reader) (int, error) {
	rows, err := ParseRows(r)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}

	reviews := make([]domain.Review, len(rows))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.importWorkers)
	for i, row := range rows {
		g.Go(func() error {
			rv, err := s.annotate(gctx, domain.Review{
				OwnerID: ownerID,
				Source:  row.Source,
				Author:  row.Author,
				Content: row.Content,
			})
			if err != nil {
				return fmt.Errorf("row %d: %w", i+1, err)
			}
			reviews[i] = rv
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	if err := s.reviews.InsertReviews(ctx, reviews); err != nil {
		return 0, err
	}
	s.invalidateOwner(ctx, ownerID)
	return len(reviews), nil
}

func (s *CommandService) CreateForm(ctx context.Context, ownerID int64, name, question string) (domain.FeedbackForm, error) {
	if question == "" {
		question = domain.DefaultQuestion
	}
	form := domain.FeedbackForm{
		UUID:     uuid.NewString(),
		Name:     name,
		Question: question,
		OwnerID:  ownerID,
	}
	return s.forms.InsertForm(ctx, form)
}

func (s *CommandService) DeleteForm(ctx context.Context, ownerID, formID int64) error {
	form, err := s.forms.GetForm(ctx, formID)
	if err != nil {
		return err
	}
	if form.OwnerID != ownerID {
		return domain.ErrForbidden
	}
	if err := s.forms.DeleteForm(ctx, formID); err != nil {
		return err
	}
	s.invalidateForm(ctx, formID)
	s.invalidateOwner(ctx, ownerID)
	return nil
}

func (s *CommandService) annotate(ctx context.Context, rv domain.Review) (domain.Review, error) {
	start := time.Now()
	out, err := s.annotator.Annotate(ctx, rv)
	label := ""
	if out.Sentiment != nil {
		label = *out.Sentiment
	}
	observability.ObserveAnnotation(label, err, time.Since(start))
	return out, err
}

// cache invalidation; summaries are rebuilt lazily on next read
func (s *CommandService) invalidateOwner(ctx context.Context, ownerID int64) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Del(ctx, dashboardKey(ownerID))
}

func (s *CommandService) invalidateForm(ctx context.Context, formID int64) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Del(ctx, formStatsKey(formID))
}
