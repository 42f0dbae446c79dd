package analysis

import (
	"context"
	"fmt"
	"time"

	"sentimentpulse/internal/domain"
)

// Annotator runs the classifier and extractor over a review's content
// and stamps the result. All four annotation fields are set together;
// if either backend call fails the review is returned untouched so a
// half-annotated record never reaches persistence.
type Annotator struct {
	classifier *Classifier
	extractor  *Extractor
	now        func() time.Time
}

func NewAnnotator(sm domain.SentimentModel, em domain.EntityModel) *Annotator {
	return &Annotator{
		classifier: NewClassifier(sm),
		extractor:  NewExtractor(em),
		now:        time.Now,
	}
}

// Annotate is deterministic for a fixed content and model, except for
// analyzed_at which advances on every call. Running it "exactly once"
// per review is the caller's policy.
func (a *Annotator) Annotate(ctx context.Context, rv domain.Review) (domain.Review, error) {
	label, score, err := a.classifier.Classify(ctx, rv.Content)
	if err != nil {
		return rv, fmt.Errorf("classify sentiment: %w", err)
	}

	entities, err := a.extractor.Extract(ctx, rv.Content)
	if err != nil {
		return rv, fmt.Errorf("extract entities: %w", err)
	}

	analyzedAt := a.now().UTC()
	rv.Sentiment = &label
	rv.SentimentScore = &score
	rv.KeyEntities = &entities
	rv.AnalyzedAt = &analyzedAt
	return rv, nil
}
