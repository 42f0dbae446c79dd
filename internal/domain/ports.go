package domain

import "context"

type ReviewRepository interface {
	InsertReview(ctx context.Context, rv Review) (Review, error)
	InsertReviews(ctx context.Context, rvs []Review) error

	// Both listings return newest-first (created_at DESC); the
	// aggregator relies on that order and never re-sorts.
	ListReviewsByOwner(ctx context.Context, ownerID int64) ([]Review, error)
	ListReviewsByForm(ctx context.Context, formID int64) ([]Review, error)
}

type FormRepository interface {
	InsertForm(ctx context.Context, f FeedbackForm) (FeedbackForm, error)
	GetForm(ctx context.Context, id int64) (FeedbackForm, error)
	GetFormByUUID(ctx context.Context, uuid string) (FeedbackForm, error)
	ListFormsByOwner(ctx context.Context, ownerID int64) ([]FeedbackForm, error)
	DeleteForm(ctx context.Context, id int64) error
}

type UserRepository interface {
	InsertUser(ctx context.Context, u User) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	GetUserByID(ctx context.Context, id int64) (User, error)
	ListUsers(ctx context.Context) ([]User, error)
	DeleteUser(ctx context.Context, id int64) error
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// GradedPrediction is the raw output of the sentiment backend: an
// ordinal label on a 5-point scale (e.g. "4 stars") plus confidence.
type GradedPrediction struct {
	Label string
	Score float64
}

// EntityMention is one surface string the NER backend recognized,
// tagged with its category (ORG, GPE, PERSON, PRODUCT, DATE, ...).
type EntityMention struct {
	Text     string
	Category string
}

// SentimentModel and EntityModel wrap expensive, stateful backends.
// Implementations are constructed once at startup and shared; calls
// are safe to run concurrently.
type SentimentModel interface {
	Predict(ctx context.Context, text string) (GradedPrediction, error)
}

type EntityModel interface {
	Recognize(ctx context.Context, text string) ([]EntityMention, error)
}
