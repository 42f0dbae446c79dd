package domain

import "time"

// Canonical three-way sentiment labels. The model backend may grade on a
// finer scale; everything past the classifier speaks only these.
const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
)

// Review sources.
const (
	SourceManual     = "manual"
	SourceCSV        = "csv"
	SourcePublicForm = "public_form"
)

type Review struct {
	ID             int64
	OwnerID        int64
	FormID         *int64
	Source         string
	Author         *string
	Content        string
	Sentiment      *string  // positive|neutral|negative, nil until analyzed
	SentimentScore *float64 // model confidence in [0,1], 4 decimals
	KeyEntities    *string  // comma-joined, at most 10
	CreatedAt      time.Time
	AnalyzedAt     *time.Time
}

// SentimentCounts is the derived per-owner or per-form aggregate.
// Reviews with an unknown label count in Total but in no bucket.
type SentimentCounts struct {
	Total    int
	Positive int
	Neutral  int
	Negative int
}
