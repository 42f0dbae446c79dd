package analysis

import (
	"strings"

	"sentimentpulse/internal/domain"
)

// Summarize reduces an already newest-first review slice into
// sentiment counts plus a bounded preview. Total counts every input
// review; a review that is not yet analyzed, or whose normalized
// label falls outside the three known buckets, increments none of
// them. The preview is a pure truncation of the input, order
// preserved.
func Summarize(reviews []domain.Review, limit int) (domain.SentimentCounts, []domain.Review) {
	counts := domain.SentimentCounts{Total: len(reviews)}

	for _, rv := range reviews {
		if rv.Sentiment == nil {
			continue
		}
		switch strings.ToLower(*rv.Sentiment) {
		case domain.SentimentPositive:
			counts.Positive++
		case domain.SentimentNeutral:
			counts.Neutral++
		case domain.SentimentNegative:
			counts.Negative++
		}
	}

	if limit < 0 {
		limit = 0
	}
	if limit > len(reviews) {
		limit = len(reviews)
	}
	return counts, reviews[:limit]
}
