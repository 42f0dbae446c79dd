package analysis

import (
	"context"
	"math"
	"strconv"
	"strings"

	"sentimentpulse/internal/domain"
)

// classifierMaxChars bounds the text handed to the sentiment backend.
// Character count stands in for the model's token budget.
const classifierMaxChars = 512

// Classifier maps graded 5-point predictions onto the three-way label
// space. The backend is interchangeable as long as it returns a label
// whose first field is the grade ("1" .. "5", "4 stars", ...).
type Classifier struct {
	model domain.SentimentModel
}

func NewClassifier(m domain.SentimentModel) *Classifier {
	return &Classifier{model: m}
}

// Classify returns a three-way label and the backend's confidence
// rounded to 4 decimals. The score is the confidence in the original
// graded prediction, reused as-is for the mapped label. A label the
// grade cannot be parsed from soft-fails to ("neutral", 0) rather
// than surfacing an error; only backend transport failures propagate.
func (c *Classifier) Classify(ctx context.Context, text string) (string, float64, error) {
	if runes := []rune(text); len(runes) > classifierMaxChars {
		text = string(runes[:classifierMaxChars])
	}

	pred, err := c.model.Predict(ctx, text)
	if err != nil {
		return "", 0, err
	}

	stars, ok := leadingGrade(pred.Label)
	if !ok {
		return domain.SentimentNeutral, 0, nil
	}

	label := domain.SentimentPositive
	switch {
	case stars <= 2:
		label = domain.SentimentNegative
	case stars == 3:
		label = domain.SentimentNeutral
	}
	return label, round4(pred.Score), nil
}

// leadingGrade parses the integer grade off the front of a label like
// "5 stars" or "3".
func leadingGrade(label string) (int, bool) {
	fields := strings.Fields(label)
	if len(fields) == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, false
	}
	return n, true
}

func round4(f float64) float64 {
	return math.Round(f*10000) / 10000
}
