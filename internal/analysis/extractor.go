package analysis

import (
	"context"
	"sort"
	"strings"

	"sentimentpulse/internal/domain"
)

const maxEntities = 10

// Entity categories worth surfacing to owners; everything else the
// backend recognizes (dates, quantities, ...) is dropped.
var relevantCategories = map[string]struct{}{
	"ORG":     {},
	"GPE":     {},
	"PERSON":  {},
	"PRODUCT": {},
}

// Extractor reduces raw NER mentions to the bounded key_entities
// string stored on a review.
type Extractor struct {
	model domain.EntityModel
}

func NewExtractor(m domain.EntityModel) *Extractor {
	return &Extractor{model: m}
}

// Extract runs the backend over the full (untruncated) text and
// returns the unique surface strings of relevant categories, sorted
// ascending, capped at 10, joined with ", ". No entities yields "".
func (e *Extractor) Extract(ctx context.Context, text string) (string, error) {
	mentions, err := e.model.Recognize(ctx, text)
	if err != nil {
		return "", err
	}

	seen := make(map[string]struct{}, len(mentions))
	entities := make([]string, 0, len(mentions))
	for _, m := range mentions {
		if _, ok := relevantCategories[m.Category]; !ok {
			continue
		}
		if _, dup := seen[m.Text]; dup {
			continue
		}
		seen[m.Text] = struct{}{}
		entities = append(entities, m.Text)
	}

	sort.Strings(entities)
	if len(entities) > maxEntities {
		entities = entities[:maxEntities]
	}
	return strings.Join(entities, ", "), nil
}
