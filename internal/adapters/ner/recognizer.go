package ner

import (
	"context"
	"fmt"
	"strings"

	"github.com/jdkato/prose/v2"

	"sentimentpulse/internal/domain"
)

// Recognizer runs prose's statistical NER in-process. The model data
// is loaded lazily inside prose on first use, so New runs a warmup
// document: a broken installation fails at startup, not on the first
// user request. Construct once per process and share; Recognize is
// safe for concurrent use.
type Recognizer struct{}

var _ domain.EntityModel = (*Recognizer)(nil)

func New() (*Recognizer, error) {
	if _, err := prose.NewDocument("warmup, nothing to see"); err != nil {
		return nil, fmt.Errorf("ner: model init: %w", err)
	}
	return &Recognizer{}, nil
}

// canonical maps prose label spellings onto the category space the
// extractor filters on.
var canonical = map[string]string{
	"PERSON":       "PERSON",
	"GPE":          "GPE",
	"ORG":          "ORG",
	"ORGANIZATION": "ORG",
	"PRODUCT":      "PRODUCT",
}

func (r *Recognizer) Recognize(ctx context.Context, text string) ([]domain.EntityMention, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := prose.NewDocument(text)
	if err != nil {
		return nil, fmt.Errorf("ner: %w", err)
	}

	ents := doc.Entities()
	out := make([]domain.EntityMention, 0, len(ents))
	for _, ent := range ents {
		category := ent.Label
		if c, ok := canonical[strings.ToUpper(ent.Label)]; ok {
			category = c
		}
		out = append(out, domain.EntityMention{
			Text:     strings.TrimSpace(ent.Text),
			Category: category,
		})
	}
	return out, nil
}
