package analysis_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"sentimentpulse/internal/analysis"
	"sentimentpulse/internal/domain"
)

type fakeNER struct {
	mentions []domain.EntityMention
	err      error
	received string
}

func (f *fakeNER) Recognize(_ context.Context, text string) ([]domain.EntityMention, error) {
	f.received = text
	return f.mentions, f.err
}

func TestExtract_FiltersSortsAndJoins(t *testing.T) {
	m := &fakeNER{mentions: []domain.EntityMention{
		{Text: "John Smith", Category: "PERSON"},
		{Text: "Paris", Category: "GPE"},
		{Text: "Acme Corp", Category: "ORG"},
		{Text: "yesterday", Category: "DATE"},  // filtered out
		{Text: "£40", Category: "MONEY"},       // filtered out
		{Text: "Acme Corp", Category: "ORG"},   // duplicate
		{Text: "John Smith", Category: "PERSON"},
	}}
	e := analysis.NewExtractor(m)

	got, err := e.Extract(context.Background(), "Acme Corp announced a deal with John Smith in Paris.")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	want := "Acme Corp, John Smith, Paris"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestExtract_CapsAtTenAfterSorting(t *testing.T) {
	var mentions []domain.EntityMention
	for i := 0; i < 15; i++ {
		mentions = append(mentions, domain.EntityMention{
			Text:     fmt.Sprintf("Org %02d", i),
			Category: "ORG",
		})
	}
	e := analysis.NewExtractor(&fakeNER{mentions: mentions})

	got, err := e.Extract(context.Background(), "text")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	parts := strings.Split(got, ", ")
	if len(parts) != 10 {
		t.Fatalf("got %d entities, want 10", len(parts))
	}
	// first ten of the sorted set
	if parts[0] != "Org 00" || parts[9] != "Org 09" {
		t.Fatalf("unexpected bounds: %q .. %q", parts[0], parts[9])
	}
}

func TestExtract_EmptyTextAndNoEntities(t *testing.T) {
	e := analysis.NewExtractor(&fakeNER{})

	got, err := e.Extract(context.Background(), "")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if got != "" {
		t.Fatalf("got %q, want empty string", got)
	}
}

func TestExtract_ReceivesFullText(t *testing.T) {
	// The extractor must not truncate; only the classifier does.
	long := strings.Repeat("z", 700)
	m := &fakeNER{}
	e := analysis.NewExtractor(m)

	if _, err := e.Extract(context.Background(), long); err != nil {
		t.Fatalf("err: %v", err)
	}
	if m.received != long {
		t.Fatalf("extractor input truncated to %d chars", len(m.received))
	}
}

func TestExtract_BackendErrorPropagates(t *testing.T) {
	wantErr := errors.New("model broken")
	e := analysis.NewExtractor(&fakeNER{err: wantErr})

	_, err := e.Extract(context.Background(), "text")
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected backend error, got %v", err)
	}
}
