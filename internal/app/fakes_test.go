package app_test

import (
	"context"
	"sync"

	"sentimentpulse/internal/app"
	"sentimentpulse/internal/domain"
)

// ---- fakes shared by the app tests ----

type fakeReviewRepo struct {
	mu      sync.Mutex
	byOwner map[int64][]domain.Review
	byForm  map[int64][]domain.Review
	nextID  int64
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{byOwner: map[int64][]domain.Review{}, byForm: map[int64][]domain.Review{}}
}

func (f *fakeReviewRepo) InsertReview(_ context.Context, rv domain.Review) (domain.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	rv.ID = f.nextID
	// store newest-first, as the real repo's queries return
	f.byOwner[rv.OwnerID] = append([]domain.Review{rv}, f.byOwner[rv.OwnerID]...)
	if rv.FormID != nil {
		f.byForm[*rv.FormID] = append([]domain.Review{rv}, f.byForm[*rv.FormID]...)
	}
	return rv, nil
}

func (f *fakeReviewRepo) InsertReviews(ctx context.Context, rvs []domain.Review) error {
	for _, rv := range rvs {
		if _, err := f.InsertReview(ctx, rv); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeReviewRepo) ListReviewsByOwner(_ context.Context, ownerID int64) ([]domain.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Review(nil), f.byOwner[ownerID]...), nil
}

func (f *fakeReviewRepo) ListReviewsByForm(_ context.Context, formID int64) ([]domain.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Review(nil), f.byForm[formID]...), nil
}

type fakeFormRepo struct {
	forms  map[int64]domain.FeedbackForm
	nextID int64
}

func newFakeFormRepo() *fakeFormRepo {
	return &fakeFormRepo{forms: map[int64]domain.FeedbackForm{}}
}

func (f *fakeFormRepo) InsertForm(_ context.Context, form domain.FeedbackForm) (domain.FeedbackForm, error) {
	f.nextID++
	form.ID = f.nextID
	f.forms[form.ID] = form
	return form, nil
}

func (f *fakeFormRepo) GetForm(_ context.Context, id int64) (domain.FeedbackForm, error) {
	form, ok := f.forms[id]
	if !ok {
		return domain.FeedbackForm{}, domain.ErrNotFound
	}
	return form, nil
}

func (f *fakeFormRepo) GetFormByUUID(_ context.Context, uuid string) (domain.FeedbackForm, error) {
	for _, form := range f.forms {
		if form.UUID == uuid {
			return form, nil
		}
	}
	return domain.FeedbackForm{}, domain.ErrNotFound
}

func (f *fakeFormRepo) ListFormsByOwner(_ context.Context, ownerID int64) ([]domain.FeedbackForm, error) {
	var out []domain.FeedbackForm
	for _, form := range f.forms {
		if form.OwnerID == ownerID {
			out = append(out, form)
		}
	}
	return out, nil
}

func (f *fakeFormRepo) DeleteForm(_ context.Context, id int64) error {
	if _, ok := f.forms[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.forms, id)
	return nil
}

type fakeUserRepo struct {
	users  map[int64]domain.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]domain.User{}}
}

func (f *fakeUserRepo) InsertUser(_ context.Context, u domain.User) (domain.User, error) {
	f.nextID++
	u.ID = f.nextID
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrNotFound
}

func (f *fakeUserRepo) GetUserByID(_ context.Context, id int64) (domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) ListUsers(_ context.Context) ([]domain.User, error) {
	var out []domain.User
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserRepo) DeleteUser(_ context.Context, id int64) error {
	delete(f.users, id)
	return nil
}

type fakeCache struct {
	mu    sync.Mutex
	store map[string]any
	dels  []string
}

func (c *fakeCache) Get(_ context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.store == nil {
		return false, nil
	}
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	switch d := dst.(type) {
	case *app.Summary:
		*d = v.(app.Summary)
	}
	return true, nil
}

func (c *fakeCache) Set(_ context.Context, key string, v any, _ int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.store == nil {
		c.store = map[string]any{}
	}
	c.store[key] = v
	return nil
}

func (c *fakeCache) Del(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, key)
	c.dels = append(c.dels, key)
	return nil
}

// fixed-score model fakes

type fakeSentiment struct {
	label string
	score float64
}

func (f *fakeSentiment) Predict(context.Context, string) (domain.GradedPrediction, error) {
	return domain.GradedPrediction{Label: f.label, Score: f.score}, nil
}

type fakeNER struct {
	mentions []domain.EntityMention
}

func (f *fakeNER) Recognize(context.Context, string) ([]domain.EntityMention, error) {
	return f.mentions, nil
}

func ptr[T any](v T) *T { return &v }
