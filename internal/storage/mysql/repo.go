package mysql

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"sentimentpulse/internal/domain"
)

func valStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}
func valF64(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}
func valInt64(p *int64) any {
	if p == nil {
		return nil
	}
	return *p
}
func valTime(p *time.Time) any {
	if p == nil {
		return nil
	}
	return *p
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

var (
	_ domain.ReviewRepository = (*Repo)(nil)
	_ domain.FormRepository   = (*Repo)(nil)
	_ domain.UserRepository   = (*Repo)(nil)
)

// ---- reviews ----

func (r *Repo) InsertReview(ctx context.Context, rv domain.Review) (domain.Review, error) {
	if rv.CreatedAt.IsZero() {
		rv.CreatedAt = time.Now().UTC()
	}
	res, err := r.db.ExecContext(ctx, insertReviewPrefix+insertReviewRow, reviewArgs(rv)...)
	if err != nil {
		return domain.Review{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Review{}, err
	}
	rv.ID = id
	return rv, nil
}

func (r *Repo) InsertReviews(ctx context.Context, rvs []domain.Review) error {
	if len(rvs) == 0 {
		return nil
	}
	values := make([]string, 0, len(rvs))
	args := make([]any, 0, len(rvs)*10)
	now := time.Now().UTC()
	for _, rv := range rvs {
		if rv.CreatedAt.IsZero() {
			rv.CreatedAt = now
		}
		values = append(values, insertReviewRow)
		args = append(args, reviewArgs(rv)...)
	}
	_, err := r.db.ExecContext(ctx, insertReviewPrefix+strings.Join(values, ","), args...)
	return err
}

func reviewArgs(rv domain.Review) []any {
	return []any{
		rv.OwnerID,
		valInt64(rv.FormID),
		rv.Source,
		valStr(rv.Author),
		rv.Content,
		valStr(rv.Sentiment),
		valF64(rv.SentimentScore),
		valStr(rv.KeyEntities),
		rv.CreatedAt,
		valTime(rv.AnalyzedAt),
	}
}

func (r *Repo) ListReviewsByOwner(ctx context.Context, ownerID int64) ([]domain.Review, error) {
	return r.listReviews(ctx, listReviewsByOwnerSQL, ownerID)
}

func (r *Repo) ListReviewsByForm(ctx context.Context, formID int64) ([]domain.Review, error) {
	return r.listReviews(ctx, listReviewsByFormSQL, formID)
}

func (r *Repo) listReviews(ctx context.Context, query string, arg any) ([]domain.Review, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Review
	for rows.Next() {
		var rv domain.Review
		var (
			formID     sql.NullInt64
			author     sql.NullString
			sentiment  sql.NullString
			score      sql.NullFloat64
			entities   sql.NullString
			analyzedAt sql.NullTime
		)
		if err := rows.Scan(
			&rv.ID,
			&rv.OwnerID,
			&formID,
			&rv.Source,
			&author,
			&rv.Content,
			&sentiment,
			&score,
			&entities,
			&rv.CreatedAt,
			&analyzedAt,
		); err != nil {
			return nil, err
		}
		if formID.Valid {
			v := formID.Int64
			rv.FormID = &v
		}
		if author.Valid {
			v := author.String
			rv.Author = &v
		}
		if sentiment.Valid {
			v := sentiment.String
			rv.Sentiment = &v
		}
		if score.Valid {
			v := score.Float64
			rv.SentimentScore = &v
		}
		if entities.Valid {
			v := entities.String
			rv.KeyEntities = &v
		}
		if analyzedAt.Valid {
			v := analyzedAt.Time
			rv.AnalyzedAt = &v
		}
		out = append(out, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ---- feedback forms ----

func (r *Repo) InsertForm(ctx context.Context, f domain.FeedbackForm) (domain.FeedbackForm, error) {
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now().UTC()
	}
	res, err := r.db.ExecContext(ctx, insertFormSQL, f.UUID, f.Name, f.Question, f.OwnerID, f.CreatedAt)
	if err != nil {
		return domain.FeedbackForm{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.FeedbackForm{}, err
	}
	f.ID = id
	return f, nil
}

func (r *Repo) GetForm(ctx context.Context, id int64) (domain.FeedbackForm, error) {
	return r.scanForm(r.db.QueryRowContext(ctx, selectFormCols+"WHERE id = ?", id))
}

func (r *Repo) GetFormByUUID(ctx context.Context, uuid string) (domain.FeedbackForm, error) {
	return r.scanForm(r.db.QueryRowContext(ctx, selectFormCols+"WHERE uuid = ?", uuid))
}

func (r *Repo) scanForm(row *sql.Row) (domain.FeedbackForm, error) {
	var f domain.FeedbackForm
	if err := row.Scan(&f.ID, &f.UUID, &f.Name, &f.Question, &f.OwnerID, &f.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return domain.FeedbackForm{}, domain.ErrNotFound
		}
		return domain.FeedbackForm{}, err
	}
	return f, nil
}

func (r *Repo) ListFormsByOwner(ctx context.Context, ownerID int64) ([]domain.FeedbackForm, error) {
	rows, err := r.db.QueryContext(ctx, selectFormCols+"WHERE owner_id = ? ORDER BY created_at DESC, id DESC", ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.FeedbackForm
	for rows.Next() {
		var f domain.FeedbackForm
		if err := rows.Scan(&f.ID, &f.UUID, &f.Name, &f.Question, &f.OwnerID, &f.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *Repo) DeleteForm(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, deleteFormSQL, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ---- users ----

func (r *Repo) InsertUser(ctx context.Context, u domain.User) (domain.User, error) {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	res, err := r.db.ExecContext(ctx, insertUserSQL,
		u.Email, valStr(u.FullName), u.HashedPassword, u.Role, u.IsActive, u.CreatedAt)
	if err != nil {
		return domain.User{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.User{}, err
	}
	u.ID = id
	return u, nil
}

func (r *Repo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.scanUser(r.db.QueryRowContext(ctx, selectUserCols+"WHERE email = ?", email))
}

func (r *Repo) GetUserByID(ctx context.Context, id int64) (domain.User, error) {
	return r.scanUser(r.db.QueryRowContext(ctx, selectUserCols+"WHERE id = ?", id))
}

func (r *Repo) scanUser(row *sql.Row) (domain.User, error) {
	var u domain.User
	var fullName sql.NullString
	if err := row.Scan(&u.ID, &u.Email, &fullName, &u.HashedPassword, &u.Role, &u.IsActive, &u.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, err
	}
	if fullName.Valid {
		v := fullName.String
		u.FullName = &v
	}
	return u, nil
}

func (r *Repo) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, selectUserCols+"ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.User
	for rows.Next() {
		var u domain.User
		var fullName sql.NullString
		if err := rows.Scan(&u.ID, &u.Email, &fullName, &u.HashedPassword, &u.Role, &u.IsActive, &u.CreatedAt); err != nil {
			return nil, err
		}
		if fullName.Valid {
			v := fullName.String
			u.FullName = &v
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *Repo) DeleteUser(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, deleteUserSQL, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
