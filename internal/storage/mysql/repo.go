package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"review_analyzer/internal/domain"
)

// Repo reads seed reviews from and bulk-writes them to the reviews table.
type Repo struct{ db *sql.DB }

var _ domain.SeedSource = (*Repo)(nil)

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createReviewsTableSQL); err != nil {
		return fmt.Errorf("create reviews table: %w", err)
	}
	return nil
}

// InsertReviews writes rs in one multi-row statement. Every review needs an ID.
func (r *Repo) InsertReviews(ctx context.Context, rs []domain.Review) error {
	if len(rs) == 0 {
		return nil
	}
	values := make([]string, 0, len(rs))
	args := make([]any, 0, len(rs)*4)
	for _, rv := range rs {
		if rv.ID == "" {
			return fmt.Errorf("insert review %q: empty id", rv.Body)
		}
		values = append(values, "(?,?,?,?)")
		args = append(args, rv.ID, rv.Body, rv.Location, rv.Timestamp.Time)
	}
	sqlStr := insertReviewsPrefix + strings.Join(values, ",") + insertReviewsOnDup
	if _, err := r.db.ExecContext(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("insert %d reviews: %w", len(rs), err)
	}
	return nil
}

// LoadReviews returns the whole table. The DSN must set parseTime=true.
func (r *Repo) LoadReviews(ctx context.Context) ([]domain.Review, error) {
	rows, err := r.db.QueryContext(ctx, selectReviewsSQL)
	if err != nil {
		return nil, fmt.Errorf("select reviews: %w", err)
	}
	defer rows.Close()

	var out []domain.Review
	for rows.Next() {
		var (
			rv        domain.Review
			createdAt time.Time
		)
		if err := rows.Scan(&rv.ID, &rv.Body, &rv.Location, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: scan review row %d: %v", domain.ErrCorruptSeed, len(out)+1, err)
		}
		rv.Timestamp = domain.NewTimestamp(createdAt)
		out = append(out, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reviews: %w", err)
	}
	return out, nil
}
