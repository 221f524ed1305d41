package postgres

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"quizhub/internal/domain"
)

// AttemptRepository stores attempts in Postgres via bun. There is no
// update or delete path: attempts are immutable once written, and
// history reads filter by user_id directly.
type AttemptRepository struct {
	db *bun.DB
}

func NewAttemptRepository(db *bun.DB) *AttemptRepository {
	return &AttemptRepository{db: db}
}

func (r *AttemptRepository) Create(ctx context.Context, a *domain.Attempt) error {
	row, err := attemptToRow(*a)
	if err != nil {
		return fmt.Errorf("encode attempt: %w", err)
	}
	if _, err := r.db.NewInsert().Model(&row).Exec(ctx); err != nil {
		return fmt.Errorf("insert attempt: %w", err)
	}
	return nil
}

func (r *AttemptRepository) ListByUser(ctx context.Context, userID string, limit int) ([]domain.Attempt, error) {
	var rows []attemptRow
	query := r.db.NewSelect().Model(&rows).Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Scan(ctx); err != nil {
		return nil, fmt.Errorf("list attempts by user: %w", err)
	}
	return rowsToAttempts(rows)
}

func (r *AttemptRepository) ListAll(ctx context.Context) ([]domain.Attempt, error) {
	var rows []attemptRow
	if err := r.db.NewSelect().Model(&rows).Order("created_at DESC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	return rowsToAttempts(rows)
}

func (r *AttemptRepository) Recent(ctx context.Context, limit int) ([]domain.Attempt, error) {
	var rows []attemptRow
	if err := r.db.NewSelect().Model(&rows).Order("created_at DESC").Limit(limit).Scan(ctx); err != nil {
		return nil, fmt.Errorf("recent attempts: %w", err)
	}
	return rowsToAttempts(rows)
}

func (r *AttemptRepository) Count(ctx context.Context) (int, error) {
	count, err := r.db.NewSelect().Model((*attemptRow)(nil)).Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count attempts: %w", err)
	}
	return count, nil
}

func rowsToAttempts(rows []attemptRow) ([]domain.Attempt, error) {
	out := make([]domain.Attempt, 0, len(rows))
	for _, row := range rows {
		attempt, err := row.toDomain()
		if err != nil {
			return nil, fmt.Errorf("decode attempt %s: %w", row.ID, err)
		}
		out = append(out, attempt)
	}
	return out, nil
}
