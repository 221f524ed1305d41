package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"quizhub/internal/app"
	"quizhub/internal/domain"
)

// QuizRepository stores quizzes in Postgres via bun. Question references
// live in a text[] column with a GIN index for membership queries.
type QuizRepository struct {
	db *bun.DB
}

func NewQuizRepository(db *bun.DB) *QuizRepository {
	return &QuizRepository{db: db}
}

func (r *QuizRepository) Create(ctx context.Context, q *domain.Quiz) error {
	row := quizToRow(*q)
	if _, err := r.db.NewInsert().Model(&row).Exec(ctx); err != nil {
		return fmt.Errorf("insert quiz: %w", err)
	}
	return nil
}

func (r *QuizRepository) Update(ctx context.Context, q *domain.Quiz) error {
	row := quizToRow(*q)
	res, err := r.db.NewUpdate().Model(&row).WherePK().Exec(ctx)
	if err != nil {
		return fmt.Errorf("update quiz: %w", err)
	}
	return checkAffected(res, domain.ErrQuizNotFound)
}

func (r *QuizRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.NewDelete().Model((*quizRow)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete quiz: %w", err)
	}
	return checkAffected(res, domain.ErrQuizNotFound)
}

func (r *QuizRepository) Get(ctx context.Context, id string) (domain.Quiz, error) {
	var row quizRow
	err := r.db.NewSelect().Model(&row).Where("id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Quiz{}, domain.ErrQuizNotFound
	}
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("select quiz: %w", err)
	}
	return row.toDomain(), nil
}

func (r *QuizRepository) List(ctx context.Context, f app.QuizFilter) ([]domain.Quiz, error) {
	var rows []quizRow
	query := r.db.NewSelect().Model(&rows)
	if f.ActiveOnly {
		query = query.Where("active = TRUE")
	}
	if f.Category != "" {
		query = query.Where("category = ?", f.Category)
	}
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		query = query.Where("(title ILIKE ? OR description ILIKE ?)", pattern, pattern)
	}
	if err := query.Order("created_at DESC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	out := make([]domain.Quiz, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *QuizRepository) Referencing(ctx context.Context, questionID string) ([]domain.Quiz, error) {
	var rows []quizRow
	err := r.db.NewSelect().Model(&rows).Where("? = ANY(question_ids)", questionID).Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("quizzes referencing question: %w", err)
	}
	out := make([]domain.Quiz, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *QuizRepository) RemoveQuestionRef(ctx context.Context, questionID string) error {
	_, err := r.db.NewUpdate().
		Model((*quizRow)(nil)).
		Set("question_ids = array_remove(question_ids, ?)", questionID).
		Where("? = ANY(question_ids)", questionID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("remove question ref: %w", err)
	}
	return nil
}

func (r *QuizRepository) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.db.NewSelect().
		Model((*quizRow)(nil)).
		ColumnExpr("DISTINCT category").
		Where("active = TRUE").
		Order("category").
		Scan(ctx, &categories)
	if err != nil {
		return nil, fmt.Errorf("quiz categories: %w", err)
	}
	return categories, nil
}

func (r *QuizRepository) CategoryCounts(ctx context.Context) ([]domain.CategoryCount, error) {
	var counts []domain.CategoryCount
	err := r.db.NewSelect().
		Model((*quizRow)(nil)).
		ColumnExpr("category, count(*) AS count").
		GroupExpr("category").
		OrderExpr("count DESC, category ASC").
		Scan(ctx, &counts)
	if err != nil {
		return nil, fmt.Errorf("quiz category counts: %w", err)
	}
	return counts, nil
}

func (r *QuizRepository) Count(ctx context.Context) (int, error) {
	count, err := r.db.NewSelect().Model((*quizRow)(nil)).Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count quizzes: %w", err)
	}
	return count, nil
}
