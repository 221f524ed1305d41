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

// QuestionRepository stores questions in Postgres via bun.
type QuestionRepository struct {
	db *bun.DB
}

func NewQuestionRepository(db *bun.DB) *QuestionRepository {
	return &QuestionRepository{db: db}
}

func (r *QuestionRepository) Create(ctx context.Context, q *domain.Question) error {
	row := questionToRow(*q)
	if _, err := r.db.NewInsert().Model(&row).Exec(ctx); err != nil {
		return fmt.Errorf("insert question: %w", err)
	}
	return nil
}

func (r *QuestionRepository) CreateMany(ctx context.Context, qs []domain.Question) error {
	if len(qs) == 0 {
		return nil
	}
	rows := make([]questionRow, 0, len(qs))
	for _, q := range qs {
		rows = append(rows, questionToRow(q))
	}
	if _, err := r.db.NewInsert().Model(&rows).Exec(ctx); err != nil {
		return fmt.Errorf("insert questions: %w", err)
	}
	return nil
}

func (r *QuestionRepository) Update(ctx context.Context, q *domain.Question) error {
	row := questionToRow(*q)
	res, err := r.db.NewUpdate().Model(&row).WherePK().Exec(ctx)
	if err != nil {
		return fmt.Errorf("update question: %w", err)
	}
	return checkAffected(res, domain.ErrQuestionNotFound)
}

func (r *QuestionRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.NewDelete().Model((*questionRow)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete question: %w", err)
	}
	return checkAffected(res, domain.ErrQuestionNotFound)
}

func (r *QuestionRepository) Get(ctx context.Context, id string) (domain.Question, error) {
	var row questionRow
	err := r.db.NewSelect().Model(&row).Where("id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Question{}, domain.ErrQuestionNotFound
	}
	if err != nil {
		return domain.Question{}, fmt.Errorf("select question: %w", err)
	}
	return row.toDomain(), nil
}

func (r *QuestionRepository) GetMany(ctx context.Context, ids []string) ([]domain.Question, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []questionRow
	err := r.db.NewSelect().Model(&rows).Where("id IN (?)", bun.In(ids)).Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("select questions: %w", err)
	}
	out := make([]domain.Question, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *QuestionRepository) List(ctx context.Context, f app.QuestionFilter) ([]domain.Question, error) {
	var rows []questionRow
	query := r.db.NewSelect().Model(&rows)
	if f.Category != "" {
		query = query.Where("category = ?", f.Category)
	}
	if f.Search != "" {
		query = query.Where("text ILIKE ?", "%"+f.Search+"%")
	}
	if err := query.Order("created_at DESC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	out := make([]domain.Question, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *QuestionRepository) Count(ctx context.Context) (int, error) {
	count, err := r.db.NewSelect().Model((*questionRow)(nil)).Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count questions: %w", err)
	}
	return count, nil
}

func checkAffected(res sql.Result, notFound error) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return notFound
	}
	return nil
}
