package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"quizhub/internal/domain"
)

// ContentLoader assembles a quiz with its questions for the start and
// submit paths. It reads through pgx directly; writes go through the
// bun repositories.
type ContentLoader struct {
	pool *pgxpool.Pool
}

func NewContentLoader(pool *pgxpool.Pool) *ContentLoader {
	return &ContentLoader{pool: pool}
}

func (l *ContentLoader) LoadContent(ctx context.Context, quizID string) (domain.QuizContent, error) {
	var quiz domain.Quiz
	err := l.pool.QueryRow(ctx,
		`SELECT id, title, description, question_ids, time_limit_minutes, category, active, created_by, created_at, updated_at
		 FROM quizzes WHERE id=$1`, quizID).
		Scan(&quiz.ID, &quiz.Title, &quiz.Description, &quiz.QuestionIDs, &quiz.TimeLimitMinutes,
			&quiz.Category, &quiz.Active, &quiz.CreatedBy, &quiz.CreatedAt, &quiz.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.QuizContent{}, domain.ErrQuizNotFound
	}
	if err != nil {
		return domain.QuizContent{}, fmt.Errorf("load quiz: %w", err)
	}

	rows, err := l.pool.Query(ctx,
		`SELECT id, text, options, correct_option, category, difficulty, explanation, created_by, created_at, updated_at
		 FROM questions WHERE id = ANY($1)`, quiz.QuestionIDs)
	if err != nil {
		return domain.QuizContent{}, fmt.Errorf("load questions: %w", err)
	}
	defer rows.Close()

	byID := make(map[string]domain.Question, len(quiz.QuestionIDs))
	for rows.Next() {
		var q domain.Question
		if err := rows.Scan(&q.ID, &q.Text, &q.Options, &q.CorrectOption, &q.Category,
			&q.Difficulty, &q.Explanation, &q.CreatedBy, &q.CreatedAt, &q.UpdatedAt); err != nil {
			return domain.QuizContent{}, fmt.Errorf("scan question: %w", err)
		}
		byID[q.ID] = q
	}
	if err := rows.Err(); err != nil {
		return domain.QuizContent{}, fmt.Errorf("load questions: %w", err)
	}

	// Preserve the quiz's question order; skip dangling references.
	questions := make([]domain.Question, 0, len(quiz.QuestionIDs))
	for _, id := range quiz.QuestionIDs {
		if q, ok := byID[id]; ok {
			questions = append(questions, q)
		}
	}
	return domain.QuizContent{Quiz: quiz, Questions: questions}, nil
}
