package app

import (
	"context"

	"quizhub/internal/domain"
)

// QuestionFilter narrows question listings.
type QuestionFilter struct {
	Category string
	Search   string
}

// QuizFilter narrows quiz listings.
type QuizFilter struct {
	Category   string
	Search     string
	ActiveOnly bool
}

// QuestionRepository abstracts question storage (Postgres, in-memory).
type QuestionRepository interface {
	Create(ctx context.Context, q *domain.Question) error
	CreateMany(ctx context.Context, qs []domain.Question) error
	Update(ctx context.Context, q *domain.Question) error
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (domain.Question, error)
	GetMany(ctx context.Context, ids []string) ([]domain.Question, error)
	List(ctx context.Context, f QuestionFilter) ([]domain.Question, error)
	Count(ctx context.Context) (int, error)
}

// QuizRepository abstracts quiz storage.
type QuizRepository interface {
	Create(ctx context.Context, q *domain.Quiz) error
	Update(ctx context.Context, q *domain.Quiz) error
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (domain.Quiz, error)
	List(ctx context.Context, f QuizFilter) ([]domain.Quiz, error)
	// Referencing returns every quiz whose question set contains questionID.
	Referencing(ctx context.Context, questionID string) ([]domain.Quiz, error)
	// RemoveQuestionRef pulls questionID out of every quiz referencing it.
	RemoveQuestionRef(ctx context.Context, questionID string) error
	Categories(ctx context.Context) ([]string, error)
	CategoryCounts(ctx context.Context) ([]domain.CategoryCount, error)
	Count(ctx context.Context) (int, error)
}

// AttemptRepository abstracts attempt storage. Attempts are insert-only;
// history reads query by user id directly rather than through any
// denormalized per-user list.
type AttemptRepository interface {
	Create(ctx context.Context, a *domain.Attempt) error
	ListByUser(ctx context.Context, userID string, limit int) ([]domain.Attempt, error)
	ListAll(ctx context.Context) ([]domain.Attempt, error)
	Recent(ctx context.Context, limit int) ([]domain.Attempt, error)
	Count(ctx context.Context) (int, error)
}

// QuizContentSource serves resolved quiz content, usually through a cache.
type QuizContentSource interface {
	GetContent(ctx context.Context, quizID string) (domain.QuizContent, error)
}

// ContentInvalidator drops cached content for a quiz after admin writes.
type ContentInvalidator interface {
	Invalidate(ctx context.Context, quizID string)
}
