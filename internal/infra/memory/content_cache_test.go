package memory

import (
	"context"
	"testing"
	"time"

	"quizhub/internal/domain"
)

func TestContentCacheCaches(t *testing.T) {
	ctx := context.Background()
	loader := newCountingLoader(t)
	cache := NewContentCache(loader, time.Minute)

	if _, err := cache.GetContent(ctx, loader.quizID); err != nil {
		t.Fatalf("get content: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader once, got %d", loader.calls)
	}

	if _, err := cache.GetContent(ctx, loader.quizID); err != nil {
		t.Fatalf("get content 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls %d", loader.calls)
	}
}

func TestContentCacheInvalidate(t *testing.T) {
	ctx := context.Background()
	loader := newCountingLoader(t)
	cache := NewContentCache(loader, time.Minute)

	if _, err := cache.GetContent(ctx, loader.quizID); err != nil {
		t.Fatalf("get content: %v", err)
	}
	cache.Invalidate(ctx, loader.quizID)
	if _, err := cache.GetContent(ctx, loader.quizID); err != nil {
		t.Fatalf("get content after invalidate: %v", err)
	}
	if loader.calls != 2 {
		t.Fatalf("expected reload after invalidate, loader calls %d", loader.calls)
	}
}

func TestContentCacheMissPropagates(t *testing.T) {
	ctx := context.Background()
	loader := newCountingLoader(t)
	cache := NewContentCache(loader, time.Minute)

	if _, err := cache.GetContent(ctx, "unknown"); err != domain.ErrQuizNotFound {
		t.Fatalf("expected quiz not found, got %v", err)
	}
}

type countingLoader struct {
	*StoreLoader
	quizID string
	calls  int
}

func (l *countingLoader) LoadContent(ctx context.Context, quizID string) (domain.QuizContent, error) {
	l.calls++
	return l.StoreLoader.LoadContent(ctx, quizID)
}

func newCountingLoader(t *testing.T) *countingLoader {
	t.Helper()
	ctx := context.Background()
	questions := NewQuestionRepository()
	quizzes := NewQuizRepository()

	q := domain.Question{
		ID:            "q1",
		Text:          "What is 2 + 2?",
		Options:       []string{"3", "4", "5", "22"},
		CorrectOption: 1,
		Category:      "Math",
		Difficulty:    domain.DifficultyMedium,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	if err := questions.Create(ctx, &q); err != nil {
		t.Fatalf("seed question: %v", err)
	}
	quiz := domain.Quiz{
		ID:               "quiz-1",
		Title:            "Math Warmup",
		Description:      "Simple arithmetic questions.",
		QuestionIDs:      []string{"q1"},
		TimeLimitMinutes: 5,
		Category:         "Math",
		Active:           true,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}
	if err := quizzes.Create(ctx, &quiz); err != nil {
		t.Fatalf("seed quiz: %v", err)
	}
	return &countingLoader{StoreLoader: NewStoreLoader(quizzes, questions), quizID: "quiz-1"}
}
