package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"quizhub/internal/app"
	"quizhub/internal/domain"
)

// QuizRepository is a map-backed quiz store.
type QuizRepository struct {
	mu      sync.RWMutex
	quizzes map[string]domain.Quiz
}

func NewQuizRepository() *QuizRepository {
	return &QuizRepository{quizzes: make(map[string]domain.Quiz)}
}

func (r *QuizRepository) Create(_ context.Context, q *domain.Quiz) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.quizzes[q.ID] = *q
	return nil
}

func (r *QuizRepository) Update(_ context.Context, q *domain.Quiz) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.quizzes[q.ID]; !ok {
		return domain.ErrQuizNotFound
	}
	r.quizzes[q.ID] = *q
	return nil
}

func (r *QuizRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.quizzes[id]; !ok {
		return domain.ErrQuizNotFound
	}
	delete(r.quizzes, id)
	return nil
}

func (r *QuizRepository) Get(_ context.Context, id string) (domain.Quiz, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	q, ok := r.quizzes[id]
	if !ok {
		return domain.Quiz{}, domain.ErrQuizNotFound
	}
	return q, nil
}

func (r *QuizRepository) List(_ context.Context, f app.QuizFilter) ([]domain.Quiz, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	search := strings.ToLower(f.Search)
	out := make([]domain.Quiz, 0, len(r.quizzes))
	for _, q := range r.quizzes {
		if f.ActiveOnly && !q.Active {
			continue
		}
		if f.Category != "" && q.Category != f.Category {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(q.Title), search) &&
			!strings.Contains(strings.ToLower(q.Description), search) {
			continue
		}
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *QuizRepository) Referencing(_ context.Context, questionID string) ([]domain.Quiz, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Quiz
	for _, q := range r.quizzes {
		for _, id := range q.QuestionIDs {
			if id == questionID {
				out = append(out, q)
				break
			}
		}
	}
	return out, nil
}

func (r *QuizRepository) RemoveQuestionRef(_ context.Context, questionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, q := range r.quizzes {
		kept := make([]string, 0, len(q.QuestionIDs))
		for _, id := range q.QuestionIDs {
			if id != questionID {
				kept = append(kept, id)
			}
		}
		if len(kept) != len(q.QuestionIDs) {
			q.QuestionIDs = kept
			r.quizzes[key] = q
		}
	}
	return nil
}

func (r *QuizRepository) Categories(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := make(map[string]struct{})
	var out []string
	for _, q := range r.quizzes {
		if !q.Active {
			continue
		}
		if _, ok := seen[q.Category]; ok {
			continue
		}
		seen[q.Category] = struct{}{}
		out = append(out, q.Category)
	}
	sort.Strings(out)
	return out, nil
}

func (r *QuizRepository) CategoryCounts(_ context.Context) ([]domain.CategoryCount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	counts := make(map[string]int)
	for _, q := range r.quizzes {
		counts[q.Category]++
	}
	out := make([]domain.CategoryCount, 0, len(counts))
	for category, count := range counts {
		out = append(out, domain.CategoryCount{Category: category, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Category < out[j].Category
	})
	return out, nil
}

func (r *QuizRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.quizzes), nil
}
