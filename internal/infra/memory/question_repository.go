package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"quizhub/internal/app"
	"quizhub/internal/domain"
)

// QuestionRepository is a map-backed question store used when no
// Postgres is configured and by unit tests.
type QuestionRepository struct {
	mu        sync.RWMutex
	questions map[string]domain.Question
}

func NewQuestionRepository() *QuestionRepository {
	return &QuestionRepository{questions: make(map[string]domain.Question)}
}

func (r *QuestionRepository) Create(_ context.Context, q *domain.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.questions[q.ID] = *q
	return nil
}

func (r *QuestionRepository) CreateMany(_ context.Context, qs []domain.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, q := range qs {
		r.questions[q.ID] = q
	}
	return nil
}

func (r *QuestionRepository) Update(_ context.Context, q *domain.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.questions[q.ID]; !ok {
		return domain.ErrQuestionNotFound
	}
	r.questions[q.ID] = *q
	return nil
}

func (r *QuestionRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.questions[id]; !ok {
		return domain.ErrQuestionNotFound
	}
	delete(r.questions, id)
	return nil
}

func (r *QuestionRepository) Get(_ context.Context, id string) (domain.Question, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	q, ok := r.questions[id]
	if !ok {
		return domain.Question{}, domain.ErrQuestionNotFound
	}
	return q, nil
}

func (r *QuestionRepository) GetMany(_ context.Context, ids []string) ([]domain.Question, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Question, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if q, ok := r.questions[id]; ok {
			out = append(out, q)
		}
	}
	return out, nil
}

func (r *QuestionRepository) List(_ context.Context, f app.QuestionFilter) ([]domain.Question, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	search := strings.ToLower(f.Search)
	out := make([]domain.Question, 0, len(r.questions))
	for _, q := range r.questions {
		if f.Category != "" && q.Category != f.Category {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(q.Text), search) {
			continue
		}
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *QuestionRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.questions), nil
}
