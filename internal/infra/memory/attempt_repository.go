package memory

import (
	"context"
	"sort"
	"sync"

	"quizhub/internal/domain"
)

// AttemptRepository is a map-backed attempt store. Attempts are
// insert-only.
type AttemptRepository struct {
	mu       sync.RWMutex
	attempts map[string]domain.Attempt
}

func NewAttemptRepository() *AttemptRepository {
	return &AttemptRepository{attempts: make(map[string]domain.Attempt)}
}

func (r *AttemptRepository) Create(_ context.Context, a *domain.Attempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attempts[a.ID] = *a
	return nil
}

func (r *AttemptRepository) ListByUser(_ context.Context, userID string, limit int) ([]domain.Attempt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Attempt
	for _, a := range r.attempts {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	sortNewestFirst(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *AttemptRepository) ListAll(_ context.Context) ([]domain.Attempt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Attempt, 0, len(r.attempts))
	for _, a := range r.attempts {
		out = append(out, a)
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *AttemptRepository) Recent(ctx context.Context, limit int) ([]domain.Attempt, error) {
	out, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *AttemptRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.attempts), nil
}

func sortNewestFirst(attempts []domain.Attempt) {
	sort.Slice(attempts, func(i, j int) bool {
		if !attempts[i].CreatedAt.Equal(attempts[j].CreatedAt) {
			return attempts[i].CreatedAt.After(attempts[j].CreatedAt)
		}
		return attempts[i].ID > attempts[j].ID
	})
}
