package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"quizhub/internal/domain"
)

// Loader fetches resolved quiz content from a backing store.
type Loader interface {
	LoadContent(ctx context.Context, quizID string) (domain.QuizContent, error)
}

// ContentCache caches quiz content with a TTL to avoid repeated store
// hits on the hot start/submit path.
type ContentCache struct {
	loader Loader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu    sync.RWMutex
	cache map[string]cachedContent
}

type cachedContent struct {
	content   domain.QuizContent
	expiresAt time.Time
}

func NewContentCache(loader Loader, ttl time.Duration) *ContentCache {
	return &ContentCache{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[string]cachedContent),
	}
}

func (c *ContentCache) GetContent(ctx context.Context, quizID string) (domain.QuizContent, error) {
	now := c.clock()

	c.mu.RLock()
	if entry, ok := c.cache[quizID]; ok && entry.expiresAt.After(now) {
		c.mu.RUnlock()
		return entry.content, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.sf.Do(quizID, func() (interface{}, error) {
		now := c.clock()
		c.mu.RLock()
		if entry, ok := c.cache[quizID]; ok && entry.expiresAt.After(now) {
			c.mu.RUnlock()
			return entry.content, nil
		}
		c.mu.RUnlock()

		content, err := c.loader.LoadContent(ctx, quizID)
		if err != nil {
			return domain.QuizContent{}, err
		}

		c.mu.Lock()
		c.cache[quizID] = cachedContent{
			content:   content,
			expiresAt: now.Add(c.ttlWithJitter()),
		}
		c.mu.Unlock()
		return content, nil
	})
	if err != nil {
		return domain.QuizContent{}, err
	}
	return result.(domain.QuizContent), nil
}

// Invalidate drops the cached entry so the next read sees admin edits.
func (c *ContentCache) Invalidate(_ context.Context, quizID string) {
	c.mu.Lock()
	delete(c.cache, quizID)
	c.mu.Unlock()
}

func (c *ContentCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}

// StoreLoader assembles quiz content from the in-memory repositories,
// preserving the quiz's question order. Dangling question references
// are skipped.
type StoreLoader struct {
	quizzes   *QuizRepository
	questions *QuestionRepository
}

func NewStoreLoader(quizzes *QuizRepository, questions *QuestionRepository) *StoreLoader {
	return &StoreLoader{quizzes: quizzes, questions: questions}
}

func (l *StoreLoader) LoadContent(ctx context.Context, quizID string) (domain.QuizContent, error) {
	quiz, err := l.quizzes.Get(ctx, quizID)
	if err != nil {
		return domain.QuizContent{}, err
	}
	questions := make([]domain.Question, 0, len(quiz.QuestionIDs))
	for _, id := range quiz.QuestionIDs {
		q, err := l.questions.Get(ctx, id)
		if err != nil {
			continue
		}
		questions = append(questions, q)
	}
	return domain.QuizContent{Quiz: quiz, Questions: questions}, nil
}
