package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"quizhub/internal/domain"
)

// Loader fetches resolved quiz content from the backing store.
type Loader interface {
	LoadContent(ctx context.Context, quizID string) (domain.QuizContent, error)
}

// ContentCache caches resolved quiz content in Redis as one JSON value
// per quiz and falls back to the loader on a miss. Admin writes call
// Invalidate so takers never score against stale content for longer
// than one in-flight request.
type ContentCache struct {
	client *redis.Client
	loader Loader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewContentCache(client *redis.Client, loader Loader, ttl time.Duration) *ContentCache {
	return &ContentCache{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *ContentCache) GetContent(ctx context.Context, quizID string) (domain.QuizContent, error) {
	key := c.key(quizID)

	if content, ok := c.lookup(ctx, key); ok {
		return content, nil
	}

	result, err, _ := c.sf.Do(quizID, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if content, ok := c.lookup(ctx, key); ok {
			return content, nil
		}

		content, err := c.loader.LoadContent(ctx, quizID)
		if err != nil {
			return domain.QuizContent{}, err
		}

		data, err := json.Marshal(content)
		if err != nil {
			return domain.QuizContent{}, fmt.Errorf("marshal quiz content: %w", err)
		}
		if err := c.client.Set(ctx, key, data, c.ttlWithJitter()).Err(); err != nil {
			// Cache fill is best-effort; the loaded content is still good.
			log.Printf("cache quiz %s: %v", quizID, err)
		}
		return content, nil
	})
	if err != nil {
		return domain.QuizContent{}, err
	}
	return result.(domain.QuizContent), nil
}

// Invalidate drops the cached entry for a quiz.
func (c *ContentCache) Invalidate(ctx context.Context, quizID string) {
	if err := c.client.Del(ctx, c.key(quizID)).Err(); err != nil {
		log.Printf("invalidate quiz %s: %v", quizID, err)
	}
}

func (c *ContentCache) lookup(ctx context.Context, key string) (domain.QuizContent, bool) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("cache read %s: %v", key, err)
		}
		return domain.QuizContent{}, false
	}
	var content domain.QuizContent
	if err := json.Unmarshal(data, &content); err != nil {
		return domain.QuizContent{}, false
	}
	return content, true
}

func (c *ContentCache) key(quizID string) string {
	return "quiz:" + quizID + ":content"
}

func (c *ContentCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
