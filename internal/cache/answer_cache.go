package cache

import (
	"caschools/internal/model"
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// AnswerCache handles Redis operations for answered queries. Identical query
// text within the TTL returns the stored answer without touching the
// extractor, the store or the AI backend.
type AnswerCache interface {
	Get(ctx context.Context, query string) (*model.QueryAnswer, error)
	Set(ctx context.Context, query string, answer *model.QueryAnswer) error
}

type answerCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewAnswerCache creates a new answer cache
func NewAnswerCache(client *redis.Client) AnswerCache {
	return &answerCache{
		client: client,
		ttl:    15 * time.Minute,
	}
}

func (c *answerCache) key(query string) string {
	normalized := strings.ToLower(strings.TrimSpace(query))
	return fmt.Sprintf("query:answer:%x", sha256.Sum256([]byte(normalized)))
}

func (c *answerCache) Get(ctx context.Context, query string) (*model.QueryAnswer, error) {
	data, err := c.client.Get(ctx, c.key(query)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var answer model.QueryAnswer
	if err := json.Unmarshal([]byte(data), &answer); err != nil {
		return nil, err
	}
	return &answer, nil
}

func (c *answerCache) Set(ctx context.Context, query string, answer *model.QueryAnswer) error {
	data, err := json.Marshal(answer)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(query), data, c.ttl).Err()
}
