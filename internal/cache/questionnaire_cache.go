package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"advisor-api/internal/model"
)

// QuestionnaireCache keeps the published questionnaire snapshot hot.
// Admin writes invalidate it; the record store stays authoritative.
type QuestionnaireCache interface {
	Set(ctx context.Context, q *model.Questionnaire) error
	Get(ctx context.Context, id string) (*model.Questionnaire, error)
	Invalidate(ctx context.Context, id string) error
}

type questionnaireCache struct {
	client *redis.Client
}

func NewQuestionnaireCache(client *redis.Client) QuestionnaireCache {
	return &questionnaireCache{
		client: client,
	}
}

func (c *questionnaireCache) Set(ctx context.Context, q *model.Questionnaire) error {
	data, err := json.Marshal(q)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, "questionnaire:"+q.ID, data, 10*time.Minute).Err()
}

func (c *questionnaireCache) Get(ctx context.Context, id string) (*model.Questionnaire, error) {
	data, err := c.client.Get(ctx, "questionnaire:"+id).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var q model.Questionnaire
	err = json.Unmarshal([]byte(data), &q)
	return &q, err
}

func (c *questionnaireCache) Invalidate(ctx context.Context, id string) error {
	return c.client.Del(ctx, "questionnaire:"+id).Err()
}
