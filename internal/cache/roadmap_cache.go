package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"advisor-api/internal/model"
)

// RoadmapCache holds computed roadmaps per submission. Cached results
// are derived data only; they are always recomputable from answers,
// rules and offerings.
type RoadmapCache interface {
	Set(ctx context.Context, roadmap *model.Roadmap) error
	Get(ctx context.Context, submissionID string) (*model.Roadmap, error)
	Invalidate(ctx context.Context, submissionID string) error
}

type roadmapCache struct {
	client *redis.Client
}

func NewRoadmapCache(client *redis.Client) RoadmapCache {
	return &roadmapCache{
		client: client,
	}
}

func (c *roadmapCache) Set(ctx context.Context, roadmap *model.Roadmap) error {
	data, err := json.Marshal(roadmap)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, "roadmap:"+roadmap.SubmissionID, data, time.Hour).Err()
}

func (c *roadmapCache) Get(ctx context.Context, submissionID string) (*model.Roadmap, error) {
	data, err := c.client.Get(ctx, "roadmap:"+submissionID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var roadmap model.Roadmap
	err = json.Unmarshal([]byte(data), &roadmap)
	return &roadmap, err
}

func (c *roadmapCache) Invalidate(ctx context.Context, submissionID string) error {
	return c.client.Del(ctx, "roadmap:"+submissionID).Err()
}
