package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// CursorCache stores the caller-owned position into the visible
// question sequence for an active submission. A miss is not an error:
// the cursor is rebuilt from the answers already recorded.
type CursorCache interface {
	Set(ctx context.Context, submissionID string, cursor int) error
	Get(ctx context.Context, submissionID string) (int, bool, error)
	Delete(ctx context.Context, submissionID string) error
}

type cursorCache struct {
	client *redis.Client
}

func NewCursorCache(client *redis.Client) CursorCache {
	return &cursorCache{
		client: client,
	}
}

func (c *cursorCache) Set(ctx context.Context, submissionID string, cursor int) error {
	return c.client.Set(ctx, "cursor:"+submissionID, strconv.Itoa(cursor), 24*time.Hour).Err()
}

func (c *cursorCache) Get(ctx context.Context, submissionID string) (int, bool, error) {
	data, err := c.client.Get(ctx, "cursor:"+submissionID).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	cursor, err := strconv.Atoi(data)
	if err != nil {
		return 0, false, nil
	}
	return cursor, true, nil
}

func (c *cursorCache) Delete(ctx context.Context, submissionID string) error {
	return c.client.Del(ctx, "cursor:"+submissionID).Err()
}
