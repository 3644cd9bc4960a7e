package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vetnexa/clinic-api/internal/core"
)

// ErrMiss means the key is absent; callers fall back to the store.
var ErrMiss = errors.New("cache miss")

const flagsTTL = 5 * time.Minute

type Client struct {
	*redis.Client
}

func NewClient(redisURL string) *Client {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		opt = &redis.Options{
			Addr: redisURL,
		}
	}

	return &Client{redis.NewClient(opt)}
}

func flagsKey(clinicID string) string {
	return fmt.Sprintf("clinic:flags:%s", clinicID)
}

func (c *Client) GetFlags(ctx context.Context, clinicID string) (*core.Capabilities, error) {
	data, err := c.Get(ctx, flagsKey(clinicID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, err
	}

	var caps core.Capabilities
	if err := json.Unmarshal([]byte(data), &caps); err != nil {
		return nil, err
	}
	return &caps, nil
}

func (c *Client) SetFlags(ctx context.Context, clinicID string, caps *core.Capabilities) error {
	data, err := json.Marshal(caps)
	if err != nil {
		return err
	}
	return c.Set(ctx, flagsKey(clinicID), data, flagsTTL).Err()
}

func (c *Client) Invalidate(ctx context.Context, clinicID string) error {
	return c.Del(ctx, flagsKey(clinicID)).Err()
}
