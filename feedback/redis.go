package feedback

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strings"

	"ga4oracle/retry"

	"github.com/redis/go-redis/v9"
)

// redisKeyPrefix namespaces the oracle's feedback lists within a
// shared Redis instance.
const redisKeyPrefix = "ga4oracle:feedback:"

const redisMaxRetries = 3

// isRetryableRedisError reports whether err looks like a transient
// connection problem (timeout, refused, reset) rather than a
// permanent one, so a flaky connection doesn't drop an observation
// that a second attempt would have recorded.
func isRetryableRedisError(err error) bool {
	if err == nil {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "connection refused") || strings.Contains(msg, "i/o timeout") || strings.Contains(msg, "EOF")
}

// RedisCache is a Cache backed by Redis lists, one list per
// (event, parameter) key, so the cache survives restarts and can be
// shared across oracle replicas. Each RPUSH is its own atomic
// operation, so it needs no separate per-key lock.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects to the given Redis URL (e.g.
// "redis://localhost:6379/0").
func NewRedisCache(redisURL string) (*RedisCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("feedback: parse redis url: %w", err)
	}
	return &RedisCache{client: redis.NewClient(opts)}, nil
}

func (c *RedisCache) redisKey(eventName, parameter string) string {
	return redisKeyPrefix + key(eventName, parameter)
}

func (c *RedisCache) Record(ctx context.Context, obs Observation) error {
	payload, err := json.Marshal(obs)
	if err != nil {
		return fmt.Errorf("feedback: marshal observation: %w", err)
	}
	_, err = retry.Do(ctx, redisMaxRetries, isRetryableRedisError, func() (struct{}, error) {
		return struct{}{}, c.client.RPush(ctx, c.redisKey(obs.EventName, obs.Parameter), payload).Err()
	})
	if err != nil {
		return fmt.Errorf("feedback: redis rpush: %w", err)
	}
	return nil
}

func (c *RedisCache) History(ctx context.Context, eventName, parameter string) ([]Observation, error) {
	raw, err := c.client.LRange(ctx, c.redisKey(eventName, parameter), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("feedback: redis lrange: %w", err)
	}
	out := make([]Observation, 0, len(raw))
	for _, item := range raw {
		var obs Observation
		if err := json.Unmarshal([]byte(item), &obs); err != nil {
			return nil, fmt.Errorf("feedback: unmarshal observation: %w", err)
		}
		out = append(out, obs)
	}
	return out, nil
}

func (c *RedisCache) Stats(ctx context.Context) (int, int, error) {
	var cursor uint64
	keys := 0
	observations := 0
	for {
		batch, next, err := c.client.Scan(ctx, cursor, redisKeyPrefix+"*", 100).Result()
		if err != nil {
			return 0, 0, fmt.Errorf("feedback: redis scan: %w", err)
		}
		for _, k := range batch {
			n, err := c.client.LLen(ctx, k).Result()
			if err != nil {
				return 0, 0, fmt.Errorf("feedback: redis llen: %w", err)
			}
			keys++
			observations += int(n)
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	return keys, observations, nil
}
