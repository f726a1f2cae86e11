package infra

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// NewRedis connects the shared Redis client backing the session allow-list
// and the price-alert job queue. Fails fast at startup if the server is
// unreachable, since neither login nor alerting works without it.
func NewRedis(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opts)

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return rdb, nil
}
