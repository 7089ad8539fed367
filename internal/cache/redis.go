package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Redis is a Store backed by a shared redis instance. Cache misses are the
// fallback for any redis error, so a flaky redis degrades to plain DB reads.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

// NewRedis connects to redisURL and validates connectivity at startup.
func NewRedis(redisURL string, ttl time.Duration, log zerolog.Logger) (*Redis, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return &Redis{client: client, ttl: ttl, log: log}, nil
}

func (r *Redis) Get(ctx context.Context, name string) ([]byte, bool) {
	payload, err := r.client.Get(ctx, name).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		r.log.Warn().Err(err).Str("cache", name).Msg("redis get failed")
		return nil, false
	}
	return payload, true
}

func (r *Redis) Set(ctx context.Context, name string, payload []byte) {
	if err := r.client.Set(ctx, name, payload, r.ttl).Err(); err != nil {
		r.log.Warn().Err(err).Str("cache", name).Msg("redis set failed")
	}
}

func (r *Redis) Invalidate(ctx context.Context, name string) {
	if err := r.client.Del(ctx, name).Err(); err != nil {
		r.log.Warn().Err(err).Str("cache", name).Msg("redis del failed")
	}
}
