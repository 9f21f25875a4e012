package attempts

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore shares failure counts across connector instances. Counters carry
// a TTL so abandoned authorisations clean themselves up.
type RedisStore struct {
	client *redis.Client
	window time.Duration
}

func NewRedisStore(client *redis.Client, window time.Duration) *RedisStore {
	if window <= 0 {
		window = DefaultWindow
	}
	return &RedisStore{client: client, window: window}
}

func redisKey(key string) string {
	return "sca:attempts:" + key
}

func (s *RedisStore) RecordFailure(ctx context.Context, key string) (int, error) {
	k := redisKey(key)
	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.Expire(ctx, k, s.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return int(incr.Val()), nil
}

func (s *RedisStore) Count(ctx context.Context, key string) (int, error) {
	count, err := s.client.Get(ctx, redisKey(key)).Int()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (s *RedisStore) Clear(ctx context.Context, key string) error {
	return s.client.Del(ctx, redisKey(key)).Err()
}
