package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"

	"github.com/kdduha/skillscribe/internal/models"
)

const keySolution = "skillscribe:solution:%s"

// RedisCache stores finished solutions as JSON under a content hash.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(addr, password string, db int, ttl time.Duration) *RedisCache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return NewRedisCacheWithClient(rdb, ttl)
}

func NewRedisCacheWithClient(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client: client,
		ttl:    ttl,
	}
}

func (r *RedisCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisCache) Get(ctx context.Context, key string) (*models.Solution, bool, error) {
	val, err := r.client.Get(ctx, fmt.Sprintf(keySolution, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var solution models.Solution
	if err := sonic.Unmarshal(val, &solution); err != nil {
		return nil, false, fmt.Errorf("corrupt cache entry: %w", err)
	}
	return &solution, true, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, solution *models.Solution) error {
	data, err := sonic.Marshal(solution)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, fmt.Sprintf(keySolution, key), data, r.ttl).Err()
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}
