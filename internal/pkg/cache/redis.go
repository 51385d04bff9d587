package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/boostgridhq/BoostGrid/internal/pkg/env"
)

// RedisStore backs the Store contract with a shared Redis/Dragonfly server
// so multiple panel instances see the same catalog caches.
type RedisStore struct {
	client *redis.Client
	ctx    context.Context
}

func NewRedisStore() *RedisStore {
	host := env.GetEnv("CACHE_HOST", "localhost")
	port := env.GetEnv("CACHE_PORT", "6379")

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", host, port),
		Password: "", // no password set
		DB:       0,  // use default DB
	})

	ctx := context.Background()

	// Test the connection
	pong, err := client.Ping(ctx).Result()
	if err != nil {
		log.Printf("Warning: Could not connect to cache server: %v", err)
	} else {
		log.Printf("Successfully connected to cache server: %s", pong)
	}

	return &RedisStore{client: client, ctx: ctx}
}

func (s *RedisStore) Set(key, value string, ttl time.Duration) error {
	return s.client.Set(s.ctx, key, value, ttl).Err()
}

func (s *RedisStore) Get(key string) (string, bool) {
	val, err := s.client.Get(s.ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (s *RedisStore) Clear(keys ...string) error {
	if len(keys) == 0 {
		return s.client.FlushDB(s.ctx).Err()
	}
	return s.client.Del(s.ctx, keys...).Err()
}
