package storage

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/FlorianHaas/TenantDesk/internal/pkg/env"
)

// RedisKV backs the KV capability with a Redis (or Dragonfly) server.
type RedisKV struct {
	client *redis.Client
	ctx    context.Context
}

func NewRedisKV(addr, password string, db int) *RedisKV {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx := context.Background()
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Printf("Warning: Could not connect to store backend at %s: %v", addr, err)
	}

	return &RedisKV{client: client, ctx: ctx}
}

func (r *RedisKV) Get(key string) ([]byte, bool, error) {
	raw, err := r.client.Get(r.ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return raw, true, nil
}

func (r *RedisKV) Set(key string, value []byte) error {
	return r.client.Set(r.ctx, key, value, 0).Err()
}

func (r *RedisKV) Delete(key string) error {
	return r.client.Del(r.ctx, key).Err()
}

// NewFromEnv selects the store driver from the environment. STORE_DRIVER=redis
// connects to STORE_HOST:STORE_PORT, anything else runs in memory.
func NewFromEnv() KV {
	if env.GetEnv("STORE_DRIVER", "memory") != "redis" {
		return NewMemoryKV()
	}

	host := env.GetEnv("STORE_HOST", "localhost")
	port := env.GetEnv("STORE_PORT", "6379")
	password := env.GetEnv("STORE_PASSWORD", "")

	return NewRedisKV(fmt.Sprintf("%s:%s", host, port), password, 0)
}
