package flowstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis shares snapshots between front-desk hosts. Entries expire after ttl; 0 keeps them.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	key, err := requireKey(key)
	if err != nil {
		return nil, false, err
	}
	payload, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get snapshot: %w", err)
	}
	return payload, true, nil
}

func (r *Redis) Put(ctx context.Context, key string, payload []byte) error {
	key, err := requireKey(key)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, key, payload, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set snapshot: %w", err)
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	key, err := requireKey(key)
	if err != nil {
		return err
	}
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis delete snapshot: %w", err)
	}
	return nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}
