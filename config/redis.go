package config

import (
	"context"
	"crypto/tls"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisAddress prefers REDIS_HOST/REDIS_PORT over REDIS_ADDR.
func (c Config) RedisAddress() string {
	if c.RedisHost != "" && c.RedisPort != "" {
		return c.RedisHost + ":" + c.RedisPort
	}
	if c.RedisAddr != "" {
		return c.RedisAddr
	}
	return "localhost:6379"
}

// NewRedisClient connects to Redis and pings it. It returns nil when the server is not
// reachable.
func NewRedisClient(cfg Config) *redis.Client {
	var tlsConf *tls.Config
	if cfg.RedisTLS {
		tlsConf = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(&redis.Options{
		Addr:      cfg.RedisAddress(),
		Password:  cfg.RedisPassword,
		DB:        cfg.RedisDB,
		TLSConfig: tlsConf,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil
	}
	return client
}
