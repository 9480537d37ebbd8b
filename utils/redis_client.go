package utils

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient dials Redis with conservative timeouts. A ping failure is not
// fatal: callers that can degrade (token revocation falls back to memory) keep
// working when Redis is down.
func NewRedisClient(addr, password string, db int) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil && Sugar != nil {
		Sugar.Warnf("redis ping failed, degraded mode: %v", err)
	}
	return client
}
