package utils

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "jwt:revoked:"

// TokenStore records revoked bearer tokens until their natural expiration so
// logout takes effect immediately. Redis is the primary store; an in-memory
// map serves as fallback when no Redis client is configured or reachable.
type TokenStore struct {
	rdb     *redis.Client
	mu      sync.RWMutex
	revoked map[string]time.Time
}

// NewTokenStore creates a TokenStore. rdb may be nil for memory-only operation.
func NewTokenStore(rdb *redis.Client) *TokenStore {
	return &TokenStore{
		rdb:     rdb,
		revoked: map[string]time.Time{},
	}
}

// Revoke stores a token until expiresAt.
func (s *TokenStore) Revoke(token string, expiresAt time.Time) {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return
	}
	if s.rdb != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := s.rdb.Set(ctx, revokedKeyPrefix+token, "1", ttl).Err(); err == nil {
			return
		}
		// fall through to memory on redis error
	}
	s.mu.Lock()
	s.revoked[token] = expiresAt
	s.mu.Unlock()
}

// IsRevoked reports whether a token was revoked before natural expiration.
func (s *TokenStore) IsRevoked(token string) bool {
	if s.rdb != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if n, err := s.rdb.Exists(ctx, revokedKeyPrefix+token).Result(); err == nil && n > 0 {
			return true
		}
	}

	s.mu.RLock()
	expiresAt, ok := s.revoked[token]
	s.mu.RUnlock()
	if !ok {
		return false
	}

	if time.Now().After(expiresAt) {
		s.mu.Lock()
		delete(s.revoked, token)
		s.mu.Unlock()
		return false
	}
	return true
}
