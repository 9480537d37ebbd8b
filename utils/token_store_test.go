package utils

import (
	"testing"
	"time"
)

func TestTokenStoreRevoke(t *testing.T) {
	s := NewTokenStore(nil)

	if s.IsRevoked("tok") {
		t.Fatal("unknown token reported revoked")
	}

	s.Revoke("tok", time.Now().Add(time.Hour))
	if !s.IsRevoked("tok") {
		t.Fatal("revoked token not reported revoked")
	}
	if s.IsRevoked("other") {
		t.Fatal("revocation leaked to a different token")
	}
}

func TestTokenStoreExpiredEntryDropped(t *testing.T) {
	s := NewTokenStore(nil)

	s.Revoke("tok", time.Now().Add(10*time.Millisecond))
	time.Sleep(20 * time.Millisecond)

	if s.IsRevoked("tok") {
		t.Fatal("entry past its expiration must read as not revoked")
	}
	s.mu.RLock()
	_, still := s.revoked["tok"]
	s.mu.RUnlock()
	if still {
		t.Fatal("expired entry should be cleaned up on read")
	}
}

func TestTokenStoreIgnoresAlreadyExpired(t *testing.T) {
	s := NewTokenStore(nil)
	s.Revoke("tok", time.Now().Add(-time.Minute))
	if s.IsRevoked("tok") {
		t.Fatal("token already past expiration should not be stored")
	}
}
