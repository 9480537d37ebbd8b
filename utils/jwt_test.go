package utils

import (
	"testing"
	"time"
)

func TestTokenIssueParse(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)

	token, expiresAt, err := m.Issue(42)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if token == "" {
		t.Fatal("issue returned empty token")
	}
	if remaining := time.Until(expiresAt); remaining < 59*time.Minute || remaining > time.Hour {
		t.Fatalf("expiry drifted: %v remaining", remaining)
	}

	claims, err := m.Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != 42 {
		t.Fatalf("user id = %d, want 42", claims.UserID)
	}
}

func TestTokenWrongSecretRejected(t *testing.T) {
	issuer := NewTokenManager("secret-a", time.Hour)
	verifier := NewTokenManager("secret-b", time.Hour)

	token, _, err := issuer.Issue(1)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := verifier.Parse(token); err == nil {
		t.Fatal("token signed with a different secret must not verify")
	}
}

func TestTokenExpiredRejected(t *testing.T) {
	m := &TokenManager{secret: []byte("test-secret"), ttl: -time.Minute}

	token, _, err := m.Issue(1)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := m.Parse(token); err == nil {
		t.Fatal("expired token must not verify")
	}
}

func TestTokenGarbageRejected(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)
	if _, err := m.Parse("not.a.jwt"); err == nil {
		t.Fatal("malformed token must not verify")
	}
}
