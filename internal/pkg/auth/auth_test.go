package auth

import (
	"testing"
	"time"
)

func TestHMACStrategyRoundTrip(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{})

	token, err := strategy.IssueToken(42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	userID, err := strategy.ParseToken(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if userID != 42 {
		t.Fatalf("expected user 42, got %d", userID)
	}
}

func TestHMACStrategyRejectsTamperedToken(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{})
	other := NewHMACStrategy("different", Options{})

	token, err := other.IssueToken(42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := strategy.ParseToken(token); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
	if _, err := strategy.ParseToken("not-base64!!"); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for garbage, got %v", err)
	}
}

func TestHMACStrategyRejectsExpiredToken(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{TTL: -time.Minute})

	token, err := strategy.IssueToken(7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := strategy.ParseToken(token); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestBcryptHasherCompare(t *testing.T) {
	hasher := NewBcryptHasher(4)

	hash, err := hasher.Hash("password")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := hasher.Compare(hash, "password"); err != nil {
		t.Fatalf("expected match: %v", err)
	}
	if err := hasher.Compare(hash, "wrong"); err == nil {
		t.Fatal("expected mismatch error")
	}
}
