package pesapal

import (
	"testing"
	"time"
)

func TestSessionTokenLifecycle(t *testing.T) {
	now := time.Now()
	session := NewSession(time.Minute)
	session.now = func() time.Time { return now }

	if _, ok := session.Token(); ok {
		t.Fatal("expected empty session to report no token")
	}

	session.StoreToken("abc", time.Time{})
	if token, ok := session.Token(); !ok || token != "abc" {
		t.Fatalf("expected cached token, got %q %v", token, ok)
	}

	now = now.Add(2 * time.Minute)
	if _, ok := session.Token(); ok {
		t.Fatal("expected token to expire after default TTL")
	}
}

func TestSessionTokenExplicitExpiry(t *testing.T) {
	now := time.Now()
	session := NewSession(time.Hour)
	session.now = func() time.Time { return now }

	session.StoreToken("abc", now.Add(10*time.Second))

	now = now.Add(9 * time.Second)
	if _, ok := session.Token(); !ok {
		t.Fatal("expected token to still be valid")
	}

	now = now.Add(2 * time.Second)
	if _, ok := session.Token(); ok {
		t.Fatal("expected token to expire at explicit expiry")
	}
}

func TestSessionInvalidateToken(t *testing.T) {
	session := NewSession(time.Minute)
	session.StoreToken("abc", time.Now().Add(time.Hour))
	session.InvalidateToken()
	if _, ok := session.Token(); ok {
		t.Fatal("expected invalidated token to be gone")
	}
}

func TestSessionIPNID(t *testing.T) {
	session := NewSession(time.Minute)
	if _, ok := session.IPNID(); ok {
		t.Fatal("expected no ipn id initially")
	}
	session.StoreIPNID("ipn-1")
	if id, ok := session.IPNID(); !ok || id != "ipn-1" {
		t.Fatalf("expected cached ipn id, got %q %v", id, ok)
	}
}
