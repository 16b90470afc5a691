package pesapal

import (
	"sync"
	"time"
)

// Session holds the process-lifetime processor state: the cached bearer
// token with its expiry and the IPN registration id. Safe for concurrent
// use; a race on first populate at worst costs a redundant network call.
type Session struct {
	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
	ipnID       string

	defaultTTL time.Duration
	now        func() time.Time
}

// NewSession creates a session whose tokens fall back to defaultTTL when
// the processor response carries no usable expiry.
func NewSession(defaultTTL time.Duration) *Session {
	if defaultTTL <= 0 {
		defaultTTL = 4 * time.Minute
	}
	return &Session{defaultTTL: defaultTTL, now: time.Now}
}

// Token returns the cached bearer token if it has not expired.
func (s *Session) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" || !s.now().Before(s.tokenExpiry) {
		return "", false
	}
	return s.token, true
}

// StoreToken caches a freshly acquired token. A zero expiry applies the
// session default TTL.
func (s *Session) StoreToken(token string, expiry time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if expiry.IsZero() {
		expiry = s.now().Add(s.defaultTTL)
	}
	s.token = token
	s.tokenExpiry = expiry
}

// InvalidateToken drops the cached token, forcing the next caller to
// reauthenticate.
func (s *Session) InvalidateToken() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.tokenExpiry = time.Time{}
}

// IPNID returns the cached notification registration id, if any.
func (s *Session) IPNID() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ipnID, s.ipnID != ""
}

// StoreIPNID caches the notification registration id for the rest of the
// process lifetime.
func (s *Session) StoreIPNID(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ipnID = id
}
