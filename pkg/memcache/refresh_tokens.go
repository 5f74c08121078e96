// pkg/memcache/refresh_tokens.go
package mem

import (
	"sync"
	"time"
)

type RefreshTokenStore interface {
	Set(token string, userID string, ttl time.Duration)

	// Consume returns the userID for token if not expired,
	// and removes the token (single-use). Returns "" if missing/expired.
	Consume(token string) string

	Peek(token string) (string, bool)

	// Revoke drops a single token. Unknown tokens are ignored.
	Revoke(token string)

	// RevokeUser drops every token issued to userID.
	RevokeUser(userID string)

	// PurgeExpired removes expired entries and reports how many were dropped.
	PurgeExpired() int
}

type entry struct {
	userID    string
	expiresAt time.Time
}

type RefreshTokens struct {
	mu   sync.RWMutex
	data map[string]entry
	now  func() time.Time
}

func NewRefreshTokens() *RefreshTokens {
	return &RefreshTokens{
		data: make(map[string]entry),
		now:  time.Now,
	}
}

func (s *RefreshTokens) Set(token string, userID string, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[token] = entry{
		userID:    userID,
		expiresAt: s.now().Add(ttl),
	}
}

func (s *RefreshTokens) Consume(token string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[token]
	if !ok {
		return ""
	}
	delete(s.data, token)
	if s.now().After(e.expiresAt) {
		return ""
	}
	return e.userID
}

func (s *RefreshTokens) Peek(token string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data[token]
	if !ok || s.now().After(e.expiresAt) {
		return "", false
	}
	return e.userID, true
}

func (s *RefreshTokens) Revoke(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, token)
}

func (s *RefreshTokens) RevokeUser(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for token, e := range s.data {
		if e.userID == userID {
			delete(s.data, token)
		}
	}
}

func (s *RefreshTokens) PurgeExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	n := 0
	for token, e := range s.data {
		if now.After(e.expiresAt) {
			delete(s.data, token)
			n++
		}
	}
	return n
}
