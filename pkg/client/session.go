package client

import (
	"sync"
	"time"
)

// Tokens is the client-held half of a session.
type Tokens struct {
	AccessToken     string
	AccessExpiresAt time.Time
	RefreshToken    string
}

// Session stores the current tokens. Set and Clear replace the whole value,
// so readers never observe a mix of old and new tokens.
type Session struct {
	mu     sync.RWMutex
	tokens Tokens
	ok     bool
}

func NewSession() *Session {
	return &Session{}
}

func (s *Session) Get() (Tokens, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tokens, s.ok
}

func (s *Session) Set(t Tokens) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = t
	s.ok = true
}

func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = Tokens{}
	s.ok = false
}
