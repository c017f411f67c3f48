package hints

import (
	"fmt"
	"sync"
	"time"
)

const defaultTTL = 10 * time.Second

// Store holds short-lived typing/recording flags for session participants.
// Entries expire on their own; losing one is harmless, so nothing here is
// persisted.
type Store struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]time.Time
}

func New() *Store {
	return NewWithTTL(defaultTTL)
}

func NewWithTTL(ttl time.Duration) *Store {
	return &Store{
		ttl:     ttl,
		entries: make(map[string]time.Time),
	}
}

func key(sessionID, userID int, kind string) string {
	return fmt.Sprintf("%d:%d:%s", sessionID, userID, kind)
}

func (s *Store) Mark(sessionID, userID int, kind string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key(sessionID, userID, kind)] = time.Now().Add(s.ttl)
	s.evictLocked()
}

func (s *Store) Check(sessionID, userID int, kind string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	deadline, ok := s.entries[key(sessionID, userID, kind)]
	if !ok {
		return false
	}
	if time.Now().After(deadline) {
		delete(s.entries, key(sessionID, userID, kind))
		return false
	}
	return true
}

func (s *Store) evictLocked() {
	now := time.Now()
	for k, deadline := range s.entries {
		if now.After(deadline) {
			delete(s.entries, k)
		}
	}
}
