package cache

import (
	"sync"
	"time"
)

// Entry is a cached value together with the time it was last fetched.
// A zero Entry is "never fetched".
type Entry[T any] struct {
	Value     T
	FetchedAt time.Time
	TTL       time.Duration
	present   bool
}

func (e Entry[T]) Present() bool { return e.present }

// Expired reports whether the entry is older than its TTL at now.
// An entry that was never fetched is always expired.
func (e Entry[T]) Expired(now time.Time) bool {
	if !e.present {
		return true
	}
	return now.Sub(e.FetchedAt) > e.TTL
}

type Clock func() time.Time

// Store holds entries of one type under string keys. Entries are never
// deleted and a present entry never becomes absent again.
type Store[T any] struct {
	mu      sync.RWMutex
	entries map[string]Entry[T]
	ttl     time.Duration
	now     Clock
}

func NewStore[T any](ttl time.Duration, now Clock) *Store[T] {
	if now == nil {
		now = time.Now
	}
	return &Store[T]{
		entries: make(map[string]Entry[T]),
		ttl:     ttl,
		now:     now,
	}
}

func (s *Store[T]) Get(key string) (Entry[T], bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[key]
	if !ok {
		return Entry[T]{TTL: s.ttl}, false
	}
	return e, true
}

// Set stores value under key and stamps it with the current time.
func (s *Store[T]) Set(key string, value T) Entry[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := Entry[T]{
		Value:     value,
		FetchedAt: s.now(),
		TTL:       s.ttl,
		present:   true,
	}
	s.entries[key] = e
	return e
}

func (s *Store[T]) IsExpired(key string, now time.Time) bool {
	e, _ := s.Get(key)
	return e.Expired(now)
}

func (s *Store[T]) Now() time.Time { return s.now() }

func (s *Store[T]) TTL() time.Duration { return s.ttl }
