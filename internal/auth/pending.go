// File: internal/auth/pending.go
package auth

import (
	"context"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// PendingRedirect is what the service remembers between starting a Google redirect and its callback.
type PendingRedirect struct {
	RedirectURI  string
	CodeVerifier string
	DeviceID     string
}

// PendingRedirectStore holds redirect state until the callback consumes it.
type PendingRedirectStore interface {
	Save(ctx context.Context, state string, pending PendingRedirect) error
	// Consume returns and forgets the redirect for state. It succeeds at most once per state.
	Consume(ctx context.Context, state string) (PendingRedirect, bool)
}

// InMemoryPendingRedirectStore keeps pending redirects in a TTL cache.
type InMemoryPendingRedirectStore struct {
	mu    sync.Mutex
	cache *cache.Cache
}

// NewInMemoryPendingRedirectStore creates a store whose entries expire after ttl.
func NewInMemoryPendingRedirectStore(ttl time.Duration) *InMemoryPendingRedirectStore {
	return &InMemoryPendingRedirectStore{
		cache: cache.New(ttl, 2*ttl),
	}
}

// Save records a pending redirect under state with the default expiration.
func (s *InMemoryPendingRedirectStore) Save(ctx context.Context, state string, pending PendingRedirect) error {
	return s.cache.Add(state, pending, cache.DefaultExpiration)
}

// Consume removes and returns the pending redirect for state.
func (s *InMemoryPendingRedirectStore) Consume(ctx context.Context, state string) (PendingRedirect, bool) {
	if state == "" {
		return PendingRedirect{}, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	v, found := s.cache.Get(state)
	if !found {
		return PendingRedirect{}, false
	}
	s.cache.Delete(state)
	pending, ok := v.(PendingRedirect)
	return pending, ok
}
