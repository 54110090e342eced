package stores

import (
	"sync"
	"time"

	"github.com/embedworks/embedvideo-go/internal/domain/entities/providers"
	"github.com/embedworks/embedvideo-go/internal/infrastructure/caching/types"
)

// ProvidersStore caches provider definitions loaded from the registry store.
type ProvidersStore struct {
	entries map[string]*types.ProviderEntry
	ttl     time.Duration
	mu      sync.RWMutex
}

// NewProvidersStore creates a provider definition cache with the given TTL.
func NewProvidersStore(ttl time.Duration) *ProvidersStore {
	return &ProvidersStore{
		entries: make(map[string]*types.ProviderEntry),
		ttl:     ttl,
	}
}

// Get retrieves a cached provider definition by name, honoring the TTL.
func (s *ProvidersStore) Get(name string) (*providers.Definition, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, exists := s.entries[name]
	if !exists || entry.Expired(time.Now()) {
		return nil, false
	}
	return entry.Definition, true
}

// Set caches a provider definition.
func (s *ProvidersStore) Set(def *providers.Definition) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[def.Name] = &types.ProviderEntry{
		Definition: def,
		LoadedAt:   time.Now(),
		TTL:        s.ttl,
	}
}

// Invalidate drops a single provider definition from the cache.
func (s *ProvidersStore) Invalidate(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, name)
}

// InvalidateAll drops every cached definition.
func (s *ProvidersStore) InvalidateAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]*types.ProviderEntry)
}

// PurgeExpired removes expired entries and returns how many were dropped.
func (s *ProvidersStore) PurgeExpired(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	purged := 0
	for key, entry := range s.entries {
		if entry.Expired(now) {
			delete(s.entries, key)
			purged++
		}
	}
	return purged
}
