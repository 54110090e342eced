// Package stores provides concrete cache store implementations
package stores

import (
	"sync"
	"time"

	"github.com/embedworks/embedvideo-go/internal/infrastructure/caching/types"
)

// OEmbedStore implements TTL caching for resolved oEmbed markup keyed by media URL.
type OEmbedStore struct {
	entries map[string]*types.OEmbedEntry
	ttl     time.Duration
	mu      sync.RWMutex
}

// NewOEmbedStore creates an oEmbed cache store with the given entry TTL.
func NewOEmbedStore(ttl time.Duration) *OEmbedStore {
	return &OEmbedStore{
		entries: make(map[string]*types.OEmbedEntry),
		ttl:     ttl,
	}
}

// Get retrieves cached markup for a media URL, honoring the TTL.
func (s *OEmbedStore) Get(mediaURL string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, exists := s.entries[mediaURL]
	if !exists || entry.Expired(time.Now()) {
		return "", false
	}
	return entry.HTML, true
}

// Set stores resolved markup for a media URL.
func (s *OEmbedStore) Set(mediaURL, html string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[mediaURL] = &types.OEmbedEntry{
		HTML:      html,
		FetchedAt: time.Now(),
		TTL:       s.ttl,
	}
}

// PurgeExpired removes expired entries and returns how many were dropped.
func (s *OEmbedStore) PurgeExpired(now time.Time) int {
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

// Len reports the number of cached entries, expired or not.
func (s *OEmbedStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
