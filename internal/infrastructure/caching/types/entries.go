// Package types defines cache entry structures shared by the cache stores.
package types

import (
	"time"

	"github.com/embedworks/embedvideo-go/internal/domain/entities/providers"
)

// OEmbedEntry caches the markup returned by an oEmbed endpoint for one media URL.
type OEmbedEntry struct {
	HTML      string    `json:"html"`
	FetchedAt time.Time `json:"fetchedAt"`
	TTL       time.Duration
}

// Expired reports whether the entry has outlived its TTL at the given time.
func (e *OEmbedEntry) Expired(now time.Time) bool {
	return now.Sub(e.FetchedAt) > e.TTL
}

// ProviderEntry caches a provider definition loaded from the registry store.
type ProviderEntry struct {
	Definition *providers.Definition
	LoadedAt   time.Time
	TTL        time.Duration
}

// Expired reports whether the entry has outlived its TTL at the given time.
func (e *ProviderEntry) Expired(now time.Time) bool {
	return now.Sub(e.LoadedAt) > e.TTL
}
