// Package manager wires the individual cache stores into a single facade.
package manager

import (
	"time"

	"github.com/embedworks/embedvideo-go/internal/domain/entities/providers"
	"github.com/embedworks/embedvideo-go/internal/infrastructure/caching/stores"
)

// Manager owns all cache stores and exposes their operations.
type Manager struct {
	oembed    *stores.OEmbedStore
	providers *stores.ProvidersStore
}

// NewManager creates a cache manager with the given TTLs.
func NewManager(oembedTTL, providerTTL time.Duration) *Manager {
	return &Manager{
		oembed:    stores.NewOEmbedStore(oembedTTL),
		providers: stores.NewProvidersStore(providerTTL),
	}
}

// GetOEmbed retrieves cached oEmbed markup for a media URL.
func (m *Manager) GetOEmbed(mediaURL string) (string, bool) {
	return m.oembed.Get(mediaURL)
}

// SetOEmbed caches oEmbed markup for a media URL.
func (m *Manager) SetOEmbed(mediaURL, html string) {
	m.oembed.Set(mediaURL, html)
}

// GetProvider retrieves a cached provider definition by name.
func (m *Manager) GetProvider(name string) (*providers.Definition, bool) {
	return m.providers.Get(name)
}

// SetProvider caches a provider definition.
func (m *Manager) SetProvider(def *providers.Definition) {
	m.providers.Set(def)
}

// InvalidateProvider drops a cached provider definition after a registry write.
func (m *Manager) InvalidateProvider(name string) {
	m.providers.Invalidate(name)
}

// InvalidateProviders drops all cached provider definitions.
func (m *Manager) InvalidateProviders() {
	m.providers.InvalidateAll()
}

// PurgeExpired removes expired entries from every store and reports the total.
func (m *Manager) PurgeExpired() int {
	now := time.Now()
	return m.oembed.PurgeExpired(now) + m.providers.PurgeExpired(now)
}

// OEmbedLen reports the number of cached oEmbed entries.
func (m *Manager) OEmbedLen() int {
	return m.oembed.Len()
}
