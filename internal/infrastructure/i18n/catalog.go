// Package i18n provides localized message resolution for rendered markup.
package i18n

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// builtinMessages are the English defaults compiled into the binary. Locale
// files loaded from disk override individual ids, never the whole set.
var builtinMessages = map[string]string{
	"embedvideo-consent-load":           "Load $1",
	"embedvideo-consent-privacy-notice": "This content is hosted by $1. By showing the external content you accept its terms and conditions.",
	"embedvideo-consent-privacy-policy": "Privacy policy",
	"embedvideo-consent-continue":       "Continue",
	"embedvideo-consent-dismiss":        "Dismiss",

	"embedvideo-service-youtube":     "YouTube",
	"embedvideo-service-vimeo":       "Vimeo",
	"embedvideo-service-soundcloud":  "SoundCloud",
	"embedvideo-service-spotify":     "Spotify",
	"embedvideo-service-twitch":      "Twitch",
	"embedvideo-service-archiveorg":  "Internet Archive",
	"embedvideo-service-bandcamp":    "Bandcamp",
	"embedvideo-service-dailymotion": "Dailymotion",
}

// Catalog resolves message ids to localized text with positional parameters.
// It is safe for concurrent use.
type Catalog struct {
	locale   string
	mu       sync.RWMutex
	messages map[string]map[string]string // locale -> id -> text
}

// NewCatalog creates a catalog for the given locale, seeded with the built-in
// English messages.
func NewCatalog(locale string) *Catalog {
	if locale == "" {
		locale = "en"
	}
	c := &Catalog{
		locale:   locale,
		messages: make(map[string]map[string]string),
	}
	en := make(map[string]string, len(builtinMessages))
	for id, text := range builtinMessages {
		en[id] = text
	}
	c.messages["en"] = en
	return c
}

// LoadDirectory loads per-locale JSON message files (en.json, de.json, ...)
// from dir. Missing directories are not an error; malformed files are.
func (c *Catalog) LoadDirectory(dir string) error {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read messages directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		locale := strings.TrimSuffix(entry.Name(), ".json")

		raw, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return fmt.Errorf("failed to read messages file %s: %w", entry.Name(), err)
		}

		var overrides map[string]string
		if err := json.Unmarshal(raw, &overrides); err != nil {
			return fmt.Errorf("failed to parse messages file %s: %w", entry.Name(), err)
		}

		c.mu.Lock()
		bucket := c.messages[locale]
		if bucket == nil {
			bucket = make(map[string]string)
			c.messages[locale] = bucket
		}
		for id, text := range overrides {
			bucket[id] = text
		}
		c.mu.Unlock()
	}

	return nil
}

// Text resolves a message id, substituting $1..$n with params. Ids missing
// from the active locale fall back to English, then to a "(id)" placeholder.
func (c *Catalog) Text(id string, params ...string) string {
	c.mu.RLock()
	text, ok := c.lookup(c.locale, id)
	if !ok {
		text, ok = c.lookup("en", id)
	}
	c.mu.RUnlock()

	if !ok {
		return "(" + id + ")"
	}

	for i := len(params); i >= 1; i-- {
		text = strings.ReplaceAll(text, fmt.Sprintf("$%d", i), params[i-1])
	}
	return text
}

// Has reports whether a message id resolves in the active locale or English.
func (c *Catalog) Has(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if _, ok := c.lookup(c.locale, id); ok {
		return true
	}
	_, ok := c.lookup("en", id)
	return ok
}

func (c *Catalog) lookup(locale, id string) (string, bool) {
	bucket, ok := c.messages[locale]
	if !ok {
		return "", false
	}
	text, ok := bucket[id]
	return text, ok
}
