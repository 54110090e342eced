package stores

import (
	"testing"
	"time"

	"github.com/embedworks/embedvideo-go/internal/domain/entities/providers"
)

func TestOEmbedStoreRoundTrip(t *testing.T) {
	s := NewOEmbedStore(time.Hour)

	if _, hit := s.Get("https://video.example/1"); hit {
		t.Error("unexpected hit on empty store")
	}

	s.Set("https://video.example/1", "<iframe></iframe>")
	html, hit := s.Get("https://video.example/1")
	if !hit || html != "<iframe></iframe>" {
		t.Errorf("round trip failed: %q %v", html, hit)
	}
	if got := s.Len(); got != 1 {
		t.Errorf("expected 1 entry, got %d", got)
	}
}

func TestOEmbedStoreExpiry(t *testing.T) {
	s := NewOEmbedStore(time.Millisecond)
	s.Set("key", "markup")

	later := time.Now().Add(time.Minute)
	if purged := s.PurgeExpired(later); purged != 1 {
		t.Errorf("expected 1 purged entry, got %d", purged)
	}
	if _, hit := s.Get("key"); hit {
		t.Error("expired entry must not be returned")
	}
}

func TestProvidersStoreInvalidate(t *testing.T) {
	s := NewProvidersStore(time.Hour)
	s.Set(&providers.Definition{Name: "youtube", Kind: providers.KindDirect})
	s.Set(&providers.Definition{Name: "vimeo", Kind: providers.KindOEmbed})

	if _, hit := s.Get("youtube"); !hit {
		t.Fatal("expected cached definition")
	}

	s.Invalidate("youtube")
	if _, hit := s.Get("youtube"); hit {
		t.Error("invalidated definition must not be returned")
	}
	if _, hit := s.Get("vimeo"); !hit {
		t.Error("other definitions must survive a single invalidation")
	}

	s.InvalidateAll()
	if _, hit := s.Get("vimeo"); hit {
		t.Error("definitions must not survive InvalidateAll")
	}
}
