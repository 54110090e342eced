package media

import "testing"

func TestExpandRelativeURL(t *testing.T) {
	e, err := NewURLExpander("https://cdn.example.com/media")
	if err != nil {
		t.Fatalf("expander init failed: %v", err)
	}

	got, err := e.Expand("/media/thumbnails/yt.webp")
	if err != nil {
		t.Fatalf("expand failed: %v", err)
	}
	if got != "https://cdn.example.com/media/thumbnails/yt.webp" {
		t.Errorf("unexpected expansion: %q", got)
	}
}

func TestExpandEmptyURL(t *testing.T) {
	e, err := NewURLExpander("https://cdn.example.com")
	if err != nil {
		t.Fatalf("expander init failed: %v", err)
	}
	if _, err := e.Expand("  "); err == nil {
		t.Error("empty relative URL must fail")
	}
}

func TestNewURLExpanderRejectsRelativeBase(t *testing.T) {
	if _, err := NewURLExpander("/media"); err == nil {
		t.Error("relative base URL must be rejected")
	}
}
