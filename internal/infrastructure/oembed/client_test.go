package oembed

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/embedworks/embedvideo-go/internal/infrastructure/caching/manager"
	"github.com/embedworks/embedvideo-go/internal/infrastructure/observability/logging"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	logger, err := logging.NewChanneledLogger(nil)
	if err != nil {
		t.Fatalf("logger init failed: %v", err)
	}
	cache := manager.NewManager(time.Hour, time.Hour)
	return NewClient(cache, 5*time.Second, 100, 100, 1<<20, logger)
}

func TestResolveSuccess(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("format") != "json" {
			t.Errorf("missing format parameter: %s", r.URL.RawQuery)
		}
		if got := r.URL.Query().Get("url"); got != "https://video.example/watch/1" {
			t.Errorf("unexpected url parameter: %q", got)
		}
		w.Write([]byte(`{"html": "<iframe src=\"https://player.example/1\"></iframe>"}`))
	}))
	defer ts.Close()

	c := newTestClient(t)
	c.RegisterEndpoint([]string{"video.example"}, ts.URL)

	html, err := c.Resolve("https://video.example/watch/1")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if !strings.Contains(html, "player.example/1") {
		t.Errorf("unexpected markup: %q", html)
	}
}

func TestResolveUsesCache(t *testing.T) {
	calls := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"html": "<iframe></iframe>"}`))
	}))
	defer ts.Close()

	c := newTestClient(t)
	c.RegisterEndpoint([]string{"video.example"}, ts.URL)

	for i := 0; i < 3; i++ {
		if _, err := c.Resolve("https://video.example/watch/2"); err != nil {
			t.Fatalf("resolve failed: %v", err)
		}
	}
	if calls != 1 {
		t.Errorf("expected a single upstream call, got %d", calls)
	}
}

func TestResolveUnregisteredHost(t *testing.T) {
	c := newTestClient(t)

	_, err := c.Resolve("https://unknown.example/watch/1")
	resErr, ok := err.(*ResolutionError)
	if !ok {
		t.Fatalf("expected *ResolutionError, got %T", err)
	}
	if !strings.Contains(resErr.Message, "unknown.example") {
		t.Errorf("error should name the host: %q", resErr.Message)
	}
}

func TestResolveHostSuffixMatch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"html": "<iframe></iframe>"}`))
	}))
	defer ts.Close()

	c := newTestClient(t)
	c.RegisterEndpoint([]string{"video.example"}, ts.URL)

	if _, err := c.Resolve("https://www.video.example/watch/1"); err != nil {
		t.Errorf("www prefix should match: %v", err)
	}
	if _, err := c.Resolve("https://sub.video.example/watch/1"); err != nil {
		t.Errorf("subdomain should match: %v", err)
	}
}

func TestResolveUpstreamError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	c := newTestClient(t)
	c.RegisterEndpoint([]string{"video.example"}, ts.URL)

	_, err := c.Resolve("https://video.example/watch/404")
	if err == nil {
		t.Fatal("expected an error for HTTP 404")
	}
	if !strings.Contains(err.Error(), "404") {
		t.Errorf("error should carry the status: %q", err.Error())
	}
}

func TestResolveEmptyMarkup(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"title": "no markup here"}`))
	}))
	defer ts.Close()

	c := newTestClient(t)
	c.RegisterEndpoint([]string{"video.example"}, ts.URL)

	if _, err := c.Resolve("https://video.example/watch/1"); err == nil {
		t.Error("expected an error for a response without markup")
	}
}

func TestResetEndpoints(t *testing.T) {
	c := newTestClient(t)
	c.RegisterEndpoint([]string{"a.example"}, "https://a.example/oembed")
	c.RegisterEndpoint([]string{"b.example"}, "https://b.example/oembed")
	if got := c.RegistrationCount(); got != 2 {
		t.Fatalf("expected 2 registrations, got %d", got)
	}

	c.ResetEndpoints()
	if got := c.RegistrationCount(); got != 0 {
		t.Errorf("expected no registrations after reset, got %d", got)
	}
}
