package services

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/embedworks/embedvideo-go/internal/domain/entities/embeds"
	"github.com/embedworks/embedvideo-go/internal/domain/entities/providers"
	"github.com/embedworks/embedvideo-go/internal/infrastructure/caching/manager"
	"github.com/embedworks/embedvideo-go/internal/infrastructure/media"
	"github.com/embedworks/embedvideo-go/internal/infrastructure/observability/logging"
	"github.com/embedworks/embedvideo-go/internal/infrastructure/oembed"
	"github.com/embedworks/embedvideo-go/internal/infrastructure/persistence/database"
	"github.com/embedworks/embedvideo-go/internal/infrastructure/persistence/registry"
)

func newTestProviderService(t *testing.T) *ProviderService {
	t.Helper()
	logger, err := logging.NewChanneledLogger(nil)
	if err != nil {
		t.Fatalf("logger init failed: %v", err)
	}

	db, err := database.Open("", "", filepath.Join(t.TempDir(), "providers.db"), logger)
	if err != nil {
		t.Fatalf("database open failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	repo := registry.NewProviderRepository(db, logger)
	if err := repo.Migrate(); err != nil {
		t.Fatalf("migration failed: %v", err)
	}
	if err := repo.Seed(); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	cache := manager.NewManager(time.Hour, time.Hour)
	resolver := oembed.NewClient(cache, 5*time.Second, 100, 100, 1<<20, logger)
	thumbnails := media.NewThumbnailProcessor(t.TempDir(), 640)

	return NewProviderService(repo, cache, resolver, thumbnails, logger)
}

func TestBuildServiceExtractsMediaID(t *testing.T) {
	s := newTestProviderService(t)

	svc, err := s.BuildService("youtube", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", 0, 0, "")
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if svc.URL != "https://www.youtube-nocookie.com/embed/dQw4w9WgXcQ" {
		t.Errorf("unexpected embed URL: %q", svc.URL)
	}
	if svc.Kind != embeds.KindDirect {
		t.Errorf("unexpected kind: %v", svc.Kind)
	}
	if svc.DefaultWidth != 640 || svc.DefaultHeight != 360 {
		t.Errorf("defaults not carried over: %dx%d", svc.DefaultWidth, svc.DefaultHeight)
	}
}

func TestBuildServiceAcceptsBareID(t *testing.T) {
	s := newTestProviderService(t)

	svc, err := s.BuildService("youtube", "dQw4w9WgXcQ", 0, 0, "")
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if svc.URL != "https://www.youtube-nocookie.com/embed/dQw4w9WgXcQ" {
		t.Errorf("unexpected embed URL: %q", svc.URL)
	}
}

func TestBuildServiceDetectsProvider(t *testing.T) {
	s := newTestProviderService(t)

	svc, err := s.BuildService("", "https://youtu.be/dQw4w9WgXcQ", 800, 450, "A video")
	if err != nil {
		t.Fatalf("detection failed: %v", err)
	}
	if svc.Key != "youtube" {
		t.Errorf("wrong provider detected: %q", svc.Key)
	}
	if svc.Width != 800 || svc.Height != 450 || svc.Title != "A video" {
		t.Errorf("request values not carried: %+v", svc)
	}
}

func TestBuildServiceOEmbedPassThrough(t *testing.T) {
	s := newTestProviderService(t)

	svc, err := s.BuildService("vimeo", "https://vimeo.com/76979871", 0, 0, "")
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if svc.Kind != embeds.KindOEmbed {
		t.Errorf("unexpected kind: %v", svc.Kind)
	}
	if svc.URL != "https://vimeo.com/76979871" {
		t.Errorf("oEmbed URL must pass through untouched: %q", svc.URL)
	}
}

func TestBuildServiceUnknownProvider(t *testing.T) {
	s := newTestProviderService(t)
	if _, err := s.BuildService("nosuch", "https://example.com/1", 0, 0, ""); err == nil {
		t.Error("unknown provider must fail")
	}
	if _, err := s.BuildService("", "https://unmatched.example/1", 0, 0, ""); err == nil {
		t.Error("undetectable URL must fail")
	}
}

func TestUpsertValidation(t *testing.T) {
	s := newTestProviderService(t)

	cases := []struct {
		name string
		def  *providers.Definition
	}{
		{"nil definition", nil},
		{"empty name", &providers.Definition{Kind: providers.KindDirect, EmbedTemplate: "x"}},
		{"bad kind", &providers.Definition{Name: "x", Kind: "magic"}},
		{"oembed without endpoint", &providers.Definition{Name: "x", Kind: providers.KindOEmbed}},
		{"direct without template", &providers.Definition{Name: "x", Kind: providers.KindDirect}},
		{"invalid pattern", &providers.Definition{
			Name: "x", Kind: providers.KindDirect, EmbedTemplate: "t",
			URLPatterns: []string{"("},
		}},
	}
	for _, tc := range cases {
		if err := s.Upsert(tc.def); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}

func TestUpsertRefreshesEndpoints(t *testing.T) {
	s := newTestProviderService(t)
	s.RegisterEndpoints()
	before := s.resolver.RegistrationCount()

	err := s.Upsert(&providers.Definition{
		Name: "peertube", Kind: providers.KindOEmbed, ContentType: "video",
		OEmbedEndpoint: "https://tube.example/services/oembed",
		Hosts:          []string{"tube.example"},
	})
	if err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	if got := s.resolver.RegistrationCount(); got != before+1 {
		t.Errorf("expected %d registrations after upsert, got %d", before+1, got)
	}
}

func TestGetUsesCache(t *testing.T) {
	s := newTestProviderService(t)

	def, err := s.Get("youtube")
	if err != nil || def == nil {
		t.Fatalf("get failed: %v %v", def, err)
	}

	if _, hit := s.cache.GetProvider("youtube"); !hit {
		t.Error("definition should be cached after a read")
	}
}
