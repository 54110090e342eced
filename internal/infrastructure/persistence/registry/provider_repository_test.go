package registry

import (
	"path/filepath"
	"testing"

	"github.com/embedworks/embedvideo-go/internal/domain/entities/embeds"
	"github.com/embedworks/embedvideo-go/internal/domain/entities/providers"
	"github.com/embedworks/embedvideo-go/internal/infrastructure/observability/logging"
	"github.com/embedworks/embedvideo-go/internal/infrastructure/persistence/database"
)

func newTestRepo(t *testing.T) *ProviderRepository {
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

	repo := NewProviderRepository(db, logger)
	if err := repo.Migrate(); err != nil {
		t.Fatalf("migration failed: %v", err)
	}
	return repo
}

func TestSeedIsIdempotent(t *testing.T) {
	repo := newTestRepo(t)

	if err := repo.Seed(); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	first, err := repo.All()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(first) == 0 {
		t.Fatal("seed produced no providers")
	}

	if err := repo.Seed(); err != nil {
		t.Fatalf("second seed failed: %v", err)
	}
	second, err := repo.All()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(second) != len(first) {
		t.Errorf("second seed changed the provider count: %d -> %d", len(first), len(second))
	}

	yt, err := repo.Get("youtube")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if yt == nil || len(yt.URLPatterns) == 0 {
		t.Error("seeded youtube definition is incomplete")
	}
}

func TestUpsertRoundTrip(t *testing.T) {
	repo := newTestRepo(t)

	def := &providers.Definition{
		Name:          "peertube",
		Kind:          providers.KindDirect,
		ContentType:   "video",
		EmbedTemplate: "https://tube.example/videos/embed/%ID%",
		URLPatterns:   []string{`tube\.example/w/([a-zA-Z0-9]+)`},
		Hosts:         []string{"tube.example"},
		DefaultWidth:  560,
		DefaultHeight: 315,
		Attributes: []embeds.Attribute{
			{Key: "frameborder", Value: "0"},
			{Key: "allowfullscreen", Value: "true"},
		},
	}
	if err := repo.Upsert(def); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	got, err := repo.Get("peertube")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got == nil {
		t.Fatal("definition not found after upsert")
	}
	if got.EmbedTemplate != def.EmbedTemplate || got.DefaultWidth != 560 {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if len(got.Attributes) != 2 || got.Attributes[0].Key != "frameborder" {
		t.Errorf("attribute order not preserved: %+v", got.Attributes)
	}

	// Update in place.
	def.DefaultWidth = 640
	if err := repo.Upsert(def); err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}
	got, err = repo.Get("peertube")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.DefaultWidth != 640 {
		t.Errorf("upsert did not update: %+v", got)
	}
}

func TestGetUnknownProvider(t *testing.T) {
	repo := newTestRepo(t)

	def, err := repo.Get("nosuch")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if def != nil {
		t.Errorf("expected nil for unknown provider, got %+v", def)
	}
}

func TestDelete(t *testing.T) {
	repo := newTestRepo(t)
	if err := repo.Upsert(&providers.Definition{
		Name: "temp", Kind: providers.KindOEmbed, ContentType: "video",
		OEmbedEndpoint: "https://temp.example/oembed",
	}); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	deleted, err := repo.Delete("temp")
	if err != nil || !deleted {
		t.Fatalf("delete failed: %v %v", deleted, err)
	}

	deleted, err = repo.Delete("temp")
	if err != nil {
		t.Fatalf("second delete errored: %v", err)
	}
	if deleted {
		t.Error("second delete must report not-found")
	}
}

func TestSetThumbnail(t *testing.T) {
	repo := newTestRepo(t)
	if err := repo.Upsert(&providers.Definition{
		Name: "clip", Kind: providers.KindDirect, ContentType: "video",
		EmbedTemplate: "https://clip.example/embed/%ID%",
	}); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	if err := repo.SetThumbnail("clip", "/media/thumbnails/clip-1.webp"); err != nil {
		t.Fatalf("set thumbnail failed: %v", err)
	}

	got, err := repo.Get("clip")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.ThumbnailURL != "/media/thumbnails/clip-1.webp" {
		t.Errorf("thumbnail URL not persisted: %q", got.ThumbnailURL)
	}
}
