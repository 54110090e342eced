// Package registry provides the SQL-backed store of embed provider definitions.
package registry

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/embedworks/embedvideo-go/internal/domain/entities/embeds"
	"github.com/embedworks/embedvideo-go/internal/domain/entities/providers"
	"github.com/embedworks/embedvideo-go/internal/infrastructure/observability/logging"
	"github.com/embedworks/embedvideo-go/internal/infrastructure/persistence/database"
	"github.com/pkg/errors"
)

const schema = `
CREATE TABLE IF NOT EXISTS providers (
	name TEXT PRIMARY KEY,
	kind TEXT NOT NULL,
	content_type TEXT NOT NULL DEFAULT 'video',
	embed_template TEXT NOT NULL DEFAULT '',
	url_patterns TEXT NOT NULL DEFAULT '[]',
	hosts TEXT NOT NULL DEFAULT '[]',
	default_width INTEGER NOT NULL DEFAULT 640,
	default_height INTEGER NOT NULL DEFAULT 360,
	privacy_policy_url TEXT NOT NULL DEFAULT '',
	oembed_endpoint TEXT NOT NULL DEFAULT '',
	attributes TEXT NOT NULL DEFAULT '[]',
	thumbnail_url TEXT NOT NULL DEFAULT '',
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// ProviderRepository persists provider definitions.
type ProviderRepository struct {
	db     *database.DB
	logger *logging.ChanneledLogger
}

// NewProviderRepository creates a new repository instance.
func NewProviderRepository(db *database.DB, logger *logging.ChanneledLogger) *ProviderRepository {
	return &ProviderRepository{
		db:     db,
		logger: logger,
	}
}

// Migrate creates the providers table when missing.
func (r *ProviderRepository) Migrate() error {
	if _, err := r.db.Exec(schema); err != nil {
		return errors.Wrap(err, "failed to create providers table")
	}
	return nil
}

// Get loads a single provider definition by name.
func (r *ProviderRepository) Get(name string) (*providers.Definition, error) {
	const query = `
		SELECT name, kind, content_type, embed_template, url_patterns, hosts,
		       default_width, default_height, privacy_policy_url,
		       oembed_endpoint, attributes, thumbnail_url
		FROM providers WHERE name = ?`

	start := time.Now()
	row := r.db.QueryRow(query, name)
	def, err := scanDefinition(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load provider %q", name)
	}

	r.logger.Database().Debug("Loaded provider definition",
		"provider", name, "duration", time.Since(start))
	return def, nil
}

// All loads every provider definition ordered by name.
func (r *ProviderRepository) All() ([]*providers.Definition, error) {
	const query = `
		SELECT name, kind, content_type, embed_template, url_patterns, hosts,
		       default_width, default_height, privacy_policy_url,
		       oembed_endpoint, attributes, thumbnail_url
		FROM providers ORDER BY name`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query providers")
	}
	defer rows.Close()

	var defs []*providers.Definition
	for rows.Next() {
		def, err := scanDefinition(rows)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan provider row")
		}
		defs = append(defs, def)
	}
	return defs, rows.Err()
}

// Upsert inserts or replaces a provider definition.
func (r *ProviderRepository) Upsert(def *providers.Definition) error {
	patterns, err := json.Marshal(def.URLPatterns)
	if err != nil {
		return errors.Wrap(err, "failed to encode url patterns")
	}
	hosts, err := json.Marshal(def.Hosts)
	if err != nil {
		return errors.Wrap(err, "failed to encode hosts")
	}
	attrs, err := json.Marshal(def.Attributes)
	if err != nil {
		return errors.Wrap(err, "failed to encode attributes")
	}

	const query = `
		INSERT INTO providers (
			name, kind, content_type, embed_template, url_patterns, hosts,
			default_width, default_height, privacy_policy_url,
			oembed_endpoint, attributes, thumbnail_url, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET
			kind = excluded.kind,
			content_type = excluded.content_type,
			embed_template = excluded.embed_template,
			url_patterns = excluded.url_patterns,
			hosts = excluded.hosts,
			default_width = excluded.default_width,
			default_height = excluded.default_height,
			privacy_policy_url = excluded.privacy_policy_url,
			oembed_endpoint = excluded.oembed_endpoint,
			attributes = excluded.attributes,
			thumbnail_url = excluded.thumbnail_url,
			updated_at = CURRENT_TIMESTAMP`

	_, err = r.db.Exec(query,
		def.Name, def.Kind, def.ContentType, def.EmbedTemplate,
		string(patterns), string(hosts),
		def.DefaultWidth, def.DefaultHeight, def.PrivacyPolicyURL,
		def.OEmbedEndpoint, string(attrs), def.ThumbnailURL,
	)
	if err != nil {
		return errors.Wrapf(err, "failed to upsert provider %q", def.Name)
	}

	r.logger.Database().Info("Provider definition saved", "provider", def.Name)
	return nil
}

// Delete removes a provider definition, reporting whether it existed.
func (r *ProviderRepository) Delete(name string) (bool, error) {
	result, err := r.db.Exec(`DELETE FROM providers WHERE name = ?`, name)
	if err != nil {
		return false, errors.Wrapf(err, "failed to delete provider %q", name)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "failed to read affected rows")
	}
	return affected > 0, nil
}

// SetThumbnail updates just the thumbnail URL for a provider.
func (r *ProviderRepository) SetThumbnail(name, relativeURL string) error {
	_, err := r.db.Exec(
		`UPDATE providers SET thumbnail_url = ?, updated_at = CURRENT_TIMESTAMP WHERE name = ?`,
		relativeURL, name,
	)
	return errors.Wrapf(err, "failed to update thumbnail for provider %q", name)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDefinition(row rowScanner) (*providers.Definition, error) {
	var def providers.Definition
	var patterns, hosts, attrs string

	err := row.Scan(
		&def.Name, &def.Kind, &def.ContentType, &def.EmbedTemplate,
		&patterns, &hosts,
		&def.DefaultWidth, &def.DefaultHeight, &def.PrivacyPolicyURL,
		&def.OEmbedEndpoint, &attrs, &def.ThumbnailURL,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(patterns), &def.URLPatterns); err != nil {
		return nil, errors.Wrap(err, "failed to decode url patterns")
	}
	if err := json.Unmarshal([]byte(hosts), &def.Hosts); err != nil {
		return nil, errors.Wrap(err, "failed to decode hosts")
	}
	if err := json.Unmarshal([]byte(attrs), &def.Attributes); err != nil {
		return nil, errors.Wrap(err, "failed to decode attributes")
	}

	return &def, nil
}

// Seed idempotently inserts the well-known provider set on first run.
func (r *ProviderRepository) Seed() error {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM providers`).Scan(&count); err != nil {
		return errors.Wrap(err, "failed to count providers")
	}
	if count > 0 {
		return nil
	}

	for _, def := range defaultProviders() {
		if err := r.Upsert(def); err != nil {
			return err
		}
	}

	r.logger.Database().Info("Seeded default providers", "count", len(defaultProviders()))
	return nil
}

func defaultProviders() []*providers.Definition {
	return []*providers.Definition{
		{
			Name:          "youtube",
			Kind:          providers.KindDirect,
			ContentType:   "video",
			EmbedTemplate: "https://www.youtube-nocookie.com/embed/%ID%",
			URLPatterns: []string{
				`youtube\.com/watch\?(?:.*&)?v=([a-zA-Z0-9_-]{11})`,
				`youtu\.be/([a-zA-Z0-9_-]{11})`,
				`youtube\.com/shorts/([a-zA-Z0-9_-]{11})`,
			},
			Hosts:            []string{"youtube.com", "youtu.be", "youtube-nocookie.com"},
			DefaultWidth:     640,
			DefaultHeight:    360,
			PrivacyPolicyURL: "https://policies.google.com/privacy",
			Attributes: []embeds.Attribute{
				{Key: "frameborder", Value: "0"},
				{Key: "allow", Value: "accelerometer; autoplay; clipboard-write; encrypted-media; gyroscope; picture-in-picture"},
				{Key: "allowfullscreen", Value: "allowfullscreen"},
			},
		},
		{
			Name:             "vimeo",
			Kind:             providers.KindOEmbed,
			ContentType:      "video",
			Hosts:            []string{"vimeo.com", "player.vimeo.com"},
			DefaultWidth:     640,
			DefaultHeight:    360,
			PrivacyPolicyURL: "https://vimeo.com/privacy",
			OEmbedEndpoint:   "https://vimeo.com/api/oembed.json",
		},
		{
			Name:             "soundcloud",
			Kind:             providers.KindOEmbed,
			ContentType:      "audio",
			Hosts:            []string{"soundcloud.com"},
			DefaultWidth:     640,
			DefaultHeight:    166,
			PrivacyPolicyURL: "https://soundcloud.com/pages/privacy",
			OEmbedEndpoint:   "https://soundcloud.com/oembed",
		},
		{
			Name:          "spotify",
			Kind:          providers.KindDirect,
			ContentType:   "audio",
			EmbedTemplate: "https://open.spotify.com/embed/%ID%",
			URLPatterns: []string{
				`open\.spotify\.com/(track/[a-zA-Z0-9]+)`,
				`open\.spotify\.com/(album/[a-zA-Z0-9]+)`,
				`open\.spotify\.com/(playlist/[a-zA-Z0-9]+)`,
			},
			Hosts:            []string{"open.spotify.com"},
			DefaultWidth:     300,
			DefaultHeight:    380,
			PrivacyPolicyURL: "https://www.spotify.com/legal/privacy-policy/",
			Attributes: []embeds.Attribute{
				{Key: "frameborder", Value: "0"},
				{Key: "allow", Value: "encrypted-media"},
			},
		},
		{
			Name:          "twitch",
			Kind:          providers.KindDirect,
			ContentType:   "video",
			EmbedTemplate: "https://player.twitch.tv/?channel=%ID%",
			URLPatterns: []string{
				`twitch\.tv/([a-zA-Z0-9_]+)/?$`,
			},
			Hosts:            []string{"twitch.tv", "player.twitch.tv"},
			DefaultWidth:     640,
			DefaultHeight:    360,
			PrivacyPolicyURL: "https://www.twitch.tv/p/legal/privacy-notice/",
			Attributes: []embeds.Attribute{
				{Key: "frameborder", Value: "0"},
				{Key: "allowfullscreen", Value: "allowfullscreen"},
			},
		},
		{
			Name:          "archiveorg",
			Kind:          providers.KindDirect,
			ContentType:   "video",
			EmbedTemplate: "https://archive.org/embed/%ID%",
			URLPatterns: []string{
				`archive\.org/(?:details|embed)/([^/?#]+)`,
			},
			Hosts:            []string{"archive.org"},
			DefaultWidth:     640,
			DefaultHeight:    480,
			PrivacyPolicyURL: "https://archive.org/about/terms.php",
			Attributes: []embeds.Attribute{
				{Key: "frameborder", Value: "0"},
				{Key: "allowfullscreen", Value: "allowfullscreen"},
			},
		},
		{
			Name:          "bandcamp",
			Kind:          providers.KindDirect,
			ContentType:   "audio",
			EmbedTemplate: "https://bandcamp.com/EmbeddedPlayer/album=%ID%/size=large/",
			URLPatterns: []string{
				`bandcamp\.com/EmbeddedPlayer/album=(\d+)`,
			},
			Hosts:            []string{"bandcamp.com"},
			DefaultWidth:     350,
			DefaultHeight:    470,
			PrivacyPolicyURL: "https://bandcamp.com/privacy",
		},
		{
			Name:          "dailymotion",
			Kind:          providers.KindDirect,
			ContentType:   "video",
			EmbedTemplate: "https://www.dailymotion.com/embed/video/%ID%",
			URLPatterns: []string{
				`dailymotion\.com/video/([a-zA-Z0-9]+)`,
			},
			Hosts:            []string{"dailymotion.com"},
			DefaultWidth:     640,
			DefaultHeight:    360,
			PrivacyPolicyURL: "https://legal.dailymotion.com/en/privacy-policy/",
			Attributes: []embeds.Attribute{
				{Key: "frameborder", Value: "0"},
				{Key: "allowfullscreen", Value: "allowfullscreen"},
			},
		},
	}
}
