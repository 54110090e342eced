// Package services provides application-level orchestration between the
// provider registry, caches and the rendering core.
package services

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/embedworks/embedvideo-go/internal/domain/entities/embeds"
	"github.com/embedworks/embedvideo-go/internal/domain/entities/providers"
	"github.com/embedworks/embedvideo-go/internal/infrastructure/caching/manager"
	"github.com/embedworks/embedvideo-go/internal/infrastructure/media"
	"github.com/embedworks/embedvideo-go/internal/infrastructure/observability/logging"
	"github.com/embedworks/embedvideo-go/internal/infrastructure/oembed"
	"github.com/embedworks/embedvideo-go/internal/infrastructure/persistence/registry"
)

// ProviderService orchestrates provider registry operations with a
// cache-first lookup pattern.
type ProviderService struct {
	repo       *registry.ProviderRepository
	cache      *manager.Manager
	resolver   *oembed.Client
	thumbnails *media.ThumbnailProcessor
	logger     *logging.ChanneledLogger
}

// NewProviderService creates a new provider application service.
func NewProviderService(
	repo *registry.ProviderRepository,
	cache *manager.Manager,
	resolver *oembed.Client,
	thumbnails *media.ThumbnailProcessor,
	logger *logging.ChanneledLogger,
) *ProviderService {
	return &ProviderService{
		repo:       repo,
		cache:      cache,
		resolver:   resolver,
		thumbnails: thumbnails,
		logger:     logger,
	}
}

// Get returns a provider definition by name (cache-first). A nil definition
// with a nil error means the provider is unknown.
func (s *ProviderService) Get(name string) (*providers.Definition, error) {
	if name == "" {
		return nil, fmt.Errorf("provider name cannot be empty")
	}

	if def, hit := s.cache.GetProvider(name); hit {
		s.logger.LogCacheOperation("provider:get", name, true, 0)
		return def, nil
	}

	def, err := s.repo.Get(name)
	if err != nil {
		return nil, fmt.Errorf("failed to get provider %s: %w", name, err)
	}
	if def != nil {
		s.cache.SetProvider(def)
	}
	return def, nil
}

// List returns every registered provider definition ordered by name.
func (s *ProviderService) List() ([]*providers.Definition, error) {
	defs, err := s.repo.All()
	if err != nil {
		return nil, fmt.Errorf("failed to list providers: %w", err)
	}
	return defs, nil
}

// Upsert validates and persists a provider definition, then refreshes the
// caches and oEmbed endpoint registrations.
func (s *ProviderService) Upsert(def *providers.Definition) error {
	if def == nil {
		return fmt.Errorf("provider definition cannot be nil")
	}
	if def.Name == "" {
		return fmt.Errorf("provider name cannot be empty")
	}
	if def.Kind != providers.KindDirect && def.Kind != providers.KindOEmbed {
		return fmt.Errorf("provider kind must be %q or %q", providers.KindDirect, providers.KindOEmbed)
	}
	if def.Kind == providers.KindOEmbed && def.OEmbedEndpoint == "" {
		return fmt.Errorf("oEmbed providers require an endpoint URL")
	}
	if def.Kind == providers.KindDirect && def.EmbedTemplate == "" {
		return fmt.Errorf("direct providers require an embed template")
	}
	for _, pattern := range def.URLPatterns {
		if _, err := regexp.Compile(pattern); err != nil {
			return fmt.Errorf("invalid URL pattern %q: %w", pattern, err)
		}
	}

	if err := s.repo.Upsert(def); err != nil {
		return fmt.Errorf("failed to store provider %s: %w", def.Name, err)
	}

	s.cache.InvalidateProvider(def.Name)
	s.RegisterEndpoints()
	s.logger.Database().Info("Provider definition stored", "provider", def.Name, "kind", def.Kind)
	return nil
}

// Delete removes a provider definition. Returns false when it did not exist.
func (s *ProviderService) Delete(name string) (bool, error) {
	if name == "" {
		return false, fmt.Errorf("provider name cannot be empty")
	}

	deleted, err := s.repo.Delete(name)
	if err != nil {
		return false, fmt.Errorf("failed to delete provider %s: %w", name, err)
	}
	if deleted {
		s.cache.InvalidateProvider(name)
		s.RegisterEndpoints()
	}
	return deleted, nil
}

// SetThumbnail stores a base64-encoded preview image for a provider and
// records its relative URL in the registry.
func (s *ProviderService) SetThumbnail(name, base64Data string) (string, error) {
	def, err := s.Get(name)
	if err != nil {
		return "", err
	}
	if def == nil {
		return "", fmt.Errorf("unknown provider %s", name)
	}

	relativeURL, err := s.thumbnails.ProcessBase64Thumbnail(base64Data, name)
	if err != nil {
		return "", fmt.Errorf("failed to process thumbnail for %s: %w", name, err)
	}

	if def.ThumbnailURL != "" {
		if err := s.thumbnails.DeleteThumbnail(def.ThumbnailURL); err != nil {
			s.logger.Media().Warn("Failed to remove replaced thumbnail",
				"provider", name, "error", err.Error())
		}
	}

	if err := s.repo.SetThumbnail(name, relativeURL); err != nil {
		return "", fmt.Errorf("failed to record thumbnail for %s: %w", name, err)
	}
	s.cache.InvalidateProvider(name)
	return relativeURL, nil
}

// RegisterEndpoints rebuilds the oEmbed endpoint registrations from the
// current registry contents.
func (s *ProviderService) RegisterEndpoints() {
	defs, err := s.repo.All()
	if err != nil {
		s.logger.System().Error("Failed to load providers for endpoint registration", "error", err.Error())
		return
	}

	start := time.Now()
	s.resolver.ResetEndpoints()
	for _, def := range defs {
		if def.Kind == providers.KindOEmbed {
			s.resolver.RegisterEndpoint(def.Hosts, def.OEmbedEndpoint)
		}
	}
	s.logger.OEmbed().Info("oEmbed endpoints registered",
		"count", s.resolver.RegistrationCount(), "duration", time.Since(start))
}

// BuildService resolves a provider definition and a media URL (or bare media
// id) into a renderable service entity.
func (s *ProviderService) BuildService(providerName, mediaURL string, width, height int, title string) (*embeds.Service, error) {
	var def *providers.Definition
	var err error
	if providerName != "" {
		def, err = s.Get(providerName)
		if err != nil {
			return nil, err
		}
		if def == nil {
			return nil, fmt.Errorf("unknown provider %s", providerName)
		}
	} else {
		def, err = s.detect(mediaURL)
		if err != nil {
			return nil, err
		}
	}

	embedURL, err := s.resolveEmbedURL(def, mediaURL)
	if err != nil {
		return nil, err
	}

	svc := &embeds.Service{
		Kind:             def.EmbedKind(),
		Key:              def.Name,
		URL:              embedURL,
		Width:            width,
		Height:           height,
		DefaultWidth:     def.DefaultWidth,
		DefaultHeight:    def.DefaultHeight,
		Title:            title,
		PrivacyPolicyURL: def.PrivacyPolicyURL,
		ContentType:      def.ContentType,
		Attributes:       embeds.NewAttributes(def.Attributes...),
	}
	if def.ThumbnailURL != "" {
		svc.Thumbnail = &embeds.Thumbnail{RelativeURL: def.ThumbnailURL}
	}
	return svc, nil
}

// detect finds the provider whose URL patterns match the media URL.
func (s *ProviderService) detect(mediaURL string) (*providers.Definition, error) {
	if mediaURL == "" {
		return nil, fmt.Errorf("media URL cannot be empty")
	}

	defs, err := s.repo.All()
	if err != nil {
		return nil, fmt.Errorf("failed to load providers for detection: %w", err)
	}
	for _, def := range defs {
		for _, pattern := range def.URLPatterns {
			re, err := regexp.Compile(pattern)
			if err != nil {
				continue
			}
			if re.MatchString(mediaURL) {
				return def, nil
			}
		}
	}
	return nil, fmt.Errorf("no provider matches %s", mediaURL)
}

// resolveEmbedURL computes the frame URL for a definition. oEmbed providers
// pass the media URL through untouched; direct providers extract the media id
// and substitute it into the embed template.
func (s *ProviderService) resolveEmbedURL(def *providers.Definition, mediaURL string) (string, error) {
	if def.EmbedKind() == embeds.KindOEmbed {
		return mediaURL, nil
	}

	id := ""
	for _, pattern := range def.URLPatterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			continue
		}
		if m := re.FindStringSubmatch(mediaURL); len(m) > 1 {
			id = m[1]
			break
		}
	}
	if id == "" {
		// Bare media ids are accepted when they cannot be mistaken for a URL.
		if strings.Contains(mediaURL, "/") || strings.Contains(mediaURL, " ") || mediaURL == "" {
			return "", fmt.Errorf("could not extract a media id for %s from %s", def.Name, mediaURL)
		}
		id = mediaURL
	}
	return strings.ReplaceAll(def.EmbedTemplate, "%ID%", id), nil
}
