// Package container provides dependency injection for all singleton services
package container

import (
	"github.com/embedworks/embedvideo-go/internal/application/services"
	"github.com/embedworks/embedvideo-go/internal/infrastructure/caching/manager"
	"github.com/embedworks/embedvideo-go/internal/infrastructure/i18n"
	"github.com/embedworks/embedvideo-go/internal/infrastructure/media"
	"github.com/embedworks/embedvideo-go/internal/infrastructure/observability/logging"
	"github.com/embedworks/embedvideo-go/internal/infrastructure/observability/performance"
	"github.com/embedworks/embedvideo-go/internal/infrastructure/oembed"
	"github.com/embedworks/embedvideo-go/internal/infrastructure/persistence/database"
	"github.com/embedworks/embedvideo-go/internal/infrastructure/persistence/registry"
	"github.com/embedworks/embedvideo-go/internal/presentation/templates"
	"github.com/embedworks/embedvideo-go/pkg/config"
)

// Container holds all singleton services and infrastructure dependencies
type Container struct {
	// Application services
	EmbedService    *services.EmbedService
	ProviderService *services.ProviderService
	AuthService     *services.AuthService

	// Rendering core
	Formatter *templates.Formatter

	// Infrastructure
	DB           *database.DB
	CacheManager *manager.Manager
	OEmbedClient *oembed.Client
	Messages     *i18n.Catalog
	Logger       *logging.ChanneledLogger
	PerfTracker  *performance.Tracker
}

// NewContainer creates and wires all singleton services
func NewContainer(
	db *database.DB,
	cacheManager *manager.Manager,
	messages *i18n.Catalog,
	logger *logging.ChanneledLogger,
	perfTracker *performance.Tracker,
) (*Container, error) {
	oembedClient := oembed.NewClient(
		cacheManager,
		config.OEmbedTimeout,
		config.OEmbedRateLimit,
		config.OEmbedRateBurst,
		config.OEmbedMaxBodyBytes,
		logger,
	)

	expander, err := media.NewURLExpander(config.MediaBaseURL)
	if err != nil {
		return nil, err
	}
	thumbnails := media.NewThumbnailProcessor(config.MediaPath, config.ThumbnailMaxWidth)

	configSource := config.Source{}
	consent := templates.NewConsentPresenter(configSource, expander, messages)
	formatter := templates.NewFormatter(configSource, oembedClient, consent)

	providerRepo := registry.NewProviderRepository(db, logger)
	providerService := services.NewProviderService(providerRepo, cacheManager, oembedClient, thumbnails, logger)
	embedService := services.NewEmbedService(providerService, formatter, logger, perfTracker)

	return &Container{
		EmbedService:    embedService,
		ProviderService: providerService,
		AuthService:     services.NewAuthService(logger),

		Formatter: formatter,

		DB:           db,
		CacheManager: cacheManager,
		OEmbedClient: oembedClient,
		Messages:     messages,
		Logger:       logger,
		PerfTracker:  perfTracker,
	}, nil
}
