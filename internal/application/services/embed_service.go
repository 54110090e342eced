package services

import (
	"fmt"
	"time"

	"github.com/embedworks/embedvideo-go/internal/domain/entities/embeds"
	"github.com/embedworks/embedvideo-go/internal/infrastructure/observability/logging"
	"github.com/embedworks/embedvideo-go/internal/infrastructure/observability/performance"
	"github.com/embedworks/embedvideo-go/internal/presentation/templates"
)

// RenderRequest carries everything needed to render one embed.
type RenderRequest struct {
	Provider string               `json:"provider,omitempty"` // empty means detect from the URL
	URL      string               `json:"url"`
	Width    int                  `json:"width,omitempty"`
	Height   int                  `json:"height,omitempty"`
	Title    string               `json:"title,omitempty"`
	Options  embeds.RenderOptions `json:"options,omitempty"`
}

// RenderResult is the outcome of a render operation.
type RenderResult struct {
	Provider string `json:"provider"`
	HTML     string `json:"html"`
}

// EmbedService turns render requests into markup via the provider registry
// and the rendering core.
type EmbedService struct {
	providers   *ProviderService
	formatter   *templates.Formatter
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

// NewEmbedService creates a new embed rendering service.
func NewEmbedService(
	providers *ProviderService,
	formatter *templates.Formatter,
	logger *logging.ChanneledLogger,
	perfTracker *performance.Tracker,
) *EmbedService {
	return &EmbedService{
		providers:   providers,
		formatter:   formatter,
		logger:      logger,
		perfTracker: perfTracker,
	}
}

// Render resolves the request's provider and produces the embed markup.
// Rendering itself never fails; errors only arise from provider resolution.
func (s *EmbedService) Render(req RenderRequest) (*RenderResult, error) {
	marker := s.perfTracker.StartOperation("render_embed")
	defer marker.Complete()

	if req.URL == "" {
		marker.SetError(fmt.Errorf("url is required"))
		return nil, fmt.Errorf("url is required")
	}

	svc, err := s.providers.BuildService(req.Provider, req.URL, req.Width, req.Height, req.Title)
	if err != nil {
		marker.SetError(err)
		return nil, err
	}

	start := time.Now()
	html := s.formatter.Render(svc, req.Options)
	s.logger.Render().Debug("Rendered embed",
		"provider", svc.Key, "url", req.URL, "duration", time.Since(start))

	return &RenderResult{Provider: svc.Key, HTML: html}, nil
}
