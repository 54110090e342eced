package handlers

import (
	"net/http"
	"time"

	"github.com/embedworks/embedvideo-go/internal/application/services"
	"github.com/embedworks/embedvideo-go/internal/domain/entities/providers"
	"github.com/embedworks/embedvideo-go/internal/infrastructure/observability/logging"
	"github.com/embedworks/embedvideo-go/internal/infrastructure/observability/performance"
	"github.com/gin-gonic/gin"
)

// ProviderHandlers contains the provider registry HTTP handlers
type ProviderHandlers struct {
	providerService *services.ProviderService
	logger          *logging.ChanneledLogger
	perfTracker     *performance.Tracker
}

// NewProviderHandlers creates provider handlers with injected dependencies
func NewProviderHandlers(providerService *services.ProviderService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *ProviderHandlers {
	return &ProviderHandlers{
		providerService: providerService,
		logger:          logger,
		perfTracker:     perfTracker,
	}
}

// GetProviders handles GET /api/v1/providers - lists all registered providers
func (h *ProviderHandlers) GetProviders(c *gin.Context) {
	marker := h.perfTracker.StartOperation("get_providers_request")
	defer marker.Complete()

	defs, err := h.providerService.List()
	if err != nil {
		marker.SetError(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if defs == nil {
		defs = []*providers.Definition{}
	}

	c.JSON(http.StatusOK, gin.H{"providers": defs, "count": len(defs)})
}

// GetProvider handles GET /api/v1/providers/:name
func (h *ProviderHandlers) GetProvider(c *gin.Context) {
	marker := h.perfTracker.StartOperation("get_provider_request")
	defer marker.Complete()

	def, err := h.providerService.Get(c.Param("name"))
	if err != nil {
		marker.SetError(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if def == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "provider not found"})
		return
	}

	c.JSON(http.StatusOK, def)
}

// PutProvider handles PUT /api/v1/providers/:name - creates or replaces a
// provider definition.
func (h *ProviderHandlers) PutProvider(c *gin.Context) {
	start := time.Now()
	marker := h.perfTracker.StartOperation("put_provider_request")
	defer marker.Complete()

	var def providers.Definition
	if err := c.ShouldBindJSON(&def); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}
	def.Name = c.Param("name")

	if err := h.providerService.Upsert(&def); err != nil {
		marker.SetError(err)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	h.logger.Database().Info("Provider updated via API",
		"provider", def.Name, "duration", time.Since(start))
	c.JSON(http.StatusOK, &def)
}

// DeleteProvider handles DELETE /api/v1/providers/:name
func (h *ProviderHandlers) DeleteProvider(c *gin.Context) {
	marker := h.perfTracker.StartOperation("delete_provider_request")
	defer marker.Complete()

	deleted, err := h.providerService.Delete(c.Param("name"))
	if err != nil {
		marker.SetError(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "provider not found"})
		return
	}

	c.Status(http.StatusNoContent)
}

// PostProviderThumbnail handles POST /api/v1/providers/:name/thumbnail -
// stores a base64-encoded preview image for the provider.
func (h *ProviderHandlers) PostProviderThumbnail(c *gin.Context) {
	marker := h.perfTracker.StartOperation("post_provider_thumbnail_request")
	defer marker.Complete()

	var body struct {
		Data string `json:"data" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	relativeURL, err := h.providerService.SetThumbnail(c.Param("name"), body.Data)
	if err != nil {
		marker.SetError(err)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"thumbnailUrl": relativeURL})
}
