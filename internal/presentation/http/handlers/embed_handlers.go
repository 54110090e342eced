// Package handlers provides HTTP request handlers for the presentation layer.
package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/embedworks/embedvideo-go/internal/application/services"
	"github.com/embedworks/embedvideo-go/internal/domain/entities/embeds"
	"github.com/embedworks/embedvideo-go/internal/infrastructure/observability/logging"
	"github.com/embedworks/embedvideo-go/internal/infrastructure/observability/performance"
	"github.com/gin-gonic/gin"
)

// EmbedHandlers contains the embed rendering HTTP handlers
type EmbedHandlers struct {
	embedService *services.EmbedService
	logger       *logging.ChanneledLogger
	perfTracker  *performance.Tracker
}

// NewEmbedHandlers creates embed handlers with injected dependencies
func NewEmbedHandlers(embedService *services.EmbedService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *EmbedHandlers {
	return &EmbedHandlers{
		embedService: embedService,
		logger:       logger,
		perfTracker:  perfTracker,
	}
}

// GetEmbed handles GET /api/v1/embed - renders markup from query parameters
// and returns it as an HTML fragment.
func (h *EmbedHandlers) GetEmbed(c *gin.Context) {
	start := time.Now()
	marker := h.perfTracker.StartOperation("get_embed_request")
	defer marker.Complete()

	req := services.RenderRequest{
		Provider: c.Query("provider"),
		URL:      c.Query("url"),
		Width:    queryInt(c, "width"),
		Height:   queryInt(c, "height"),
		Title:    c.Query("title"),
		Options: embeds.RenderOptions{
			Class:       c.Query("class"),
			Style:       c.Query("style"),
			WithConsent: queryBool(c, "consent"),
			Autoresize:  queryBool(c, "autoresize"),
			Description: c.Query("description"),
		},
	}

	result, err := h.embedService.Render(req)
	if err != nil {
		marker.SetError(err)
		h.logger.Render().Warn("Embed render failed", "url", req.URL, "error", err.Error())
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	h.logger.Render().Info("Embed rendered",
		"provider", result.Provider, "duration", time.Since(start))
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(result.HTML))
}

// PostEmbed handles POST /api/v1/embed - renders markup from a JSON request
// and returns provider plus markup as JSON.
func (h *EmbedHandlers) PostEmbed(c *gin.Context) {
	marker := h.perfTracker.StartOperation("post_embed_request")
	defer marker.Complete()

	var req services.RenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	result, err := h.embedService.Render(req)
	if err != nil {
		marker.SetError(err)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

func queryInt(c *gin.Context, key string) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return v
}

func queryBool(c *gin.Context, key string) bool {
	v, err := strconv.ParseBool(c.Query(key))
	if err != nil {
		return false
	}
	return v
}
