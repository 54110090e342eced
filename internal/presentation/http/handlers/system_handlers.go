package handlers

import (
	"net/http"

	"github.com/embedworks/embedvideo-go/internal/application/container"
	"github.com/gin-gonic/gin"
)

// SystemHandlers contains health and diagnostics HTTP handlers
type SystemHandlers struct {
	container *container.Container
}

// NewSystemHandlers creates system handlers with the full container, since
// diagnostics cut across every subsystem.
func NewSystemHandlers(c *container.Container) *SystemHandlers {
	return &SystemHandlers{container: c}
}

// GetHealth handles GET /api/v1/health
func (h *SystemHandlers) GetHealth(c *gin.Context) {
	dbStatus := "ok"
	if err := h.container.DB.Ping(); err != nil {
		dbStatus = "unreachable"
	}

	status := http.StatusOK
	if dbStatus != "ok" {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{
		"status":          dbStatus,
		"oembedEndpoints": h.container.OEmbedClient.RegistrationCount(),
		"oembedCacheSize": h.container.CacheManager.OEmbedLen(),
	})
}

// GetPerformance handles GET /api/v1/perf - aggregated operation metrics
func (h *SystemHandlers) GetPerformance(c *gin.Context) {
	c.JSON(http.StatusOK, h.container.PerfTracker.Summary())
}
