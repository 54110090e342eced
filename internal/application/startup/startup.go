// Package startup prepares the application server
package startup

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/embedworks/embedvideo-go/internal/application/container"
	"github.com/embedworks/embedvideo-go/internal/infrastructure/caching/cleanup"
	"github.com/embedworks/embedvideo-go/internal/infrastructure/caching/manager"
	"github.com/embedworks/embedvideo-go/internal/infrastructure/i18n"
	"github.com/embedworks/embedvideo-go/internal/infrastructure/observability/logging"
	"github.com/embedworks/embedvideo-go/internal/infrastructure/observability/performance"
	"github.com/embedworks/embedvideo-go/internal/infrastructure/persistence/database"
	"github.com/embedworks/embedvideo-go/internal/infrastructure/persistence/registry"
	"github.com/embedworks/embedvideo-go/internal/presentation/http/server"
	"github.com/embedworks/embedvideo-go/pkg/config"
	"github.com/gin-gonic/gin"
)

// Initialize performs the complete startup sequence and blocks until shutdown.
func Initialize() error {
	setupGinMode()

	start := time.Now().UTC()

	ctx, cancelBackgroundTasks := context.WithCancel(context.Background())
	defer cancelBackgroundTasks()

	// Step 1: Logging
	loggerConfig := logging.DefaultLoggerConfig()
	loggerConfig.OutputToFile = config.LogToFile
	loggerConfig.LogDirectory = config.LogDirectory
	if os.Getenv("LOG_LEVEL") == "debug" {
		loggerConfig.DefaultLevel = slog.LevelDebug
	}
	logger, err := logging.NewChanneledLogger(loggerConfig)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	logger.Startup().Info("Starting embedvideo-go")

	// Step 2: Database and provider registry
	db, err := database.Open(config.DBURL, config.DBAuthToken, config.DBPath, logger)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	providerRepo := registry.NewProviderRepository(db, logger)
	if err := providerRepo.Migrate(); err != nil {
		return fmt.Errorf("failed to migrate provider registry: %w", err)
	}
	if err := providerRepo.Seed(); err != nil {
		return fmt.Errorf("failed to seed provider registry: %w", err)
	}

	// Step 3: Localized messages
	messages := i18n.NewCatalog(config.DefaultLocale)
	if err := messages.LoadDirectory(config.MessagesPath); err != nil {
		return fmt.Errorf("failed to load message catalog: %w", err)
	}

	// Step 4: Caches and performance tracking
	cacheManager := manager.NewManager(config.OEmbedCacheTTL, config.ProviderCacheTTL)
	perfTracker := performance.NewTracker(0)

	// Step 5: Dependency injection container
	appContainer, err := container.NewContainer(db, cacheManager, messages, logger, perfTracker)
	if err != nil {
		return fmt.Errorf("failed to build container: %w", err)
	}
	logger.Startup().Info("Dependency injection container created")

	// Step 6: Register oEmbed endpoints from the registry
	appContainer.ProviderService.RegisterEndpoints()

	// Step 7: Background cache cleanup
	cleanupWorker := cleanup.NewWorker(cacheManager, config.CacheCleanupInterval, logger)
	go cleanupWorker.Start(ctx)

	// Step 8: HTTP server
	httpServer := server.New(config.Port, appContainer)

	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := httpServer.Start(); err != nil {
			logger.System().Error("HTTP server failed", "error", err.Error())
			gracefulShutdown <- syscall.SIGTERM
		}
	}()

	logger.Startup().Info("Application startup complete",
		"totalDuration", time.Since(start),
		"port", config.Port)

	<-gracefulShutdown
	logger.Shutdown().Info("Shutdown signal received, starting graceful shutdown")

	shutdownStart := time.Now()
	cancelBackgroundTasks()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Shutdown().Error("Error during server shutdown", "error", err.Error())
	}

	logger.Shutdown().Info("Application shutdown complete",
		"totalUptime", time.Since(start),
		"shutdownDuration", time.Since(shutdownStart))

	return nil
}

// setupGinMode selects the gin mode from the environment before any engine
// is created.
func setupGinMode() {
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}
}
