// Package startup prepares the application server
package startup

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DainoStore/dainostore-go/internal/application/container"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/caching/cleanup"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/observability/logging"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/tenant"
	"github.com/DainoStore/dainostore-go/internal/presentation/http/server"
	"github.com/DainoStore/dainostore-go/pkg/config"
)

// Initialize performs the complete multi-store startup sequence
func Initialize() error {
	setupLogging()

	start := time.Now().UTC()

	ctx, cancelBackgroundTasks := context.WithCancel(context.Background())
	defer cancelBackgroundTasks()

	log.Println("\033[32m" + `

  ██▄▄▄  ▄▄▄▄  ▄▄ ▄▄▄▄▄  ▄▄▄▄  ▄▄▄▄ ▄▄▄▄▄ ▄▄▄▄  ▄▄▄▄  ▄▄▄▄
  ██  ██ ▄▄▄██ ██ ██ ██ ██  ██ ██▄▄   ██  ██  ██ ██▄▄▄ ██▄▄
  ██▄▄█▀ ▀▄▄██ ██ ██ ██ ▀█▄▄█▀ ▄▄▄██  ██  ▀█▄▄█▀ ██    ██▄▄
` + "\033[97m" + `
  slot-based storefronts
` + "\033[0m")

	// Step 1: Create the channeled logger before anything that logs
	logger, err := logging.NewChanneledLogger(logging.DefaultLoggerConfig())
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	// Step 2: Initialize the store system
	log.Println("Initializing...")
	storeManager := tenant.NewManager(logger)

	// Step 3: Load the store registry to discover all stores
	log.Println("Loading store registry...")
	registry, err := tenant.LoadStoreRegistry()
	if err != nil {
		return fmt.Errorf("failed to load store registry: %w", err)
	}
	log.Printf("Found %d stores in registry", len(registry.Stores))

	// Step 4: Pre-activate registered stores
	log.Println("Starting store pre-activation...")
	if err := storeManager.PreActivateAllStores(); err != nil {
		return fmt.Errorf("store pre-activation failed: %w", err)
	}

	// Step 5: Validate store activation
	log.Println("Validating store activation...")
	if err := storeManager.ValidatePreActivation(); err != nil {
		return fmt.Errorf("store validation failed: %w", err)
	}

	// Step 6: Verify active store connections
	activeCount, err := storeManager.GetActiveStoreCount()
	if err != nil {
		return fmt.Errorf("failed to get active store count: %w", err)
	}
	log.Printf("%d active store connections verified", activeCount)

	// Step 7: Initialize cache system
	log.Println("Initializing cache system...")
	cacheManager := storeManager.GetCacheManager()
	for storeID, storeInfo := range registry.Stores {
		if storeInfo.Status == "active" {
			cacheManager.InitializeStore(storeID)
		}
	}

	// Step 8: Create dependency injection container
	log.Println("Initializing dependency injection container...")
	appContainer := container.NewContainer(storeManager, cacheManager)
	logger.Startup().Info("Container initialization complete, switching to channeled logging")

	// Step 9: Start the admin activity broadcaster
	go appContainer.AdminBroadcaster.Run()

	// Step 10: Warm store caches
	if config.WarmCachesOnStartup {
		logger.Startup().Info("Warming store caches...")
		warmStart := time.Now()
		if err := appContainer.WarmingService.WarmAllStores(); err != nil {
			logger.Startup().Error("Cache warming failed", "error", err.Error(), "duration", time.Since(warmStart))
		} else {
			logger.Startup().Info("Cache warming complete", "duration", time.Since(warmStart))
		}
	}

	// Step 11: Start the background cleanup worker
	logger.Startup().Info("Starting background cleanup worker...")
	cleanupWorker := cleanup.NewWorker(cacheManager, cleanup.NewConfig())
	go cleanupWorker.Start(ctx)

	// Step 12: Start HTTP server
	httpServer := server.New(config.Port, appContainer)

	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := httpServer.Start(); err != nil {
			logger.System().Error("HTTP server failed", "error", err.Error())
		}
	}()

	logger.Startup().Info("Application startup complete",
		"totalDuration", time.Since(start),
		"activeStores", activeCount,
		"port", config.Port)

	// Wait for shutdown signal
	<-gracefulShutdown
	logger.Shutdown().Info("Shutdown signal received, starting graceful shutdown...")

	shutdownStart := time.Now()
	cancelBackgroundTasks()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Shutdown().Error("Error during server shutdown", "error", err.Error())
	}

	if err := storeManager.Close(); err != nil {
		logger.Shutdown().Error("Error closing store manager", "error", err.Error())
	}

	logger.Shutdown().Info("Application shutdown complete",
		"totalUptime", time.Since(start),
		"shutdownDuration", time.Since(shutdownStart))

	return nil
}

// setupLogging configures application logging
func setupLogging() {
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	log.SetFlags(log.LstdFlags | log.Lshortfile)
}
