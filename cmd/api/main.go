// ABOUTME: Main entry point for the Link Extractor API server
// ABOUTME: Wires together all components and starts the HTTP server

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"link-extractor-api/api"
	"link-extractor-api/api/handlers"
	"link-extractor-api/api/ui"
	"link-extractor-api/core/export"
	"link-extractor-api/core/extraction"
	"link-extractor-api/core/interfaces"
	"link-extractor-api/infrastructure/browser/chrome"
	stdhttp "link-extractor-api/infrastructure/http/standard"
	"link-extractor-api/infrastructure/logger/structured"
	"link-extractor-api/pkg/config"
	"link-extractor-api/pkg/featureflags"
)

func main() {
	// Load configuration
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Create logger
	logger := structured.NewStructuredLogger(structured.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		File:   cfg.Logging.File,
	})
	logger.Info("Starting Link Extractor API", map[string]interface{}{
		"port":       cfg.Server.Port,
		"log_level":  cfg.Logging.Level,
		"rate_limit": cfg.Server.RateLimitRPS,
	})

	// Create HTTP client. The per-request budget comes from the request
	// context; the client timeout is only the outer backstop.
	httpClient := stdhttp.NewStandardHTTPClient(time.Duration(cfg.Extraction.MaxTimeout) * time.Second)
	if cfg.Extraction.UserAgent != "" {
		httpClient.SetUserAgent(cfg.Extraction.UserAgent)
	}

	// Create dependencies container
	deps := interfaces.Dependencies{
		HTTPClient: httpClient,
		Logger:     logger,
	}

	// Create services
	extractionService := extraction.NewExtractionService(deps, extraction.Options{
		DefaultTimeout: cfg.Extraction.DefaultTimeout,
		MaxTimeout:     cfg.Extraction.MaxTimeout,
		DefaultWait:    cfg.Extraction.DefaultWait,
		MaxWait:        cfg.Extraction.MaxWait,
		MaxBodyBytes:   cfg.Extraction.MaxBodyBytes,
	})

	// The fetcher launches Chrome lazily, so wiring it is safe even on
	// hosts without a browser; those requests fail with a clear message.
	browserFetcher := chrome.NewFetcher(chrome.Options{
		MaxSessions:  cfg.Browser.MaxSessions,
		UserAgent:    cfg.Extraction.UserAgent,
		WindowWidth:  cfg.Browser.WindowWidth,
		WindowHeight: cfg.Browser.WindowHeight,
		ChromePath:   cfg.Browser.ChromePath,
	})
	extractionService.SetBrowserFetcher(browserFetcher)

	exportService := export.NewExportService()

	// Feature flags from FEATURE_* environment variables
	flags := featureflags.NewEnvManager("")

	// Create API with middleware
	humaAPI, router := api.NewAPIWithMiddleware(api.APIConfig{
		Logger:         logger,
		Flags:          flags,
		RateLimitRPS:   cfg.Server.RateLimitRPS,
		RateLimitBurst: cfg.Server.RateLimitBurst,
	})

	// Create and register handlers
	extractionHandler := handlers.NewExtractionHandler(extractionService)
	extractionHandler.RegisterRoutes(humaAPI)

	exportHandler := handlers.NewExportHandler(exportService)
	exportHandler.RegisterRoutes(humaAPI)

	healthHandler := handlers.NewHealthHandler()
	healthHandler.RegisterRoutes(humaAPI)

	// Mount the static and server-rendered front-ends
	ui.Register(router, ui.NewHandler(extractionService, exportService, logger))

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("HTTP server starting", map[string]interface{}{
			"address": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", map[string]interface{}{
				"error": err.Error(),
			})
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...", nil)

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server stopped", nil)
}

func init() {
	// Print banner
	fmt.Println(`
    __    _       __      ______     __                  __
   / /   (_)___  / /__   / ____/  __/ /__________ ______/ /_____  _____
  / /   / / __ \/ //_/  / __/ | |/_/ __/ ___/ __ '/ ___/ __/ __ \/ ___/
 / /___/ / / / / ,<    / /____>  </ /_/ /  / /_/ / /__/ /_/ /_/ / /
/_____/_/_/ /_/_/|_|  /_____/_/|_|\__/_/   \__,_/\___/\__/\____/_/
	`)
}
