package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	appLogger "github.com/wandertrip/travel-roulette/app/logger"
	"github.com/wandertrip/travel-roulette/app/tracer"
	"github.com/wandertrip/travel-roulette/config"
	"github.com/wandertrip/travel-roulette/internal/api/amap"
	"github.com/wandertrip/travel-roulette/internal/api/city"
	"github.com/wandertrip/travel-roulette/internal/api/enrichment"
	"github.com/wandertrip/travel-roulette/internal/api/guide"
	api "github.com/wandertrip/travel-roulette/internal/router"
)

func main() {
	// Use standard log until slog is configured, in case godotenv fails
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found or error loading:", err)
	}

	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("FATAL: Error initializing config: %v", err)
	}

	logger := setupLogger(cfg.Mode)
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	metricsHandler, err := tracer.InitTracingAndMetrics()
	if err != nil {
		logger.Error("Failed to initialize tracing and metrics", slog.Any("error", err))
		os.Exit(1)
	}

	// --- Dependency Injection ---
	ttl := cfg.Cache.TTL
	if ttl <= 0 {
		ttl = enrichment.DefaultTTL
	}
	amapClient := amap.NewClient(cfg.Amap.BaseURL, logger)
	store := enrichment.NewTTLStore(ttl)
	enricher := enrichment.NewService(enrichment.NewDoubaoClient(cfg.Doubao.BaseURL, cfg.Doubao.Model), store, logger)
	guideService := guide.NewService(amapClient, logger)
	guideHandler := guide.NewHandler(guideService, enricher, store, logger)
	cityHandler := city.NewCityHandler(amapClient, cfg.Amap.Key, logger)

	mainRouter := api.SetupRouter(&api.Config{
		GuideHandler:   guideHandler,
		CityHandler:    cityHandler,
		MetricsHandler: metricsHandler,
	})

	httpTimeout := cfg.Server.Timeout
	if httpTimeout <= 0 {
		httpTimeout = 60 * time.Second
	}

	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(appLogger.StructuredLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.StripSlashes)
	router.Use(middleware.Timeout(httpTimeout))
	router.Use(middleware.Compress(5, "application/json"))
	router.Mount("/", mainRouter)

	serverAddress := fmt.Sprintf(":%s", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         serverAddress,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: httpTimeout,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	go func() {
		logger.Info("Starting HTTP server", slog.String("address", serverAddress))
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server ListenAndServe error", slog.Any("error", err))
			cancel()
		}
	}()

	<-ctx.Done()

	logger.Info("Shutdown signal received, starting graceful shutdown...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server graceful shutdown failed", slog.Any("error", err))
	} else {
		logger.Info("HTTP server gracefully stopped")
	}

	// Let detached enrichment runs settle so their cache writes land, but not
	// past the shutdown deadline.
	drained := make(chan struct{})
	go func() {
		enricher.Wait()
		close(drained)
	}()
	select {
	case <-drained:
		logger.Info("Background enrichment drained")
	case <-shutdownCtx.Done():
		logger.Warn("Shutdown deadline reached with enrichment still in flight")
	}

	logger.Info("Application shut down complete.")
}

// setupLogger configures and returns the application logger. The config mode
// picks the handler; APP_ENV overrides it for container deployments.
func setupLogger(mode string) *slog.Logger {
	var logger *slog.Logger
	if env := os.Getenv("APP_ENV"); env != "" {
		mode = env
	}

	if mode == "development" || mode == "" {
		// Colored logs for development
		tintOpts := &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.Kitchen,
			AddSource:  true,
		}
		logger = slog.New(tint.NewHandler(os.Stdout, tintOpts))
		log.Println("Initialized development logger (tint)")
	} else {
		jsonOpts := &slog.HandlerOptions{
			Level:     slog.LevelInfo,
			AddSource: false,
		}
		logger = slog.New(slog.NewJSONHandler(os.Stdout, jsonOpts))
		log.Println("Initialized production logger (JSON)")
	}
	return logger
}
