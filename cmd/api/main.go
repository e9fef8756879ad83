package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/darck0ne2011-gif/verifeye-app/internal/api"
	"github.com/darck0ne2011-gif/verifeye-app/internal/cache"
	"github.com/darck0ne2011-gif/verifeye-app/internal/config"
	"github.com/darck0ne2011-gif/verifeye-app/internal/database"
	"github.com/darck0ne2011-gif/verifeye-app/internal/extract"
	"github.com/darck0ne2011-gif/verifeye-app/internal/history"
	"github.com/darck0ne2011-gif/verifeye-app/internal/provider/ocr"
	"github.com/darck0ne2011-gif/verifeye-app/internal/reasoning"
	"github.com/darck0ne2011-gif/verifeye-app/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Environment)
	slog.SetDefault(logger)

	logger.Info("starting VerifEye API",
		slog.String("environment", cfg.Environment),
		slog.Int("port", cfg.Port),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Database pool
	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	// Result cache
	store, err := cache.NewStore(cfg, pool)
	if err != nil {
		return fmt.Errorf("failed to create result store: %w", err)
	}

	// Detection provider
	detector, err := service.NewDetectionService(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create detection service: %w", err)
	}

	// Reasoning engine (optional, elite enrichments)
	var reasoner reasoning.Engine
	if cfg.ReasoningAPIKey != "" {
		reasoner = reasoning.NewClient(reasoning.Config{
			BaseURL: cfg.ReasoningBaseURL,
			APIKey:  cfg.ReasoningAPIKey,
			Model:   cfg.ReasoningModel,
		}, logger)
	} else {
		logger.Warn("reasoning API key not set, elite enrichments disabled")
	}

	// On-media text extraction (optional, credibility assessment)
	textExtractor, err := ocr.NewTextExtractor(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create text extractor: %w", err)
	}

	// Track extraction
	extractor := extract.NewFFmpegExtractor(cfg.FFmpegPath, cfg.FFprobePath)

	// Analysis orchestrator
	analysisService := service.NewAnalysisService(
		store,
		detector,
		extractor,
		reasoner,
		textExtractor,
		extract.Options{
			IntervalSeconds: cfg.FrameInterval,
			MaxFrames:       cfg.MaxFrames,
		},
		logger,
	)

	// Scan history
	historyRepo := history.NewRepositoryFromPool(pool)

	// Setup router
	router := api.NewRouter(logger, &api.Dependencies{
		AnalysisService: analysisService,
		HistoryRepo:     historyRepo,
		DB:              pool,
		MaxUploadSizeMB: cfg.MaxUploadSizeMB,
	})
	router.Setup()

	// Start server in goroutine
	errChan := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Port)
		logger.Info("server listening", slog.String("addr", addr))
		if err := router.Listen(addr); err != nil {
			errChan <- err
		}
	}()

	// Wait for shutdown signal or error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	}

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logger.Info("shutting down server...")
	if err := router.Shutdown(); err != nil {
		logger.Error("shutdown error", slog.Any("error", err))
	}

	<-shutdownCtx.Done()
	logger.Info("server stopped")

	return nil
}
