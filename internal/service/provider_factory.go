package service

import (
	"fmt"
	"log/slog"

	"github.com/darck0ne2011-gif/verifeye-app/internal/config"
	"github.com/darck0ne2011-gif/verifeye-app/internal/provider"
	"github.com/darck0ne2011-gif/verifeye-app/internal/provider/mock"
	"github.com/darck0ne2011-gif/verifeye-app/internal/provider/sightengine"
)

// ProviderType defines supported detection provider types
type ProviderType string

const (
	// ProviderTypeSightengine is the hosted detection API (cloud, for prod)
	ProviderTypeSightengine ProviderType = "sightengine"
	// ProviderTypeMock is the deterministic in-process provider (dev/test)
	ProviderTypeMock ProviderType = "mock"
)

// NewDetectionService creates a DetectionService instance based on configuration
//
// Environment variables:
//   - DETECTION_PROVIDER: "sightengine" or "mock" (default: "sightengine")
//   - SIGHTENGINE_URL / SIGHTENGINE_USER / SIGHTENGINE_SECRET: API endpoint and credentials
//   - AUDIO_CLASSIFIER_URL / AUDIO_CLASSIFIER_KEY: speech classifier endpoint
//   - DETECTION_TIMEOUT / VIDEO_TIMEOUT: per-call timeouts
func NewDetectionService(cfg *config.Config, logger *slog.Logger) (provider.DetectionService, error) {
	switch ProviderType(cfg.DetectionProvider) {
	case ProviderTypeMock:
		return mock.New(), nil

	case ProviderTypeSightengine, "":
		return sightengine.NewClient(sightengine.Config{
			BaseURL:       cfg.SightengineURL,
			APIUser:       cfg.SightengineUser,
			APISecret:     cfg.SightengineSecret,
			AudioURL:      cfg.AudioClassifierURL,
			AudioAPIKey:   cfg.AudioClassifierKey,
			ImageTimeout:  cfg.DetectionTimeout,
			VideoTimeout:  cfg.VideoTimeout,
			FrameInterval: cfg.FrameInterval,
		}, logger), nil

	default:
		return nil, fmt.Errorf("unknown detection provider: %s (supported: %s, %s)",
			cfg.DetectionProvider, ProviderTypeSightengine, ProviderTypeMock)
	}
}
