package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// Server
	Port        int    `envconfig:"PORT" default:"3000"`
	Environment string `envconfig:"ENV" default:"development"`

	// Database
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	// Result cache
	CacheBackend string `envconfig:"CACHE_BACKEND" default:"postgres"`
	RedisAddr    string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisDB      int    `envconfig:"REDIS_DB" default:"0"`

	// Detection provider
	DetectionProvider string        `envconfig:"DETECTION_PROVIDER" default:"sightengine"`
	SightengineURL    string        `envconfig:"SIGHTENGINE_URL" default:"https://api.sightengine.com/1.0"`
	SightengineUser   string        `envconfig:"SIGHTENGINE_USER"`
	SightengineSecret string        `envconfig:"SIGHTENGINE_SECRET"`
	DetectionTimeout  time.Duration `envconfig:"DETECTION_TIMEOUT" default:"30s"`
	VideoTimeout      time.Duration `envconfig:"VIDEO_TIMEOUT" default:"120s"`

	// Audio classifier (separate endpoint, speech-only)
	AudioClassifierURL string `envconfig:"AUDIO_CLASSIFIER_URL"`
	AudioClassifierKey string `envconfig:"AUDIO_CLASSIFIER_KEY"`

	// Reasoning (DeepSeek-compatible chat completions endpoint)
	ReasoningBaseURL string `envconfig:"REASONING_BASE_URL" default:"https://api.deepseek.com/v1"`
	ReasoningAPIKey  string `envconfig:"REASONING_API_KEY"`
	ReasoningModel   string `envconfig:"REASONING_MODEL" default:"deepseek-chat"`

	// OCR
	OCRProvider string `envconfig:"OCR_PROVIDER" default:"tesseract"`
	AWSRegion   string `envconfig:"AWS_REGION" default:"us-east-1"`

	// Track extraction
	FFmpegPath      string `envconfig:"FFMPEG_PATH" default:"ffmpeg"`
	FFprobePath     string `envconfig:"FFPROBE_PATH" default:"ffprobe"`
	TesseractPath   string `envconfig:"TESSERACT_PATH" default:"tesseract"`
	FrameInterval   int    `envconfig:"FRAME_INTERVAL_SECONDS" default:"2"`
	MaxFrames       int    `envconfig:"MAX_FRAMES" default:"15"`
	MaxUploadSizeMB int    `envconfig:"MAX_UPLOAD_SIZE_MB" default:"50"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
