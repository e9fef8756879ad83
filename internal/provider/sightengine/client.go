// Package sightengine implements the detection provider against the
// Sightengine media moderation API, plus an ElevenLabs-style speech
// classifier for the audio entry point.
package sightengine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/darck0ne2011-gif/verifeye-app/internal/domain"
	"github.com/darck0ne2011-gif/verifeye-app/internal/provider"
)

// ErrDetectionFailed covers every transport, auth and rate-limit failure.
// Callers never branch on the flavor of the failure; the distinction is
// logged here and nowhere else.
var ErrDetectionFailed = errors.New("detection call failed")

// Config holds the configuration for the Sightengine client.
type Config struct {
	BaseURL      string
	APIUser      string
	APISecret    string
	AudioURL     string
	AudioAPIKey  string
	ImageTimeout time.Duration
	VideoTimeout time.Duration
	// FrameInterval is the sampling interval (seconds) sent with
	// sequential video calls.
	FrameInterval int
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		BaseURL:       "https://api.sightengine.com/1.0",
		ImageTimeout:  30 * time.Second,
		VideoTimeout:  120 * time.Second,
		FrameInterval: 2,
	}
}

// Client is the HTTP client for the detection API. Calls are made once,
// with a fixed timeout and no retries; a timeout is just another failure.
type Client struct {
	httpClient *http.Client
	config     Config
	logger     *slog.Logger
}

// NewClient creates a new detection client.
func NewClient(config Config, logger *slog.Logger) *Client {
	if config.BaseURL == "" {
		config.BaseURL = DefaultConfig().BaseURL
	}
	if config.ImageTimeout == 0 {
		config.ImageTimeout = DefaultConfig().ImageTimeout
	}
	if config.VideoTimeout == 0 {
		config.VideoTimeout = DefaultConfig().VideoTimeout
	}
	if config.FrameInterval <= 0 {
		config.FrameInterval = DefaultConfig().FrameInterval
	}
	return &Client{
		// Timeouts are applied per call based on the entry point.
		httpClient: &http.Client{},
		config:     config,
		logger:     logger,
	}
}

// DetectImage runs the supported subset of the requested capabilities
// against the image check endpoint.
func (c *Client) DetectImage(ctx context.Context, data []byte, mime, filename string, capabilities []domain.Capability) (*provider.Response, error) {
	models := provider.FilterImageCapabilities(capabilities)

	raw, err := c.postMedia(ctx, c.config.BaseURL+"/check.json", data, mime, filename, models, c.config.ImageTimeout, nil)
	if err != nil {
		return nil, err
	}
	return c.parseImageResponse(raw)
}

// DetectVideoSequential runs a single whole-video detection call.
func (c *Client) DetectVideoSequential(ctx context.Context, data []byte, mime, filename string, capabilities []domain.Capability) (*provider.Response, error) {
	models := provider.FilterVideoCapabilities(capabilities)

	extra := map[string]string{"interval": strconv.Itoa(c.config.FrameInterval)}
	raw, err := c.postMedia(ctx, c.config.BaseURL+"/video/check-sync.json", data, mime, filename, models, c.config.VideoTimeout, extra)
	if err != nil {
		return nil, err
	}
	return c.parseVideoResponse(raw)
}

// DetectAudio sends the audio buffer to the speech classifier endpoint.
func (c *Client) DetectAudio(ctx context.Context, data []byte, mime, filename string, capabilities []domain.Capability) (*provider.Response, error) {
	_ = provider.FilterAudioCapabilities(capabilities)

	if c.config.AudioURL == "" {
		c.logger.Warn("audio classifier not configured")
		return nil, ErrDetectionFailed
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", nonEmpty(filename, "audio.mp3"))
	if err != nil {
		return nil, fmt.Errorf("build audio form: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("build audio form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("build audio form: %w", err)
	}

	callCtx, cancel := context.WithTimeout(ctx, c.config.ImageTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(callCtx, http.MethodPost, c.config.AudioURL, body)
	if err != nil {
		return nil, fmt.Errorf("create audio request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if c.config.AudioAPIKey != "" {
		req.Header.Set("xi-api-key", c.config.AudioAPIKey)
	}

	raw, err := c.do(req, "audio")
	if err != nil {
		return nil, err
	}
	return parseAudioResponse(raw)
}

// postMedia uploads the buffer as multipart form data with the models
// parameter the provider expects.
func (c *Client) postMedia(ctx context.Context, url string, data []byte, mime, filename string, models []domain.Capability, timeout time.Duration, extra map[string]string) (json.RawMessage, error) {
	if c.config.APIUser == "" || c.config.APISecret == "" {
		c.logger.Warn("detection credentials not configured")
		return nil, ErrDetectionFailed
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("media", nonEmpty(filename, "upload.bin"))
	if err != nil {
		return nil, fmt.Errorf("build form: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("build form: %w", err)
	}

	fields := map[string]string{
		"models":     joinModels(models),
		"api_user":   c.config.APIUser,
		"api_secret": c.config.APISecret,
	}
	for k, v := range extra {
		fields[k] = v
	}
	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			return nil, fmt.Errorf("build form: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("build form: %w", err)
	}

	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(callCtx, http.MethodPost, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return c.do(req, url)
}

// do executes the request and collapses every failure mode into
// ErrDetectionFailed. Rate limiting is distinguished in the log line only.
func (c *Client) do(req *http.Request, endpoint string) (json.RawMessage, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("detection call failed",
			slog.String("endpoint", endpoint),
			slog.Any("error", err),
		)
		return nil, ErrDetectionFailed
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Warn("detection response unreadable", slog.String("endpoint", endpoint), slog.Any("error", err))
		return nil, ErrDetectionFailed
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		c.logger.Warn("detection rate limit reached", slog.String("endpoint", endpoint))
		return nil, ErrDetectionFailed
	}
	if resp.StatusCode >= 400 {
		c.logger.Warn("detection call rejected",
			slog.String("endpoint", endpoint),
			slog.Int("status", resp.StatusCode),
		)
		return nil, ErrDetectionFailed
	}

	return respBody, nil
}

func joinModels(models []domain.Capability) string {
	parts := make([]string, len(models))
	for i, m := range models {
		parts[i] = string(m)
	}
	return strings.Join(parts, ",")
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
