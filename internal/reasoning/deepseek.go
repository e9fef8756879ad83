package reasoning

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/darck0ne2011-gif/verifeye-app/internal/domain"
)

const (
	// summaryMaxTokens caps the two-or-three sentence executive summary;
	// the assessments get room for the structured format.
	summaryMaxTokens    = 150
	assessmentMaxTokens = 300

	// minTranscriptLength is the shortest transcript worth asking the model
	// about. Anything below gets the neutral fixed verdict.
	minTranscriptLength = 5

	// ReasonRateLimit and ReasonUnavailable are the stable reason codes
	// reported on credibility failures.
	ReasonRateLimit   = "credibility_error_rate_limit"
	ReasonUnavailable = "credibility_error_unavailable"
)

// ErrNotConfigured is returned when the reasoning API key is missing.
var ErrNotConfigured = errors.New("reasoning engine not configured")

// Config holds the configuration for the DeepSeek client.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		BaseURL: "https://api.deepseek.com/v1",
		Model:   "deepseek-chat",
	}
}

// Client implements Engine against any OpenAI-compatible chat endpoint.
type Client struct {
	api    *openai.Client
	config Config
	logger *slog.Logger
}

// NewClient creates a new reasoning client.
func NewClient(config Config, logger *slog.Logger) *Client {
	if config.BaseURL == "" {
		config.BaseURL = DefaultConfig().BaseURL
	}
	if config.Model == "" {
		config.Model = DefaultConfig().Model
	}

	apiConfig := openai.DefaultConfig(config.APIKey)
	apiConfig.BaseURL = config.BaseURL

	return &Client{
		api:    openai.NewClientWithConfig(apiConfig),
		config: config,
		logger: logger,
	}
}

// Summarize produces a short executive summary of the consolidated verdict.
func (c *Client) Summarize(ctx context.Context, input SummaryInput) (string, error) {
	if c.config.APIKey == "" {
		return "", ErrNotConfigured
	}

	content, err := c.complete(ctx, summarySystemPrompt(input.Language), summaryUserPrompt(input), summaryMaxTokens)
	if err != nil {
		return "", fmt.Errorf("summarize: %w", err)
	}
	return strings.TrimSpace(content), nil
}

// AssessVoiceClone asks the model for a voice-clone likelihood given the
// audio characteristics. The returned score is normalized to [0, 1].
func (c *Client) AssessVoiceClone(ctx context.Context, input VoiceCloneInput) (*domain.CapabilityResult, error) {
	if c.config.APIKey == "" {
		return nil, ErrNotConfigured
	}

	content, err := c.complete(ctx, voiceCloneSystemPrompt, voiceCloneUserPrompt(input), assessmentMaxTokens)
	if err != nil {
		return nil, fmt.Errorf("assess voice clone: %w", err)
	}

	score, reasoning, err := parseScoredVerdict(content)
	if err != nil {
		return nil, fmt.Errorf("assess voice clone: %w", err)
	}

	result := domain.ScoreResult(score)
	result.Reasoning = reasoning
	result.Source = "reasoning"
	return &result, nil
}

// AssessCredibility fact-checks the transcript. Failures never propagate as
// errors; they come back as a Credibility value with Error set so the caller
// can attach it to an otherwise successful analysis.
func (c *Client) AssessCredibility(ctx context.Context, transcript string, corroborating float64, language string) *domain.Credibility {
	if len(strings.TrimSpace(transcript)) < minTranscriptLength {
		score := 50
		return &domain.Credibility{
			Rating:    domain.CredibilityMedium,
			Score:     &score,
			Reasoning: "Transcript too short for a meaningful credibility assessment.",
		}
	}

	if c.config.APIKey == "" {
		c.logger.Warn("credibility check skipped, reasoning engine not configured")
		return &domain.Credibility{Error: true, ReasonCode: ReasonUnavailable}
	}

	content, err := c.complete(ctx, credibilitySystemPrompt(language), credibilityUserPrompt(transcript, corroborating), assessmentMaxTokens)
	if err != nil {
		reason := ReasonUnavailable
		if isRateLimit(err) {
			reason = ReasonRateLimit
		}
		c.logger.Warn("credibility check failed",
			slog.String("reason", reason),
			slog.Any("error", err),
		)
		return &domain.Credibility{Error: true, ReasonCode: reason}
	}

	credibility, err := parseCredibility(content)
	if err != nil {
		c.logger.Warn("credibility response unparseable", slog.Any("error", err))
		return &domain.Credibility{Error: true, ReasonCode: ReasonUnavailable}
	}
	return credibility
}

func (c *Client) complete(ctx context.Context, system, user string, maxTokens int) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     c.config.Model,
		MaxTokens: maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty completion")
	}
	return resp.Choices[0].Message.Content, nil
}

func isRateLimit(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == http.StatusTooManyRequests
	}
	return false
}
