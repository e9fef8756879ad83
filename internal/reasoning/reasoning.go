// Package reasoning calls a DeepSeek-compatible chat completions API for the
// analysis steps that need language understanding: executive summaries,
// voice-clone assessment and transcript credibility checks.
package reasoning

import (
	"context"

	"github.com/darck0ne2011-gif/verifeye-app/internal/domain"
)

// SummaryInput carries everything the summary prompt may mention.
type SummaryInput struct {
	MediaCategory  domain.MediaCategory
	FakeProbability int
	Scores         map[domain.Capability]domain.CapabilityResult
	Signals        domain.LocalSignals
	OnScreenText   string
	Language       string
}

// VoiceCloneInput describes the audio track under assessment. LipSync is
// the integrity score already computed for the same video, when one exists.
type VoiceCloneInput struct {
	Bitrate     int
	SampleRate  int
	Duration    float64
	SilenceGaps string
	LipSync     *float64
}

// Engine is the language-model surface the orchestrator depends on.
// AssessCredibility never returns an error: failures are encoded in the
// returned Credibility value so a blocked or rate-limited model cannot take
// the whole analysis down.
type Engine interface {
	Summarize(ctx context.Context, input SummaryInput) (string, error)
	AssessVoiceClone(ctx context.Context, input VoiceCloneInput) (*domain.CapabilityResult, error)
	// AssessCredibility fact-checks on-media text. corroborating is a
	// manipulation signal on a 0-clean to 1-manipulated scale: the
	// pixel-level AI score for images, or one minus the lip-sync integrity
	// for video.
	AssessCredibility(ctx context.Context, transcript string, corroborating float64, language string) *domain.Credibility
}
