package provider

import (
	"context"
	"encoding/json"

	"github.com/darck0ne2011-gif/verifeye-app/internal/domain"
)

// DetectionService is the external AI/deepfake detection capability. Each
// entry point returns (nil, error) when detection is unavailable; callers
// treat every failure the same way — rate limits are only interesting to
// the logging layer, which the implementations handle themselves.
type DetectionService interface {
	DetectImage(ctx context.Context, data []byte, mime, filename string, capabilities []domain.Capability) (*Response, error)
	DetectVideoSequential(ctx context.Context, data []byte, mime, filename string, capabilities []domain.Capability) (*Response, error)
	DetectAudio(ctx context.Context, data []byte, mime, filename string, capabilities []domain.Capability) (*Response, error)
}

// TypeScores is the normalized per-capability probability block.
type TypeScores struct {
	AIGenerated *float64 `json:"ai_generated,omitempty"`
	Deepfake    *float64 `json:"deepfake,omitempty"`
}

// FrameScores carries the normalized scores of one analyzed video frame.
type FrameScores struct {
	Position    float64  `json:"position"`
	AIGenerated *float64 `json:"ai_generated,omitempty"`
	Deepfake    *float64 `json:"deepfake,omitempty"`
}

// Response is the provider-agnostic detection result shape.
type Response struct {
	Type    TypeScores      `json:"type"`
	Quality *float64        `json:"quality,omitempty"`
	Frames  []FrameScores   `json:"frames,omitempty"`
	Raw     json.RawMessage `json:"-"`
}

var (
	imageCapabilities = map[domain.Capability]bool{
		domain.CapabilityGenAI:    true,
		domain.CapabilityDeepfake: true,
		domain.CapabilityQuality:  true,
		domain.CapabilityType:     true,
	}
	videoCapabilities = map[domain.Capability]bool{
		domain.CapabilityGenAI:    true,
		domain.CapabilityDeepfake: true,
	}
	audioCapabilities = map[domain.Capability]bool{
		domain.CapabilityGenAI: true,
	}
)

// FilterImageCapabilities keeps the capabilities the image entry point can
// serve, defaulting to {genai} when nothing survives the filter.
func FilterImageCapabilities(caps []domain.Capability) []domain.Capability {
	return filter(caps, imageCapabilities)
}

// FilterVideoCapabilities keeps the capabilities the sequential-video entry
// point can serve, defaulting to {genai}.
func FilterVideoCapabilities(caps []domain.Capability) []domain.Capability {
	return filter(caps, videoCapabilities)
}

// FilterAudioCapabilities keeps the capabilities the audio entry point can
// serve, defaulting to {genai}.
func FilterAudioCapabilities(caps []domain.Capability) []domain.Capability {
	return filter(caps, audioCapabilities)
}

func filter(caps []domain.Capability, supported map[domain.Capability]bool) []domain.Capability {
	out := make([]domain.Capability, 0, len(caps))
	for _, c := range caps {
		if supported[c] {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		return []domain.Capability{domain.CapabilityGenAI}
	}
	return out
}
