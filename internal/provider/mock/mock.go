// Package mock provides a deterministic detection service for dev and test
// environments. Scores are derived from the content hash so the same bytes
// always produce the same verdict without any network call.
package mock

import (
	"context"
	"crypto/sha256"
	"encoding/json"

	"github.com/darck0ne2011-gif/verifeye-app/internal/domain"
	"github.com/darck0ne2011-gif/verifeye-app/internal/provider"
)

// Service implements provider.DetectionService for tests and development.
type Service struct{}

// New creates a new mock detection service.
func New() *Service {
	return &Service{}
}

// DetectImage returns hash-derived scores for the supported capabilities.
func (s *Service) DetectImage(ctx context.Context, data []byte, mime, filename string, capabilities []domain.Capability) (*provider.Response, error) {
	models := provider.FilterImageCapabilities(capabilities)

	resp := &provider.Response{Raw: rawStub("image")}
	for _, m := range models {
		score := scoreFor(data, string(m))
		switch m {
		case domain.CapabilityGenAI:
			resp.Type.AIGenerated = &score
		case domain.CapabilityDeepfake:
			resp.Type.Deepfake = &score
		case domain.CapabilityQuality:
			resp.Quality = &score
		}
	}
	return resp, nil
}

// DetectVideoSequential fabricates three frames and aggregates them the way
// the real provider does.
func (s *Service) DetectVideoSequential(ctx context.Context, data []byte, mime, filename string, capabilities []domain.Capability) (*provider.Response, error) {
	models := provider.FilterVideoCapabilities(capabilities)

	resp := &provider.Response{Raw: rawStub("video")}
	for i := 0; i < 3; i++ {
		fs := provider.FrameScores{Position: float64(i * 2)}
		for _, m := range models {
			score := scoreFor(data, string(m)+string(rune('a'+i)))
			switch m {
			case domain.CapabilityGenAI:
				fs.AIGenerated = &score
			case domain.CapabilityDeepfake:
				fs.Deepfake = &score
			}
		}
		resp.Frames = append(resp.Frames, fs)
		resp.Type.AIGenerated = maxScore(resp.Type.AIGenerated, fs.AIGenerated)
		resp.Type.Deepfake = maxScore(resp.Type.Deepfake, fs.Deepfake)
	}
	return resp, nil
}

// DetectAudio returns a hash-derived synthetic-speech probability.
func (s *Service) DetectAudio(ctx context.Context, data []byte, mime, filename string, capabilities []domain.Capability) (*provider.Response, error) {
	score := scoreFor(data, "audio")
	return &provider.Response{
		Type: provider.TypeScores{AIGenerated: &score},
		Raw:  rawStub("audio"),
	}, nil
}

// scoreFor maps content plus a salt onto a stable value in [0, 1).
func scoreFor(data []byte, salt string) float64 {
	sum := sha256.Sum256(append([]byte(salt), data...))
	return float64(uint16(sum[0])<<8|uint16(sum[1])) / 65536.0
}

func maxScore(current, candidate *float64) *float64 {
	if candidate == nil {
		return current
	}
	if current == nil || *candidate > *current {
		v := *candidate
		return &v
	}
	return current
}

func rawStub(kind string) json.RawMessage {
	raw, _ := json.Marshal(map[string]string{"status": "success", "source": "mock", "kind": kind})
	return raw
}
