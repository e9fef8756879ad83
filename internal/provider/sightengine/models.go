package sightengine

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/darck0ne2011-gif/verifeye-app/internal/provider"
)

// wire types for the check endpoints.

type typeBlock struct {
	AIGenerated *float64 `json:"ai_generated,omitempty"`
	Deepfake    *float64 `json:"deepfake,omitempty"`
}

type qualityBlock struct {
	Score *float64 `json:"score,omitempty"`
}

type imageResponse struct {
	Status  string        `json:"status"`
	Type    *typeBlock    `json:"type,omitempty"`
	Quality *qualityBlock `json:"quality,omitempty"`
	Media   *mediaBlock   `json:"media,omitempty"`
	Error   *errorBlock   `json:"error,omitempty"`
}

type mediaBlock struct {
	ID  string `json:"id,omitempty"`
	URI string `json:"uri,omitempty"`
}

type errorBlock struct {
	Type    string `json:"type,omitempty"`
	Code    int    `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

type videoFrame struct {
	Info *struct {
		Position float64 `json:"position"`
	} `json:"info,omitempty"`
	Type *typeBlock `json:"type,omitempty"`
}

type videoResponse struct {
	Status string `json:"status"`
	Data   *struct {
		Frames []videoFrame `json:"frames"`
	} `json:"data,omitempty"`
	Error *errorBlock `json:"error,omitempty"`
}

// audioResponse tolerates the field names the speech classifiers in the
// wild actually use.
type audioResponse struct {
	Probability *float64 `json:"probability,omitempty"`
	Score       *float64 `json:"score,omitempty"`
	Result      *struct {
		Probability *float64 `json:"probability,omitempty"`
	} `json:"result,omitempty"`
}

func (c *Client) parseImageResponse(raw json.RawMessage) (*provider.Response, error) {
	var body imageResponse
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("decode detection response: %w", err)
	}
	if body.Status != "success" {
		c.logger.Warn("detection returned failure status", logErrorBlock(body.Error))
		return nil, ErrDetectionFailed
	}

	result := &provider.Response{Raw: raw}
	if body.Type != nil {
		result.Type = provider.TypeScores{
			AIGenerated: body.Type.AIGenerated,
			Deepfake:    body.Type.Deepfake,
		}
	}
	if body.Quality != nil {
		result.Quality = body.Quality.Score
	}
	return result, nil
}

// parseVideoResponse flattens the per-frame scores and keeps the
// per-position maximum as the whole-video score.
func (c *Client) parseVideoResponse(raw json.RawMessage) (*provider.Response, error) {
	var body videoResponse
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("decode detection response: %w", err)
	}
	if body.Status != "success" {
		c.logger.Warn("detection returned failure status", logErrorBlock(body.Error))
		return nil, ErrDetectionFailed
	}

	result := &provider.Response{Raw: raw}
	if body.Data == nil {
		return result, nil
	}

	for _, frame := range body.Data.Frames {
		fs := provider.FrameScores{}
		if frame.Info != nil {
			fs.Position = frame.Info.Position
		}
		if frame.Type != nil {
			fs.AIGenerated = frame.Type.AIGenerated
			fs.Deepfake = frame.Type.Deepfake
		}
		result.Frames = append(result.Frames, fs)

		result.Type.AIGenerated = maxScore(result.Type.AIGenerated, fs.AIGenerated)
		result.Type.Deepfake = maxScore(result.Type.Deepfake, fs.Deepfake)
	}
	return result, nil
}

func parseAudioResponse(raw json.RawMessage) (*provider.Response, error) {
	var body audioResponse
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("decode classifier response: %w", err)
	}

	score := body.Probability
	if score == nil {
		score = body.Score
	}
	if score == nil && body.Result != nil {
		score = body.Result.Probability
	}
	if score == nil {
		return nil, ErrDetectionFailed
	}

	return &provider.Response{
		Type: provider.TypeScores{AIGenerated: score},
		Raw:  raw,
	}, nil
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

func logErrorBlock(e *errorBlock) slog.Attr {
	if e == nil {
		return slog.String("provider_error", "unknown")
	}
	return slog.String("provider_error", fmt.Sprintf("%s (%d): %s", e.Type, e.Code, e.Message))
}
