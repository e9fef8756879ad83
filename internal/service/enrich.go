package service

import (
	"context"
	"log/slog"

	"github.com/darck0ne2011-gif/verifeye-app/internal/domain"
	"github.com/darck0ne2011-gif/verifeye-app/internal/provider/ocr"
	"github.com/darck0ne2011-gif/verifeye-app/internal/reasoning"
)

// enrichSummary asks the reasoning engine for an executive summary of the
// consolidated verdict. Best effort: a failed summary leaves the field empty.
func (s *AnalysisService) enrichSummary(ctx context.Context, req domain.AnalysisRequest, result *domain.ConsolidatedAnalysis) {
	if s.reasoner == nil {
		return
	}

	summary, err := s.reasoner.Summarize(ctx, reasoning.SummaryInput{
		MediaCategory:   result.MediaCategory,
		FakeProbability: result.FakeProbability,
		Scores:          result.Scores,
		Signals:         result.LocalSignals,
		Language:        req.Options.Language,
	})
	if err != nil {
		s.logger.Warn("summary unavailable", slog.Any("error", err))
		return
	}
	result.FileMetadata.Summary = summary
}

// assessCredibility runs the opt-in fact-check over text visible in the
// media. It never fails the analysis: every failure mode comes back as a
// sentinel Credibility value.
func (s *AnalysisService) assessCredibility(ctx context.Context, req domain.AnalysisRequest, state *pipelineState) *domain.Credibility {
	if state.category == domain.MediaAudio {
		return nil
	}
	if s.reasoner == nil {
		return &domain.Credibility{Error: true, ReasonCode: reasoning.ReasonUnavailable}
	}

	var frames [][]byte
	switch state.category {
	case domain.MediaImage:
		frames = [][]byte{req.Data}
	case domain.MediaVideo:
		if state.tracks != nil {
			frames = state.tracks.Frames
		}
	}

	text := ocr.FromFrames(ctx, s.textExtractor, frames)
	return s.reasoner.AssessCredibility(ctx, text, s.corroboratingScore(state), req.Options.Language)
}

// corroboratingScore picks the supporting signal the fact-check prompt
// cites: the pixel-level AI score for images, the inverted lip-sync
// integrity for video.
func (s *AnalysisService) corroboratingScore(state *pipelineState) float64 {
	merged := state.fetched
	if state.category == domain.MediaVideo {
		if lipSync, ok := lookupScore(merged, state.cached, domain.CapabilityLipSync); ok {
			return 1 - lipSync
		}
		return 0.5
	}
	if genai, ok := lookupScore(merged, state.cached, domain.CapabilityGenAI); ok {
		return genai
	}
	if deepfake, ok := lookupScore(merged, state.cached, domain.CapabilityDeepfake); ok {
		return deepfake
	}
	return 0
}

func lookupScore(fetched, cached map[domain.Capability]domain.CapabilityResult, capability domain.Capability) (float64, bool) {
	if r, ok := fetched[capability]; ok && r.Score != nil {
		return *r.Score, true
	}
	if r, ok := cached[capability]; ok && r.Score != nil {
		return *r.Score, true
	}
	return 0, false
}
