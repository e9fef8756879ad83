package service

import (
	"math"

	"github.com/darck0ne2011-gif/verifeye-app/internal/domain"
	"github.com/darck0ne2011-gif/verifeye-app/internal/media"
)

// quality below this threshold contributes to the AI probability; heavy
// degradation is a common laundering step for generated media.
const (
	qualityThreshold    = 0.4
	qualityContribution = 0.3
)

// consolidate reduces the merged per-capability map into the final result.
// The max-of-contributions rule and the lip-sync override are a behavioral
// contract; callers downstream depend on the exact arithmetic.
func (s *AnalysisService) consolidate(req domain.AnalysisRequest, capabilities []domain.Capability, state *pipelineState) *domain.ConsolidatedAnalysis {
	merged := make(map[domain.Capability]domain.CapabilityResult, len(state.cached)+len(state.fetched))
	for c, r := range state.cached {
		merged[c] = r
	}
	for c, r := range state.fetched {
		merged[c] = r
	}

	result := &domain.ConsolidatedAnalysis{
		ContentHash:   state.hash,
		Cached:        len(state.fetched) == 0 && len(state.cached) > 0,
		MediaCategory: state.category,
		LocalSignals:  state.imageInfo.Signals,
		Requested:     capabilities,
		Scores:        merged,
		RawDetection:  state.raw,
		Fetched:       fetchedList(capabilities, state.fetched),
		FileMetadata:  s.fileMetadata(req, state),
	}

	aiProbability := maxContribution(merged, capabilities)

	switch {
	case aiProbability != nil:
		result.AIProbability = aiProbability
		result.FakeProbability = *aiProbability
	case state.fallbackScore != nil:
		// No detection ran at all; the heuristic value doubles as both.
		result.FakeProbability = *state.fallbackScore
		fallback := *state.fallbackScore
		result.AIProbability = &fallback
	}

	if state.category == domain.MediaVideo {
		if lipSync, ok := merged[domain.CapabilityLipSync]; ok && lipSync.Score != nil {
			derived := clampPercent(int(math.Round(100 * (1 - *lipSync.Score))))
			if derived > result.FakeProbability {
				result.FakeProbability = derived
			}
		}
	}

	result.FakeProbability = clampPercent(result.FakeProbability)
	return result
}

// maxContribution computes round(100 * max(contributions)) over the
// requested capabilities, or nil when nothing contributed.
func maxContribution(merged map[domain.Capability]domain.CapabilityResult, requested []domain.Capability) *int {
	best := -1.0

	for _, capability := range requested {
		entry, ok := merged[capability]
		if !ok || entry.Score == nil {
			continue
		}
		var contribution float64
		switch capability {
		case domain.CapabilityGenAI, domain.CapabilityDeepfake:
			contribution = *entry.Score
		case domain.CapabilityQuality:
			if *entry.Score < qualityThreshold {
				contribution = qualityContribution
			}
		default:
			continue
		}
		if contribution > best {
			best = contribution
		}
	}

	if best < 0 {
		return nil
	}
	v := clampPercent(int(math.Round(100 * best)))
	return &v
}

func (s *AnalysisService) fileMetadata(req domain.AnalysisRequest, state *pipelineState) domain.FileMetadata {
	meta := domain.FileMetadata{
		Type:           media.SniffMIME(req.Data, req.DeclaredMIME),
		Extension:      media.Extension(req.Filename, req.DeclaredMIME),
		Size:           int64(len(req.Data)),
		FramesAnalyzed: state.framesAnalyzed,
		AnalysisMethod: state.analysisMethod,
	}
	if state.category == domain.MediaImage {
		meta.CreatedAt = state.imageInfo.CreatedAt
		meta.Resolution = state.imageInfo.Resolution()
	}
	return meta
}

// fetchedList reports which capabilities this call actually produced, in
// request order. Empty means the cache answered everything.
func fetchedList(requested []domain.Capability, fetched map[domain.Capability]domain.CapabilityResult) []domain.Capability {
	var out []domain.Capability
	for _, c := range requested {
		if _, ok := fetched[c]; ok {
			out = append(out, c)
		}
	}
	return out
}

func clampPercent(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
