package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/darck0ne2011-gif/verifeye-app/internal/domain"
	"github.com/darck0ne2011-gif/verifeye-app/internal/media"
	"github.com/darck0ne2011-gif/verifeye-app/internal/reasoning"
)

// detectableVideoCapabilities are the capabilities the detection provider
// itself can answer for video; lip_sync and voice_clone are computed locally.
var detectableVideoCapabilities = map[domain.Capability]bool{
	domain.CapabilityGenAI:    true,
	domain.CapabilityDeepfake: true,
}

// analyzeVideo coordinates the richest pipeline branch: track extraction,
// whole-video or per-frame detection, and the elite-only lip-sync and
// voice-clone enrichments. Extraction failures degrade the enrichments, not
// the primary score.
func (s *AnalysisService) analyzeVideo(ctx context.Context, req domain.AnalysisRequest, missing []domain.Capability, state *pipelineState) error {
	detectable := restrictVideoCapabilities(missing, req.Options.VideoCapabilities)

	s.extractTracks(ctx, req, state)

	if len(detectable) > 0 {
		if err := s.detectVideo(ctx, req, detectable, state); err != nil {
			return err
		}
	}

	if req.Options.EliteTier {
		s.enrichLipSync(missing, state)
		s.enrichVoiceClone(ctx, req, missing, state)
	}

	return nil
}

// detectVideo tries the whole-video call first (unless the request pinned
// the frame engine) and falls back to per-frame detection.
func (s *AnalysisService) detectVideo(ctx context.Context, req domain.AnalysisRequest, detectable []domain.Capability, state *pipelineState) error {
	if req.Options.VideoEngine != domain.VideoEngineFrameBased {
		resp, err := s.detector.DetectVideoSequential(ctx, req.Data, req.DeclaredMIME, req.Filename, detectable)
		if err == nil && resp != nil {
			state.raw = resp.Raw
			state.framesAnalyzed = len(resp.Frames)
			state.analysisMethod = string(domain.VideoEngineNative)
			recordTypeScores(state.fetched, detectable, resp.Type.AIGenerated, resp.Type.Deepfake)
			return nil
		}
		s.logger.Warn("whole-video detection unavailable, falling back to frames",
			slog.String("hash", state.hash),
		)
	}

	return s.detectFrames(ctx, detectable, state)
}

// detectFrames scores sampled frames one at a time and averages the scores.
// Frame calls are deliberately sequential to respect provider rate limits.
// Frames that return nothing are excluded from the mean, not counted as zero.
func (s *AnalysisService) detectFrames(ctx context.Context, detectable []domain.Capability, state *pipelineState) error {
	if state.tracks == nil || len(state.tracks.Frames) == 0 {
		if len(state.cached) == 0 {
			return domain.ErrDetectionUnavailable
		}
		return nil
	}

	sums := make(map[domain.Capability]float64)
	counts := make(map[domain.Capability]int)

	for i, frame := range state.tracks.Frames {
		name := fmt.Sprintf("frame-%04d.jpg", i)
		resp, err := s.detector.DetectImage(ctx, frame, "image/jpeg", name, detectable)
		if err != nil || resp == nil {
			continue
		}
		if resp.Type.AIGenerated != nil {
			sums[domain.CapabilityGenAI] += *resp.Type.AIGenerated
			counts[domain.CapabilityGenAI]++
		}
		if resp.Type.Deepfake != nil {
			sums[domain.CapabilityDeepfake] += *resp.Type.Deepfake
			counts[domain.CapabilityDeepfake]++
		}
	}

	for _, capability := range detectable {
		if counts[capability] > 0 {
			state.fetched[capability] = domain.ScoreResult(sums[capability] / float64(counts[capability]))
		}
	}

	if len(state.fetched) == 0 && len(state.cached) == 0 {
		return domain.ErrDetectionUnavailable
	}

	state.framesAnalyzed = len(state.tracks.Frames)
	state.analysisMethod = string(domain.VideoEngineFrameBased)
	return nil
}

// extractTracks is best effort: without tracks the frame fallback, lip-sync
// and voice-clone steps are skipped, but whole-video detection still works.
func (s *AnalysisService) extractTracks(ctx context.Context, req domain.AnalysisRequest, state *pipelineState) {
	if s.extractor == nil {
		return
	}
	tracks, err := s.extractor.Extract(ctx, req.Data, media.Extension(req.Filename, req.DeclaredMIME), s.sampling)
	if err != nil {
		s.logger.Warn("track extraction failed",
			slog.String("hash", state.hash),
			slog.Any("error", err),
		)
		return
	}
	state.tracks = tracks
}

// enrichLipSync fills the lip_sync capability from the byte-rate heuristic.
// The 0.5 sentinel covers extracted tracks with unusable audio or too few
// frames; when extraction itself failed the capability stays absent so the
// consolidation override cannot fire on a value nobody measured.
func (s *AnalysisService) enrichLipSync(missing []domain.Capability, state *pipelineState) {
	if !capabilityRequested(missing, domain.CapabilityLipSync) {
		return
	}
	if state.tracks == nil {
		return
	}

	integrity := lipSyncIntegrity(len(state.tracks.Audio), len(state.tracks.Frames), s.sampling.IntervalSeconds)
	state.fetched[domain.CapabilityLipSync] = domain.ScoreResult(integrity)
}

// enrichVoiceClone asks the reasoning engine about the audio track. Any
// failure on this path is absorbed; the capability simply stays absent.
func (s *AnalysisService) enrichVoiceClone(ctx context.Context, req domain.AnalysisRequest, missing []domain.Capability, state *pipelineState) {
	if s.reasoner == nil || !capabilityRequested(missing, domain.CapabilityVoiceClone) {
		return
	}
	if state.tracks == nil || len(state.tracks.Audio) == 0 {
		return
	}

	input := reasoning.VoiceCloneInput{}
	if lipSync, ok := lookupScore(state.fetched, state.cached, domain.CapabilityLipSync); ok {
		input.LipSync = &lipSync
	}
	if s.extractor != nil {
		if info, err := s.extractor.ProbeAudio(ctx, req.Data, media.Extension(req.Filename, req.DeclaredMIME)); err == nil && info != nil {
			input.Bitrate = info.Bitrate
			input.SampleRate = info.SampleRate
			input.Duration = info.Duration
			input.SilenceGaps = info.SilenceGaps
		}
	}

	result, err := s.reasoner.AssessVoiceClone(ctx, input)
	if err != nil || result == nil {
		s.logger.Warn("voice clone assessment unavailable",
			slog.String("hash", state.hash),
			slog.Any("error", err),
		)
		return
	}
	state.fetched[domain.CapabilityVoiceClone] = *result
}

// restrictVideoCapabilities intersects the missing set with what video
// detection supports, honoring the per-request video capability allowlist.
func restrictVideoCapabilities(missing, allowed []domain.Capability) []domain.Capability {
	allowedSet := make(map[domain.Capability]bool, len(allowed))
	for _, c := range allowed {
		allowedSet[c] = true
	}

	var out []domain.Capability
	for _, c := range missing {
		if !detectableVideoCapabilities[c] {
			continue
		}
		if len(allowed) > 0 && !allowedSet[c] {
			continue
		}
		out = append(out, c)
	}
	return out
}

func recordTypeScores(fetched map[domain.Capability]domain.CapabilityResult, requested []domain.Capability, genai, deepfake *float64) {
	for _, capability := range requested {
		switch capability {
		case domain.CapabilityGenAI:
			if genai != nil {
				fetched[capability] = domain.ScoreResult(*genai)
			}
		case domain.CapabilityDeepfake:
			if deepfake != nil {
				fetched[capability] = domain.ScoreResult(*deepfake)
			}
		}
	}
}

func capabilityRequested(capabilities []domain.Capability, target domain.Capability) bool {
	for _, c := range capabilities {
		if c == target {
			return true
		}
	}
	return false
}
