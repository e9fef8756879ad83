package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/darck0ne2011-gif/verifeye-app/internal/cache"
	"github.com/darck0ne2011-gif/verifeye-app/internal/domain"
	"github.com/darck0ne2011-gif/verifeye-app/internal/extract"
	"github.com/darck0ne2011-gif/verifeye-app/internal/media"
	"github.com/darck0ne2011-gif/verifeye-app/internal/provider"
	"github.com/darck0ne2011-gif/verifeye-app/internal/provider/ocr"
	"github.com/darck0ne2011-gif/verifeye-app/internal/reasoning"
)

// defaultCapabilities is what an empty request resolves to.
var defaultCapabilities = []domain.Capability{domain.CapabilityGenAI}

// AnalysisService is the media analysis orchestrator. One Analyze call runs
// the full pipeline sequentially: classify, local signals, cache lookup,
// detection for the missing capabilities only, merge-write, consolidation
// and the optional elite enrichments.
type AnalysisService struct {
	store         cache.ResultStore
	detector      provider.DetectionService
	extractor     extract.TrackExtractor
	reasoner      reasoning.Engine
	textExtractor ocr.TextExtractor
	sampling      extract.Options
	logger        *slog.Logger
}

// NewAnalysisService builds the orchestrator. reasoner and textExtractor may
// be nil; the elite enrichments that need them are skipped in that case.
func NewAnalysisService(
	store cache.ResultStore,
	detector provider.DetectionService,
	extractor extract.TrackExtractor,
	reasoner reasoning.Engine,
	textExtractor ocr.TextExtractor,
	sampling extract.Options,
	logger *slog.Logger,
) *AnalysisService {
	if sampling.IntervalSeconds <= 0 || sampling.MaxFrames <= 0 {
		sampling = extract.DefaultOptions()
	}
	return &AnalysisService{
		store:         store,
		detector:      detector,
		extractor:     extractor,
		reasoner:      reasoner,
		textExtractor: textExtractor,
		sampling:      sampling,
		logger:        logger,
	}
}

// pipelineState accumulates what one Analyze run learns along the way.
type pipelineState struct {
	category  domain.MediaCategory
	hash      string
	imageInfo media.ImageInfo
	cached    map[domain.Capability]domain.CapabilityResult
	fetched   map[domain.Capability]domain.CapabilityResult
	raw       json.RawMessage

	tracks         *extract.Tracks
	framesAnalyzed int
	analysisMethod string

	// fallbackScore is set when detection was unavailable for media that
	// degrades to the local heuristic instead of failing.
	fallbackScore *int
}

// Analyze runs the full pipeline for one uploaded file.
func (s *AnalysisService) Analyze(ctx context.Context, req domain.AnalysisRequest) (*domain.ConsolidatedAnalysis, error) {
	capabilities := req.Capabilities
	if len(capabilities) == 0 {
		capabilities = defaultCapabilities
	}

	state := &pipelineState{
		category: media.Classify(req.Data, req.DeclaredMIME, req.Filename),
		hash:     contentHash(req.Data),
		fetched:  make(map[domain.Capability]domain.CapabilityResult),
	}

	if state.category == domain.MediaImage {
		state.imageInfo = media.Inspect(req.Data)
	}

	state.cached = s.findCached(ctx, state.hash)
	missing := missingCapabilities(state.cached, capabilities)

	if len(missing) > 0 {
		var err error
		switch state.category {
		case domain.MediaImage:
			err = s.analyzeImage(ctx, req, missing, state)
		case domain.MediaVideo:
			err = s.analyzeVideo(ctx, req, missing, state)
		default:
			err = s.analyzeAudio(ctx, req, missing, state)
		}
		if err != nil {
			return nil, err
		}
	}

	if len(state.fetched) > 0 {
		if err := s.store.Merge(ctx, state.hash, state.fetched); err != nil {
			s.logger.Error("cache merge failed",
				slog.String("hash", state.hash),
				slog.Any("error", err),
			)
		}
	}

	result := s.consolidate(req, capabilities, state)

	if req.Options.EliteTier {
		s.enrichSummary(ctx, req, result)
		if req.Options.Credibility {
			result.Credibility = s.assessCredibility(ctx, req, state)
		}
	}

	return result, nil
}

// analyzeImage runs single-call image detection. With nothing cached a
// detection failure is fatal; with cached results it degrades to cache-only.
func (s *AnalysisService) analyzeImage(ctx context.Context, req domain.AnalysisRequest, missing []domain.Capability, state *pipelineState) error {
	resp, err := s.detector.DetectImage(ctx, req.Data, req.DeclaredMIME, req.Filename, missing)
	if err != nil || resp == nil {
		if len(state.cached) == 0 {
			return domain.ErrDetectionUnavailable.WithError(err)
		}
		s.logger.Warn("image detection unavailable, serving cached capabilities only",
			slog.String("hash", state.hash),
		)
		return nil
	}

	state.raw = resp.Raw
	for _, capability := range missing {
		switch capability {
		case domain.CapabilityGenAI:
			if resp.Type.AIGenerated != nil {
				state.fetched[capability] = domain.ScoreResult(*resp.Type.AIGenerated)
			}
		case domain.CapabilityDeepfake:
			if resp.Type.Deepfake != nil {
				state.fetched[capability] = domain.ScoreResult(*resp.Type.Deepfake)
			}
		case domain.CapabilityQuality:
			if resp.Quality != nil {
				state.fetched[capability] = domain.ScoreResult(*resp.Quality)
			}
		case domain.CapabilityType:
			if attrs := media.CaptureAttributes(req.Data); attrs != nil {
				state.fetched[capability] = domain.CapabilityResult{Attributes: attrs}
			}
		}
	}
	return nil
}

// analyzeAudio runs the audio classifier, degrading to the bounded local
// heuristic instead of failing when the classifier is unreachable.
func (s *AnalysisService) analyzeAudio(ctx context.Context, req domain.AnalysisRequest, missing []domain.Capability, state *pipelineState) error {
	resp, err := s.detector.DetectAudio(ctx, req.Data, req.DeclaredMIME, req.Filename, missing)
	if err != nil || resp == nil || resp.Type.AIGenerated == nil {
		if len(state.cached) == 0 {
			score := heuristicScore(int64(len(req.Data)), media.Extension(req.Filename, req.DeclaredMIME))
			state.fallbackScore = &score
			state.analysisMethod = "local_heuristic"
			s.logger.Warn("audio detection unavailable, using local heuristic",
				slog.String("hash", state.hash),
			)
		}
		return nil
	}

	state.raw = resp.Raw
	state.fetched[domain.CapabilityGenAI] = domain.ScoreResult(*resp.Type.AIGenerated)
	return nil
}

func (s *AnalysisService) findCached(ctx context.Context, hash string) map[domain.Capability]domain.CapabilityResult {
	entry, err := s.store.Find(ctx, hash)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn("cache lookup failed, treating as miss",
				slog.String("hash", hash),
				slog.Any("error", err),
			)
		}
		return nil
	}
	return entry.Results
}

func missingCapabilities(cached map[domain.Capability]domain.CapabilityResult, requested []domain.Capability) []domain.Capability {
	entry := &cache.Entry{Results: cached}
	return entry.Missing(requested)
}

func contentHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
