package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/darck0ne2011-gif/verifeye-app/internal/cache"
	"github.com/darck0ne2011-gif/verifeye-app/internal/domain"
	"github.com/darck0ne2011-gif/verifeye-app/internal/extract"
	"github.com/darck0ne2011-gif/verifeye-app/internal/provider"
	"github.com/darck0ne2011-gif/verifeye-app/internal/reasoning"
)

func newService(store *MockResultStore, detector *MockDetectionService, extractor *MockTrackExtractor) *AnalysisService {
	var ex extract.TrackExtractor
	if extractor != nil {
		ex = extractor
	}
	return NewAnalysisService(store, detector, ex, nil, nil, extract.DefaultOptions(), discardLogger())
}

// pngImage renders a real PNG so the classifier and signal analyzer see an
// actual image file.
func pngImage(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height))))
	return buf.Bytes()
}

func cacheMiss(store *MockResultStore) {
	store.On("Find", mock.Anything, mock.Anything).Return(nil, cache.ErrCacheMiss)
}

func TestAnalyze_ImageEndToEnd(t *testing.T) {
	store := &MockResultStore{}
	detector := &MockDetectionService{}
	svc := newService(store, detector, nil)

	data := pngImage(t, 1024, 1024)
	cacheMiss(store)
	store.On("Merge", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	detector.On("DetectImage", mock.Anything, data, "image/png", "art.png", []domain.Capability{domain.CapabilityGenAI}).
		Return(&provider.Response{Type: provider.TypeScores{AIGenerated: floatPtr(0.81)}}, nil)

	result, err := svc.Analyze(context.Background(), domain.AnalysisRequest{
		Data:         data,
		DeclaredMIME: "image/png",
		Filename:     "art.png",
		Capabilities: []domain.Capability{domain.CapabilityGenAI},
	})

	require.NoError(t, err)
	assert.Equal(t, 81, result.FakeProbability)
	require.NotNil(t, result.AIProbability)
	assert.Equal(t, 81, *result.AIProbability)
	assert.Equal(t, domain.MediaImage, result.MediaCategory)
	assert.True(t, result.LocalSignals.MissingCameraMetadata)
	assert.Equal(t, "1024x1024", result.LocalSignals.SuspiciousResolution)
	assert.False(t, result.Cached)
	assert.Equal(t, []domain.Capability{domain.CapabilityGenAI}, result.Fetched)
	assert.Equal(t, "1024x1024", result.FileMetadata.Resolution)
	assert.Equal(t, "png", result.FileMetadata.Extension)

	store.AssertCalled(t, "Merge", mock.Anything, mock.Anything, mock.Anything)
}

func TestAnalyze_FullCacheHitMakesNoDetectionCalls(t *testing.T) {
	store := &MockResultStore{}
	detector := &MockDetectionService{}
	svc := newService(store, detector, nil)

	entry := &cache.Entry{Results: map[domain.Capability]domain.CapabilityResult{
		domain.CapabilityGenAI:    domain.ScoreResult(0.72),
		domain.CapabilityDeepfake: domain.ScoreResult(0.15),
	}}
	store.On("Find", mock.Anything, mock.Anything).Return(entry, nil)

	result, err := svc.Analyze(context.Background(), domain.AnalysisRequest{
		Data:         []byte("some video bytes"),
		DeclaredMIME: "video/mp4",
		Filename:     "clip.mp4",
		Capabilities: []domain.Capability{domain.CapabilityGenAI, domain.CapabilityDeepfake},
	})

	require.NoError(t, err)
	assert.Equal(t, 72, result.FakeProbability)
	assert.True(t, result.Cached)
	assert.Empty(t, result.Fetched)

	detector.AssertNotCalled(t, "DetectImage", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	detector.AssertNotCalled(t, "DetectVideoSequential", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	detector.AssertNotCalled(t, "DetectAudio", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "Merge", mock.Anything, mock.Anything, mock.Anything)
}

func TestAnalyze_ImageDetectionDownWithEmptyCacheIsFatal(t *testing.T) {
	store := &MockResultStore{}
	detector := &MockDetectionService{}
	svc := newService(store, detector, nil)

	cacheMiss(store)
	detector.On("DetectImage", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("connection refused"))

	_, err := svc.Analyze(context.Background(), domain.AnalysisRequest{
		Data:         pngImage(t, 64, 64),
		DeclaredMIME: "image/png",
		Filename:     "x.png",
		Capabilities: []domain.Capability{domain.CapabilityGenAI},
	})

	require.Error(t, err)
	var appErr *domain.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domain.ErrDetectionUnavailable.Code, appErr.Code)
	assert.Equal(t, 503, appErr.StatusCode)
}

func TestAnalyze_ImageDetectionDownServesPartialCache(t *testing.T) {
	store := &MockResultStore{}
	detector := &MockDetectionService{}
	svc := newService(store, detector, nil)

	entry := &cache.Entry{Results: map[domain.Capability]domain.CapabilityResult{
		domain.CapabilityGenAI: domain.ScoreResult(0.33),
	}}
	store.On("Find", mock.Anything, mock.Anything).Return(entry, nil)
	detector.On("DetectImage", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("timeout"))

	result, err := svc.Analyze(context.Background(), domain.AnalysisRequest{
		Data:         pngImage(t, 64, 64),
		DeclaredMIME: "image/png",
		Filename:     "x.png",
		Capabilities: []domain.Capability{domain.CapabilityGenAI, domain.CapabilityDeepfake},
	})

	require.NoError(t, err)
	assert.Equal(t, 33, result.FakeProbability)
	assert.Empty(t, result.Fetched)
	store.AssertNotCalled(t, "Merge", mock.Anything, mock.Anything, mock.Anything)
}

func TestAnalyze_FrameFallbackAveragesScores(t *testing.T) {
	store := &MockResultStore{}
	detector := &MockDetectionService{}
	extractor := &MockTrackExtractor{}
	svc := newService(store, detector, extractor)

	frames := [][]byte{
		[]byte("frame0"), []byte("frame1"), []byte("frame2"), []byte("frame3"), []byte("frame4"),
	}
	scores := []float64{0.2, 0.4, 0.6, 0.8, 0.9}

	cacheMiss(store)
	store.On("Merge", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	extractor.On("Extract", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&extract.Tracks{Frames: frames}, nil)
	for i, frame := range frames {
		detector.On("DetectImage", mock.Anything, frame, "image/jpeg", mock.Anything, mock.Anything).
			Return(&provider.Response{Type: provider.TypeScores{AIGenerated: floatPtr(scores[i])}}, nil)
	}

	result, err := svc.Analyze(context.Background(), domain.AnalysisRequest{
		Data:         []byte("video bytes"),
		DeclaredMIME: "video/mp4",
		Filename:     "clip.mp4",
		Capabilities: []domain.Capability{domain.CapabilityGenAI},
		Options:      domain.AnalysisOptions{VideoEngine: domain.VideoEngineFrameBased},
	})

	require.NoError(t, err)
	require.NotNil(t, result.AIProbability)
	assert.Equal(t, 58, *result.AIProbability)
	assert.Equal(t, 58, result.FakeProbability)
	assert.Equal(t, 5, result.FileMetadata.FramesAnalyzed)
	assert.Equal(t, "frame_based", result.FileMetadata.AnalysisMethod)

	detector.AssertNotCalled(t, "DetectVideoSequential", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAnalyze_FrameFallbackSkipsFailedFrames(t *testing.T) {
	store := &MockResultStore{}
	detector := &MockDetectionService{}
	extractor := &MockTrackExtractor{}
	svc := newService(store, detector, extractor)

	frames := [][]byte{[]byte("good"), []byte("bad"), []byte("other")}

	cacheMiss(store)
	store.On("Merge", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	extractor.On("Extract", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&extract.Tracks{Frames: frames}, nil)
	detector.On("DetectImage", mock.Anything, []byte("good"), mock.Anything, mock.Anything, mock.Anything).
		Return(&provider.Response{Type: provider.TypeScores{AIGenerated: floatPtr(0.4)}}, nil)
	detector.On("DetectImage", mock.Anything, []byte("bad"), mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("rate limited"))
	detector.On("DetectImage", mock.Anything, []byte("other"), mock.Anything, mock.Anything, mock.Anything).
		Return(&provider.Response{Type: provider.TypeScores{AIGenerated: floatPtr(0.8)}}, nil)

	result, err := svc.Analyze(context.Background(), domain.AnalysisRequest{
		Data:         []byte("video bytes"),
		DeclaredMIME: "video/mp4",
		Filename:     "clip.mp4",
		Capabilities: []domain.Capability{domain.CapabilityGenAI},
		Options:      domain.AnalysisOptions{VideoEngine: domain.VideoEngineFrameBased},
	})

	require.NoError(t, err)
	// Failed frame is excluded from the mean: (0.4 + 0.8) / 2.
	require.NotNil(t, result.AIProbability)
	assert.Equal(t, 60, *result.AIProbability)
}

func TestAnalyze_NativeVideoFallsBackToFrames(t *testing.T) {
	store := &MockResultStore{}
	detector := &MockDetectionService{}
	extractor := &MockTrackExtractor{}
	svc := newService(store, detector, extractor)

	cacheMiss(store)
	store.On("Merge", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	extractor.On("Extract", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&extract.Tracks{Frames: [][]byte{[]byte("f0")}}, nil)
	detector.On("DetectVideoSequential", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("503"))
	detector.On("DetectImage", mock.Anything, []byte("f0"), mock.Anything, mock.Anything, mock.Anything).
		Return(&provider.Response{Type: provider.TypeScores{AIGenerated: floatPtr(0.5)}}, nil)

	result, err := svc.Analyze(context.Background(), domain.AnalysisRequest{
		Data:         []byte("video bytes"),
		DeclaredMIME: "video/mp4",
		Filename:     "clip.mp4",
		Capabilities: []domain.Capability{domain.CapabilityGenAI},
	})

	require.NoError(t, err)
	assert.Equal(t, 50, result.FakeProbability)
	assert.Equal(t, "frame_based", result.FileMetadata.AnalysisMethod)
}

func TestAnalyze_VideoDetectionFullyDownIsFatal(t *testing.T) {
	store := &MockResultStore{}
	detector := &MockDetectionService{}
	extractor := &MockTrackExtractor{}
	svc := newService(store, detector, extractor)

	cacheMiss(store)
	extractor.On("Extract", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("ffmpeg exited 1"))
	detector.On("DetectVideoSequential", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("503"))

	_, err := svc.Analyze(context.Background(), domain.AnalysisRequest{
		Data:         []byte("video bytes"),
		DeclaredMIME: "video/mp4",
		Filename:     "clip.mp4",
		Capabilities: []domain.Capability{domain.CapabilityGenAI},
	})

	require.Error(t, err)
	var appErr *domain.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domain.ErrDetectionUnavailable.Code, appErr.Code)
}

func TestAnalyze_EliteVideoLipSyncSentinel(t *testing.T) {
	store := &MockResultStore{}
	detector := &MockDetectionService{}
	extractor := &MockTrackExtractor{}
	svc := newService(store, detector, extractor)

	cacheMiss(store)
	store.On("Merge", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	// Tiny audio track, below the usable threshold.
	extractor.On("Extract", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&extract.Tracks{Frames: [][]byte{[]byte("f0"), []byte("f1")}, Audio: []byte("tiny")}, nil)
	detector.On("DetectVideoSequential", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&provider.Response{Type: provider.TypeScores{AIGenerated: floatPtr(0.2)}}, nil)

	result, err := svc.Analyze(context.Background(), domain.AnalysisRequest{
		Data:         []byte("video bytes"),
		DeclaredMIME: "video/mp4",
		Filename:     "clip.mp4",
		Capabilities: []domain.Capability{domain.CapabilityGenAI, domain.CapabilityLipSync},
		Options:      domain.AnalysisOptions{EliteTier: true},
	})

	require.NoError(t, err)
	lipSync, ok := result.Scores[domain.CapabilityLipSync]
	require.True(t, ok, "unusable audio still yields the sentinel")
	require.NotNil(t, lipSync.Score)
	assert.Equal(t, 0.5, *lipSync.Score)
	// fakeProbability = max(20, round(100*(1-0.5))) = 50.
	assert.Equal(t, 50, result.FakeProbability)
	require.NotNil(t, result.AIProbability)
	assert.Equal(t, 20, *result.AIProbability)
}

func TestAnalyze_ExtractionFailureSkipsLipSync(t *testing.T) {
	store := &MockResultStore{}
	detector := &MockDetectionService{}
	extractor := &MockTrackExtractor{}
	svc := newService(store, detector, extractor)

	cacheMiss(store)
	store.On("Merge", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	extractor.On("Extract", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("ffmpeg exited 1"))
	detector.On("DetectVideoSequential", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&provider.Response{Type: provider.TypeScores{AIGenerated: floatPtr(0.2)}}, nil)

	result, err := svc.Analyze(context.Background(), domain.AnalysisRequest{
		Data:         []byte("video bytes"),
		DeclaredMIME: "video/mp4",
		Filename:     "clip.mp4",
		Capabilities: []domain.Capability{domain.CapabilityGenAI, domain.CapabilityLipSync},
		Options:      domain.AnalysisOptions{EliteTier: true},
	})

	require.NoError(t, err)
	// No tracks means no sentinel; the primary score must stand untouched.
	_, ok := result.Scores[domain.CapabilityLipSync]
	assert.False(t, ok)
	assert.Equal(t, 20, result.FakeProbability)
}

func TestAnalyze_NonEliteSkipsLipSync(t *testing.T) {
	store := &MockResultStore{}
	detector := &MockDetectionService{}
	extractor := &MockTrackExtractor{}
	svc := newService(store, detector, extractor)

	cacheMiss(store)
	store.On("Merge", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	extractor.On("Extract", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&extract.Tracks{Frames: [][]byte{[]byte("f0"), []byte("f1")}}, nil)
	detector.On("DetectVideoSequential", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&provider.Response{Type: provider.TypeScores{AIGenerated: floatPtr(0.2)}}, nil)

	result, err := svc.Analyze(context.Background(), domain.AnalysisRequest{
		Data:         []byte("video bytes"),
		DeclaredMIME: "video/mp4",
		Filename:     "clip.mp4",
		Capabilities: []domain.Capability{domain.CapabilityGenAI, domain.CapabilityLipSync},
	})

	require.NoError(t, err)
	_, ok := result.Scores[domain.CapabilityLipSync]
	assert.False(t, ok)
	assert.Equal(t, 20, result.FakeProbability)
}

func TestAnalyze_VoiceCloneReceivesLipSyncScore(t *testing.T) {
	store := &MockResultStore{}
	detector := &MockDetectionService{}
	extractor := &MockTrackExtractor{}
	reasoner := &MockReasoner{}
	svc := NewAnalysisService(store, detector, extractor, reasoner, nil, extract.DefaultOptions(), discardLogger())

	// 64000 audio bytes over 2 frames at the default 2s interval hit the
	// ideal byte rate exactly, so the lip-sync integrity is 1.0.
	audio := make([]byte, 64000)
	cacheMiss(store)
	store.On("Merge", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	extractor.On("Extract", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&extract.Tracks{Frames: [][]byte{[]byte("f0"), []byte("f1")}, Audio: audio}, nil)
	extractor.On("ProbeAudio", mock.Anything, mock.Anything, mock.Anything).
		Return(&extract.AudioInfo{HasAudio: true, Bitrate: 128000, SampleRate: 44100, Duration: 4}, nil)
	detector.On("DetectVideoSequential", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&provider.Response{Type: provider.TypeScores{AIGenerated: floatPtr(0.2)}}, nil)

	clone := domain.ScoreResult(0.7)
	reasoner.On("AssessVoiceClone", mock.Anything, mock.MatchedBy(func(input reasoning.VoiceCloneInput) bool {
		return input.LipSync != nil && *input.LipSync == 1.0 && input.Bitrate == 128000
	})).Return(&clone, nil)
	reasoner.On("Summarize", mock.Anything, mock.Anything).Return("", nil).Maybe()

	result, err := svc.Analyze(context.Background(), domain.AnalysisRequest{
		Data:         []byte("video bytes"),
		DeclaredMIME: "video/mp4",
		Filename:     "clip.mp4",
		Capabilities: []domain.Capability{domain.CapabilityGenAI, domain.CapabilityLipSync, domain.CapabilityVoiceClone},
		Options:      domain.AnalysisOptions{EliteTier: true},
	})

	require.NoError(t, err)
	voiceClone, ok := result.Scores[domain.CapabilityVoiceClone]
	require.True(t, ok)
	assert.Equal(t, 0.7, *voiceClone.Score)
	reasoner.AssertExpectations(t)
}

func TestAnalyze_AudioFallsBackToHeuristic(t *testing.T) {
	store := &MockResultStore{}
	detector := &MockDetectionService{}
	svc := newService(store, detector, nil)

	cacheMiss(store)
	detector.On("DetectAudio", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("classifier down"))

	result, err := svc.Analyze(context.Background(), domain.AnalysisRequest{
		Data:         []byte("mp3 bytes"),
		DeclaredMIME: "audio/mpeg",
		Filename:     "voice.mp3",
		Capabilities: []domain.Capability{domain.CapabilityGenAI},
	})

	require.NoError(t, err)
	assert.GreaterOrEqual(t, result.FakeProbability, 0)
	assert.LessOrEqual(t, result.FakeProbability, 100)
	require.NotNil(t, result.AIProbability)
	assert.Equal(t, result.FakeProbability, *result.AIProbability)
	assert.Equal(t, "local_heuristic", result.FileMetadata.AnalysisMethod)
	store.AssertNotCalled(t, "Merge", mock.Anything, mock.Anything, mock.Anything)
}

func TestAnalyze_AudioDetectionSuccess(t *testing.T) {
	store := &MockResultStore{}
	detector := &MockDetectionService{}
	svc := newService(store, detector, nil)

	cacheMiss(store)
	store.On("Merge", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	detector.On("DetectAudio", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&provider.Response{Type: provider.TypeScores{AIGenerated: floatPtr(0.77)}}, nil)

	result, err := svc.Analyze(context.Background(), domain.AnalysisRequest{
		Data:         []byte("mp3 bytes"),
		DeclaredMIME: "audio/mpeg",
		Filename:     "voice.mp3",
		Capabilities: []domain.Capability{domain.CapabilityGenAI},
	})

	require.NoError(t, err)
	assert.Equal(t, 77, result.FakeProbability)
}

func TestAnalyze_DefaultsToGenAI(t *testing.T) {
	store := &MockResultStore{}
	detector := &MockDetectionService{}
	svc := newService(store, detector, nil)

	cacheMiss(store)
	store.On("Merge", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	detector.On("DetectImage", mock.Anything, mock.Anything, mock.Anything, mock.Anything, []domain.Capability{domain.CapabilityGenAI}).
		Return(&provider.Response{Type: provider.TypeScores{AIGenerated: floatPtr(0.1)}}, nil)

	result, err := svc.Analyze(context.Background(), domain.AnalysisRequest{
		Data:         pngImage(t, 64, 64),
		DeclaredMIME: "image/png",
		Filename:     "x.png",
	})

	require.NoError(t, err)
	assert.Equal(t, []domain.Capability{domain.CapabilityGenAI}, result.Requested)
	assert.Equal(t, 10, result.FakeProbability)
}

func TestAnalyze_EliteSummaryAndCredibility(t *testing.T) {
	store := &MockResultStore{}
	detector := &MockDetectionService{}
	reasoner := &MockReasoner{}
	textExtractor := &MockTextExtractor{}
	svc := NewAnalysisService(store, detector, nil, reasoner, textExtractor, extract.DefaultOptions(), discardLogger())

	data := pngImage(t, 64, 64)
	cacheMiss(store)
	store.On("Merge", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	detector.On("DetectImage", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&provider.Response{Type: provider.TypeScores{AIGenerated: floatPtr(0.81)}}, nil)
	reasoner.On("Summarize", mock.Anything, mock.Anything).Return("Likely AI generated.", nil)
	textExtractor.On("ExtractText", mock.Anything, mock.Anything).Return("BREAKING NEWS", nil)
	score := 25
	reasoner.On("AssessCredibility", mock.Anything, "BREAKING NEWS", 0.81, "en").
		Return(&domain.Credibility{Rating: domain.CredibilityLow, Score: &score})

	result, err := svc.Analyze(context.Background(), domain.AnalysisRequest{
		Data:         data,
		DeclaredMIME: "image/png",
		Filename:     "x.png",
		Capabilities: []domain.Capability{domain.CapabilityGenAI},
		Options:      domain.AnalysisOptions{EliteTier: true, Credibility: true, Language: "en"},
	})

	require.NoError(t, err)
	assert.Equal(t, "Likely AI generated.", result.FileMetadata.Summary)
	require.NotNil(t, result.Credibility)
	assert.Equal(t, domain.CredibilityLow, result.Credibility.Rating)
}

func TestAnalyze_NonEliteSkipsEnrichments(t *testing.T) {
	store := &MockResultStore{}
	detector := &MockDetectionService{}
	reasoner := &MockReasoner{}
	svc := NewAnalysisService(store, detector, nil, reasoner, nil, extract.DefaultOptions(), discardLogger())

	cacheMiss(store)
	store.On("Merge", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	detector.On("DetectImage", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&provider.Response{Type: provider.TypeScores{AIGenerated: floatPtr(0.3)}}, nil)

	result, err := svc.Analyze(context.Background(), domain.AnalysisRequest{
		Data:         pngImage(t, 64, 64),
		DeclaredMIME: "image/png",
		Filename:     "x.png",
		Capabilities: []domain.Capability{domain.CapabilityGenAI},
		Options:      domain.AnalysisOptions{Credibility: true},
	})

	require.NoError(t, err)
	assert.Empty(t, result.FileMetadata.Summary)
	assert.Nil(t, result.Credibility)
	reasoner.AssertNotCalled(t, "Summarize", mock.Anything, mock.Anything)
	reasoner.AssertNotCalled(t, "AssessCredibility", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
