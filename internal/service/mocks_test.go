package service

import (
	"context"
	"io"
	"log/slog"

	"github.com/stretchr/testify/mock"

	"github.com/darck0ne2011-gif/verifeye-app/internal/cache"
	"github.com/darck0ne2011-gif/verifeye-app/internal/domain"
	"github.com/darck0ne2011-gif/verifeye-app/internal/extract"
	"github.com/darck0ne2011-gif/verifeye-app/internal/provider"
	"github.com/darck0ne2011-gif/verifeye-app/internal/reasoning"
)

type MockResultStore struct {
	mock.Mock
}

func (m *MockResultStore) Find(ctx context.Context, hash string) (*cache.Entry, error) {
	args := m.Called(ctx, hash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cache.Entry), args.Error(1)
}

func (m *MockResultStore) Merge(ctx context.Context, hash string, results map[domain.Capability]domain.CapabilityResult) error {
	args := m.Called(ctx, hash, results)
	return args.Error(0)
}

type MockDetectionService struct {
	mock.Mock
}

func (m *MockDetectionService) DetectImage(ctx context.Context, data []byte, mime, filename string, capabilities []domain.Capability) (*provider.Response, error) {
	args := m.Called(ctx, data, mime, filename, capabilities)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.Response), args.Error(1)
}

func (m *MockDetectionService) DetectVideoSequential(ctx context.Context, data []byte, mime, filename string, capabilities []domain.Capability) (*provider.Response, error) {
	args := m.Called(ctx, data, mime, filename, capabilities)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.Response), args.Error(1)
}

func (m *MockDetectionService) DetectAudio(ctx context.Context, data []byte, mime, filename string, capabilities []domain.Capability) (*provider.Response, error) {
	args := m.Called(ctx, data, mime, filename, capabilities)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.Response), args.Error(1)
}

type MockTrackExtractor struct {
	mock.Mock
}

func (m *MockTrackExtractor) Extract(ctx context.Context, data []byte, formatHint string, opts extract.Options) (*extract.Tracks, error) {
	args := m.Called(ctx, data, formatHint, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*extract.Tracks), args.Error(1)
}

func (m *MockTrackExtractor) ProbeAudio(ctx context.Context, data []byte, formatHint string) (*extract.AudioInfo, error) {
	args := m.Called(ctx, data, formatHint)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*extract.AudioInfo), args.Error(1)
}

type MockReasoner struct {
	mock.Mock
}

func (m *MockReasoner) Summarize(ctx context.Context, input reasoning.SummaryInput) (string, error) {
	args := m.Called(ctx, input)
	return args.String(0), args.Error(1)
}

func (m *MockReasoner) AssessVoiceClone(ctx context.Context, input reasoning.VoiceCloneInput) (*domain.CapabilityResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CapabilityResult), args.Error(1)
}

func (m *MockReasoner) AssessCredibility(ctx context.Context, transcript string, corroborating float64, language string) *domain.Credibility {
	args := m.Called(ctx, transcript, corroborating, language)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*domain.Credibility)
}

type MockTextExtractor struct {
	mock.Mock
}

func (m *MockTextExtractor) ExtractText(ctx context.Context, image []byte) (string, error) {
	args := m.Called(ctx, image)
	return args.String(0), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func floatPtr(v float64) *float64 { return &v }
