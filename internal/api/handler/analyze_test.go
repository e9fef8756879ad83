package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/darck0ne2011-gif/verifeye-app/internal/api/middleware"
	"github.com/darck0ne2011-gif/verifeye-app/internal/domain"
)

type mockAnalysisService struct {
	mock.Mock
}

func (m *mockAnalysisService) Analyze(ctx context.Context, req domain.AnalysisRequest) (*domain.ConsolidatedAnalysis, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ConsolidatedAnalysis), args.Error(1)
}

type recordingHistory struct {
	created chan *domain.Scan
}

func newRecordingHistory() *recordingHistory {
	return &recordingHistory{created: make(chan *domain.Scan, 1)}
}

func (r *recordingHistory) Create(ctx context.Context, scan *domain.Scan) error {
	r.created <- scan
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestApp(h *AnalyzeHandler) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(testLogger()),
	})
	app.Post("/v1/analyze", h.Analyze)
	return app
}

func multipartUpload(t *testing.T, filename string, data []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	if filename != "" {
		part, err := writer.CreateFormFile("media", filename)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}

	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}

	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestAnalyzeHandler_Analyze(t *testing.T) {
	t.Run("successful analysis", func(t *testing.T) {
		svc := new(mockAnalysisService)
		history := newRecordingHistory()
		h := NewAnalyzeHandler(svc, history, 50, testLogger())
		app := newTestApp(h)

		result := &domain.ConsolidatedAnalysis{
			ContentHash:     "abc123",
			FakeProbability: 81,
			MediaCategory:   domain.MediaImage,
		}
		svc.On("Analyze", mock.Anything, mock.MatchedBy(func(req domain.AnalysisRequest) bool {
			return req.Filename == "photo.png" &&
				len(req.Capabilities) == 2 &&
				req.Capabilities[0] == domain.CapabilityGenAI &&
				req.Capabilities[1] == domain.CapabilityQuality &&
				req.Options.EliteTier &&
				req.Options.Language == "pt"
		})).Return(result, nil)

		body, contentType := multipartUpload(t, "photo.png", []byte("fake-png-bytes"), map[string]string{
			"capabilities": "genai, quality",
			"elite":        "true",
			"language":     "pt",
		})

		req := httptest.NewRequest(http.MethodPost, "/v1/analyze", body)
		req.Header.Set("Content-Type", contentType)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var got domain.ConsolidatedAnalysis
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, 81, got.FakeProbability)

		select {
		case scan := <-history.created:
			assert.Equal(t, "abc123", scan.ContentHash)
			assert.Equal(t, "photo.png", scan.Filename)
			assert.Equal(t, domain.VerdictFake, scan.Verdict)
		case <-time.After(time.Second):
			t.Fatal("history record was never written")
		}

		svc.AssertExpectations(t)
	})

	t.Run("missing file returns 400", func(t *testing.T) {
		svc := new(mockAnalysisService)
		h := NewAnalyzeHandler(svc, nil, 50, testLogger())
		app := newTestApp(h)

		body, contentType := multipartUpload(t, "", nil, map[string]string{"elite": "true"})

		req := httptest.NewRequest(http.MethodPost, "/v1/analyze", body)
		req.Header.Set("Content-Type", contentType)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)

		svc.AssertNotCalled(t, "Analyze", mock.Anything, mock.Anything)
	})

	t.Run("oversized file returns 413", func(t *testing.T) {
		svc := new(mockAnalysisService)
		h := NewAnalyzeHandler(svc, nil, 1, testLogger())
		app := newTestApp(h)

		big := make([]byte, 1024*1024+1)
		body, contentType := multipartUpload(t, "big.mp4", big, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/analyze", body)
		req.Header.Set("Content-Type", contentType)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 413, resp.StatusCode)

		svc.AssertNotCalled(t, "Analyze", mock.Anything, mock.Anything)
	})

	t.Run("non-media content type returns 415", func(t *testing.T) {
		svc := new(mockAnalysisService)
		h := NewAnalyzeHandler(svc, nil, 50, testLogger())
		app := newTestApp(h)

		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", `form-data; name="media"; filename="report.pdf"`)
		header.Set("Content-Type", "application/pdf")
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write([]byte("%PDF-1.7"))
		require.NoError(t, err)
		require.NoError(t, writer.Close())

		req := httptest.NewRequest(http.MethodPost, "/v1/analyze", body)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 415, resp.StatusCode)

		svc.AssertNotCalled(t, "Analyze", mock.Anything, mock.Anything)
	})

	t.Run("service errors map to their status", func(t *testing.T) {
		svc := new(mockAnalysisService)
		h := NewAnalyzeHandler(svc, nil, 50, testLogger())
		app := newTestApp(h)

		svc.On("Analyze", mock.Anything, mock.Anything).
			Return(nil, domain.ErrDetectionUnavailable)

		body, contentType := multipartUpload(t, "photo.jpg", []byte("jpeg"), nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/analyze", body)
		req.Header.Set("Content-Type", contentType)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 503, resp.StatusCode)

		var payload struct {
			Error struct {
				Code string `json:"code"`
			} `json:"error"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
		assert.Equal(t, "DETECTION_UNAVAILABLE", payload.Error.Code)
	})

	t.Run("video options are forwarded", func(t *testing.T) {
		svc := new(mockAnalysisService)
		h := NewAnalyzeHandler(svc, nil, 50, testLogger())
		app := newTestApp(h)

		svc.On("Analyze", mock.Anything, mock.MatchedBy(func(req domain.AnalysisRequest) bool {
			return req.Options.VideoEngine == domain.VideoEngineFrameBased &&
				len(req.Options.VideoCapabilities) == 1 &&
				req.Options.VideoCapabilities[0] == domain.CapabilityDeepfake
		})).Return(&domain.ConsolidatedAnalysis{MediaCategory: domain.MediaVideo}, nil)

		body, contentType := multipartUpload(t, "clip.mp4", []byte("mp4-bytes"), map[string]string{
			"video_engine":       "frame_based",
			"video_capabilities": "deepfake",
		})

		req := httptest.NewRequest(http.MethodPost, "/v1/analyze", body)
		req.Header.Set("Content-Type", contentType)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		svc.AssertExpectations(t)
	})
}
