package handler

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/darck0ne2011-gif/verifeye-app/internal/domain"
)

// AnalysisService runs the full analysis pipeline for one upload
type AnalysisService interface {
	Analyze(ctx context.Context, req domain.AnalysisRequest) (*domain.ConsolidatedAnalysis, error)
}

// ScanRecorder persists finished scans for the history endpoints
type ScanRecorder interface {
	Create(ctx context.Context, scan *domain.Scan) error
}

// AnalyzeHandler handles media analysis requests
type AnalyzeHandler struct {
	service       AnalysisService
	history       ScanRecorder
	maxUploadSize int64
	logger        *slog.Logger
}

// NewAnalyzeHandler creates a new AnalyzeHandler instance. history may be
// nil when scan persistence is disabled.
func NewAnalyzeHandler(service AnalysisService, history ScanRecorder, maxUploadSizeMB int, logger *slog.Logger) *AnalyzeHandler {
	if maxUploadSizeMB <= 0 {
		maxUploadSizeMB = 50
	}
	return &AnalyzeHandler{
		service:       service,
		history:       history,
		maxUploadSize: int64(maxUploadSizeMB) * 1024 * 1024,
		logger:        logger,
	}
}

// recordScan persists the history record asynchronously (best-effort)
func (h *AnalyzeHandler) recordScan(filename string, result *domain.ConsolidatedAnalysis) {
	if h.history == nil {
		return
	}
	scan := domain.NewScan(result.ContentHash, filename, result)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := h.history.Create(ctx, scan); err != nil {
			h.logger.Warn("failed to record scan",
				"error", err,
				"content_hash", scan.ContentHash,
			)
		}
	}()
}

// Analyze POST /v1/analyze - analyze an uploaded media file
func (h *AnalyzeHandler) Analyze(c *fiber.Ctx) error {
	// 1. Extract and validate the uploaded file
	data, declaredMIME, filename, err := h.extractMedia(c)
	if err != nil {
		return err
	}

	// 2. Build the analysis request from form fields
	req := domain.AnalysisRequest{
		Data:         data,
		DeclaredMIME: declaredMIME,
		Filename:     filename,
		Capabilities: domain.ParseCapabilities(splitList(c.FormValue("capabilities"))),
		Options:      parseOptions(c),
	}

	// 3. Run the pipeline
	result, err := h.service.Analyze(c.Context(), req)
	if err != nil {
		return err
	}

	// 4. Record scan history (async, best-effort)
	h.recordScan(filename, result)

	return c.JSON(result)
}

// extractMedia pulls the media file out of the multipart form and enforces
// the size limit before buffering it.
func (h *AnalyzeHandler) extractMedia(c *fiber.Ctx) ([]byte, string, string, error) {
	file, err := c.FormFile("media")
	if err != nil {
		return nil, "", "", domain.ErrNoFileUploaded.WithError(err)
	}

	if file.Size == 0 {
		return nil, "", "", domain.ErrNoFileUploaded
	}
	if file.Size > h.maxUploadSize {
		return nil, "", "", domain.ErrFileTooLarge
	}

	f, err := file.Open()
	if err != nil {
		return nil, "", "", domain.ErrBadRequest.WithError(err)
	}
	defer func() {
		_ = f.Close()
	}()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, "", "", domain.ErrBadRequest.WithError(err)
	}

	declared := file.Header.Get("Content-Type")
	if !acceptedContentType(declared) {
		return nil, "", "", domain.ErrUnsupportedMediaType
	}

	return data, declared, file.Filename, nil
}

// acceptedContentType checks the declared type against the media allow-list.
// An absent or generic type is allowed; byte sniffing settles it later.
func acceptedContentType(declared string) bool {
	if declared == "" || declared == "application/octet-stream" {
		return true
	}
	for _, prefix := range []string{"image/", "audio/", "video/"} {
		if strings.HasPrefix(declared, prefix) {
			return true
		}
	}
	return false
}

func parseOptions(c *fiber.Ctx) domain.AnalysisOptions {
	opts := domain.AnalysisOptions{
		EliteTier:   formBool(c, "elite"),
		Language:    strings.TrimSpace(c.FormValue("language")),
		Credibility: formBool(c, "credibility"),
	}

	switch c.FormValue("video_engine") {
	case string(domain.VideoEngineFrameBased):
		opts.VideoEngine = domain.VideoEngineFrameBased
	case string(domain.VideoEngineNative):
		opts.VideoEngine = domain.VideoEngineNative
	}

	if raw := c.FormValue("video_capabilities"); raw != "" {
		opts.VideoCapabilities = domain.ParseCapabilities(splitList(raw))
	}

	return opts
}

func formBool(c *fiber.Ctx, key string) bool {
	switch strings.ToLower(strings.TrimSpace(c.FormValue(key))) {
	case "1", "true", "yes":
		return true
	}
	return false
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
