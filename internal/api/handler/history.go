package handler

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/darck0ne2011-gif/verifeye-app/internal/domain"
)

// ScanHistory lists and fetches persisted scans
type ScanHistory interface {
	ListRecent(ctx context.Context, limit, offset int) ([]domain.Scan, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Scan, error)
}

// HistoryHandler handles scan history requests
type HistoryHandler struct {
	history ScanHistory
	logger  *slog.Logger
}

func NewHistoryHandler(history ScanHistory, logger *slog.Logger) *HistoryHandler {
	return &HistoryHandler{
		history: history,
		logger:  logger,
	}
}

// HistoryListResponse response for the list endpoint
type HistoryListResponse struct {
	Scans  []domain.Scan `json:"scans"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
}

// List GET /v1/history - list recent scans
func (h *HistoryHandler) List(c *fiber.Ctx) error {
	limit := queryInt(c, "limit", 20)
	offset := queryInt(c, "offset", 0)

	scans, err := h.history.ListRecent(c.Context(), limit, offset)
	if err != nil {
		return err
	}

	if scans == nil {
		scans = []domain.Scan{}
	}

	return c.JSON(HistoryListResponse{
		Scans:  scans,
		Limit:  limit,
		Offset: offset,
	})
}

// Get GET /v1/history/:id - fetch one scan
func (h *HistoryHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return domain.ErrValidationFailed.WithError(err)
	}

	scan, err := h.history.GetByID(c.Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(scan)
}

func queryInt(c *fiber.Ctx, key string, def int) int {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
