// Package history persists finished scans so users can revisit past
// verdicts. Writes are best effort from the API layer's point of view; a
// failed history insert never fails the analysis response.
package history

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/darck0ne2011-gif/verifeye-app/internal/domain"
)

// PgxPool is the subset of pgxpool.Pool the repository needs; pgxmock
// satisfies it in tests.
type PgxPool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// RepositoryInterface defines operations for scan history data access
type RepositoryInterface interface {
	Create(ctx context.Context, scan *domain.Scan) error
	ListRecent(ctx context.Context, limit, offset int) ([]domain.Scan, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Scan, error)
}

type Repository struct {
	pool PgxPool
}

func NewRepository(pool PgxPool) *Repository {
	return &Repository{pool: pool}
}

// NewRepositoryFromPool adapts a concrete pgx pool.
func NewRepositoryFromPool(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) Create(ctx context.Context, scan *domain.Scan) error {
	query := `
		INSERT INTO scan_history (id, content_hash, filename, media_category, fake_probability, display_score, verdict, summary, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING created_at
	`

	if scan.ID == uuid.Nil {
		scan.ID = uuid.New()
	}

	err := r.pool.QueryRow(ctx, query,
		scan.ID,
		scan.ContentHash,
		scan.Filename,
		scan.MediaCategory,
		scan.FakeProbability,
		scan.DisplayScore,
		scan.Verdict,
		scan.Summary,
	).Scan(&scan.CreatedAt)

	if err != nil {
		return fmt.Errorf("create scan: %w", err)
	}

	return nil
}

func (r *Repository) ListRecent(ctx context.Context, limit, offset int) ([]domain.Scan, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT id, content_hash, filename, media_category, fake_probability, display_score, verdict, summary, created_at
		FROM scan_history
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list scans: %w", err)
	}
	defer rows.Close()

	var scans []domain.Scan
	for rows.Next() {
		var scan domain.Scan
		err := rows.Scan(
			&scan.ID,
			&scan.ContentHash,
			&scan.Filename,
			&scan.MediaCategory,
			&scan.FakeProbability,
			&scan.DisplayScore,
			&scan.Verdict,
			&scan.Summary,
			&scan.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		scans = append(scans, scan)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list scans: %w", err)
	}

	return scans, nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Scan, error) {
	query := `
		SELECT id, content_hash, filename, media_category, fake_probability, display_score, verdict, summary, created_at
		FROM scan_history
		WHERE id = $1
	`

	var scan domain.Scan
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&scan.ID,
		&scan.ContentHash,
		&scan.Filename,
		&scan.MediaCategory,
		&scan.FakeProbability,
		&scan.DisplayScore,
		&scan.Verdict,
		&scan.Summary,
		&scan.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrScanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get scan by id: %w", err)
	}

	return &scan, nil
}
