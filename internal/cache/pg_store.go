package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/darck0ne2011-gif/verifeye-app/internal/domain"
)

// DB interface for database operations (compatible with pgxpool.Pool and pgxmock)
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
}

// PGStore is the PostgreSQL-backed result cache. A merge is one upsert whose
// conflict action concatenates the JSONB column, so concurrent writers for
// the same hash union their keys instead of clobbering each other.
type PGStore struct {
	db DB
}

// NewPGStore creates a result store on a pgx pool.
func NewPGStore(db *pgxpool.Pool) *PGStore {
	return &PGStore{db: db}
}

// NewPGStoreWithDB creates a result store with a custom DB interface.
func NewPGStoreWithDB(db DB) *PGStore {
	return &PGStore{db: db}
}

// Find retrieves the accumulated entry for a content hash.
func (s *PGStore) Find(ctx context.Context, hash string) (*Entry, error) {
	query := `
		SELECT results, updated_at
		FROM scan_results
		WHERE content_hash = $1
	`

	var raw []byte
	var updatedAt time.Time

	err := s.db.QueryRow(ctx, query, hash).Scan(&raw, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCacheMiss
		}
		return nil, err
	}

	results := make(map[domain.Capability]domain.CapabilityResult)
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &results); err != nil {
			return nil, fmt.Errorf("decode cached results: %w", err)
		}
	}

	return &Entry{Hash: hash, Results: results, UpdatedAt: updatedAt}, nil
}

// Merge overlays the given capability results onto whatever is stored for
// the hash. The top-level JSONB concatenation replaces only the written
// keys, so the whole merge is a single atomic statement and interleaved
// writers cannot lose each other's capabilities.
func (s *PGStore) Merge(ctx context.Context, hash string, results map[domain.Capability]domain.CapabilityResult) error {
	if len(results) == 0 {
		return nil
	}

	encoded, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("encode merged results: %w", err)
	}

	_, err = s.db.Exec(ctx, `
		INSERT INTO scan_results (content_hash, results, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (content_hash) DO UPDATE
		SET results = scan_results.results || EXCLUDED.results,
		    updated_at = NOW()
	`, hash, encoded)
	return err
}
