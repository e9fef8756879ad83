package cache

import (
	"context"
	"errors"
	"time"

	"github.com/darck0ne2011-gif/verifeye-app/internal/domain"
)

// ErrCacheMiss is returned when no entry exists for a content hash.
var ErrCacheMiss = errors.New("cache miss")

// Entry is the accumulated per-capability state for one content hash.
type Entry struct {
	Hash      string
	Results   map[domain.Capability]domain.CapabilityResult
	UpdatedAt time.Time
}

// Missing returns the requested capabilities not yet present in the entry,
// preserving request order. A nil entry leaves everything missing.
func (e *Entry) Missing(requested []domain.Capability) []domain.Capability {
	var missing []domain.Capability
	for _, c := range requested {
		if e == nil || e.Results == nil {
			missing = append(missing, c)
			continue
		}
		if _, ok := e.Results[c]; !ok {
			missing = append(missing, c)
		}
	}
	return missing
}

// ResultStore is the per-file result cache keyed by content hash.
//
// Merge must overlay only the capability keys present in results and
// persist the union: capabilities stored by earlier requests are never
// dropped. Implementations must make the read-merge-write atomic so two
// concurrent writers cannot lose each other's capabilities.
type ResultStore interface {
	Find(ctx context.Context, hash string) (*Entry, error)
	Merge(ctx context.Context, hash string, results map[domain.Capability]domain.CapabilityResult) error
}
