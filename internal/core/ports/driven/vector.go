package driven

import (
	"context"

	"github.com/fincomply/payguard/internal/core/domain"
)

// VectorIndex stores embedded chunks and serves exact nearest-neighbour
// search. A single index instance has a fixed dimension; every stored
// vector has exactly that length.
type VectorIndex interface {
	// Add appends records to the index and returns how many were
	// stored. A record whose vector length differs from the index
	// dimension fails with domain.ErrDimensionMismatch and nothing
	// from that call is stored. IDs are not enforced unique.
	Add(ctx context.Context, records []domain.IndexedRecord) (int, error)

	// Search fails with domain.ErrIndexEmpty when the index holds no
	// vectors. Otherwise it returns at most k hits ordered by
	// ascending distance (descending similarity). A non-nil filter excludes hits whose
	// metadata does not exactly match every given key/value pair;
	// filtering happens after the k nearest are selected, so fewer
	// than k matching hits may be returned even when more exist.
	Search(ctx context.Context, query []float32, k int, filter map[string]string) ([]domain.Hit, error)

	// DeleteBySource removes every record whose Source equals source
	// and returns how many were removed. The operation is atomic from
	// the caller's perspective.
	DeleteBySource(ctx context.Context, source string) (int, error)

	// Save persists the full index and its metadata as a single
	// durable unit, consistent with the in-memory state at the
	// instant of the call.
	Save() error

	// Load restores previously saved state. A missing or corrupt
	// store is not an error: the index is left empty and false is
	// returned.
	Load() (bool, error)

	// Stats reports the current index state.
	Stats() domain.IndexStats

	// Close releases resources.
	Close() error
}
