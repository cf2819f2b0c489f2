// Package flat provides an exact (brute-force) vector index with
// source-scoped deletion and single-file persistence. At the corpus
// sizes a policy library reaches, exact search is sub-millisecond and
// returns exact rather than approximate neighbours.
package flat

import (
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/fincomply/payguard/internal/core/domain"
	"github.com/fincomply/payguard/internal/core/ports/driven"
	"github.com/fincomply/payguard/internal/logger"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// SnapshotFile is the name of the persisted index file inside the data
// directory.
const SnapshotFile = "index.gob"

// recordMeta is the stored metadata for one vector. Vectors and metas
// are parallel slices; their lengths are equal at every observation
// point.
type recordMeta struct {
	ID         string
	Text       string
	Source     string
	ChunkIndex int
	Metadata   map[string]string
}

// snapshot is the on-disk representation of the full index state.
type snapshot struct {
	Dimension int
	Vectors   [][]float32
	Metas     []recordMeta
}

// Index is an in-memory exact-search vector index. Readers share a
// read lock; writers hold the write lock for the full duration of a
// mutation, including the staged rebuild in DeleteBySource, so no
// reader ever observes a half-rebuilt structure.
type Index struct {
	mu        sync.RWMutex
	dimension int
	path      string // snapshot file; empty disables persistence

	vectors [][]float32
	metas   []recordMeta
	idToPos map[string]int
}

// New creates an empty index with the given fixed dimension. dataDir
// is where snapshots are written; pass "" for a purely in-memory
// index.
func New(dimension int, dataDir string) (*Index, error) {
	if dimension <= 0 {
		return nil, fmt.Errorf("%w: dimension must be positive", domain.ErrInvalidInput)
	}

	idx := &Index{
		dimension: dimension,
		idToPos:   make(map[string]int),
	}

	if dataDir != "" {
		if err := os.MkdirAll(dataDir, 0700); err != nil {
			return nil, fmt.Errorf("creating index directory: %w", err)
		}
		idx.path = filepath.Join(dataDir, SnapshotFile)
	}

	return idx, nil
}

// Dimension returns the fixed embedding width.
func (idx *Index) Dimension() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.dimension
}

// Add appends records and their vectors to the index. Any record whose
// vector length differs from the index dimension fails the whole call
// with domain.ErrDimensionMismatch before anything is stored.
//
// IDs are not enforced unique: a duplicate ID shadows the earlier
// record in the direct id lookup while both vectors remain searchable.
// Callers are responsible for ID uniqueness.
func (idx *Index) Add(_ context.Context, records []domain.IndexedRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	for _, rec := range records {
		if len(rec.Vector) != idx.dimension {
			return 0, fmt.Errorf("%w: record %q has dimension %d, index expects %d",
				domain.ErrDimensionMismatch, rec.ID, len(rec.Vector), idx.dimension)
		}
	}

	for _, rec := range records {
		vec := make([]float32, idx.dimension)
		copy(vec, rec.Vector)

		idx.idToPos[rec.ID] = len(idx.metas)
		idx.vectors = append(idx.vectors, vec)
		idx.metas = append(idx.metas, recordMeta{
			ID:         rec.ID,
			Text:       rec.Text,
			Source:     rec.Source,
			ChunkIndex: rec.ChunkIndex,
			Metadata:   copyMetadata(rec.Metadata),
		})
	}

	return len(records), nil
}

// Search returns at most k hits ordered by ascending squared Euclidean
// distance. Similarity is 1/(1+distance). A non-nil filter is applied
// after the k nearest are selected, so fewer than k matching hits may
// come back even when more matching records exist; rank numbering
// reflects the pre-filter position.
//
// Searching an empty index fails with domain.ErrIndexEmpty.
func (idx *Index) Search(_ context.Context, query []float32, k int, filter map[string]string) ([]domain.Hit, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if len(idx.vectors) == 0 {
		return nil, domain.ErrIndexEmpty
	}
	if len(query) != idx.dimension {
		return nil, fmt.Errorf("%w: query has dimension %d, index expects %d",
			domain.ErrDimensionMismatch, len(query), idx.dimension)
	}
	if k <= 0 {
		k = 5
	}
	if k > len(idx.vectors) {
		k = len(idx.vectors)
	}

	distances := make([]float64, len(idx.vectors))
	for i, vec := range idx.vectors {
		distances[i] = squaredL2(query, vec)
	}

	order := make([]int, len(idx.vectors))
	for i := range order {
		order[i] = i
	}
	// Stable so equal distances keep insertion order
	sort.SliceStable(order, func(a, b int) bool {
		return distances[order[a]] < distances[order[b]]
	})

	hits := make([]domain.Hit, 0, k)
	for rank, pos := range order[:k] {
		meta := idx.metas[pos]
		if !matchesFilter(meta.Metadata, filter) {
			continue
		}

		dist := distances[pos]
		hits = append(hits, domain.Hit{
			Record: domain.IndexedRecord{
				ID:         meta.ID,
				Vector:     idx.vectors[pos],
				Text:       meta.Text,
				Source:     meta.Source,
				ChunkIndex: meta.ChunkIndex,
				Metadata:   copyMetadata(meta.Metadata),
			},
			Rank:       rank + 1,
			Distance:   dist,
			Similarity: 1 / (1 + dist),
		})
	}

	return hits, nil
}

// DeleteBySource removes every record whose Source equals source. The
// exact-search structure has no point deletion, so survivors are
// staged in their original relative order and swapped in wholesale;
// readers never observe the intermediate state, and once started the
// rebuild always runs to completion.
func (idx *Index) DeleteBySource(_ context.Context, source string) (int, error) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	deleted := 0
	for _, meta := range idx.metas {
		if meta.Source == source {
			deleted++
		}
	}
	if deleted == 0 {
		return 0, nil
	}

	// Stage the surviving state, then swap.
	newVectors := make([][]float32, 0, len(idx.vectors)-deleted)
	newMetas := make([]recordMeta, 0, len(idx.metas)-deleted)
	newLookup := make(map[string]int, len(idx.metas)-deleted)

	for i, meta := range idx.metas {
		if meta.Source == source {
			continue
		}
		newLookup[meta.ID] = len(newMetas)
		newVectors = append(newVectors, idx.vectors[i])
		newMetas = append(newMetas, meta)
	}

	idx.vectors = newVectors
	idx.metas = newMetas
	idx.idToPos = newLookup

	return deleted, nil
}

// GetByID returns the record currently reachable under the given ID.
// When duplicate IDs were inserted, the last one wins.
func (idx *Index) GetByID(id string) (*domain.IndexedRecord, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	pos, ok := idx.idToPos[id]
	if !ok {
		return nil, domain.ErrNotFound
	}

	meta := idx.metas[pos]
	return &domain.IndexedRecord{
		ID:         meta.ID,
		Vector:     idx.vectors[pos],
		Text:       meta.Text,
		Source:     meta.Source,
		ChunkIndex: meta.ChunkIndex,
		Metadata:   copyMetadata(meta.Metadata),
	}, nil
}

// Save persists the full index state as a single durable unit. The
// snapshot is consistent with the in-memory state at the instant of
// the call: it is taken under the read lock and cannot race an
// in-flight mutation. The file is written to a temp path and renamed
// into place.
func (idx *Index) Save() error {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if idx.path == "" {
		return nil
	}

	tmp, err := os.CreateTemp(filepath.Dir(idx.path), SnapshotFile+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating snapshot temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	enc := gob.NewEncoder(tmp)
	err = enc.Encode(snapshot{
		Dimension: idx.dimension,
		Vectors:   idx.vectors,
		Metas:     idx.metas,
	})
	if err != nil {
		tmp.Close()
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing snapshot temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), idx.path); err != nil {
		return fmt.Errorf("replacing snapshot: %w", err)
	}

	return nil
}

// Load restores the last saved snapshot. A missing or unreadable
// snapshot is not an error: the index stays empty and false is
// returned, so process startup never fails on a corrupt store.
func (idx *Index) Load() (bool, error) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if idx.path == "" {
		return false, nil
	}

	f, err := os.Open(idx.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		logger.Warn("vector index: snapshot unreadable, starting empty: %v", err)
		return false, nil
	}
	defer f.Close()

	var snap snapshot
	if err := gob.NewDecoder(f).Decode(&snap); err != nil {
		logger.Warn("vector index: snapshot corrupt, starting empty: %v", err)
		return false, nil
	}
	if len(snap.Vectors) != len(snap.Metas) {
		logger.Warn("vector index: snapshot inconsistent (%d vectors, %d metadata records), starting empty",
			len(snap.Vectors), len(snap.Metas))
		return false, nil
	}

	if snap.Dimension != idx.dimension {
		logger.Warn("vector index: snapshot dimension %d differs from configured %d, adopting snapshot",
			snap.Dimension, idx.dimension)
	}

	idx.dimension = snap.Dimension
	idx.vectors = snap.Vectors
	idx.metas = snap.Metas
	idx.idToPos = make(map[string]int, len(snap.Metas))
	for i, meta := range snap.Metas {
		idx.idToPos[meta.ID] = i
	}

	return true, nil
}

// Stats reports the current index state.
func (idx *Index) Stats() domain.IndexStats {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	sources := make(map[string]struct{}, len(idx.metas))
	for _, meta := range idx.metas {
		sources[meta.Source] = struct{}{}
	}

	return domain.IndexStats{
		TotalDocuments: len(idx.vectors),
		Dimension:      idx.dimension,
		UniqueSources:  len(sources),
		MetadataCount:  len(idx.metas),
	}
}

// Close releases resources.
func (idx *Index) Close() error {
	return nil
}

// squaredL2 computes the squared Euclidean distance between two
// equal-length vectors.
func squaredL2(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return sum
}

// matchesFilter reports whether metadata satisfies every filter pair.
func matchesFilter(metadata, filter map[string]string) bool {
	for key, want := range filter {
		if metadata[key] != want {
			return false
		}
	}
	return true
}

// copyMetadata creates a shallow copy of metadata.
func copyMetadata(src map[string]string) map[string]string {
	if src == nil {
		return nil
	}
	dst := make(map[string]string, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
