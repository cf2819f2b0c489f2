package services

import (
	"context"
	"sync"
	"time"

	"github.com/fincomply/payguard/internal/core/domain"
	"github.com/fincomply/payguard/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockEmbedder implements driven.EmbeddingService for testing. It
// returns a fixed vector unless a per-text override is set.
type mockEmbedder struct {
	vector   []float32
	byText   map[string][]float32
	embedErr error
	dims     int

	mu     sync.Mutex
	embeds []string
}

func (m *mockEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	m.mu.Lock()
	m.embeds = append(m.embeds, text)
	m.mu.Unlock()
	if v, ok := m.byText[text]; ok {
		return v, nil
	}
	return m.vector, nil
}

func (m *mockEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v, err := m.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (m *mockEmbedder) Dimensions() int {
	if m.dims > 0 {
		return m.dims
	}
	return len(m.vector)
}

func (m *mockEmbedder) ModelName() string { return "mock-embed" }

func (m *mockEmbedder) Ping(_ context.Context) error { return nil }

func (m *mockEmbedder) Close() error { return nil }

// mockIndex implements driven.VectorIndex for testing.
type mockIndex struct {
	hits      []domain.Hit
	searchErr error
	addErr    error
	saveErr   error
	deleted   int
	deleteErr error

	mu       sync.Mutex
	added    []domain.IndexedRecord
	saves    int
	searches int
}

func (m *mockIndex) Add(_ context.Context, records []domain.IndexedRecord) (int, error) {
	if m.addErr != nil {
		return 0, m.addErr
	}
	m.mu.Lock()
	m.added = append(m.added, records...)
	m.mu.Unlock()
	return len(records), nil
}

func (m *mockIndex) Search(_ context.Context, _ []float32, k int, _ map[string]string) ([]domain.Hit, error) {
	m.mu.Lock()
	m.searches++
	m.mu.Unlock()
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	if k < len(m.hits) {
		return m.hits[:k], nil
	}
	return m.hits, nil
}

func (m *mockIndex) DeleteBySource(_ context.Context, _ string) (int, error) {
	if m.deleteErr != nil {
		return 0, m.deleteErr
	}
	return m.deleted, nil
}

func (m *mockIndex) Save() error {
	m.mu.Lock()
	m.saves++
	m.mu.Unlock()
	return m.saveErr
}

func (m *mockIndex) Load() (bool, error) { return false, nil }

func (m *mockIndex) Stats() domain.IndexStats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return domain.IndexStats{
		TotalDocuments: len(m.added),
		MetadataCount:  len(m.added),
	}
}

func (m *mockIndex) Close() error { return nil }

// mockLedger implements driven.TransferLedger for testing.
type mockLedger struct {
	spent     float64
	spentErr  error
	recordErr error

	mu       sync.Mutex
	recorded []domain.Transfer
}

func (m *mockLedger) Record(_ context.Context, transfer domain.Transfer) error {
	if m.recordErr != nil {
		return m.recordErr
	}
	m.mu.Lock()
	m.recorded = append(m.recorded, transfer)
	m.mu.Unlock()
	return nil
}

func (m *mockLedger) DailySpent(_ context.Context, _ string, _ time.Time) (float64, error) {
	if m.spentErr != nil {
		return 0, m.spentErr
	}
	return m.spent, nil
}

func (m *mockLedger) Close() error { return nil }

// mockScreener implements driven.SanctionsScreener for testing.
type mockScreener struct {
	result   driven.ScreeningResult
	checkErr error

	mu    sync.Mutex
	calls int
}

func (m *mockScreener) Check(_ context.Context, _, _ string) (driven.ScreeningResult, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.checkErr != nil {
		return driven.ScreeningResult{}, m.checkErr
	}
	return m.result, nil
}
