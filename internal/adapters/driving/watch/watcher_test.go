package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fincomply/payguard/internal/core/domain"
	"github.com/fincomply/payguard/internal/core/ports/driving"
)

// mockService implements driving.ComplianceService for testing.
type mockService struct {
	ingested []string
	deleted  []string
}

func (m *mockService) Ingest(_ context.Context, raw *domain.RawDocument) (*driving.IngestReport, error) {
	m.ingested = append(m.ingested, raw.DocumentID)
	return &driving.IngestReport{DocumentID: raw.DocumentID, ChunksIndexed: 1}, nil
}

func (m *mockService) ValidateTransfer(_ context.Context, _ driving.TransferRequest) (domain.Decision, error) {
	return domain.Decision{}, nil
}

func (m *mockService) DeleteDocument(_ context.Context, documentID string) (int, error) {
	m.deleted = append(m.deleted, documentID)
	return 1, nil
}

func (m *mockService) RecordTransfer(_ context.Context, _ driving.TransferRequest, _ string) (domain.Transfer, error) {
	return domain.Transfer{}, nil
}

func (m *mockService) Stats(_ context.Context) (domain.IndexStats, error) {
	return domain.IndexStats{}, nil
}

func TestHandleEvent_CreateIngestsAfterDroppingOldChunks(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "limits.txt")
	require.NoError(t, os.WriteFile(path, []byte("Per transaction limit is 500 BHD."), 0600))

	svc := &mockService{}
	w := New(svc, []string{".txt"}, "compliance_rules")

	w.handleEvent(context.Background(), fsnotify.Event{Name: path, Op: fsnotify.Create})

	assert.Equal(t, []string{"limits"}, svc.deleted)
	assert.Equal(t, []string{"limits"}, svc.ingested)
}

func TestHandleEvent_RemoveDeletes(t *testing.T) {
	svc := &mockService{}
	w := New(svc, []string{".txt"}, "")

	w.handleEvent(context.Background(), fsnotify.Event{Name: "/policies/old.txt", Op: fsnotify.Remove})

	assert.Equal(t, []string{"old"}, svc.deleted)
	assert.Empty(t, svc.ingested)
}

func TestHandleEvent_IgnoresOtherExtensions(t *testing.T) {
	svc := &mockService{}
	w := New(svc, []string{".txt", ".pdf"}, "")

	w.handleEvent(context.Background(), fsnotify.Event{Name: "/policies/notes.swp", Op: fsnotify.Create})
	w.handleEvent(context.Background(), fsnotify.Event{Name: "/policies/notes.swp", Op: fsnotify.Remove})

	assert.Empty(t, svc.ingested)
	assert.Empty(t, svc.deleted)
}

func TestRun_StopsOnCancel(t *testing.T) {
	svc := &mockService{}
	w := New(svc, []string{".txt"}, "")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := w.Run(ctx, t.TempDir())
	assert.ErrorIs(t, err, context.Canceled)
}
