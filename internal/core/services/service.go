package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fincomply/payguard/internal/core/domain"
	"github.com/fincomply/payguard/internal/core/ports/driven"
	"github.com/fincomply/payguard/internal/core/ports/driving"
	"github.com/fincomply/payguard/internal/logger"
)

// Ensure ComplianceService implements the interface.
var _ driving.ComplianceService = (*ComplianceService)(nil)

// timeNow is swapped in tests that pin the clock.
var timeNow = time.Now

// Metadata keys carried on every indexed chunk.
const (
	metaDocumentType = "document_type"
	metaFileName     = "file_name"
	metaProcessedAt  = "processed_at"
)

// DefaultDocumentType tags documents ingested without an explicit type.
const DefaultDocumentType = "general"

// NormaliserSelector picks a normaliser for a file path.
type NormaliserSelector interface {
	ForPath(path string) (driven.Normaliser, error)
}

// ChunkPipeline cleans a document and splits it into chunks.
type ChunkPipeline interface {
	Process(ctx context.Context, doc *domain.Document) ([]domain.Chunk, error)
}

// FactExtractor pulls structured rules and sanctions lists out of
// cleaned policy text.
type FactExtractor interface {
	ExtractRules(text string) []domain.Rule
	ExtractSanctions(text string) domain.SanctionsList
}

// Config holds the static defaults the service falls back to when no
// policy document overrides them.
type Config struct {
	// PerTransactionLimit is the fallback per-transfer cap.
	PerTransactionLimit float64

	// TopK is how many chunks each topic query retrieves.
	TopK int

	// TopicTimeout bounds each topic's retrieval during validation.
	TopicTimeout time.Duration
}

// Deps are the collaborators injected into the service.
type Deps struct {
	Normalisers NormaliserSelector
	Pipeline    ChunkPipeline
	Extractor   FactExtractor
	Embedder    driven.EmbeddingService
	Index       driven.VectorIndex
	Ledger      driven.TransferLedger
	Screener    driven.SanctionsScreener
}

// ComplianceService implements policy ingestion and transfer
// validation on top of the injected ports.
type ComplianceService struct {
	cfg  Config
	deps Deps
}

// New creates a compliance service. Zero config fields fall back to
// built-in defaults.
func New(cfg Config, deps Deps) *ComplianceService {
	if cfg.PerTransactionLimit <= 0 {
		cfg.PerTransactionLimit = 500
	}
	if cfg.TopK <= 0 {
		cfg.TopK = 5
	}
	if cfg.TopicTimeout <= 0 {
		cfg.TopicTimeout = 10 * time.Second
	}
	return &ComplianceService{cfg: cfg, deps: deps}
}

// Ingest processes a policy document end to end: normalise, clean,
// chunk, extract facts, embed, and index. Nothing is stored unless
// every step succeeds, so a failed ingestion never corrupts the index.
func (s *ComplianceService) Ingest(ctx context.Context, raw *domain.RawDocument) (*driving.IngestReport, error) {
	if raw == nil || raw.DocumentID == "" || raw.Path == "" {
		return nil, fmt.Errorf("%w: document id and path are required", domain.ErrInvalidInput)
	}

	docType := raw.DocumentType
	if docType == "" {
		docType = DefaultDocumentType
	}

	normaliser, err := s.deps.Normalisers.ForPath(raw.Path)
	if err != nil {
		return nil, err
	}

	logger.Debug("Normalising %s (%s)", raw.Path, docType)
	text, err := normaliser.Normalise(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("normalise %s: %w", raw.Path, err)
	}

	doc := &domain.Document{
		ID:           raw.DocumentID,
		FileName:     filepath.Base(raw.Path),
		Content:      text,
		DocumentType: docType,
		ProcessedAt:  time.Now(),
	}

	chunks, err := s.deps.Pipeline.Process(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("process document %s: %w", doc.ID, err)
	}

	// Extraction runs over the cleaned full text, not per chunk, so
	// facts spanning chunk boundaries are still found.
	rules := s.deps.Extractor.ExtractRules(doc.Content)
	sanctions := s.deps.Extractor.ExtractSanctions(doc.Content)

	report := &driving.IngestReport{
		DocumentID: doc.ID,
		TotalWords: len(strings.Fields(doc.Content)),
		Rules:      rules,
		Sanctions:  sanctions,
	}

	if len(chunks) == 0 {
		logger.Warn("Document %s produced no chunks, nothing indexed", doc.ID)
		return report, nil
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}

	logger.Debug("Embedding %d chunks with %s", len(texts), s.deps.Embedder.ModelName())
	vectors, err := s.deps.Embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed document %s: %w", doc.ID, err)
	}
	if len(vectors) != len(chunks) {
		return nil, fmt.Errorf("embed document %s: expected %d vectors, got %d", doc.ID, len(chunks), len(vectors))
	}

	processedAt := doc.ProcessedAt.Format(time.RFC3339)
	records := make([]domain.IndexedRecord, len(chunks))
	for i, c := range chunks {
		records[i] = domain.IndexedRecord{
			ID:         fmt.Sprintf("%s_chunk_%d", doc.ID, i),
			Vector:     vectors[i],
			Text:       c.Text,
			Source:     doc.ID,
			ChunkIndex: i,
			Metadata: map[string]string{
				metaDocumentType: doc.DocumentType,
				metaFileName:     doc.FileName,
				metaProcessedAt:  processedAt,
			},
		}
	}

	added, err := s.deps.Index.Add(ctx, records)
	if err != nil {
		return nil, fmt.Errorf("index document %s: %w", doc.ID, err)
	}
	report.ChunksIndexed = added

	if err := s.deps.Index.Save(); err != nil {
		return nil, fmt.Errorf("persist index after ingesting %s: %w", doc.ID, err)
	}

	logger.Info("Ingested %s: %d chunks, %d rules, %d sanctioned countries",
		doc.ID, added, len(rules), len(sanctions.Countries))
	return report, nil
}

// DeleteDocument removes every indexed chunk of the given document and
// returns how many were removed.
func (s *ComplianceService) DeleteDocument(ctx context.Context, documentID string) (int, error) {
	if documentID == "" {
		return 0, fmt.Errorf("%w: document id is required", domain.ErrInvalidInput)
	}

	removed, err := s.deps.Index.DeleteBySource(ctx, documentID)
	if err != nil {
		return 0, err
	}

	if removed > 0 {
		if err := s.deps.Index.Save(); err != nil {
			return removed, fmt.Errorf("persist index after deleting %s: %w", documentID, err)
		}
	}

	logger.Info("Deleted %d chunks for document %s", removed, documentID)
	return removed, nil
}

// RecordTransfer books a completed transfer into the ledger.
func (s *ComplianceService) RecordTransfer(ctx context.Context, req driving.TransferRequest, currency string) (domain.Transfer, error) {
	if req.Amount <= 0 {
		return domain.Transfer{}, fmt.Errorf("%w: amount must be positive", domain.ErrInvalidInput)
	}
	if currency == "" {
		currency = "BHD"
	}

	transfer := domain.Transfer{
		Reference:          newReference(),
		SenderID:           req.User.ID,
		Amount:             req.Amount,
		Currency:           currency,
		BeneficiaryName:    req.Beneficiary.Name,
		BeneficiaryCountry: req.Beneficiary.Country,
		CompletedAt:        time.Now(),
	}

	if err := s.deps.Ledger.Record(ctx, transfer); err != nil {
		return domain.Transfer{}, fmt.Errorf("record transfer: %w", err)
	}

	logger.Info("Recorded transfer %s: %.3f %s to %s", transfer.Reference, transfer.Amount, transfer.Currency, transfer.BeneficiaryName)
	return transfer, nil
}

// Stats reports the current state of the vector index.
func (s *ComplianceService) Stats(_ context.Context) (domain.IndexStats, error) {
	return s.deps.Index.Stats(), nil
}

// newReference builds a unique transfer reference, e.g.
// TXN_20260829153000_A3F19B.
func newReference() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:6]
	return fmt.Sprintf("TXN_%s_%s", time.Now().Format("20060102150405"), suffix)
}
