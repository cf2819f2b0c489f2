package driving

import (
	"context"

	"github.com/fincomply/payguard/internal/core/domain"
)

// IngestReport summarises one document ingestion.
type IngestReport struct {
	// DocumentID is the caller-assigned document identifier.
	DocumentID string

	// ChunksIndexed is how many chunks were embedded and stored.
	ChunksIndexed int

	// TotalWords is the word count of the cleaned text.
	TotalWords int

	// Rules are the structured facts extracted from the cleaned text.
	Rules []domain.Rule

	// Sanctions are the country/entity lists extracted from the
	// cleaned text.
	Sanctions domain.SanctionsList
}

// TransferRequest is a proposed funds transfer to validate.
type TransferRequest struct {
	// Amount is the transfer amount. Must be positive.
	Amount float64

	// User is the sender.
	User domain.User

	// Beneficiary is the recipient.
	Beneficiary domain.Beneficiary
}

// ComplianceService is the boundary the core exposes to callers:
// policy ingestion, transfer validation, document deletion and index
// statistics.
type ComplianceService interface {
	// Ingest processes a policy document end to end: normalise,
	// clean, chunk, extract rules and sanctions, embed, and index.
	// A failed ingestion never corrupts the index.
	Ingest(ctx context.Context, raw *domain.RawDocument) (*IngestReport, error)

	// ValidateTransfer renders an approve/reject verdict for a
	// proposed transfer. Business rejections are returned as
	// decisions; only malformed input produces an error.
	ValidateTransfer(ctx context.Context, req TransferRequest) (domain.Decision, error)

	// DeleteDocument removes every indexed chunk of the given
	// document and returns how many were removed.
	DeleteDocument(ctx context.Context, documentID string) (int, error)

	// RecordTransfer books a completed transfer into the ledger so
	// later daily-limit checks see it. Returns the booked transfer
	// with its generated reference.
	RecordTransfer(ctx context.Context, req TransferRequest, currency string) (domain.Transfer, error)

	// Stats reports the current state of the vector index.
	Stats(ctx context.Context) (domain.IndexStats, error)
}
