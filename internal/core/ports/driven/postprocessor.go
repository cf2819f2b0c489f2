package driven

import (
	"context"

	"github.com/fincomply/payguard/internal/core/domain"
)

// PostProcessor transforms a normalised document on its way into the
// index. Processors run in pipeline order: a processor may rewrite the
// document content (cleaning) or produce chunks from it (chunking).
type PostProcessor interface {
	// Name returns the processor name for error reporting.
	Name() string

	// Process transforms the document and/or chunk set. The first
	// processor in a pipeline receives nil chunks.
	Process(ctx context.Context, doc *domain.Document, chunks []domain.Chunk) ([]domain.Chunk, error)
}
