package driven

import (
	"context"

	"github.com/fincomply/payguard/internal/core/domain"
)

// Normaliser extracts plain text from a raw document. Each normaliser
// handles specific file extensions (e.g. .pdf, .docx, .txt).
type Normaliser interface {
	// SupportedExtensions returns the lowercased file extensions this
	// normaliser handles, including the leading dot.
	SupportedExtensions() []string

	// Normalise extracts the full text content of the raw document.
	// Failures for a supported format return an error wrapping
	// domain.ErrExtraction; they never panic.
	Normalise(ctx context.Context, raw *domain.RawDocument) (string, error)
}
