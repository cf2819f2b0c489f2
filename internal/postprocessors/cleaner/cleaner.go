// Package cleaner normalises extracted document text before chunking.
package cleaner

import (
	"context"
	"regexp"
	"strings"

	"github.com/fincomply/payguard/internal/core/domain"
)

// whitespaceRun matches one or more consecutive whitespace characters,
// including newlines from multi-page extraction.
var whitespaceRun = regexp.MustCompile(`\s+`)

// disallowed matches characters outside the conservative allow-list:
// word characters, whitespace, and the punctuation the downstream
// pattern matcher relies on (sentence terminators in particular).
var disallowed = regexp.MustCompile(`[^\w\s.,;:!?\-()]`)

// Processor collapses whitespace and strips characters outside the
// allow-list. It rewrites the document content and passes chunks
// through untouched.
type Processor struct{}

// New creates a new cleaner processor.
func New() *Processor {
	return &Processor{}
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "cleaner"
}

// Process rewrites doc.Content with the cleaned text.
func (p *Processor) Process(_ context.Context, doc *domain.Document, chunks []domain.Chunk) ([]domain.Chunk, error) {
	doc.Content = Clean(doc.Content)
	return chunks, nil
}

// Clean collapses whitespace runs to a single space, removes
// characters outside the allow-list, and trims the result.
func Clean(text string) string {
	text = whitespaceRun.ReplaceAllString(text, " ")
	text = disallowed.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}
