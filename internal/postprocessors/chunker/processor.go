// Package chunker provides a fixed-size word-window chunking processor.
package chunker

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/fincomply/payguard/internal/core/domain"
)

// DefaultChunkSize is the default number of words per chunk.
const DefaultChunkSize = 1000

// DefaultChunkOverlap is the default number of overlapping words.
const DefaultChunkOverlap = 200

// Processor splits cleaned document content into overlapping
// word-count windows. Windows start at word offsets 0, S-V, 2(S-V), …
// so every word lands in at least one chunk and words near a boundary
// land in two; a pattern spanning a boundary is never lost.
type Processor struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the chunk size in words.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		if size > 0 {
			p.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in words.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		if overlap >= 0 {
			p.overlap = overlap
		}
	}
}

// New creates a new chunker processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(p)
	}

	// Overlap must stay below chunk size or the window never advances
	if p.overlap >= p.chunkSize {
		p.overlap = p.chunkSize / 4
	}

	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// Process splits the document content into chunks.
// Input chunks are ignored; this processor creates new chunks from document content.
func (p *Processor) Process(_ context.Context, doc *domain.Document, _ []domain.Chunk) ([]domain.Chunk, error) {
	return p.Chunk(doc.Content), nil
}

// Chunk splits text into overlapping word windows. The final chunk may
// be shorter than the chunk size. Chunk IDs are content hashes, so
// re-chunking identical text yields identical IDs.
func (p *Processor) Chunk(text string) []domain.Chunk {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	step := p.chunkSize - p.overlap
	chunks := make([]domain.Chunk, 0, len(words)/step+1)

	for start := 0; start < len(words); start += step {
		end := start + p.chunkSize
		if end > len(words) {
			end = len(words)
		}

		content := strings.Join(words[start:end], " ")
		chunks = append(chunks, domain.Chunk{
			ID:         hashText(content),
			Text:       content,
			StartIndex: start,
			EndIndex:   end,
		})

		if end == len(words) {
			break
		}
	}

	return chunks
}

// hashText returns the SHA-256 hex digest of the chunk text.
func hashText(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
