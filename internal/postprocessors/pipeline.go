// Package postprocessors provides document content processing implementations.
package postprocessors

import (
	"context"
	"fmt"

	"github.com/fincomply/payguard/internal/core/domain"
	"github.com/fincomply/payguard/internal/core/ports/driven"
	"github.com/fincomply/payguard/internal/postprocessors/chunker"
	"github.com/fincomply/payguard/internal/postprocessors/cleaner"
)

// Pipeline chains multiple PostProcessors and runs them in order.
type Pipeline struct {
	processors []driven.PostProcessor
}

// NewPipeline creates a new processing pipeline with the given processors.
// Processors are executed in the order provided.
func NewPipeline(processors ...driven.PostProcessor) *Pipeline {
	return &Pipeline{
		processors: processors,
	}
}

// Default builds the standard ingestion pipeline: clean the text, then
// split it into overlapping word windows.
func Default(chunkSize, overlap int) *Pipeline {
	return NewPipeline(
		cleaner.New(),
		chunker.New(
			chunker.WithChunkSize(chunkSize),
			chunker.WithOverlap(overlap),
		),
	)
}

// Process runs the document through all processors in order.
// The first processor receives nil chunks; the cleaner rewrites
// doc.Content and passes chunks through, the chunker creates them.
func (p *Pipeline) Process(ctx context.Context, doc *domain.Document) ([]domain.Chunk, error) {
	if doc == nil {
		return nil, fmt.Errorf("document is nil")
	}

	var chunks []domain.Chunk

	for _, processor := range p.processors {
		var err error
		chunks, err = processor.Process(ctx, doc, chunks)
		if err != nil {
			return nil, fmt.Errorf("processor %s: %w", processor.Name(), err)
		}
	}

	return chunks, nil
}

// Add appends a processor to the pipeline.
func (p *Pipeline) Add(processor driven.PostProcessor) {
	p.processors = append(p.processors, processor)
}

// Len returns the number of processors in the pipeline.
func (p *Pipeline) Len() int {
	return len(p.processors)
}
