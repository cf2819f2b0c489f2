package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input, such as a
	// non-positive transfer amount. Contract violations are rejected
	// before any business check runs.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedFormat indicates a document format no normaliser
	// handles. Callers wrap it with the rejected extension.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrExtraction indicates text extraction failed for a supported
	// format. The underlying cause is wrapped alongside it.
	ErrExtraction = errors.New("text extraction failed")

	// ErrDimensionMismatch indicates a vector whose length differs
	// from the index dimension. Inserting such a vector is a fatal
	// contract violation, never silently coerced.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured or unreachable.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrIndexEmpty indicates a search against an index holding no
	// vectors. The decision engine maps it to the configuration
	// fallback path.
	ErrIndexEmpty = errors.New("vector index is empty")
)
