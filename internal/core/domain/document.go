package domain

import "time"

// RawDocument is a document as delivered by the caller, before any
// normalisation has happened.
type RawDocument struct {
	// DocumentID is the caller-assigned identifier. It becomes the
	// Source key of every indexed chunk and scopes bulk deletion.
	DocumentID string

	// Path is the original file location. Its extension selects the
	// normaliser.
	Path string

	// Content is the raw file bytes.
	Content []byte

	// DocumentType tags the document (e.g. "compliance_rules",
	// "sanctions_list") and is carried into chunk metadata.
	DocumentType string
}

// Document is the normalised form of a raw document: extracted and
// cleaned text ready for chunking and extraction.
type Document struct {
	// ID is the caller-assigned document identifier.
	ID string

	// FileName is the base name of the originating file.
	FileName string

	// Content is the cleaned full text.
	Content string

	// DocumentType tags the document category.
	DocumentType string

	// ProcessedAt is when normalisation completed.
	ProcessedAt time.Time
}

// Chunk is a bounded, overlapping slice of a document's cleaned text.
// It is the unit of embedding and indexing.
type Chunk struct {
	// ID is the SHA-256 hex digest of Text. Identical text always
	// yields the same ID, so re-ingesting an unchanged document is
	// detectable.
	ID string

	// Text is the chunk content.
	Text string

	// StartIndex is the word offset of the first word in the chunk.
	StartIndex int

	// EndIndex is the word offset one past the last word.
	EndIndex int
}

// IndexedRecord is a chunk paired with its embedding, as stored in the
// vector index. Records are never mutated in place; they are removed
// only by source-scoped deletion.
type IndexedRecord struct {
	// ID identifies the record. The index does not enforce uniqueness;
	// duplicate IDs shadow each other in direct lookup while both
	// vectors remain searchable.
	ID string

	// Vector is the embedding. Its length must equal the index
	// dimension.
	Vector []float32

	// Text is the chunk text the vector was computed from.
	Text string

	// Source is the originating document ID and the deletion key.
	Source string

	// ChunkIndex is the ordinal position of the chunk within its
	// document.
	ChunkIndex int

	// Metadata holds exact-match filterable fields such as
	// document_type and file_name.
	Metadata map[string]string
}

// Hit is a single vector search result.
type Hit struct {
	// Record is the matched record.
	Record IndexedRecord

	// Rank is the 1-based position among the returned hits.
	Rank int

	// Distance is the squared Euclidean distance to the query vector.
	Distance float64

	// Similarity is 1/(1+Distance), a strictly positive monotonic
	// transform of the distance. It is not a cosine similarity.
	Similarity float64
}

// IndexStats summarises the state of a vector index.
type IndexStats struct {
	// TotalDocuments is the number of vectors in the index.
	TotalDocuments int

	// Dimension is the fixed embedding width.
	Dimension int

	// UniqueSources is the number of distinct Source values.
	UniqueSources int

	// MetadataCount is the number of metadata records. It must always
	// equal TotalDocuments.
	MetadataCount int
}
