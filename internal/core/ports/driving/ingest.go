package driving

import (
	"context"

	"github.com/formfill-labs/formfill-cli/internal/core/domain"
)

// IngestRequest describes one document to ingest.
type IngestRequest struct {
	// Name is the display name (usually the file name).
	Name string

	// Path is the source path or origin.
	Path string

	// Content is the extracted plain text. Text extraction for
	// non-text formats happens upstream.
	Content string
}

// IngestResult reports the outcome of an ingestion.
type IngestResult struct {
	// Document is the stored document.
	Document domain.Document

	// ChunkCount is the number of chunks indexed.
	ChunkCount int

	// Replaced reports whether a prior document with the same
	// logical identity was replaced.
	Replaced bool
}

// IngestService manages the document write path:
// chunk, embed, persist and index.
type IngestService interface {
	// Ingest adds a document, replacing any prior document with the
	// same logical identity (name + path). All-or-nothing: on error
	// no partial state is left behind.
	Ingest(ctx context.Context, req IngestRequest) (*IngestResult, error)

	// Remove deletes a document and all its indexed chunks.
	Remove(ctx context.Context, documentID string) error

	// Get retrieves a stored document by ID.
	Get(ctx context.Context, documentID string) (*domain.Document, error)

	// List returns all stored documents.
	List(ctx context.Context) ([]domain.Document, error)

	// Rebuild reloads every stored document's chunks into the vector
	// index and returns the number of documents loaded. Called at
	// startup; a failure means the index cannot be trusted.
	Rebuild(ctx context.Context) (int, error)
}
