package driven

import (
	"context"

	"github.com/formfill-labs/formfill-cli/internal/core/domain"
)

// Chunker splits document content into bounded, overlapping chunks.
type Chunker interface {
	// Chunk produces ordered chunks covering the document's text.
	// Non-empty content always yields at least one chunk.
	Chunk(ctx context.Context, doc *domain.Document) ([]domain.Chunk, error)
}
