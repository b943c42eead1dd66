package driven

import (
	"context"

	"github.com/formfill-labs/formfill-cli/internal/core/domain"
)

// VectorIndex provides cosine similarity search over indexed chunks.
// Backed by an exact linear scan; the corpus stays small enough
// (low thousands of chunks) that no ANN structure is needed.
type VectorIndex interface {
	// UpsertDocument atomically replaces all records for a document.
	// Readers observe either the pre- or post-upsert state, never a mix.
	UpsertDocument(ctx context.Context, documentID string, chunks []domain.Chunk) error

	// RemoveDocument removes all records for a document.
	RemoveDocument(ctx context.Context, documentID string) error

	// Search returns at most k records ranked by descending cosine
	// similarity to the query vector, dropping scores below the
	// index's minimum-similarity threshold. A zero-magnitude query
	// matches nothing.
	Search(ctx context.Context, query []float32, k int) ([]domain.SearchResult, error)

	// Len returns the number of indexed chunk records.
	Len() int
}
