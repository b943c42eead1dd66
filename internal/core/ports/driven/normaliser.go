package driven

import (
	"context"

	"github.com/formfill-labs/formfill-cli/internal/core/domain"
)

// Normaliser converts raw extracted text into a canonical Document:
// format detection, preview truncation and structured hint scanning.
// Text extraction for binary formats (PDF, Word) happens upstream.
type Normaliser interface {
	// Normalise builds a Document from raw text. The returned document
	// carries a fresh ID; callers replacing an existing document swap
	// in the prior ID before persisting.
	Normalise(ctx context.Context, name, path, content string) (*domain.Document, error)
}
