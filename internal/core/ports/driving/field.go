package driving

import (
	"context"

	"github.com/formfill-labs/formfill-cli/internal/core/domain"
)

// FieldService classifies form fields and gathers fill evidence.
type FieldService interface {
	// Classify resolves a field's semantic category, sensitivity and
	// skippability, with a confidence score. Pure function of the
	// descriptor.
	Classify(field domain.FieldDescriptor) domain.Classification

	// BuildQuery constructs the retrieval query text for a field.
	// Exposed for inspection; Retrieve uses it internally.
	BuildQuery(field domain.FieldDescriptor, pageContext string) string

	// Retrieve returns ranked evidence and a retrieval confidence for
	// a field. Sensitive and skippable fields yield empty evidence and
	// zero confidence without error.
	Retrieve(ctx context.Context, field domain.FieldDescriptor, pageContext string, topK int) (*domain.RetrievalResult, error)

	// Suggest proposes a concrete fill value for a field using the
	// configured suggestion providers. Sensitive and skippable fields
	// yield a skipped suggestion without error.
	Suggest(ctx context.Context, field domain.FieldDescriptor, pageContext string) (*domain.Suggestion, error)
}
