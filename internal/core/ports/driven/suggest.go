package driven

import (
	"context"

	"github.com/formfill-labs/formfill-cli/internal/core/domain"
)

// SuggestionRequest carries everything a provider needs to propose
// a fill value for one field.
type SuggestionRequest struct {
	// Field is the form field being filled.
	Field domain.FieldDescriptor

	// Category is the field's resolved semantic category.
	Category domain.FieldCategory

	// Evidence is the ranked retrieval evidence for the field.
	Evidence []domain.SearchResult

	// PageContext is the free-text page description, if any.
	PageContext string
}

// SuggestionProvider turns retrieval evidence into a concrete fill value.
//
// Providers are capability-based and stateless; multiple providers are
// composed as an ordered group with failover, never via inheritance.
type SuggestionProvider interface {
	// Name returns the provider identifier.
	Name() string

	// Suggest proposes a fill value for the request.
	// Returning domain.ErrSuggestionUnavailable hands over to the
	// next provider in a group.
	Suggest(ctx context.Context, req SuggestionRequest) (string, error)
}
