package driving

import (
	"context"

	"github.com/formfill-labs/formfill-cli/internal/core/domain"
)

// SearchService answers similarity queries against the indexed corpus.
type SearchService interface {
	// Search runs an expanded similarity search: the query is turned
	// into deterministic variants, each variant is searched, and the
	// per-record best score wins. Returns at most topK results.
	// An empty index yields an empty result, never an error.
	Search(ctx context.Context, query string, topK int) ([]domain.SearchResult, error)

	// Expand returns the deterministic query variants that Search
	// would use, in generation order with duplicates removed.
	Expand(query string) []string
}
