package services

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/formfill-labs/formfill-cli/internal/core/domain"
	"github.com/formfill-labs/formfill-cli/internal/core/ports/driven"
	"github.com/formfill-labs/formfill-cli/internal/core/ports/driving"
	"github.com/formfill-labs/formfill-cli/internal/logger"
)

// DefaultTopK is the result count used when the caller passes topK <= 0.
const DefaultTopK = 5

// defaultQuery is the fallback used when a query is empty after all
// expansion variants. An empty query is never an error.
const defaultQuery = "personal information contact details"

// minTokenLength is the shortest token kept by the token-filter variant.
const minTokenLength = 3

// punctuationPattern matches everything stripped by the punctuation variant.
var punctuationPattern = regexp.MustCompile(`[^\w\s]+`)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService answers similarity queries using query expansion.
//
// The hashed embedding only captures lexical overlap, so a single
// phrasing of a query often misses chunks phrased differently. Each
// query is expanded into a bounded set of deterministic variants; every
// variant is searched independently and the per-record best score wins.
// This expansion-then-best-score-merge is the load-bearing retrieval
// algorithm for the weak embedding.
type SearchService struct {
	index    driven.VectorIndex
	embedder driven.EmbeddingService
}

// NewSearchService creates a new search service.
func NewSearchService(index driven.VectorIndex, embedder driven.EmbeddingService) *SearchService {
	return &SearchService{
		index:    index,
		embedder: embedder,
	}
}

// Expand returns the deterministic variants of a query, in generation
// order with empty and duplicate variants removed:
// the original, lower-cased, punctuation stripped, first-3-words,
// first-2-words, and short tokens filtered out.
func (s *SearchService) Expand(query string) []string {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	lower := strings.ToLower(query)

	candidates := []string{
		query,
		lower,
		strings.TrimSpace(punctuationPattern.ReplaceAllString(lower, "")),
		firstWords(lower, 3),
		firstWords(lower, 2),
		filterShortTokens(lower),
	}

	seen := make(map[string]struct{}, len(candidates))
	variants := make([]string, 0, len(candidates))
	for _, v := range candidates {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		variants = append(variants, v)
	}

	return variants
}

// Search runs the expanded similarity search and merges per-variant
// results by record identity, keeping the best score for each record.
func (s *SearchService) Search(ctx context.Context, query string, topK int) ([]domain.SearchResult, error) {
	logger.Section("Search Execution")
	logger.Debug("Query: %q", query)

	if topK <= 0 {
		topK = DefaultTopK
	}

	variants := s.Expand(query)
	if len(variants) == 0 {
		logger.Debug("Empty query, falling back to default query %q", defaultQuery)
		variants = s.Expand(defaultQuery)
	}
	logger.Debug("Variants: %d", len(variants))

	// Merge by record identity, keeping the maximum similarity seen
	// across variants.
	best := make(map[string]domain.SearchResult)
	for _, variant := range variants {
		vec, err := s.embedder.Embed(ctx, variant)
		if err != nil {
			return nil, fmt.Errorf("embed variant %q: %w", variant, err)
		}

		hits, err := s.index.Search(ctx, vec, topK)
		if err != nil {
			return nil, fmt.Errorf("search variant %q: %w", variant, err)
		}
		logger.Debug("Variant %q: %d hits", variant, len(hits))

		for _, hit := range hits {
			key := recordKey(hit)
			if prior, ok := best[key]; !ok || hit.Score > prior.Score {
				best[key] = hit
			}
		}
	}

	merged := make([]domain.SearchResult, 0, len(best))
	for _, hit := range best {
		merged = append(merged, hit)
	}

	sort.Slice(merged, func(a, b int) bool {
		if merged[a].Score != merged[b].Score {
			return merged[a].Score > merged[b].Score
		}
		if merged[a].DocumentID != merged[b].DocumentID {
			return merged[a].DocumentID < merged[b].DocumentID
		}
		return merged[a].ChunkIndex < merged[b].ChunkIndex
	})

	if len(merged) > topK {
		merged = merged[:topK]
	}

	logger.Info("Merged results: %d", len(merged))
	return merged, nil
}

// recordKey identifies an indexed record across variant searches.
func recordKey(r domain.SearchResult) string {
	return fmt.Sprintf("%s#%d", r.DocumentID, r.ChunkIndex)
}

// firstWords returns the first n whitespace-separated words of s.
func firstWords(s string, n int) string {
	words := strings.Fields(s)
	if len(words) <= n {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:n], " ")
}

// filterShortTokens drops tokens shorter than minTokenLength.
func filterShortTokens(s string) string {
	words := strings.Fields(s)
	kept := make([]string, 0, len(words))
	for _, w := range words {
		if len(w) >= minTokenLength {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, " ")
}
