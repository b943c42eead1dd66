package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/formfill-labs/formfill-cli/internal/core/domain"
	"github.com/formfill-labs/formfill-cli/internal/core/ports/driven"
	"github.com/formfill-labs/formfill-cli/internal/core/ports/driving"
	"github.com/formfill-labs/formfill-cli/internal/logger"
)

const (
	// DefaultFieldTopK is the evidence count retrieved per field.
	DefaultFieldTopK = 3

	// FillConfidenceThreshold gates which classifications are trusted
	// enough to propose a fill value.
	FillConfidenceThreshold = 0.5

	// Retrieval confidence is the average evidence similarity plus a
	// bonus per evidence chunk, capped.
	evidenceBonusPerChunk = 0.2
	evidenceBonusCap      = 0.4

	// maxContextWords bounds how much page context leaks into a query.
	maxContextWords = 5
)

// queryAliases substitutes a document-friendly phrase for terse field
// names that rarely appear verbatim in prose.
var queryAliases = map[string]string{
	"dob":   "date of birth",
	"tel":   "phone number",
	"zip":   "postal code",
	"addr":  "street address",
	"fname": "first name",
	"lname": "last name",
	"url":   "website",
}

// Ensure FieldService implements the interface.
var _ driving.FieldService = (*FieldService)(nil)

// FieldService turns form field descriptors into retrieval queries,
// ranked evidence and concrete fill suggestions. Classification is
// pure; retrieval goes through the search service so fields benefit
// from the same query expansion as free-form searches.
type FieldService struct {
	search   driving.SearchService
	provider driven.SuggestionProvider
}

// NewFieldService creates a new field service. The suggestion provider
// is optional; without it Suggest reports values as unavailable.
func NewFieldService(search driving.SearchService, provider driven.SuggestionProvider) *FieldService {
	return &FieldService{
		search:   search,
		provider: provider,
	}
}

// BuildQuery constructs the retrieval query for a field: the resolved
// category, the label (or a humanised field name), and a bounded slice
// of page context. Falls back to the default query when nothing in the
// descriptor is usable.
func (s *FieldService) BuildQuery(field domain.FieldDescriptor, pageContext string) string {
	cls := s.Classify(field)

	var parts []string
	if cls.Category.IsKnown() {
		parts = append(parts, strings.ReplaceAll(string(cls.Category), "_", " "))
	}

	if label := strings.TrimSpace(field.Label); label != "" {
		parts = append(parts, strings.ToLower(label))
	} else if name := strings.ToLower(strings.TrimSpace(field.Name)); name != "" {
		if alias, ok := queryAliases[name]; ok {
			parts = append(parts, alias)
		} else {
			parts = append(parts, humanise(name))
		}
	}

	if ctx := contextWords(pageContext, maxContextWords); ctx != "" {
		parts = append(parts, ctx)
	}

	query := strings.TrimSpace(strings.Join(parts, " "))
	if query == "" {
		return defaultQuery
	}
	return query
}

// Retrieve returns ranked evidence for a field plus a retrieval
// confidence. Sensitive and skippable fields return empty evidence and
// zero confidence without error; their content must never reach the
// index.
func (s *FieldService) Retrieve(ctx context.Context, field domain.FieldDescriptor, pageContext string, topK int) (*domain.RetrievalResult, error) {
	cls := s.Classify(field)
	if cls.Sensitive || cls.Skippable {
		logger.Debug("Field %s is %s, skipping retrieval", field.Name, skipReason(cls))
		return &domain.RetrievalResult{Evidence: []domain.SearchResult{}}, nil
	}

	if topK <= 0 {
		topK = DefaultFieldTopK
	}

	query := s.BuildQuery(field, pageContext)
	logger.Debug("Field %s query: %q", field.Name, query)

	evidence, err := s.search.Search(ctx, query, topK)
	if err != nil {
		return nil, fmt.Errorf("retrieve evidence for %s: %w", field.Name, err)
	}

	return &domain.RetrievalResult{
		Evidence:   evidence,
		Confidence: retrievalConfidence(evidence),
	}, nil
}

// Suggest proposes a fill value for a field. The field is skipped when
// it is sensitive or skippable, when classification confidence is
// below the fill threshold, or when retrieval produced no evidence.
func (s *FieldService) Suggest(ctx context.Context, field domain.FieldDescriptor, pageContext string) (*domain.Suggestion, error) {
	cls := s.Classify(field)
	if cls.Sensitive || cls.Skippable {
		return &domain.Suggestion{Skipped: true}, nil
	}
	if cls.Confidence < FillConfidenceThreshold {
		logger.Debug("Field %s classification confidence %.2f below threshold", field.Name, cls.Confidence)
		return &domain.Suggestion{Skipped: true}, nil
	}

	retrieved, err := s.Retrieve(ctx, field, pageContext, DefaultFieldTopK)
	if err != nil {
		return nil, err
	}
	if len(retrieved.Evidence) == 0 || retrieved.Confidence == 0 {
		return &domain.Suggestion{Skipped: true}, nil
	}

	if s.provider == nil {
		return &domain.Suggestion{Skipped: true, Confidence: retrieved.Confidence}, nil
	}

	value, err := s.provider.Suggest(ctx, driven.SuggestionRequest{
		Field:       field,
		Category:    cls.Category,
		Evidence:    retrieved.Evidence,
		PageContext: pageContext,
	})
	if err != nil {
		if errors.Is(err, domain.ErrSuggestionUnavailable) {
			return &domain.Suggestion{Skipped: true, Confidence: retrieved.Confidence}, nil
		}
		return nil, fmt.Errorf("suggest value for %s: %w", field.Name, err)
	}

	return &domain.Suggestion{
		Value:      value,
		Provider:   s.provider.Name(),
		Confidence: retrieved.Confidence,
	}, nil
}

// retrievalConfidence scores evidence quality: the mean similarity of
// positively-scored evidence plus a bonus per evidence chunk, capped
// at 1.0. No positive evidence means zero confidence.
func retrievalConfidence(evidence []domain.SearchResult) float64 {
	var sum float64
	var count int
	for _, ev := range evidence {
		if ev.Score > 0 {
			sum += ev.Score
			count++
		}
	}
	if count == 0 {
		return 0
	}

	bonus := float64(count) * evidenceBonusPerChunk
	if bonus > evidenceBonusCap {
		bonus = evidenceBonusCap
	}

	confidence := sum/float64(count) + bonus
	if confidence > 1 {
		confidence = 1
	}
	return confidence
}

// humanise turns a field name like "job_title" into "job title".
func humanise(name string) string {
	return strings.Join(splitTokens(name), " ")
}

// contextWords returns the first n lower-cased words of the page context.
func contextWords(pageContext string, n int) string {
	words := strings.Fields(strings.ToLower(pageContext))
	if len(words) > n {
		words = words[:n]
	}
	return strings.Join(words, " ")
}

func skipReason(cls domain.Classification) string {
	if cls.Sensitive {
		return "sensitive"
	}
	return "skippable"
}
