// Package suggest provides suggestion providers that turn retrieval
// evidence into concrete fill values, plus an ordered failover group
// for composing them. Providers are capability objects; composition is
// an ordered list, never inheritance.
package suggest

import (
	"context"

	"github.com/formfill-labs/formfill-cli/internal/core/domain"
	"github.com/formfill-labs/formfill-cli/internal/core/ports/driven"
	"github.com/formfill-labs/formfill-cli/internal/logger"
	"github.com/formfill-labs/formfill-cli/internal/normalisers/plaintext"
)

// Ensure LocalProvider implements the interface.
var _ driven.SuggestionProvider = (*LocalProvider)(nil)

// LocalProvider proposes values for structured categories (email,
// phone, dates) by scanning the retrieval evidence, falling back to
// the owning document's stored hints. It never generates text; it only
// surfaces values that exist in the corpus.
type LocalProvider struct {
	docStore driven.DocumentStore
}

// NewLocalProvider creates a new hint-based provider.
// The document store is optional; without it only evidence text is scanned.
func NewLocalProvider(docStore driven.DocumentStore) *LocalProvider {
	return &LocalProvider{docStore: docStore}
}

// Name returns the provider identifier.
func (p *LocalProvider) Name() string {
	return "local-hints"
}

// Suggest proposes a fill value for structured field categories.
func (p *LocalProvider) Suggest(ctx context.Context, req driven.SuggestionRequest) (string, error) {
	if len(req.Evidence) == 0 {
		return "", domain.ErrSuggestionUnavailable
	}

	pick := func(hints domain.Hints) string {
		switch req.Category {
		case domain.CategoryEmail:
			if len(hints.Emails) > 0 {
				return hints.Emails[0]
			}
		case domain.CategoryPhone:
			if len(hints.Phones) > 0 {
				return hints.Phones[0]
			}
		case domain.CategoryDate, domain.CategoryDateOfBirth:
			if len(hints.Dates) > 0 {
				return hints.Dates[0]
			}
		}
		return ""
	}

	// Scan the evidence itself first: the best chunk usually contains
	// the value verbatim.
	for _, ev := range req.Evidence {
		if v := pick(plaintext.ExtractHints(ev.Content)); v != "" {
			return v, nil
		}
	}

	// Fall back to the stored hints of the top evidence document.
	if p.docStore != nil {
		doc, err := p.docStore.GetDocument(ctx, req.Evidence[0].DocumentID)
		if err != nil {
			logger.Warn("Local provider: document lookup failed: %v", err)
		} else if v := pick(doc.Hints); v != "" {
			return v, nil
		}
	}

	return "", domain.ErrSuggestionUnavailable
}
