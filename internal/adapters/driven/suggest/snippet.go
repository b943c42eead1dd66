package suggest

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/formfill-labs/formfill-cli/internal/core/domain"
	"github.com/formfill-labs/formfill-cli/internal/core/ports/driven"
)

// maxSnippetLength bounds the proposed value for free-text fields.
const maxSnippetLength = 100

// Ensure SnippetProvider implements the interface.
var _ driven.SuggestionProvider = (*SnippetProvider)(nil)

// SnippetProvider proposes the leading sentence of the best evidence
// chunk for free-text categories. It is the last resort in a provider
// group, behind structured providers.
type SnippetProvider struct{}

// NewSnippetProvider creates a new snippet provider.
func NewSnippetProvider() *SnippetProvider {
	return &SnippetProvider{}
}

// Name returns the provider identifier.
func (p *SnippetProvider) Name() string {
	return "snippet"
}

// Suggest returns the first sentence of the highest-scored evidence.
func (p *SnippetProvider) Suggest(_ context.Context, req driven.SuggestionRequest) (string, error) {
	if len(req.Evidence) == 0 {
		return "", domain.ErrSuggestionUnavailable
	}

	text := strings.TrimSpace(req.Evidence[0].Content)
	if text == "" {
		return "", domain.ErrSuggestionUnavailable
	}

	if i := strings.IndexAny(text, ".!?\n"); i > 0 {
		text = text[:i]
	}
	if len(text) > maxSnippetLength {
		cut := maxSnippetLength
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = strings.TrimSpace(text[:cut])
	}

	return strings.TrimSpace(text), nil
}
