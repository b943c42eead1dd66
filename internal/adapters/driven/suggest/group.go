package suggest

import (
	"context"
	"errors"
	"sync"

	"github.com/formfill-labs/formfill-cli/internal/core/domain"
	"github.com/formfill-labs/formfill-cli/internal/core/ports/driven"
	"github.com/formfill-labs/formfill-cli/internal/logger"
)

// Ensure Group implements the interface.
var _ driven.SuggestionProvider = (*Group)(nil)

// Group composes suggestion providers with round-robin failover:
// providers are tried in order starting from a rotating offset, and a
// provider that fails moves the starting offset past it for subsequent
// requests.
type Group struct {
	mu        sync.Mutex
	providers []driven.SuggestionProvider
	next      int
}

// NewGroup creates a provider group. Nil providers are skipped.
func NewGroup(providers ...driven.SuggestionProvider) *Group {
	kept := make([]driven.SuggestionProvider, 0, len(providers))
	for _, p := range providers {
		if p != nil {
			kept = append(kept, p)
		}
	}
	return &Group{providers: kept}
}

// Name returns the provider identifier.
func (g *Group) Name() string {
	return "group"
}

// Suggest tries each provider until one produces a value.
func (g *Group) Suggest(ctx context.Context, req driven.SuggestionRequest) (string, error) {
	g.mu.Lock()
	start := g.next
	providers := g.providers
	g.mu.Unlock()

	if len(providers) == 0 {
		return "", domain.ErrSuggestionUnavailable
	}

	var lastErr error
	for i := 0; i < len(providers); i++ {
		p := providers[(start+i)%len(providers)]

		value, err := p.Suggest(ctx, req)
		if err == nil {
			return value, nil
		}
		lastErr = err

		// ErrSuggestionUnavailable means "not my kind of field": fall
		// through without penalising the provider. Any other failure
		// rotates the starting offset past it for later requests.
		if !errors.Is(err, domain.ErrSuggestionUnavailable) {
			logger.Warn("Suggestion provider %s failed: %v", p.Name(), err)
			g.mu.Lock()
			g.next = (start + i + 1) % len(providers)
			g.mu.Unlock()
		}
	}

	return "", lastErr
}
