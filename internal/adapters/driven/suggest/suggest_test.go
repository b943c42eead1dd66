package suggest

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formfill-labs/formfill-cli/internal/core/domain"
	"github.com/formfill-labs/formfill-cli/internal/core/ports/driven"
)

// mockDocStore implements driven.DocumentStore for testing.
type mockDocStore struct {
	docs map[string]*domain.Document
}

func (m *mockDocStore) SaveDocument(_ context.Context, _ *domain.Document) error { return nil }
func (m *mockDocStore) SaveChunks(_ context.Context, _ string, _ []domain.Chunk) error {
	return nil
}
func (m *mockDocStore) GetDocument(_ context.Context, id string) (*domain.Document, error) {
	doc, ok := m.docs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return doc, nil
}
func (m *mockDocStore) FindByIdentity(_ context.Context, _, _ string) (*domain.Document, error) {
	return nil, domain.ErrNotFound
}
func (m *mockDocStore) GetChunks(_ context.Context, _ string) ([]domain.Chunk, error) {
	return nil, nil
}
func (m *mockDocStore) ListDocuments(_ context.Context) ([]domain.Document, error) {
	return nil, nil
}
func (m *mockDocStore) DeleteDocument(_ context.Context, _ string) error { return nil }

// mockProvider implements driven.SuggestionProvider for testing.
type mockProvider struct {
	name  string
	value string
	err   error
	calls int
}

func (m *mockProvider) Name() string { return m.name }
func (m *mockProvider) Suggest(_ context.Context, _ driven.SuggestionRequest) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	return m.value, nil
}

func evidence(content string) []domain.SearchResult {
	return []domain.SearchResult{{Content: content, DocumentID: "doc-1", Score: 0.4}}
}

func TestLocalProvider_EmailFromEvidence(t *testing.T) {
	p := NewLocalProvider(nil)

	value, err := p.Suggest(context.Background(), driven.SuggestionRequest{
		Category: domain.CategoryEmail,
		Evidence: evidence("Contact: john.smith@email.com for details."),
	})
	require.NoError(t, err)
	assert.Equal(t, "john.smith@email.com", value)
}

func TestLocalProvider_PhoneFromDocumentHints(t *testing.T) {
	store := &mockDocStore{docs: map[string]*domain.Document{
		"doc-1": {ID: "doc-1", Hints: domain.Hints{Phones: []string{"(555) 123-4567"}}},
	}}
	p := NewLocalProvider(store)

	// Evidence text itself has no phone number.
	value, err := p.Suggest(context.Background(), driven.SuggestionRequest{
		Category: domain.CategoryPhone,
		Evidence: evidence("Best reached by phone during office hours."),
	})
	require.NoError(t, err)
	assert.Equal(t, "(555) 123-4567", value)
}

func TestLocalProvider_UnstructuredCategory(t *testing.T) {
	p := NewLocalProvider(nil)

	_, err := p.Suggest(context.Background(), driven.SuggestionRequest{
		Category: domain.CategoryCompany,
		Evidence: evidence("Acme Corp is a company."),
	})
	assert.ErrorIs(t, err, domain.ErrSuggestionUnavailable)
}

func TestLocalProvider_NoEvidence(t *testing.T) {
	p := NewLocalProvider(nil)

	_, err := p.Suggest(context.Background(), driven.SuggestionRequest{
		Category: domain.CategoryEmail,
	})
	assert.ErrorIs(t, err, domain.ErrSuggestionUnavailable)
}

func TestSnippetProvider(t *testing.T) {
	p := NewSnippetProvider()

	value, err := p.Suggest(context.Background(), driven.SuggestionRequest{
		Evidence: evidence("Acme Corp, Springfield. Founded long ago."),
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp, Springfield", value)
}

func TestSnippetProvider_KeepsRunesIntact(t *testing.T) {
	p := NewSnippetProvider()

	// A long sentence of three-byte runes forces the length cap to
	// land mid-rune unless the cut backs off to a boundary.
	value, err := p.Suggest(context.Background(), driven.SuggestionRequest{
		Evidence: evidence("ab" + strings.Repeat("€", 50)),
	})
	require.NoError(t, err)
	assert.True(t, utf8.ValidString(value), "snippet must not end in a split rune")
}

func TestSnippetProvider_NoEvidence(t *testing.T) {
	p := NewSnippetProvider()

	_, err := p.Suggest(context.Background(), driven.SuggestionRequest{})
	assert.ErrorIs(t, err, domain.ErrSuggestionUnavailable)
}

func TestGroup_FallsThroughToNextProvider(t *testing.T) {
	first := &mockProvider{name: "first", err: domain.ErrSuggestionUnavailable}
	second := &mockProvider{name: "second", value: "from second"}
	g := NewGroup(first, second)

	value, err := g.Suggest(context.Background(), driven.SuggestionRequest{})
	require.NoError(t, err)
	assert.Equal(t, "from second", value)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, second.calls)
}

func TestGroup_UnavailableDoesNotRotate(t *testing.T) {
	first := &mockProvider{name: "first", err: domain.ErrSuggestionUnavailable}
	second := &mockProvider{name: "second", value: "v"}
	g := NewGroup(first, second)

	_, err := g.Suggest(context.Background(), driven.SuggestionRequest{})
	require.NoError(t, err)

	// The declining provider is still consulted first next time.
	_, err = g.Suggest(context.Background(), driven.SuggestionRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, first.calls)
}

func TestGroup_FailureRotates(t *testing.T) {
	broken := &mockProvider{name: "broken", err: errors.New("backend down")}
	healthy := &mockProvider{name: "healthy", value: "v"}
	g := NewGroup(broken, healthy)

	value, err := g.Suggest(context.Background(), driven.SuggestionRequest{})
	require.NoError(t, err)
	assert.Equal(t, "v", value)

	// After a hard failure the healthy provider is tried first.
	_, err = g.Suggest(context.Background(), driven.SuggestionRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, broken.calls, "failed provider should be skipped on the next request")
}

func TestGroup_AllFail(t *testing.T) {
	g := NewGroup(&mockProvider{name: "a", err: domain.ErrSuggestionUnavailable})

	_, err := g.Suggest(context.Background(), driven.SuggestionRequest{})
	assert.ErrorIs(t, err, domain.ErrSuggestionUnavailable)
}

func TestGroup_Empty(t *testing.T) {
	g := NewGroup()

	_, err := g.Suggest(context.Background(), driven.SuggestionRequest{})
	assert.ErrorIs(t, err, domain.ErrSuggestionUnavailable)
}
