package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/formfill-labs/formfill-cli/internal/core/domain"
	"github.com/formfill-labs/formfill-cli/internal/core/ports/driven"
	"github.com/formfill-labs/formfill-cli/internal/core/ports/driving"
)

// mockStore is an in-memory DocumentStore.
type mockStore struct {
	docs   map[string]*domain.Document
	chunks map[string][]domain.Chunk

	saveChunksErr error
	listErr       error
}

func newMockStore() *mockStore {
	return &mockStore{
		docs:   make(map[string]*domain.Document),
		chunks: make(map[string][]domain.Chunk),
	}
}

func (m *mockStore) SaveDocument(_ context.Context, doc *domain.Document) error {
	stored := *doc
	m.docs[doc.ID] = &stored
	return nil
}

func (m *mockStore) SaveChunks(_ context.Context, documentID string, chunks []domain.Chunk) error {
	if m.saveChunksErr != nil {
		return m.saveChunksErr
	}
	m.chunks[documentID] = append([]domain.Chunk(nil), chunks...)
	return nil
}

func (m *mockStore) GetDocument(_ context.Context, id string) (*domain.Document, error) {
	doc, ok := m.docs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return doc, nil
}

func (m *mockStore) FindByIdentity(_ context.Context, name, path string) (*domain.Document, error) {
	for _, doc := range m.docs {
		if doc.Name == name && doc.Path == path {
			return doc, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) GetChunks(_ context.Context, documentID string) ([]domain.Chunk, error) {
	return m.chunks[documentID], nil
}

func (m *mockStore) ListDocuments(_ context.Context) ([]domain.Document, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	docs := make([]domain.Document, 0, len(m.docs))
	for _, doc := range m.docs {
		docs = append(docs, *doc)
	}
	return docs, nil
}

func (m *mockStore) DeleteDocument(_ context.Context, id string) error {
	if _, ok := m.docs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.docs, id)
	delete(m.chunks, id)
	return nil
}

// mockIndex records index mutations and serves canned search results.
type mockIndex struct {
	upserts map[string][]domain.Chunk
	removed []string
	results [][]domain.SearchResult
	queries int

	upsertErr error
}

func newMockIndex() *mockIndex {
	return &mockIndex{upserts: make(map[string][]domain.Chunk)}
}

func (m *mockIndex) UpsertDocument(_ context.Context, documentID string, chunks []domain.Chunk) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.upserts[documentID] = append([]domain.Chunk(nil), chunks...)
	return nil
}

func (m *mockIndex) RemoveDocument(_ context.Context, documentID string) error {
	delete(m.upserts, documentID)
	m.removed = append(m.removed, documentID)
	return nil
}

func (m *mockIndex) Search(_ context.Context, _ []float32, _ int) ([]domain.SearchResult, error) {
	m.queries++
	if len(m.results) == 0 {
		return nil, nil
	}
	hits := m.results[0]
	if len(m.results) > 1 {
		m.results = m.results[1:]
	}
	return hits, nil
}

func (m *mockIndex) Len() int {
	n := 0
	for _, chunks := range m.upserts {
		n += len(chunks)
	}
	return n
}

// mockEmbedder produces fixed-dimension vectors and records its inputs.
type mockEmbedder struct {
	dims     int
	embedded []string
}

func newMockEmbedder() *mockEmbedder {
	return &mockEmbedder{dims: 4}
}

func (m *mockEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	m.embedded = append(m.embedded, text)
	vec := make([]float32, m.dims)
	vec[0] = 1
	return vec, nil
}

func (m *mockEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vecs := make([][]float32, len(texts))
	for i, t := range texts {
		vec, err := m.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		vecs[i] = vec
	}
	return vecs, nil
}

func (m *mockEmbedder) Dimensions() int { return m.dims }

func (m *mockEmbedder) ModelName() string { return "mock" }

// mockChunker splits content on blank lines, one chunk per paragraph.
type mockChunker struct {
	err error
}

func (m *mockChunker) Name() string { return "mock-chunker" }

func (m *mockChunker) Chunk(_ context.Context, doc *domain.Document) ([]domain.Chunk, error) {
	if m.err != nil {
		return nil, m.err
	}
	var chunks []domain.Chunk
	for i, part := range strings.Split(doc.Content, "\n\n") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		chunks = append(chunks, domain.Chunk{
			ID:         fmt.Sprintf("%s-%d", doc.ID, i),
			DocumentID: doc.ID,
			Content:    part,
			Index:      i,
			Length:     len(part),
		})
	}
	return chunks, nil
}

// mockNormaliser builds a bare document without hint extraction.
type mockNormaliser struct{}

func (m *mockNormaliser) Normalise(_ context.Context, name, path, content string) (*domain.Document, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, domain.ErrEmptyDocument
	}
	return &domain.Document{
		ID:      uuid.NewString(),
		Name:    name,
		Path:    path,
		Size:    int64(len(content)),
		Content: content,
	}, nil
}

// mockSearchService serves canned results and records queries.
type mockSearchService struct {
	results []domain.SearchResult
	err     error
	queries []string
}

var _ driving.SearchService = (*mockSearchService)(nil)

func (m *mockSearchService) Search(_ context.Context, query string, topK int) ([]domain.SearchResult, error) {
	m.queries = append(m.queries, query)
	if m.err != nil {
		return nil, m.err
	}
	if len(m.results) > topK {
		return m.results[:topK], nil
	}
	return m.results, nil
}

func (m *mockSearchService) Expand(query string) []string {
	return []string{query}
}

// mockSuggestProvider returns a fixed value or error.
type mockSuggestProvider struct {
	value string
	err   error
	last  driven.SuggestionRequest
}

func (m *mockSuggestProvider) Name() string { return "mock-provider" }

func (m *mockSuggestProvider) Suggest(_ context.Context, req driven.SuggestionRequest) (string, error) {
	m.last = req
	if m.err != nil {
		return "", m.err
	}
	return m.value, nil
}
