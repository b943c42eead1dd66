// Package services contains the core application services. Services
// depend only on ports and domain types; adapters are injected at
// startup.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/formfill-labs/formfill-cli/internal/core/domain"
	"github.com/formfill-labs/formfill-cli/internal/core/ports/driven"
	"github.com/formfill-labs/formfill-cli/internal/core/ports/driving"
	"github.com/formfill-labs/formfill-cli/internal/logger"
)

const (
	// DefaultMaxDocumentSize bounds the raw content accepted per document.
	DefaultMaxDocumentSize = 1 << 20 // 1 MiB

	// DefaultMaxChunks bounds the chunk count produced per document.
	DefaultMaxChunks = 2000
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestService owns the document write path: normalise, chunk, embed,
// persist, index. Writes are serialised so a document replacement is
// never observed half-applied by the index.
type IngestService struct {
	docStore   driven.DocumentStore
	index      driven.VectorIndex
	embedder   driven.EmbeddingService
	chunker    driven.Chunker
	normaliser driven.Normaliser

	maxDocumentSize int
	maxChunks       int

	writeMu sync.Mutex
}

// IngestOption configures an IngestService.
type IngestOption func(*IngestService)

// WithMaxDocumentSize overrides the raw content size bound in bytes.
func WithMaxDocumentSize(n int) IngestOption {
	return func(s *IngestService) {
		if n > 0 {
			s.maxDocumentSize = n
		}
	}
}

// WithMaxChunks overrides the per-document chunk count bound.
func WithMaxChunks(n int) IngestOption {
	return func(s *IngestService) {
		if n > 0 {
			s.maxChunks = n
		}
	}
}

// NewIngestService creates a new ingest service.
func NewIngestService(
	docStore driven.DocumentStore,
	index driven.VectorIndex,
	embedder driven.EmbeddingService,
	chunker driven.Chunker,
	normaliser driven.Normaliser,
	opts ...IngestOption,
) *IngestService {
	s := &IngestService{
		docStore:        docStore,
		index:           index,
		embedder:        embedder,
		chunker:         chunker,
		normaliser:      normaliser,
		maxDocumentSize: DefaultMaxDocumentSize,
		maxChunks:       DefaultMaxChunks,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ingest adds or replaces a document. Replacement reuses the prior
// document's ID so the index and store swap records atomically instead
// of accumulating duplicates.
func (s *IngestService) Ingest(ctx context.Context, req driving.IngestRequest) (*driving.IngestResult, error) {
	logger.Section("Document Ingestion")
	logger.Info("Ingesting %s", req.Name)

	if len(req.Content) > s.maxDocumentSize {
		return nil, fmt.Errorf("%s is %d bytes: %w", req.Name, len(req.Content), domain.ErrDocumentTooLarge)
	}

	doc, err := s.normaliser.Normalise(ctx, req.Name, req.Path, req.Content)
	if err != nil {
		return nil, fmt.Errorf("normalise %s: %w", req.Name, err)
	}

	replaced := false
	existing, err := s.docStore.FindByIdentity(ctx, doc.Name, doc.Path)
	switch {
	case err == nil:
		doc.ID = existing.ID
		replaced = true
		logger.Debug("Replacing existing document %s", doc.ID)
	case errors.Is(err, domain.ErrNotFound):
		// First ingestion of this identity.
	default:
		return nil, fmt.Errorf("look up %s: %w", req.Name, err)
	}

	chunks, err := s.chunker.Chunk(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("chunk %s: %w", req.Name, err)
	}
	if len(chunks) == 0 {
		return nil, fmt.Errorf("%s produced no chunks: %w", req.Name, domain.ErrEmptyDocument)
	}
	if len(chunks) > s.maxChunks {
		return nil, fmt.Errorf("%s produced %d chunks: %w", req.Name, len(chunks), domain.ErrTooManyChunks)
	}
	logger.Debug("Chunked into %d pieces", len(chunks))

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Content
	}
	vectors, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed %s: %w", req.Name, err)
	}
	if len(vectors) != len(chunks) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d chunks: %w",
			len(vectors), len(chunks), domain.ErrDimensionMismatch)
	}
	for i := range chunks {
		if len(vectors[i]) != s.embedder.Dimensions() {
			return nil, fmt.Errorf("vector %d has %d dimensions, want %d: %w",
				i, len(vectors[i]), s.embedder.Dimensions(), domain.ErrDimensionMismatch)
		}
		chunks[i].Embedding = vectors[i]
	}

	// Everything fallible is done; mutate store and index under the
	// write lock so a replacement is a single visible transition.
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.docStore.SaveDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("save document %s: %w", req.Name, err)
	}
	if err := s.docStore.SaveChunks(ctx, doc.ID, chunks); err != nil {
		s.rollback(ctx, doc.ID, replaced)
		return nil, fmt.Errorf("save chunks for %s: %w", req.Name, err)
	}
	if err := s.index.UpsertDocument(ctx, doc.ID, chunks); err != nil {
		s.rollback(ctx, doc.ID, replaced)
		return nil, fmt.Errorf("index %s: %w", req.Name, err)
	}

	logger.Info("Ingested %s: %d chunks", doc.Name, len(chunks))
	return &driving.IngestResult{
		Document:   *doc,
		ChunkCount: len(chunks),
		Replaced:   replaced,
	}, nil
}

// rollback removes partially written state after a failed ingestion.
// For a replacement the prior content is already overwritten; removing
// the record entirely is still better than serving a half-written one.
func (s *IngestService) rollback(ctx context.Context, documentID string, replaced bool) {
	if err := s.docStore.DeleteDocument(ctx, documentID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		logger.Error("Rollback: delete document %s: %v", documentID, err)
	}
	if err := s.index.RemoveDocument(ctx, documentID); err != nil {
		logger.Error("Rollback: remove index entries for %s: %v", documentID, err)
	}
	if replaced {
		logger.Warn("Replacement of %s failed mid-write; prior version was dropped", documentID)
	}
}

// Remove deletes a document from the store and the index.
func (s *IngestService) Remove(ctx context.Context, documentID string) error {
	logger.Section("Document Removal")

	if _, err := s.docStore.GetDocument(ctx, documentID); err != nil {
		return fmt.Errorf("document %s: %w", documentID, err)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.docStore.DeleteDocument(ctx, documentID); err != nil {
		return fmt.Errorf("delete document %s: %w", documentID, err)
	}
	if err := s.index.RemoveDocument(ctx, documentID); err != nil {
		return fmt.Errorf("remove index entries for %s: %w", documentID, err)
	}

	logger.Info("Removed document %s", documentID)
	return nil
}

// Get retrieves a stored document by ID.
func (s *IngestService) Get(ctx context.Context, documentID string) (*domain.Document, error) {
	return s.docStore.GetDocument(ctx, documentID)
}

// List returns all stored documents.
func (s *IngestService) List(ctx context.Context) ([]domain.Document, error) {
	return s.docStore.ListDocuments(ctx)
}

// Rebuild loads every stored document's chunks into the index. It is
// called once at startup; any failure leaves the index untrustworthy
// and the caller must refuse to serve searches.
func (s *IngestService) Rebuild(ctx context.Context) (int, error) {
	logger.Section("Index Rebuild")

	docs, err := s.docStore.ListDocuments(ctx)
	if err != nil {
		return 0, fmt.Errorf("list documents: %w", err)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	for _, doc := range docs {
		chunks, err := s.docStore.GetChunks(ctx, doc.ID)
		if err != nil {
			return 0, fmt.Errorf("load chunks for %s: %w", doc.ID, err)
		}
		if err := s.index.UpsertDocument(ctx, doc.ID, chunks); err != nil {
			return 0, fmt.Errorf("index %s: %w", doc.ID, err)
		}
	}

	logger.Info("Rebuilt index from %d documents (%d chunks)", len(docs), s.index.Len())
	return len(docs), nil
}
