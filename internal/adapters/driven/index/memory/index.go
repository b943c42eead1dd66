// Package memory provides an in-memory similarity index over chunk
// embeddings. Storage is a flat record slice scanned linearly; at the
// expected corpus scale (low thousands of chunks) an exact scan beats
// the complexity of an approximate nearest-neighbour structure.
package memory

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/formfill-labs/formfill-cli/internal/core/domain"
	"github.com/formfill-labs/formfill-cli/internal/core/ports/driven"
	"github.com/formfill-labs/formfill-cli/internal/logger"
)

// DefaultMinSimilarity is the score floor below which hits are
// discarded. Tuned to the hashed embedding's typical score range;
// override via WithMinSimilarity when tuning.
const DefaultMinSimilarity = 0.05

// DefaultTopK is the result count used when the caller passes k <= 0.
const DefaultTopK = 10

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// record is the indexed pairing of a chunk, its embedding, and
// denormalised metadata. Records reference their owning document by
// id only, never by pointer.
type record struct {
	chunkID    string
	documentID string
	chunkIndex int
	content    string
	embedding  []float32
}

// Index is a flat in-memory similarity index.
// A single RWMutex gives safe concurrent readers with one writer at a
// time; each upsert replaces a document's records in one critical
// section, so readers see either the old or the new state, never a mix.
type Index struct {
	mu            sync.RWMutex
	dimensions    int
	minSimilarity float64
	records       []record
}

// Option configures the index.
type Option func(*Index)

// WithDimensions sets the expected embedding dimension.
func WithDimensions(d int) Option {
	return func(i *Index) {
		if d > 0 {
			i.dimensions = d
		}
	}
}

// WithMinSimilarity sets the minimum similarity threshold.
func WithMinSimilarity(s float64) Option {
	return func(i *Index) {
		if s >= 0 {
			i.minSimilarity = s
		}
	}
}

// New creates a new in-memory index.
func New(opts ...Option) *Index {
	idx := &Index{
		dimensions:    384,
		minSimilarity: DefaultMinSimilarity,
	}
	for _, opt := range opts {
		opt(idx)
	}
	return idx
}

// UpsertDocument atomically replaces all records for a document.
func (i *Index) UpsertDocument(_ context.Context, documentID string, chunks []domain.Chunk) error {
	for _, chunk := range chunks {
		if len(chunk.Embedding) != i.dimensions {
			return domain.ErrDimensionMismatch
		}
	}

	fresh := make([]record, 0, len(chunks))
	for _, chunk := range chunks {
		fresh = append(fresh, record{
			chunkID:    chunk.ID,
			documentID: documentID,
			chunkIndex: chunk.Index,
			content:    chunk.Content,
			embedding:  chunk.Embedding,
		})
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	kept := i.records[:0:0]
	for _, r := range i.records {
		if r.documentID != documentID {
			kept = append(kept, r)
		}
	}
	i.records = append(kept, fresh...)

	logger.Debug("Index upsert: document=%s chunks=%d total=%d", documentID, len(fresh), len(i.records))
	return nil
}

// RemoveDocument removes all records for a document.
func (i *Index) RemoveDocument(_ context.Context, documentID string) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	kept := i.records[:0:0]
	for _, r := range i.records {
		if r.documentID != documentID {
			kept = append(kept, r)
		}
	}
	removed := len(i.records) - len(kept)
	i.records = kept

	logger.Debug("Index remove: document=%s removed=%d", documentID, removed)
	return nil
}

// Search scans every record, ranks by cosine similarity and returns
// at most k hits above the minimum-similarity threshold.
func (i *Index) Search(_ context.Context, query []float32, k int) ([]domain.SearchResult, error) {
	if k <= 0 {
		k = DefaultTopK
	}

	i.mu.RLock()
	defer i.mu.RUnlock()

	results := make([]domain.SearchResult, 0, len(i.records))
	for _, r := range i.records {
		sim := cosineSimilarity(query, r.embedding)
		if sim < i.minSimilarity {
			continue
		}
		results = append(results, domain.SearchResult{
			Content:    r.content,
			DocumentID: r.documentID,
			ChunkIndex: r.chunkIndex,
			Score:      sim,
		})
	}

	sort.Slice(results, func(a, b int) bool {
		if results[a].Score != results[b].Score {
			return results[a].Score > results[b].Score
		}
		if results[a].DocumentID != results[b].DocumentID {
			return results[a].DocumentID < results[b].DocumentID
		}
		return results[a].ChunkIndex < results[b].ChunkIndex
	})

	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

// Len returns the number of indexed records.
func (i *Index) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.records)
}

// cosineSimilarity computes the normalised dot product of two vectors.
// If either vector has zero magnitude the similarity is 0.
func cosineSimilarity(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, magA, magB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		magA += float64(a[i]) * float64(a[i])
		magB += float64(b[i]) * float64(b[i])
	}
	if magA == 0 || magB == 0 {
		return 0
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}
