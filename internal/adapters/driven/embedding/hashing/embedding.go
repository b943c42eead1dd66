// Package hashing provides a deterministic, model-free embedding service.
//
// Text is mapped to a fixed-dimension vector by hashing tokens into
// buckets and accumulating term frequencies ("bag of hashed features").
// The scheme needs no trained model and no network access, at the cost
// of capturing only lexical overlap. That trade-off is deliberate and
// load-bearing: retrieval quality is recovered upstream through query
// expansion, so swapping in a learned embedding is an interface change,
// not an optimisation.
package hashing

import (
	"context"
	"hash/fnv"
	"math"
	"regexp"
	"strings"

	"github.com/formfill-labs/formfill-cli/internal/core/ports/driven"
)

// DefaultDimensions is the default embedding vector size.
const DefaultDimensions = 384

// tokenPattern matches word-character runs; everything else is a boundary.
var tokenPattern = regexp.MustCompile(`\w+`)

// Ensure Embedder implements the interface.
var _ driven.EmbeddingService = (*Embedder)(nil)

// Embedder is a stateless hashed term-frequency embedder.
type Embedder struct {
	dimensions int
}

// Option configures the embedder.
type Option func(*Embedder)

// WithDimensions sets the embedding vector size.
func WithDimensions(d int) Option {
	return func(e *Embedder) {
		if d > 0 {
			e.dimensions = d
		}
	}
}

// New creates a new hashing embedder.
func New(opts ...Option) *Embedder {
	e := &Embedder{dimensions: DefaultDimensions}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Dimensions returns the embedding vector size.
func (e *Embedder) Dimensions() int {
	return e.dimensions
}

// ModelName returns the name of the embedding scheme.
func (e *Embedder) ModelName() string {
	return "hashed-tf"
}

// Embed generates the embedding for the given text.
//
// Tokens are lower-cased, term frequencies computed, and each token's
// frequency accumulated into the bucket selected by its FNV-1a hash
// modulo the dimension. Hash collisions sum rather than overwrite.
// The result is L2-normalised; empty or all-punctuation input yields
// the zero vector.
func (e *Embedder) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, e.dimensions)

	tokens := tokenPattern.FindAllString(strings.ToLower(text), -1)
	if len(tokens) == 0 {
		return vec, nil
	}

	counts := make(map[string]int, len(tokens))
	for _, tok := range tokens {
		counts[tok]++
	}

	total := float64(len(tokens))
	for tok, count := range counts {
		tf := float64(count) / total
		vec[bucket(tok, e.dimensions)] += float32(tf)
	}

	normalize(vec)
	return vec, nil
}

// EmbedBatch generates embeddings for multiple texts.
func (e *Embedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	result := make([][]float32, len(texts))
	for i, text := range texts {
		vec, err := e.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		result[i] = vec
	}
	return result, nil
}

// bucket maps a token to its target vector index.
func bucket(token string, dimensions int) int {
	h := fnv.New32a()
	h.Write([]byte(token)) //nolint:errcheck // fnv never fails
	return int(h.Sum32() % uint32(dimensions))
}

// normalize scales vec to unit length in place.
// A zero-magnitude vector is left unchanged.
func normalize(vec []float32) {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	if sum == 0 {
		return
	}
	norm := math.Sqrt(sum)
	for i := range vec {
		vec[i] = float32(float64(vec[i]) / norm)
	}
}
