package driven

import "context"

// EmbeddingService generates vector embeddings from text.
//
// The shipped implementation is a deterministic lexical hashing scheme
// with no trained model and no network access. Two calls with the same
// text return bit-identical vectors. Replacing it with a learned
// embedding changes retrieval semantics and is an interface-level
// decision, not a drop-in swap.
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	// Empty or all-punctuation input yields the zero vector.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size (e.g. 384).
	// This must match the VectorIndex configuration.
	Dimensions() int

	// ModelName returns the name of the embedding scheme in use.
	ModelName() string
}
