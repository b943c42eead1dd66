package domain

// SearchResult represents a single similarity hit against the index.
type SearchResult struct {
	// Content is the matched chunk text.
	Content string

	// DocumentID is the owning document.
	DocumentID string

	// ChunkIndex is the chunk's position within the document.
	ChunkIndex int

	// Score is the cosine similarity to the query, in [0,1].
	Score float64
}

// RetrievalResult is the evidence gathered for one form field.
type RetrievalResult struct {
	// Evidence is the ranked list of supporting chunks.
	Evidence []SearchResult

	// Confidence combines evidence similarity and corroboration
	// into a single [0,1] score. Zero when the field is sensitive
	// or skippable, or when nothing relevant was found.
	Confidence float64
}

// Suggestion is a fill value proposed for a form field.
type Suggestion struct {
	// Value is the proposed fill value. Empty when Skipped.
	Value string

	// Provider names the suggestion provider that produced the value.
	Provider string

	// Skipped reports the field was sensitive or skippable and was
	// deliberately not filled. This is a normal outcome, not an error.
	Skipped bool

	// Confidence is the retrieval confidence backing the value.
	Confidence float64
}
