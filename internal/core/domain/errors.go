package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyDocument indicates an ingested document had no extractable text.
	ErrEmptyDocument = errors.New("document has no text content")

	// ErrDocumentTooLarge indicates an ingested document exceeds the size bound.
	// Ingestion is all-or-nothing: nothing is stored for the document.
	ErrDocumentTooLarge = errors.New("document exceeds maximum size")

	// ErrTooManyChunks indicates chunking produced more chunks than allowed.
	ErrTooManyChunks = errors.New("document exceeds maximum chunk count")

	// ErrDimensionMismatch indicates an embedding does not match the
	// index's configured dimension.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrIndexCorrupt indicates persisted index state failed to load.
	// Search must not be served until the store is reinitialised.
	ErrIndexCorrupt = errors.New("persisted index state is corrupt")

	// ErrSuggestionUnavailable indicates no suggestion provider produced a value.
	ErrSuggestionUnavailable = errors.New("no suggestion provider available")
)
