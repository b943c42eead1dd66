package domain

import "time"

// PreviewLength is the number of characters kept in the document preview.
const PreviewLength = 200

// Document represents an ingested source document.
// It is the canonical representation after text extraction.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// Name is the human-readable display name (usually the file name).
	Name string

	// Path is the original location of the source file.
	Path string

	// Size is the raw input size in bytes.
	Size int64

	// Format is the detected source format (e.g. "txt", "md", "pdf").
	Format string

	// Content is the full extracted plain text.
	Content string

	// Preview is a truncated slice of Content for listings.
	Preview string

	// Hints holds structured values found by pattern scan of Content.
	Hints Hints

	// IngestedAt is when the document was (re-)ingested.
	IngestedAt time.Time
}

// Hints holds auto-extracted structured strings from a document.
// They bias fill suggestions toward values that actually appear
// in the user's documents.
type Hints struct {
	// Emails are email-like strings found in the content.
	Emails []string

	// Phones are phone-number-like strings found in the content.
	Phones []string

	// Dates are date-like strings found in the content.
	Dates []string
}

// Chunk is a contiguous, bounded slice of a document's text.
// Chunks are the unit of retrieval: each one is embedded and
// indexed independently.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// DocumentID links to the owning Document.
	DocumentID string

	// Content is the text content of this chunk.
	Content string

	// Index is the zero-based position within the document.
	Index int

	// Length is the character length of Content.
	Length int

	// Embedding is the vector representation for similarity search.
	Embedding []float32
}
