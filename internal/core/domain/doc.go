// Package domain defines the core business entities for formfill.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: An ingested document with extracted text and hints
//   - Chunk: The unit of retrieval within a document
//   - FieldDescriptor: A form field awaiting a suggested value
//   - Classification: The semantic category resolved for a field
//   - SearchResult / RetrievalResult: Ranked retrieval evidence
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
