// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - DocumentStore: Document and chunk persistence
//   - EmbeddingService: Maps text to fixed-dimension vectors
//   - VectorIndex: Stores embeddings and answers top-K similarity queries
//   - Chunker: Splits document text into retrieval units
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - SuggestionProvider: Turns retrieval evidence into a fill value.
//     Without it, the fill command reports evidence only.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
