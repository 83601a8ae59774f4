// Package domain defines the core business entities for Corpus.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - DocumentRecord: Metadata and frequency statistics for one ingested file
//   - DocumentIndex: The full filename-keyed metadata store snapshot
//   - WordCount: A (token, frequency) pair preserving computation order
//   - SearchMode / SearchResult: Search inputs and outputs
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
