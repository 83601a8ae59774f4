// Package driven defines the outbound ports of the hexagon.
//
// Driven ports are interfaces the core services depend on and that
// infrastructure adapters implement:
//
//   - Extractor / ExtractorRegistry: per-format raw text extraction
//   - ArchiveExpander: zip/rar container expansion
//   - TextNormalizer: language-aware cleaning and tokenisation
//   - OCREngine: optical character recognition over raster images
//   - MetadataStore: durable filename-keyed record storage
//
// Implementations live under internal/extractors, internal/textnorm,
// internal/adapters/driven and cgo/.
package driven
