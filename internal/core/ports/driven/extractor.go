package driven

import (
	"context"
)

// ExtractionResult is the raw output of one format-specific extraction.
type ExtractionResult struct {
	// Text is the raw extracted text, before any normalisation.
	// Empty when extraction failed; extraction never aborts the batch.
	Text string

	// NumPages is the page count for paged formats, 1 for flat formats
	// and 0 when extraction failed.
	NumPages int

	// Thumbnail is an optional inline first-page preview, encoded as a
	// data URI. Best-effort: empty on failure.
	Thumbnail string
}

// Extractor extracts raw text from one family of file formats.
// Each extractor handles specific file extensions (e.g. pdf, docx).
type Extractor interface {
	// SupportedExtensions returns lowercase extensions without the dot.
	SupportedExtensions() []string

	// Extract reads the file at path and returns its raw text.
	// Failures degrade to an empty result rather than an error wherever
	// the format library allows it; a returned error is contained by the
	// caller and never aborts the batch.
	Extract(ctx context.Context, path string) (*ExtractionResult, error)
}

// ExtractorRegistry dispatches extraction by file extension.
type ExtractorRegistry interface {
	// Register adds an extractor to the registry.
	Register(e Extractor)

	// Extract selects the extractor for the file's extension and runs it.
	// Returns domain.ErrUnsupportedType for extensions no extractor handles.
	Extract(ctx context.Context, path string) (*ExtractionResult, error)

	// Supported reports whether the extension (without dot, any case)
	// has a registered extractor.
	Supported(ext string) bool
}

// ArchiveExpander expands container files (zip, rar) into a scratch
// directory so the contained files can re-enter the pipeline as inputs.
type ArchiveExpander interface {
	// SupportedExtensions returns lowercase archive extensions without the dot.
	SupportedExtensions() []string

	// Expand extracts the archive at path into destDir and returns the
	// paths of all extracted regular files. Unsupported archive kinds
	// yield an empty list and no error.
	Expand(ctx context.Context, path, destDir string) ([]string, error)
}

// OCREngine performs optical character recognition on raster images.
// The production implementation wraps tesseract behind a cgo build tag;
// builds without cgo get a stub that reports itself unavailable.
type OCREngine interface {
	// Available reports whether recognition is actually usable in this build.
	Available() bool

	// Image recognises text in an encoded raster image (PNG/JPEG).
	// Returns domain.ErrOCRUnavailable from stub builds.
	Image(ctx context.Context, data []byte) (string, error)
}
