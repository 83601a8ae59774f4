package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyQuery indicates a search or autocomplete request with no
	// query text. Rejected before any store access.
	ErrEmptyQuery = errors.New("empty query")

	// ErrUnsupportedType indicates a file extension no extractor handles.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// ErrOCRUnavailable indicates the OCR engine was built without
	// tesseract support. Image recognition is skipped, not failed.
	ErrOCRUnavailable = errors.New("ocr engine unavailable")
)
