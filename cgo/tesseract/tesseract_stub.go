//go:build !cgo

package tesseract

import (
	"context"

	"github.com/marais-labs/corpus-cli/internal/core/domain"
	"github.com/marais-labs/corpus-cli/internal/core/ports/driven"
)

// Ensure Engine implements the interface.
var _ driven.OCREngine = (*Engine)(nil)

// Engine recognises text in raster images using Tesseract.
// This is a stub for builds without CGO.
type Engine struct{}

// New creates a Tesseract engine.
func New(_ []string) (*Engine, error) {
	return &Engine{}, nil
}

// Available reports that recognition is not usable in this build.
func (e *Engine) Available() bool { return false }

// Image recognises text in an encoded raster image.
func (e *Engine) Image(_ context.Context, _ []byte) (string, error) {
	return "", domain.ErrOCRUnavailable
}

// Close releases the underlying Tesseract client.
func (e *Engine) Close() error { return nil }
