//go:build cgo

package tesseract

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/otiai10/gosseract/v2"

	"github.com/marais-labs/corpus-cli/internal/core/ports/driven"
)

// Ensure Engine implements the interface.
var _ driven.OCREngine = (*Engine)(nil)

// Engine recognises text in raster images using Tesseract.
// A single client is reused; gosseract clients are not safe for
// concurrent use, so calls are serialised.
type Engine struct {
	mu     sync.Mutex
	client *gosseract.Client
	langs  []string
}

// New creates a Tesseract engine recognising the given languages
// (Tesseract codes such as "eng", "fra"). Empty means Tesseract's
// default.
func New(langs []string) (*Engine, error) {
	client := gosseract.NewClient()
	if len(langs) > 0 {
		if err := client.SetLanguage(langs...); err != nil {
			client.Close()
			return nil, fmt.Errorf("setting OCR languages: %w", err)
		}
	}
	return &Engine{client: client, langs: langs}, nil
}

// Available reports that recognition is usable in this build.
func (e *Engine) Available() bool { return true }

// Image recognises text in an encoded raster image.
func (e *Engine) Image(ctx context.Context, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.client.SetImageFromBytes(data); err != nil {
		return "", fmt.Errorf("loading image: %w", err)
	}
	text, err := e.client.Text()
	if err != nil {
		return "", fmt.Errorf("recognising text: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// Close releases the underlying Tesseract client.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.client.Close()
}
