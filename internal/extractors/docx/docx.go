// Package docx extracts text from word processor documents via lu4p/cat,
// which handles .docx, .odt and .rtf bodies. Legacy .doc files are
// attempted too; when the parser rejects one the failure is contained
// to that file. Embedded images inside .docx archives are OCRed when an
// engine is available, so scanned pages pasted into documents still
// contribute text.
package docx

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/lu4p/cat"

	"github.com/marais-labs/corpus-cli/internal/core/ports/driven"
	"github.com/marais-labs/corpus-cli/internal/logger"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor reads word processor documents. The OCR engine is optional.
type Extractor struct {
	ocr driven.OCREngine
}

// New returns a word document extractor. ocr may be nil.
func New(ocr driven.OCREngine) *Extractor {
	return &Extractor{ocr: ocr}
}

func (e *Extractor) SupportedExtensions() []string {
	return []string{"docx", "doc", "odt", "rtf"}
}

// Extract reads the document body and, for .docx, appends text OCRed
// from embedded media images. A word document counts as a single page
// since the formats store no pagination.
func (e *Extractor) Extract(ctx context.Context, path string) (*driven.ExtractionResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	text, err := cat.File(path)
	if err != nil {
		return nil, fmt.Errorf("extracting %s: %w", path, err)
	}

	if strings.EqualFold(filepath.Ext(path), ".docx") && e.ocr != nil && e.ocr.Available() {
		if ocrText, ocrErr := e.ocrEmbeddedImages(ctx, path); ocrErr != nil {
			logger.Debug("OCR over embedded images of %s failed: %v", filepath.Base(path), ocrErr)
		} else if ocrText != "" {
			text = text + "\n" + ocrText
		}
	}

	return &driven.ExtractionResult{
		Text:     text,
		NumPages: 1,
	}, nil
}

// ocrEmbeddedImages walks the word/media entries of the docx zip and
// concatenates the text recognized from each image.
func (e *Extractor) ocrEmbeddedImages(ctx context.Context, path string) (string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", err
	}
	defer zr.Close()

	var b strings.Builder
	for _, f := range zr.File {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if !strings.HasPrefix(f.Name, "word/media/") || !isImageName(f.Name) {
			continue
		}
		rc, openErr := f.Open()
		if openErr != nil {
			continue
		}
		data, readErr := io.ReadAll(rc)
		rc.Close()
		if readErr != nil {
			continue
		}
		recognized, ocrErr := e.ocr.Image(ctx, data)
		if ocrErr != nil {
			logger.Debug("OCR of %s failed: %v", f.Name, ocrErr)
			continue
		}
		b.WriteString(recognized)
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String()), nil
}

func isImageName(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", ".jpg", ".jpeg", ".tif", ".tiff", ".bmp", ".gif":
		return true
	}
	return false
}
