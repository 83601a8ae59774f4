// Package pdf extracts text from PDF files. Two independent readers
// run over every file because real corpora contain PDFs that only one
// of them parses, and their outputs are concatenated: ledongthuc/pdf
// first, dslipak/pdf second. Both readers panic on some malformed
// files, so each pass is recover-guarded and a failed pass contributes
// nothing. Scanned PDFs with no text layer fall through to OCR over
// their embedded images when an engine is available.
package pdf

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	dslipak "github.com/dslipak/pdf"
	ledongthuc "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/marais-labs/corpus-cli/internal/core/ports/driven"
	"github.com/marais-labs/corpus-cli/internal/logger"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor reads .pdf files. The OCR engine is optional; without one,
// image-only PDFs yield empty text.
type Extractor struct {
	ocr driven.OCREngine
}

// New returns a PDF extractor. ocr may be nil.
func New(ocr driven.OCREngine) *Extractor {
	return &Extractor{ocr: ocr}
}

func (e *Extractor) SupportedExtensions() []string {
	return []string{"pdf"}
}

// Extract pulls the text layer, counts pages, and renders a first-page
// thumbnail from the file's embedded images. When the text layer is
// empty and OCR is available, every embedded image is OCRed instead.
func (e *Extractor) Extract(ctx context.Context, path string) (*driven.ExtractionResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	primary, pages, primaryErr := extractText(path)
	secondary, secondaryPages, secondaryErr := extractTextSecondPass(path)
	if primaryErr != nil && secondaryErr != nil {
		return nil, fmt.Errorf("extracting %s: %w", path, primaryErr)
	}
	if primaryErr != nil {
		logger.Debug("first pdf pass over %s failed: %v", filepath.Base(path), primaryErr)
	}
	if secondaryErr != nil {
		logger.Debug("second pdf pass over %s failed: %v", filepath.Base(path), secondaryErr)
	}
	text := mergePasses(primary, secondary)
	if pages == 0 {
		pages = secondaryPages
	}

	if strings.TrimSpace(text) == "" && e.ocr != nil && e.ocr.Available() {
		logger.Debug("no text layer in %s, running OCR over embedded images", filepath.Base(path))
		if ocrText, ocrErr := e.ocrImages(ctx, path, nil); ocrErr != nil {
			logger.Warn("OCR pass over %s failed: %v", filepath.Base(path), ocrErr)
		} else {
			text = ocrText
		}
	}

	if pages == 0 {
		if n, cntErr := api.PageCountFile(path); cntErr == nil {
			pages = n
		}
	}

	result := &driven.ExtractionResult{
		Text:     text,
		NumPages: pages,
	}
	if thumb, thumbErr := firstPageThumbnail(path); thumbErr != nil {
		logger.Debug("no thumbnail for %s: %v", filepath.Base(path), thumbErr)
	} else {
		result.Thumbnail = thumb
	}
	return result, nil
}

// extractText is the primary pass. The reader panics on some inputs,
// so failures surface as errors via recover.
func extractText(path string) (text string, pages int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf reader panic: %v", r)
		}
	}()

	f, r, err := ledongthuc.Open(path)
	if err != nil {
		return "", 0, err
	}
	defer f.Close()

	pages = r.NumPage()
	var b strings.Builder
	for i := 1; i <= pages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		content := page.Content()
		for _, t := range content.Text {
			b.WriteString(t.S)
		}
		b.WriteString("\n")
	}
	return b.String(), pages, nil
}

// mergePasses concatenates the output of the two readers. A failed
// pass contributes nothing; the surviving pass stands alone.
func mergePasses(primary, secondary string) string {
	if primary == "" {
		return secondary
	}
	if secondary == "" {
		return primary
	}
	return primary + secondary
}

// extractTextSecondPass reads the same file with the second reader.
func extractTextSecondPass(path string) (text string, pages int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf second reader panic: %v", r)
		}
	}()

	r, err := dslipak.Open(path)
	if err != nil {
		return "", 0, err
	}

	pages = r.NumPage()
	var b strings.Builder
	for i := 1; i <= pages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		s, pageErr := page.GetPlainText(nil)
		if pageErr != nil {
			continue
		}
		b.WriteString(s)
		b.WriteString("\n")
	}
	return b.String(), pages, nil
}

// ocrImages extracts the embedded images of the selected pages into a
// temp dir and runs OCR over each, concatenating the recognized text.
// A nil page selection means all pages.
func (e *Extractor) ocrImages(ctx context.Context, path string, pageSel []string) (string, error) {
	dir, err := os.MkdirTemp("", "corpus-ocr-*")
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(dir)

	conf := model.NewDefaultConfiguration()
	if err := api.ExtractImagesFile(path, dir, pageSel, conf); err != nil {
		return "", fmt.Errorf("extracting images: %w", err)
	}

	names, err := sortedImageNames(dir)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		data, readErr := os.ReadFile(filepath.Join(dir, name))
		if readErr != nil {
			continue
		}
		recognized, ocrErr := e.ocr.Image(ctx, data)
		if ocrErr != nil {
			logger.Debug("OCR of %s failed: %v", name, ocrErr)
			continue
		}
		b.WriteString(recognized)
		b.WriteString("\n")
	}
	return b.String(), nil
}

// firstPageThumbnail extracts the first page's embedded images and
// encodes the largest one as a data URI.
func firstPageThumbnail(path string) (string, error) {
	dir, err := os.MkdirTemp("", "corpus-thumb-*")
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(dir)

	conf := model.NewDefaultConfiguration()
	if err := api.ExtractImagesFile(path, dir, []string{"1"}, conf); err != nil {
		return "", fmt.Errorf("extracting first page images: %w", err)
	}

	names, err := sortedImageNames(dir)
	if err != nil {
		return "", err
	}
	if len(names) == 0 {
		return "", fmt.Errorf("no images on first page")
	}

	var best string
	var bestSize int64
	for _, name := range names {
		info, statErr := os.Stat(filepath.Join(dir, name))
		if statErr != nil {
			continue
		}
		if info.Size() > bestSize {
			best, bestSize = name, info.Size()
		}
	}
	if best == "" {
		return "", fmt.Errorf("no readable image on first page")
	}

	data, err := os.ReadFile(filepath.Join(dir, best))
	if err != nil {
		return "", err
	}
	return dataURI(best, data), nil
}

// sortedImageNames lists image files in the dir in name order.
func sortedImageNames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".png", ".jpg", ".jpeg", ".tif", ".tiff":
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// dataURI encodes image bytes as a base64 data URI with a MIME type
// guessed from the filename.
func dataURI(name string, data []byte) string {
	mime := "image/png"
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg":
		mime = "image/jpeg"
	case ".tif", ".tiff":
		mime = "image/tiff"
	}
	var b bytes.Buffer
	b.WriteString("data:")
	b.WriteString(mime)
	b.WriteString(";base64,")
	b.WriteString(base64.StdEncoding.EncodeToString(data))
	return b.String()
}
