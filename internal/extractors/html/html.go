// Package html extracts visible text from HTML documents using goquery.
// Script and style bodies are dropped; everything else is flattened to
// whitespace-normalized text.
package html

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/marais-labs/corpus-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor reads .html and .htm files.
type Extractor struct{}

// New returns an HTML extractor.
func New() *Extractor { return &Extractor{} }

func (e *Extractor) SupportedExtensions() []string {
	return []string{"html", "htm"}
}

// Extract parses the document, removes script, style and noscript
// subtrees, and collapses the remaining text to single spaces. An HTML
// document counts as a single page.
func (e *Extractor) Extract(ctx context.Context, path string) (*driven.ExtractionResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	doc.Find("script, style, noscript").Remove()
	text := strings.Join(strings.Fields(doc.Text()), " ")

	return &driven.ExtractionResult{
		Text:     text,
		NumPages: 1,
	}, nil
}
