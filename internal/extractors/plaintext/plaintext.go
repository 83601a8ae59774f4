// Package plaintext extracts text from plain text files. Input that is
// not valid UTF-8 is repaired rather than rejected, since corpus text
// files arrive in whatever encoding their authors used.
package plaintext

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/marais-labs/corpus-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor reads .txt files.
type Extractor struct{}

// New returns a plain text extractor.
func New() *Extractor { return &Extractor{} }

func (e *Extractor) SupportedExtensions() []string {
	return []string{"txt"}
}

// Extract reads the whole file, replaces invalid UTF-8 sequences, and
// joins trimmed non-empty lines with newlines. Plain text counts as a
// single page.
func (e *Extractor) Extract(ctx context.Context, path string) (*driven.ExtractionResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	text := strings.ToValidUTF8(string(data), "")
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}

	return &driven.ExtractionResult{
		Text:     strings.Join(lines, "\n"),
		NumPages: 1,
	}, nil
}
