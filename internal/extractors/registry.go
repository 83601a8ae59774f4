// Package extractors routes files to format-specific text extraction.
// Each format lives in its own subpackage and registers the extensions
// it handles; the registry dispatches on the lowercase file extension.
package extractors

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/marais-labs/corpus-cli/internal/core/domain"
	"github.com/marais-labs/corpus-cli/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.ExtractorRegistry = (*Registry)(nil)

// Registry maps file extensions to extractors.
type Registry struct {
	byExt map[string]driven.Extractor
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byExt: make(map[string]driven.Extractor)}
}

// Register claims every extension the extractor supports. Extensions
// are matched without the leading dot and case-insensitively. A later
// registration for the same extension wins.
func (r *Registry) Register(e driven.Extractor) {
	for _, ext := range e.SupportedExtensions() {
		r.byExt[strings.ToLower(strings.TrimPrefix(ext, "."))] = e
	}
}

// Supported reports whether some extractor claims the extension.
func (r *Registry) Supported(ext string) bool {
	_, ok := r.byExt[strings.ToLower(strings.TrimPrefix(ext, "."))]
	return ok
}

// Extract dispatches the file to the extractor registered for its
// extension, or returns domain.ErrUnsupportedType.
func (r *Registry) Extract(ctx context.Context, path string) (*driven.ExtractionResult, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	e, ok := r.byExt[ext]
	if !ok {
		return nil, fmt.Errorf("%w: .%s", domain.ErrUnsupportedType, ext)
	}
	return e.Extract(ctx, path)
}
