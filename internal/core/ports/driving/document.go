package driving

import (
	"context"

	"github.com/marais-labs/corpus-cli/internal/core/domain"
)

// ListFilter narrows a document listing.
type ListFilter struct {
	// Type keeps only records of this document type (case-insensitive).
	Type string

	// DateFrom / DateTo bound the import date, inclusive, as YYYY-MM-DD.
	// Empty means unbounded.
	DateFrom string
	DateTo   string
}

// DocumentSummary is one row of a listing: record metadata without the
// full context or frequency tables.
type DocumentSummary struct {
	Filename         string `json:"filename"`
	Type             string `json:"type"`
	Size             int64  `json:"size"`
	NumPages         int    `json:"num_pages"`
	DateImport       string `json:"date_import"`
	TotalTokensAfter int    `json:"total_tokens_after"`
	CharCountAfter   int    `json:"char_count_after"`
	CorpusRelPath    string `json:"corpus_relpath"`
}

// DocumentService provides record-level access and deletion.
type DocumentService interface {
	// List returns summaries for every record passing the filter,
	// sorted by filename. Size and import date are re-resolved from the
	// corpus file when the stored values are missing or stale.
	List(ctx context.Context, filter ListFilter) ([]DocumentSummary, error)

	// Get returns the full record for a filename, or domain.ErrNotFound.
	Get(ctx context.Context, filename string) (*domain.DocumentRecord, error)

	// Delete removes, for each named document, the corpus file, the
	// derived raw and normalized texts, and the store entry as a unit.
	// Per-name failures are joined and returned after all names were
	// attempted; the store is saved once at the end.
	Delete(ctx context.Context, filenames []string) (int, error)
}
