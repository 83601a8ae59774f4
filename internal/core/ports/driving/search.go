package driving

import (
	"context"

	"github.com/marais-labs/corpus-cli/internal/core/domain"
)

// SearchService answers multi-mode full-text queries over the metadata
// store snapshot. Read-only: it never mutates the store.
type SearchService interface {
	// Search runs the query in the given mode and returns ranked
	// results plus fuzzy suggestions when nothing matched.
	// Empty queries are rejected with domain.ErrEmptyQuery before any
	// store access.
	Search(ctx context.Context, query string, opts domain.SearchOptions) (*domain.SearchResponse, error)
}

// AutocompleteService suggests completions for a typed prefix over the
// vocabulary derived from the store. Read-only.
type AutocompleteService interface {
	// Suggest returns up to 15 suggestions: alphabetical prefix matches
	// first (capped at 10), then fuzzy corrections by edit distance.
	// Prefixes shorter than 2 characters yield no suggestions.
	Suggest(ctx context.Context, prefix string) ([]string, error)
}
