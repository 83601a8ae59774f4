package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"github.com/marais-labs/corpus-cli/internal/core/ports/driven"
	"github.com/marais-labs/corpus-cli/internal/core/ports/driving"
)

// Ensure AutocompleteService implements the interface.
var _ driving.AutocompleteService = (*AutocompleteService)(nil)

const (
	// minPrefixLen is the shortest prefix worth completing.
	minPrefixLen = 2

	// maxPrefixMatches caps alphabetical prefix completions.
	maxPrefixMatches = 10

	// maxCompletions caps the full suggestion list after fuzzy fill.
	maxCompletions = 15

	// fuzzyFillDistance bounds the edit distance of fill candidates.
	fuzzyFillDistance = 2
)

// AutocompleteService completes query prefixes from the indexed
// vocabulary.
type AutocompleteService struct {
	store driven.MetadataStore
}

// NewAutocompleteService creates a new autocomplete service.
func NewAutocompleteService(store driven.MetadataStore) *AutocompleteService {
	return &AutocompleteService{store: store}
}

// Suggest returns alphabetical prefix matches first. Only when fewer
// than maxPrefixMatches exist does the list top up with close fuzzy
// matches, so a typo in the prefix still produces completions.
func (s *AutocompleteService) Suggest(ctx context.Context, prefix string) ([]string, error) {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if utf8.RuneCountInString(prefix) < minPrefixLen {
		return nil, nil
	}

	idx, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading metadata: %w", err)
	}
	vocab := idx.Vocabulary()

	var exact []string
	for word := range vocab {
		if strings.HasPrefix(word, prefix) {
			exact = append(exact, word)
		}
	}
	sort.Strings(exact)
	if len(exact) >= maxPrefixMatches {
		return exact[:maxPrefixMatches], nil
	}

	included := make(map[string]bool, len(exact))
	for _, word := range exact {
		included[word] = true
	}

	type scored struct {
		word string
		dist int
	}
	var fuzzy []scored
	for word := range vocab {
		if included[word] {
			continue
		}
		dist := levenshtein.ComputeDistance(prefix, word)
		if dist > 0 && dist <= fuzzyFillDistance {
			fuzzy = append(fuzzy, scored{word: word, dist: dist})
		}
	}
	sort.Slice(fuzzy, func(i, j int) bool {
		if fuzzy[i].dist != fuzzy[j].dist {
			return fuzzy[i].dist < fuzzy[j].dist
		}
		return fuzzy[i].word < fuzzy[j].word
	})

	out := exact
	for _, c := range fuzzy {
		if len(out) == maxCompletions {
			break
		}
		out = append(out, c.word)
	}
	return out, nil
}
