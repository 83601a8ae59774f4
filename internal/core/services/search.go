package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"github.com/marais-labs/corpus-cli/internal/core/domain"
	"github.com/marais-labs/corpus-cli/internal/core/ports/driven"
	"github.com/marais-labs/corpus-cli/internal/core/ports/driving"
	"github.com/marais-labs/corpus-cli/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

const (
	// snippetBefore and snippetAfter bound the preview window around the
	// first hit.
	snippetBefore = 100
	snippetAfter  = 200

	// snippetFallback is the preview length when no term position is
	// known.
	snippetFallback = 300

	// maxSuggestions caps fuzzy corrections on an empty result.
	maxSuggestions = 5

	// minSuggestQuery is the shortest query that triggers suggestions.
	minSuggestQuery = 3
)

// SearchService evaluates queries against the metadata store snapshot.
type SearchService struct {
	store driven.MetadataStore
}

// NewSearchService creates a new search service.
func NewSearchService(store driven.MetadataStore) *SearchService {
	return &SearchService{store: store}
}

// Search matches the query against every record's normalized context,
// ranks hits by total term occurrences, and falls back to fuzzy
// vocabulary suggestions when nothing matched.
func (s *SearchService) Search(ctx context.Context, query string, opts domain.SearchOptions) (*domain.SearchResponse, error) {
	logger.Section("Search")
	logger.Debug("query %q, mode %q, types %v", query, opts.Mode, opts.Types)

	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil, domain.ErrEmptyQuery
	}
	mode, err := domain.ParseSearchMode(string(opts.Mode))
	if err != nil {
		return nil, err
	}

	idx, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading metadata: %w", err)
	}

	typeFilter := make(map[string]bool, len(opts.Types))
	for _, t := range opts.Types {
		typeFilter[strings.ToLower(t)] = true
	}

	terms := strings.Fields(query)
	stripped := strings.ReplaceAll(query, " ", "")

	// Iterate filenames in lexicographic order so ties rank stably.
	filenames := make([]string, 0, len(idx))
	for name := range idx {
		filenames = append(filenames, name)
	}
	sort.Strings(filenames)

	var results []domain.SearchResult
	seenContexts := make(map[string]int)
	for _, name := range filenames {
		rec := idx[name]
		if len(typeFilter) > 0 && !typeFilter[strings.ToLower(rec.Type)] {
			continue
		}

		docCtx := strings.ToLower(strings.TrimSpace(rec.Context))
		strippedCtx := strings.ReplaceAll(docCtx, " ", "")
		if !matches(mode, docCtx, strippedCtx, query, stripped, terms) {
			continue
		}

		result := buildResult(rec, docCtx, strippedCtx, terms)

		// Byte-identical contexts are duplicate uploads under different
		// names; keep the shorter filename.
		if prev, dup := seenContexts[docCtx]; dup {
			if shorterName(result.Filename, results[prev].Filename) {
				results[prev] = result
			}
			continue
		}
		seenContexts[docCtx] = len(results)
		results = append(results, result)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].TotalOccurrences > results[j].TotalOccurrences
	})
	logger.Debug("%d result(s)", len(results))

	resp := &domain.SearchResponse{Results: results}
	if len(results) == 0 && utf8.RuneCountInString(query) >= minSuggestQuery {
		resp.Suggestions = suggestCorrections(query, idx.Vocabulary())
		logger.Debug("no results, %d suggestion(s)", len(resp.Suggestions))
	}
	return resp, nil
}

// matches applies one search mode. docCtx is the trimmed lowercase
// context, strippedCtx its space-free variant; stripped and terms are
// precomputed query variants.
func matches(mode domain.SearchMode, docCtx, strippedCtx, query, stripped string, terms []string) bool {
	switch mode {
	case domain.ModeContains:
		return strings.Contains(strippedCtx, stripped)
	case domain.ModeNotContains:
		return !strings.Contains(strippedCtx, stripped)
	case domain.ModeStartsWith:
		return strings.HasPrefix(strippedCtx, stripped)
	case domain.ModeEndsWith:
		return strings.HasSuffix(strippedCtx, stripped)
	case domain.ModeExact:
		return strings.Contains(docCtx, query)
	case domain.ModeAllWords, domain.ModeAllWordsAnd:
		for _, term := range terms {
			if !strings.Contains(strippedCtx, term) {
				return false
			}
		}
		return true
	case domain.ModeOr, domain.ModeAllWordsOr:
		for _, term := range terms {
			if strings.Contains(strippedCtx, term) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// buildResult hydrates one hit: per-term occurrence counts over the
// space-free context and a preview snippet around the first occurrence
// of the first term. Terms with no occurrences are left out of the map.
func buildResult(rec *domain.DocumentRecord, docCtx, strippedCtx string, terms []string) domain.SearchResult {
	occurrences := make(map[string]int, len(terms))
	total := 0
	for _, term := range terms {
		n := strings.Count(strippedCtx, term)
		if n == 0 {
			continue
		}
		occurrences[term] = n
		total += n
	}

	return domain.SearchResult{
		Filename:         rec.Filename,
		Type:             rec.Type,
		Size:             rec.Size,
		DateImport:       rec.DateImport,
		Preview:          preview(docCtx, terms),
		Context:          rec.Context,
		TotalTokensAfter: rec.TotalTokensAfter,
		Words:            rec.Words,
		Bigrams:          rec.Bigrams,
		WordOccurrences:  occurrences,
		TotalOccurrences: total,
	}
}

// preview cuts a window of snippetBefore characters before the first
// occurrence of the first term and snippetAfter from the hit onward,
// so the matched term counts toward the trailing span. The excerpt is
// whitespace-trimmed and truncated edges carry ellipsis markers.
// Without a hit it falls back to the leading snippetFallback
// characters.
func preview(docCtx string, terms []string) string {
	runes := []rune(docCtx)

	if len(terms) > 0 {
		if byteIdx := strings.Index(docCtx, terms[0]); byteIdx >= 0 {
			hit := utf8.RuneCountInString(docCtx[:byteIdx])
			start := hit - snippetBefore
			if start < 0 {
				start = 0
			}
			end := hit + snippetAfter
			if end > len(runes) {
				end = len(runes)
			}
			out := strings.TrimSpace(string(runes[start:end]))
			if start > 0 {
				out = "..." + out
			}
			if end < len(runes) {
				out += "..."
			}
			return out
		}
	}

	if len(runes) > snippetFallback {
		return string(runes[:snippetFallback]) + "..."
	}
	return docCtx
}

// shorterName prefers the shorter filename, breaking ties
// alphabetically.
func shorterName(a, b string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}

// suggestCorrections proposes vocabulary words close to the failed
// query. The distance threshold adapts to the query length so short
// queries are not flooded with loose matches.
func suggestCorrections(query string, vocab map[string]struct{}) []string {
	threshold := 2
	if utf8.RuneCountInString(query) <= 4 {
		threshold = 1
	}

	type scored struct {
		word string
		dist int
	}
	var candidates []scored
	for word := range vocab {
		if utf8.RuneCountInString(word) < 3 {
			continue
		}
		if dist := levenshtein.ComputeDistance(query, word); dist <= threshold {
			candidates = append(candidates, scored{word: word, dist: dist})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].dist != candidates[j].dist {
			return candidates[i].dist < candidates[j].dist
		}
		return candidates[i].word < candidates[j].word
	})

	var out []string
	for _, c := range candidates {
		if len(out) == maxSuggestions {
			break
		}
		out = append(out, c.word)
	}
	return out
}
