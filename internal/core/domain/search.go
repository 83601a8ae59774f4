package domain

import (
	"fmt"
	"strings"
)

// SearchMode selects the predicate applied to each record's normalized
// context. All modes are case-insensitive; substring-style modes compare
// space-stripped variants so whitespace differences between query and
// indexed text do not cause false negatives.
type SearchMode string

const (
	// ModeContains matches when the space-stripped query is a substring
	// of the space-stripped context.
	ModeContains SearchMode = "contains"

	// ModeNotContains is the negation of ModeContains.
	ModeNotContains SearchMode = "not_contains"

	// ModeStartsWith matches when the space-stripped context starts with
	// the space-stripped query.
	ModeStartsWith SearchMode = "starts_with"

	// ModeEndsWith matches when the space-stripped context ends with the
	// space-stripped query.
	ModeEndsWith SearchMode = "ends_with"

	// ModeExact matches when the literal query phrase, spaces preserved,
	// is a substring of the context.
	ModeExact SearchMode = "exact"

	// ModeAllWords matches when every space-separated query term is
	// present somewhere in the space-stripped context.
	ModeAllWords SearchMode = "all_words"

	// ModeAllWordsAnd is an alias of ModeAllWords.
	ModeAllWordsAnd SearchMode = "all_words_and"

	// ModeOr matches when at least one query term is present.
	ModeOr SearchMode = "or"

	// ModeAllWordsOr is an alias of ModeOr.
	ModeAllWordsOr SearchMode = "all_words_or"
)

// ParseSearchMode validates a user-supplied mode string.
// The empty string defaults to ModeContains.
func ParseSearchMode(s string) (SearchMode, error) {
	mode := SearchMode(strings.ToLower(strings.TrimSpace(s)))
	switch mode {
	case "":
		return ModeContains, nil
	case ModeContains, ModeNotContains, ModeStartsWith, ModeEndsWith,
		ModeExact, ModeAllWords, ModeAllWordsAnd, ModeOr, ModeAllWordsOr:
		return mode, nil
	default:
		return "", fmt.Errorf("%w: search mode %q", ErrInvalidInput, s)
	}
}

// SearchOptions carries the optional parameters of a search request.
type SearchOptions struct {
	// Mode defaults to ModeContains when empty.
	Mode SearchMode

	// Types is a case-insensitive document type allow-list. A record
	// whose type is not listed is excluded even if it matched textually.
	// Empty means all types.
	Types []string
}

// SearchResult is one ranked search hit.
type SearchResult struct {
	Filename         string         `json:"filename"`
	Type             string         `json:"type"`
	Size             int64          `json:"size"`
	DateImport       string         `json:"date_import"`
	Preview          string         `json:"preview"`
	Context          string         `json:"context"`
	TotalTokensAfter int            `json:"total_tokens_after"`
	Words            []WordCount    `json:"words"`
	Bigrams          []WordCount    `json:"bigrams"`
	WordOccurrences  map[string]int `json:"word_occurrences"`
	TotalOccurrences int            `json:"total_occurrences"`
}

// SearchResponse is the full answer to a search request. Suggestions are
// populated only when Results is empty and the query was long enough for
// fuzzy correction to be meaningful.
type SearchResponse struct {
	Results     []SearchResult `json:"results"`
	Suggestions []string       `json:"suggestions"`
}
