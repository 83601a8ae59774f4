// Package indexer derives token and bigram frequency tables from
// document text. It runs after normalization and records figures for
// both the raw extracted text and its normalized form so that the
// effect of cleaning stays observable per document.
package indexer

import (
	"regexp"
	"strings"

	"github.com/marais-labs/corpus-cli/internal/core/domain"
)

// wordPattern matches word runs the way the frequency tables expect:
// letters, digits and underscores, in any script.
var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Tokenize lowercases the text and splits it into word tokens.
func Tokenize(text string) []string {
	return wordPattern.FindAllString(strings.ToLower(text), -1)
}

// Index computes frequency statistics for a document. normalized is the
// cleaned text the tables are built from; raw is the extracted text
// before cleaning, used only for the before counters. When raw is empty
// the before counters fall back to the normalized figures.
func Index(normalized, raw string) domain.IndexStats {
	tokens := Tokenize(normalized)

	stats := domain.IndexStats{
		Context:          normalized,
		CharCountAfter:   len([]rune(normalized)),
		TotalTokensAfter: len(tokens),
		Words:            countAdjacent(tokens, 1),
		Bigrams:          countAdjacent(tokens, 2),
	}

	if raw == "" {
		stats.CharCountBefore = stats.CharCountAfter
		stats.TotalTokensBefore = stats.TotalTokensAfter
		return stats
	}

	stats.CharCountBefore = len([]rune(raw))
	stats.TotalTokensBefore = len(Tokenize(raw))
	return stats
}

// countAdjacent tallies n-grams of width n over the token stream. Each
// gram's tokens are joined with a single space. Grams are emitted in
// first-encounter order so repeated runs over the same text produce the
// same table.
func countAdjacent(tokens []string, n int) []domain.WordCount {
	if n < 1 || len(tokens) < n {
		return nil
	}

	counts := make(map[string]int, len(tokens))
	order := make([]string, 0, len(tokens))

	for i := 0; i+n <= len(tokens); i++ {
		gram := strings.Join(tokens[i:i+n], " ")
		if _, seen := counts[gram]; !seen {
			order = append(order, gram)
		}
		counts[gram]++
	}

	grams := make([]domain.WordCount, 0, len(order))
	for _, gram := range order {
		grams = append(grams, domain.WordCount{Word: gram, Count: counts[gram]})
	}
	return grams
}
