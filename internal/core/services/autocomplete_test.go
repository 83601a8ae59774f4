package services

import (
	"context"
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marais-labs/corpus-cli/internal/core/domain"
)

func vocabIndex(words ...string) domain.DocumentIndex {
	var wcs []domain.WordCount
	for _, w := range words {
		wcs = append(wcs, domain.WordCount{Word: w, Count: 1})
	}
	return domain.DocumentIndex{
		"doc.txt": {Filename: "doc.txt", Words: wcs},
	}
}

func TestSuggestShortPrefix(t *testing.T) {
	svc := NewAutocompleteService(newMockStore(vocabIndex("report")))

	out, err := svc.Suggest(context.Background(), "r")
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestSuggestPrefixMatchesSorted(t *testing.T) {
	svc := NewAutocompleteService(newMockStore(vocabIndex("report", "reply", "request", "budget")))

	out, err := svc.Suggest(context.Background(), "re")
	require.NoError(t, err)
	assert.Equal(t, []string{"reply", "report", "request"}, out)
}

func TestSuggestCapsPrefixMatches(t *testing.T) {
	var words []string
	for i := 0; i < 14; i++ {
		words = append(words, fmt.Sprintf("prefix%02d", i))
	}
	svc := NewAutocompleteService(newMockStore(vocabIndex(words...)))

	out, err := svc.Suggest(context.Background(), "prefix")
	require.NoError(t, err)
	require.Len(t, out, 10)
	assert.True(t, sort.StringsAreSorted(out))
	// A full prefix list leaves no room for fuzzy candidates, even
	// within edit distance: prefix10..prefix13 must not reappear.
	assert.Equal(t, words[:10], out)
}

func TestSuggestFuzzyFill(t *testing.T) {
	svc := NewAutocompleteService(newMockStore(vocabIndex("cart", "card", "dart", "voyage")))

	out, err := svc.Suggest(context.Background(), "cart")
	require.NoError(t, err)

	// "cart" is the only prefix match; the close misspellings fill in.
	require.NotEmpty(t, out)
	assert.Equal(t, "cart", out[0])
	assert.Contains(t, out, "card")
	assert.Contains(t, out, "dart")
	assert.NotContains(t, out, "voyage")
}

func TestSuggestCaseInsensitive(t *testing.T) {
	svc := NewAutocompleteService(newMockStore(vocabIndex("report")))

	out, err := svc.Suggest(context.Background(), "RE")
	require.NoError(t, err)
	assert.Equal(t, []string{"report"}, out)
}
