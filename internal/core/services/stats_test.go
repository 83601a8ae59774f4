package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marais-labs/corpus-cli/internal/core/domain"
)

func TestStatsAggregation(t *testing.T) {
	idx := domain.DocumentIndex{
		"a.pdf": {
			Filename: "a.pdf", Type: "pdf", Size: 100, NumPages: 3,
			DateImport: "2026-01-10", TotalTokensAfter: 50,
			Words:   []domain.WordCount{{Word: "budget", Count: 4}, {Word: "plan", Count: 1}},
			Bigrams: []domain.WordCount{{Word: "budget plan", Count: 1}},
		},
		"b.txt": {
			Filename: "b.txt", Type: "txt", Size: 40, NumPages: 1,
			DateImport: "2026-02-20", TotalTokensAfter: 10,
			Words: []domain.WordCount{{Word: "budget", Count: 2}, {Word: "note", Count: 2}},
		},
		"c.pdf": {
			Filename: "c.pdf", Type: "pdf", Size: 60, NumPages: 2,
			DateImport: "2026-01-10", TotalTokensAfter: 20,
			Words: []domain.WordCount{{Word: "plan", Count: 3}},
		},
	}
	svc := NewStatsService(newMockStore(idx))

	stats, err := svc.Stats(context.Background(), 2)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Documents)
	assert.Equal(t, int64(200), stats.TotalSize)
	assert.Equal(t, 6, stats.TotalPages)
	assert.Equal(t, 80, stats.TotalTokens)
	assert.Equal(t, 3, stats.VocabSize)
	assert.Equal(t, "2026-01-10", stats.OldestDate)
	assert.Equal(t, "2026-02-20", stats.NewestDate)

	require.Len(t, stats.ByType, 2)
	assert.Equal(t, "pdf", stats.ByType[0].Type)
	assert.Equal(t, 2, stats.ByType[0].Count)

	require.Len(t, stats.ByDate, 2)
	assert.Equal(t, "2026-01-10", stats.ByDate[0].Date)
	assert.Equal(t, 2, stats.ByDate[0].Count)

	// budget: 4+2=6, plan: 1+3=4, note: 2; top two by count.
	require.Len(t, stats.TopWords, 2)
	assert.Equal(t, domain.WordCount{Word: "budget", Count: 6}, stats.TopWords[0])
	assert.Equal(t, domain.WordCount{Word: "plan", Count: 4}, stats.TopWords[1])

	require.Len(t, stats.TopBigrams, 1)
	assert.Equal(t, "budget plan", stats.TopBigrams[0].Word)
}

func TestStatsEmptyStore(t *testing.T) {
	svc := NewStatsService(newMockStore(nil))

	stats, err := svc.Stats(context.Background(), 0)
	require.NoError(t, err)
	assert.Zero(t, stats.Documents)
	assert.Empty(t, stats.TopWords)
	assert.Empty(t, stats.OldestDate)
}
