package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/marais-labs/corpus-cli/internal/core/domain"
	"github.com/marais-labs/corpus-cli/internal/core/ports/driven"
	"github.com/marais-labs/corpus-cli/internal/core/ports/driving"
)

// Ensure StatsService implements the interface.
var _ driving.StatsService = (*StatsService)(nil)

// defaultTopN bounds the top word and bigram lists when the caller does
// not choose.
const defaultTopN = 20

// StatsService aggregates figures over the whole store.
type StatsService struct {
	store driven.MetadataStore
}

// NewStatsService creates a new stats service.
func NewStatsService(store driven.MetadataStore) *StatsService {
	return &StatsService{store: store}
}

// Stats computes corpus-wide totals, per-type and per-date breakdowns,
// and the most frequent words and bigrams across every record.
func (s *StatsService) Stats(ctx context.Context, topN int) (*driving.CorpusStats, error) {
	if topN <= 0 {
		topN = defaultTopN
	}

	idx, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading metadata: %w", err)
	}

	stats := &driving.CorpusStats{Documents: len(idx)}
	byType := make(map[string]int)
	byDate := make(map[string]int)
	words := make(map[string]int)
	bigrams := make(map[string]int)

	for _, rec := range idx {
		stats.TotalSize += rec.Size
		stats.TotalPages += rec.NumPages
		stats.TotalTokens += rec.TotalTokensAfter
		byType[rec.Type]++
		if rec.DateImport != "" {
			byDate[rec.DateImport]++
			if stats.OldestDate == "" || rec.DateImport < stats.OldestDate {
				stats.OldestDate = rec.DateImport
			}
			if rec.DateImport > stats.NewestDate {
				stats.NewestDate = rec.DateImport
			}
		}
		for _, wc := range rec.Words {
			words[wc.Word] += wc.Count
		}
		for _, wc := range rec.Bigrams {
			bigrams[wc.Word] += wc.Count
		}
	}

	stats.VocabSize = len(words)
	stats.ByType = sortedTypeCounts(byType)
	stats.ByDate = sortedDateCounts(byDate)
	stats.TopWords = topCounts(words, topN)
	stats.TopBigrams = topCounts(bigrams, topN)
	return stats, nil
}

func sortedTypeCounts(m map[string]int) []driving.TypeCount {
	out := make([]driving.TypeCount, 0, len(m))
	for t, n := range m {
		out = append(out, driving.TypeCount{Type: t, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Type < out[j].Type
	})
	return out
}

func sortedDateCounts(m map[string]int) []driving.DateCount {
	out := make([]driving.DateCount, 0, len(m))
	for d, n := range m {
		out = append(out, driving.DateCount{Date: d, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// topCounts returns the n highest counts, descending, ties broken
// alphabetically.
func topCounts(m map[string]int, n int) []domain.WordCount {
	out := make([]domain.WordCount, 0, len(m))
	for w, c := range m {
		out = append(out, domain.WordCount{Word: w, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Word < out[j].Word
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
