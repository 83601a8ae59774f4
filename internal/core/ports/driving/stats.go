package driving

import (
	"context"

	"github.com/marais-labs/corpus-cli/internal/core/domain"
)

// TypeCount is a per-document-type tally.
type TypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// DateCount groups documents by import date (YYYY-MM-DD).
type DateCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// CorpusStats aggregates the whole store.
type CorpusStats struct {
	Documents   int    `json:"documents"`
	TotalSize   int64  `json:"total_size"`
	TotalPages  int    `json:"total_pages"`
	TotalTokens int    `json:"total_tokens"`
	VocabSize   int    `json:"vocab_size"`
	OldestDate  string `json:"oldest_date,omitempty"`
	NewestDate  string `json:"newest_date,omitempty"`

	ByType []TypeCount `json:"by_type"`
	ByDate []DateCount `json:"by_date"`

	// TopWords and TopBigrams are aggregated frequencies across every
	// record, descending by count then ascending by word.
	TopWords   []domain.WordCount `json:"top_words"`
	TopBigrams []domain.WordCount `json:"top_bigrams"`
}

// StatsService computes aggregate figures over the store.
type StatsService interface {
	// Stats aggregates the current store. topN bounds TopWords and
	// TopBigrams; topN <= 0 selects a default of 20.
	Stats(ctx context.Context, topN int) (*CorpusStats, error)
}
