package cli

import (
	"context"

	"github.com/marais-labs/corpus-cli/internal/core/domain"
	"github.com/marais-labs/corpus-cli/internal/core/ports/driving"
)

// mockIngestService returns a canned report.
type mockIngestService struct {
	report *driving.IngestReport
	err    error
}

func (m *mockIngestService) IngestFiles(context.Context, []string) (*driving.IngestReport, error) {
	return m.report, m.err
}

func (m *mockIngestService) Reprocess(context.Context) (*driving.IngestReport, error) {
	return m.report, m.err
}

// mockSearchService returns a canned response.
type mockSearchService struct {
	resp *domain.SearchResponse
	err  error
}

func (m *mockSearchService) Search(context.Context, string, domain.SearchOptions) (*domain.SearchResponse, error) {
	return m.resp, m.err
}

// mockAutocompleteService returns canned completions.
type mockAutocompleteService struct {
	words []string
	err   error
}

func (m *mockAutocompleteService) Suggest(context.Context, string) ([]string, error) {
	return m.words, m.err
}

// mockDocumentService returns canned documents.
type mockDocumentService struct {
	docs    []driving.DocumentSummary
	rec     *domain.DocumentRecord
	deleted int
	err     error
}

func (m *mockDocumentService) List(context.Context, driving.ListFilter) ([]driving.DocumentSummary, error) {
	return m.docs, m.err
}

func (m *mockDocumentService) Get(context.Context, string) (*domain.DocumentRecord, error) {
	if m.rec == nil && m.err == nil {
		return nil, domain.ErrNotFound
	}
	return m.rec, m.err
}

func (m *mockDocumentService) Delete(context.Context, []string) (int, error) {
	return m.deleted, m.err
}

// mockStatsService returns canned stats.
type mockStatsService struct {
	stats *driving.CorpusStats
	err   error
}

func (m *mockStatsService) Stats(context.Context, int) (*driving.CorpusStats, error) {
	return m.stats, m.err
}

// setupTestServices installs mocks for every service and returns a
// cleanup restoring the previous wiring.
func setupTestServices() func() {
	oldIngest := ingestService
	oldSearch := searchService
	oldAutocomplete := autocompleteService
	oldDocument := documentService
	oldStats := statsService

	ingestService = &mockIngestService{report: &driving.IngestReport{}}
	searchService = &mockSearchService{resp: &domain.SearchResponse{}}
	autocompleteService = &mockAutocompleteService{}
	documentService = &mockDocumentService{}
	statsService = &mockStatsService{stats: &driving.CorpusStats{}}

	return func() {
		ingestService = oldIngest
		searchService = oldSearch
		autocompleteService = oldAutocomplete
		documentService = oldDocument
		statsService = oldStats
	}
}
