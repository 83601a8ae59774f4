package services

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/marais-labs/corpus-cli/internal/core/domain"
	"github.com/marais-labs/corpus-cli/internal/core/ports/driven"
)

// mockStore is an in-memory driven.MetadataStore seeded per test.
type mockStore struct {
	index     domain.DocumentIndex
	saveCalls int
	loadErr   error
	saveErr   error
}

var _ driven.MetadataStore = (*mockStore)(nil)

func newMockStore(idx domain.DocumentIndex) *mockStore {
	if idx == nil {
		idx = domain.DocumentIndex{}
	}
	return &mockStore{index: idx}
}

func (m *mockStore) Load(context.Context) (domain.DocumentIndex, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	out := make(domain.DocumentIndex, len(m.index))
	for name, rec := range m.index {
		clone := *rec
		out[name] = &clone
	}
	return out, nil
}

func (m *mockStore) Save(_ context.Context, idx domain.DocumentIndex) error {
	m.saveCalls++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.index = idx
	return nil
}

func (m *mockStore) Path() string { return "mock" }

// fileReadingRegistry extracts any claimed extension by reading the
// file as text.
type fileReadingRegistry struct {
	exts map[string]bool
}

var _ driven.ExtractorRegistry = (*fileReadingRegistry)(nil)

func newFileReadingRegistry(exts ...string) *fileReadingRegistry {
	m := make(map[string]bool, len(exts))
	for _, e := range exts {
		m[e] = true
	}
	return &fileReadingRegistry{exts: m}
}

func (r *fileReadingRegistry) Register(driven.Extractor) {}

func (r *fileReadingRegistry) Supported(ext string) bool {
	return r.exts[strings.ToLower(strings.TrimPrefix(ext, "."))]
}

func (r *fileReadingRegistry) Extract(_ context.Context, path string) (*driven.ExtractionResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &driven.ExtractionResult{Text: string(data), NumPages: 1}, nil
}

// passthroughNormalizer lowercases and collapses whitespace.
type passthroughNormalizer struct{}

var _ driven.TextNormalizer = (*passthroughNormalizer)(nil)

func (passthroughNormalizer) Name() string { return "passthrough" }

func (passthroughNormalizer) Normalize(_ context.Context, raw string) (string, error) {
	return strings.Join(strings.Fields(strings.ToLower(raw)), " "), nil
}

// noopExpander claims no archive extensions.
type noopExpander struct{}

var _ driven.ArchiveExpander = (*noopExpander)(nil)

func (noopExpander) SupportedExtensions() []string { return nil }

func (noopExpander) Expand(context.Context, string, string) ([]string, error) {
	return nil, nil
}

// failingExpander claims zip support and refuses to expand anything.
type failingExpander struct{}

var _ driven.ArchiveExpander = (*failingExpander)(nil)

func (failingExpander) SupportedExtensions() []string { return []string{"zip"} }

func (failingExpander) Expand(context.Context, string, string) ([]string, error) {
	return nil, errors.New("bad archive header")
}
