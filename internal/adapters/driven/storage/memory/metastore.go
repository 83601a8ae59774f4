// Package memory provides an in-memory metadata store for tests and
// ephemeral runs.
package memory

import (
	"context"
	"sync"

	"github.com/marais-labs/corpus-cli/internal/core/domain"
	"github.com/marais-labs/corpus-cli/internal/core/ports/driven"
)

// Ensure MetadataStore implements the interface.
var _ driven.MetadataStore = (*MetadataStore)(nil)

// MetadataStore is an in-memory implementation of driven.MetadataStore.
type MetadataStore struct {
	mu    sync.RWMutex
	index domain.DocumentIndex
}

// NewMetadataStore creates a new in-memory metadata store.
func NewMetadataStore() *MetadataStore {
	return &MetadataStore{index: domain.DocumentIndex{}}
}

// Load returns a copy of the stored index. Callers may mutate the
// result freely without affecting the store until the next Save.
func (s *MetadataStore) Load(_ context.Context) (domain.DocumentIndex, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(domain.DocumentIndex, len(s.index))
	for name, rec := range s.index {
		clone := *rec
		out[name] = &clone
	}
	return out, nil
}

// Save replaces the stored index with a copy of idx.
func (s *MetadataStore) Save(_ context.Context, idx domain.DocumentIndex) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.index = make(domain.DocumentIndex, len(idx))
	for name, rec := range idx {
		clone := *rec
		s.index[name] = &clone
	}
	return nil
}

// Path identifies the store for log messages.
func (s *MetadataStore) Path() string { return "memory" }
