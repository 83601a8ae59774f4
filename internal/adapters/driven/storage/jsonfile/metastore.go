// Package jsonfile persists the document metadata index as a single
// JSON file keyed by filename. The whole index is read and written in
// one piece; writes go through a temp file and rename so a crash never
// leaves a half-written store behind.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/marais-labs/corpus-cli/internal/core/domain"
	"github.com/marais-labs/corpus-cli/internal/core/ports/driven"
	"github.com/marais-labs/corpus-cli/internal/logger"
)

// Ensure MetadataStore implements the interface.
var _ driven.MetadataStore = (*MetadataStore)(nil)

// MetadataStore reads and writes the metadata JSON file.
type MetadataStore struct {
	path string
}

// NewMetadataStore creates a store backed by the file at path. The
// file does not need to exist yet.
func NewMetadataStore(path string) *MetadataStore {
	return &MetadataStore{path: path}
}

// Load reads the index from disk. A missing or unreadable file yields
// an empty index rather than an error, so a fresh data directory and a
// corrupted store both start over cleanly.
func (s *MetadataStore) Load(_ context.Context) (domain.DocumentIndex, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("could not read %s, starting with an empty index: %v", s.path, err)
		}
		return domain.DocumentIndex{}, nil
	}

	var idx domain.DocumentIndex
	if err := json.Unmarshal(data, &idx); err != nil {
		logger.Warn("malformed metadata in %s, starting with an empty index: %v", s.path, err)
		return domain.DocumentIndex{}, nil
	}
	if idx == nil {
		idx = domain.DocumentIndex{}
	}
	return idx, nil
}

// Save writes the whole index atomically.
func (s *MetadataStore) Save(_ context.Context, idx domain.DocumentIndex) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating metadata directory: %w", err)
	}

	data, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding metadata: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing metadata: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing metadata: %w", err)
	}
	return nil
}

// Path returns the location of the metadata file.
func (s *MetadataStore) Path() string { return s.path }
