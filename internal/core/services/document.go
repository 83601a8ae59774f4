package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/marais-labs/corpus-cli/internal/core/domain"
	"github.com/marais-labs/corpus-cli/internal/core/ports/driven"
	"github.com/marais-labs/corpus-cli/internal/core/ports/driving"
	"github.com/marais-labs/corpus-cli/internal/logger"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService lists, shows and deletes corpus documents.
type DocumentService struct {
	paths Paths
	store driven.MetadataStore
}

// NewDocumentService creates a new document service.
func NewDocumentService(paths Paths, store driven.MetadataStore) *DocumentService {
	return &DocumentService{paths: paths, store: store}
}

// List returns summaries of every record passing the filter, sorted by
// filename.
func (s *DocumentService) List(ctx context.Context, filter driving.ListFilter) ([]driving.DocumentSummary, error) {
	idx, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading metadata: %w", err)
	}

	wantType := strings.ToLower(filter.Type)
	var out []driving.DocumentSummary
	for _, rec := range idx {
		if wantType != "" && strings.ToLower(rec.Type) != wantType {
			continue
		}
		// The corpus file is the source of truth for size and import
		// date when the stored values are missing or stale.
		if info, statErr := os.Stat(s.corpusPath(rec)); statErr == nil {
			rec.Size = info.Size()
			if rec.DateImport == "" {
				rec.DateImport = info.ModTime().Format("2006-01-02")
			}
		}
		if filter.DateFrom != "" && rec.DateImport < filter.DateFrom {
			continue
		}
		if filter.DateTo != "" && rec.DateImport > filter.DateTo {
			continue
		}
		out = append(out, driving.DocumentSummary{
			Filename:         rec.Filename,
			Type:             rec.Type,
			Size:             rec.Size,
			NumPages:         rec.NumPages,
			DateImport:       rec.DateImport,
			TotalTokensAfter: rec.TotalTokensAfter,
			CharCountAfter:   rec.CharCountAfter,
			CorpusRelPath:    rec.CorpusRelPath,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Filename < out[j].Filename })
	return out, nil
}

// Get returns the full record for a filename.
func (s *DocumentService) Get(ctx context.Context, filename string) (*domain.DocumentRecord, error) {
	idx, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading metadata: %w", err)
	}
	return idx.Get(filename)
}

// Delete removes each named document's corpus file, derived texts and
// store entry. All names are attempted; failures are joined. The store
// is saved once at the end so a partial batch still persists what
// succeeded.
func (s *DocumentService) Delete(ctx context.Context, filenames []string) (int, error) {
	idx, err := s.store.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("loading metadata: %w", err)
	}

	deleted := 0
	var errs []error
	for _, name := range filenames {
		rec, ok := idx[name]
		if !ok {
			errs = append(errs, fmt.Errorf("%w: %s", domain.ErrNotFound, name))
			continue
		}

		if corpusPath := s.corpusPath(rec); corpusPath != "" {
			if rmErr := os.Remove(corpusPath); rmErr != nil && !os.IsNotExist(rmErr) {
				errs = append(errs, fmt.Errorf("removing %s: %w", name, rmErr))
				continue
			}
		}

		removeDerived(filepath.Join(s.paths.RawTextDir, name+".txt"))
		removeDerived(filepath.Join(s.paths.CleanTextDir, name+".txt"))
		delete(idx, name)
		deleted++
		logger.Debug("deleted %s", name)
	}

	if err := s.store.Save(ctx, idx); err != nil {
		errs = append(errs, fmt.Errorf("saving metadata: %w", err))
	}
	return deleted, errors.Join(errs...)
}

// corpusPath resolves the record's corpus file location.
func (s *DocumentService) corpusPath(rec *domain.DocumentRecord) string {
	if rec.Path != "" {
		return rec.Path
	}
	if rec.CorpusRelPath != "" {
		return filepath.Join(s.paths.CorpusDir, filepath.FromSlash(rec.CorpusRelPath))
	}
	return ""
}

// removeDerived deletes a derived text file, tolerating absence.
func removeDerived(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logger.Warn("could not remove %s: %v", path, err)
	}
}
