package services

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/marais-labs/corpus-cli/internal/core/domain"
	"github.com/marais-labs/corpus-cli/internal/core/ports/driven"
	"github.com/marais-labs/corpus-cli/internal/core/ports/driving"
	"github.com/marais-labs/corpus-cli/internal/indexer"
	"github.com/marais-labs/corpus-cli/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// Paths names the on-disk layout the pipeline writes into.
type Paths struct {
	// CorpusDir holds ingested source files partitioned by type.
	CorpusDir string

	// RawTextDir holds extracted text before normalization.
	RawTextDir string

	// CleanTextDir holds normalized text.
	CleanTextDir string

	// ImportDir is scratch space for archive expansion.
	ImportDir string
}

// knownTypes are the extensions that get their own corpus partition;
// everything else lands under "other".
var knownTypes = map[string]bool{
	"pdf": true, "docx": true, "doc": true,
	"txt": true, "html": true, "htm": true,
}

// DocumentType maps a file extension (without dot) to its corpus
// partition name.
func DocumentType(ext string) string {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	if knownTypes[ext] {
		return ext
	}
	return "other"
}

// IngestService runs the acquisition, normalization and indexing
// pipeline over source files and merges the results into the store.
type IngestService struct {
	paths      Paths
	store      driven.MetadataStore
	registry   driven.ExtractorRegistry
	expander   driven.ArchiveExpander
	normalizer driven.TextNormalizer
	workers    int
}

// NewIngestService creates an ingest service. workers bounds how many
// files run through the pipeline concurrently; values below 1 are
// treated as 1.
func NewIngestService(
	paths Paths,
	store driven.MetadataStore,
	registry driven.ExtractorRegistry,
	expander driven.ArchiveExpander,
	normalizer driven.TextNormalizer,
	workers int,
) *IngestService {
	if workers < 1 {
		workers = 1
	}
	return &IngestService{
		paths:      paths,
		store:      store,
		registry:   registry,
		expander:   expander,
		normalizer: normalizer,
		workers:    workers,
	}
}

// fileResult carries one file's pipeline output back to the merge step.
type fileResult struct {
	filename    string
	acquisition domain.Acquisition
	stats       domain.IndexStats
	failure     error
}

// IngestFiles processes the given source files. Archives are expanded
// first and their members join the batch. Files run through the
// pipeline concurrently; merging into the index and the single store
// save happen on one goroutine afterwards.
func (s *IngestService) IngestFiles(ctx context.Context, paths []string) (*driving.IngestReport, error) {
	logger.Section("Ingestion")

	files, badArchives := s.expandArchives(ctx, paths)
	if len(files) == 0 && len(badArchives) == 0 {
		return &driving.IngestReport{}, nil
	}
	logger.Info("ingesting %d file(s) with %d worker(s)", len(files), s.workers)

	results := s.runPipeline(ctx, files, true)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	results = append(results, badArchives...)
	sort.Slice(results, func(i, j int) bool { return results[i].filename < results[j].filename })
	return s.merge(ctx, results)
}

// Reprocess re-runs extraction, normalization and indexing over every
// file already stored in the corpus directory, without copying.
func (s *IngestService) Reprocess(ctx context.Context) (*driving.IngestReport, error) {
	logger.Section("Reprocess")

	var files []string
	err := filepath.WalkDir(s.paths.CorpusDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return &driving.IngestReport{}, nil
		}
		return nil, fmt.Errorf("walking corpus: %w", err)
	}
	logger.Info("reprocessing %d corpus file(s)", len(files))

	results := s.runPipeline(ctx, files, false)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.merge(ctx, results)
}

// expandArchives replaces archive inputs with their extracted members.
// An archive that cannot be expanded becomes a failed file result so
// the rest of the batch keeps going.
func (s *IngestService) expandArchives(ctx context.Context, paths []string) ([]string, []fileResult) {
	archiveExts := make(map[string]bool)
	for _, ext := range s.expander.SupportedExtensions() {
		archiveExts[ext] = true
	}

	var files []string
	var failed []fileResult
	for _, path := range paths {
		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
		if !archiveExts[ext] {
			files = append(files, path)
			continue
		}
		// Each archive gets its own scratch directory so same-named
		// members from different archives cannot clobber each other.
		destDir := filepath.Join(s.paths.ImportDir, uuid.NewString())
		members, err := s.expander.Expand(ctx, path, destDir)
		if err != nil {
			logger.Warn("expanding %s failed: %v", filepath.Base(path), err)
			failed = append(failed, fileResult{
				filename:    filepath.Base(path),
				acquisition: domain.Acquisition{Type: DocumentType(ext)},
				failure:     fmt.Errorf("expanding archive: %w", err),
			})
			continue
		}
		logger.Debug("expanded %s into %d member(s)", filepath.Base(path), len(members))
		files = append(files, members...)
	}
	return files, failed
}

// runPipeline fans the files out over the worker pool. copyIn controls
// whether sources are copied into the corpus first; reprocessing of
// files already in place skips that.
func (s *IngestService) runPipeline(ctx context.Context, files []string, copyIn bool) []fileResult {
	var (
		mu      sync.Mutex
		results []fileResult
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for _, path := range files {
		g.Go(func() error {
			res := s.processFile(ctx, path, copyIn)
			mu.Lock()
			results = append(results, res)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	// Stable report order regardless of worker scheduling.
	sort.Slice(results, func(i, j int) bool { return results[i].filename < results[j].filename })
	return results
}

// processFile runs the whole per-file pipeline. Failures degrade the
// record rather than aborting; the returned failure is reported but the
// acquisition fields gathered so far are still merged.
func (s *IngestService) processFile(ctx context.Context, srcPath string, copyIn bool) fileResult {
	filename := filepath.Base(srcPath)
	res := fileResult{filename: filename}
	if err := ctx.Err(); err != nil {
		res.failure = err
		return res
	}

	ext := strings.TrimPrefix(filepath.Ext(filename), ".")
	docType := DocumentType(ext)
	corpusPath := filepath.Join(s.paths.CorpusDir, docType, filename)

	if copyIn && !samePath(srcPath, corpusPath) {
		if err := copyFile(srcPath, corpusPath); err != nil {
			res.failure = fmt.Errorf("copying into corpus: %w", err)
			return res
		}
	} else if !copyIn {
		corpusPath = srcPath
		docType = DocumentType(strings.TrimPrefix(filepath.Ext(srcPath), "."))
	}

	relPath, err := filepath.Rel(s.paths.CorpusDir, corpusPath)
	if err != nil {
		relPath = filepath.Join(docType, filename)
	}

	res.acquisition = domain.Acquisition{
		Type:          docType,
		Path:          corpusPath,
		CorpusRelPath: filepath.ToSlash(relPath),
	}
	if info, statErr := os.Stat(corpusPath); statErr == nil {
		res.acquisition.Size = info.Size()
		res.acquisition.DateImport = info.ModTime().Format("2006-01-02")
	}

	if !s.registry.Supported(ext) {
		res.failure = fmt.Errorf("%w: .%s", domain.ErrUnsupportedType, strings.ToLower(ext))
		return res
	}

	extracted, err := s.registry.Extract(ctx, corpusPath)
	if err != nil {
		logger.Warn("extraction of %s failed: %v", filename, err)
		res.failure = err
		return res
	}
	res.acquisition.NumPages = extracted.NumPages
	res.acquisition.Thumbnail = extracted.Thumbnail

	if err := writeText(filepath.Join(s.paths.RawTextDir, filename+".txt"), extracted.Text); err != nil {
		logger.Warn("persisting raw text of %s failed: %v", filename, err)
	}

	clean, err := s.normalizer.Normalize(ctx, extracted.Text)
	if err != nil {
		logger.Warn("normalization of %s failed, indexing raw text: %v", filename, err)
		clean = extracted.Text
	}
	if err := writeText(filepath.Join(s.paths.CleanTextDir, filename+".txt"), clean); err != nil {
		logger.Warn("persisting clean text of %s failed: %v", filename, err)
	}

	res.stats = indexer.Index(clean, extracted.Text)
	logger.Debug("%s: %d page(s), %d token(s) after normalization",
		filename, res.acquisition.NumPages, res.stats.TotalTokensAfter)
	return res
}

// merge applies every file result to a freshly loaded index and saves
// once. Merging is single-threaded so partial updates stay field-wise
// consistent.
func (s *IngestService) merge(ctx context.Context, results []fileResult) (*driving.IngestReport, error) {
	idx, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading metadata: %w", err)
	}

	report := &driving.IngestReport{}
	for _, res := range results {
		rec, existed := idx.Upsert(res.filename)
		rec.MergeAcquisition(res.acquisition)

		outcome := driving.FileOutcome{
			Filename: res.filename,
			Type:     res.acquisition.Type,
		}
		switch {
		case res.failure != nil:
			outcome.Status = driving.StatusFailed
			outcome.Err = res.failure.Error()
			report.Failed++
		case existed:
			rec.MergeIndex(res.stats)
			outcome.Status = driving.StatusUpdated
			outcome.TokensAfter = res.stats.TotalTokensAfter
			report.Updated++
		default:
			rec.MergeIndex(res.stats)
			outcome.Status = driving.StatusNew
			outcome.TokensAfter = res.stats.TotalTokensAfter
			report.New++
		}
		report.Files = append(report.Files, outcome)
	}

	if err := s.store.Save(ctx, idx); err != nil {
		return nil, fmt.Errorf("saving metadata: %w", err)
	}
	logger.Info("ingestion done: %d new, %d updated, %d failed",
		report.New, report.Updated, report.Failed)
	return report, nil
}

// samePath reports whether two paths name the same file.
func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}

// copyFile copies src to dst, creating parent directories. An existing
// dst is overwritten, which is how re-ingesting a filename refreshes
// its corpus copy.
func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// writeText persists derived text, creating parent directories.
func writeText(path, text string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(text), 0o644)
}
