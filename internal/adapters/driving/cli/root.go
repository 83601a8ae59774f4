// Package cli implements the corpus command line interface on cobra.
// Commands talk to the core through the driving ports; the concrete
// services are wired in once before the first command runs.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marais-labs/corpus-cli/cgo/tesseract"
	"github.com/marais-labs/corpus-cli/internal/adapters/driven/config/file"
	"github.com/marais-labs/corpus-cli/internal/adapters/driven/storage/jsonfile"
	"github.com/marais-labs/corpus-cli/internal/core/ports/driven"
	"github.com/marais-labs/corpus-cli/internal/core/ports/driving"
	"github.com/marais-labs/corpus-cli/internal/core/services"
	"github.com/marais-labs/corpus-cli/internal/extractors"
	"github.com/marais-labs/corpus-cli/internal/extractors/archive"
	"github.com/marais-labs/corpus-cli/internal/extractors/docx"
	"github.com/marais-labs/corpus-cli/internal/extractors/html"
	"github.com/marais-labs/corpus-cli/internal/extractors/pdf"
	"github.com/marais-labs/corpus-cli/internal/extractors/plaintext"
	"github.com/marais-labs/corpus-cli/internal/logger"
	"github.com/marais-labs/corpus-cli/internal/textnorm"
)

// version is set from main at startup.
var version = "dev"

// Services used by the commands. Tests replace these with mocks.
var (
	ingestService       driving.IngestService
	searchService       driving.SearchService
	autocompleteService driving.AutocompleteService
	documentService     driving.DocumentService
	statsService        driving.StatsService
)

var (
	verboseFlag    bool
	configPathFlag string
)

var rootCmd = &cobra.Command{
	Use:   "corpus",
	Short: "Ingest, index and search a document corpus",
	Long: `corpus builds a searchable index over heterogeneous documents.
Files are copied into a type-partitioned corpus, their text extracted,
normalized and indexed into token and bigram frequency tables stored
as a single JSON metadata file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(verboseFlag)
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}
		return wireServices()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPathFlag, "config", "", "config file path (default ~/.corpus/config.toml)")
}

// SetVersion records the build version shown by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// wireServices builds the adapter stack and the core services from the
// configuration. Tests preset the service variables, in which case
// wiring is skipped.
func wireServices() error {
	if ingestService != nil {
		return nil
	}

	path := configPathFlag
	if path == "" {
		path = file.DefaultPath()
	}
	cfg, err := file.Load(path)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	logger.Debug("data directory: %s", cfg.DataDir)

	var ocr driven.OCREngine
	if cfg.OCREnabled {
		engine, ocrErr := tesseract.New(nil)
		if ocrErr != nil {
			logger.Warn("OCR engine unavailable: %v", ocrErr)
		} else {
			ocr = engine
			if !engine.Available() {
				logger.Debug("built without cgo, OCR disabled")
			}
		}
	}

	registry := extractors.NewRegistry()
	registry.Register(plaintext.New())
	registry.Register(html.New())
	registry.Register(pdf.New(ocr))
	registry.Register(docx.New(ocr))

	normalizer := buildNormalizer(cfg)
	store := jsonfile.NewMetadataStore(cfg.MetadataPath())
	paths := services.Paths{
		CorpusDir:    cfg.CorpusDir(),
		RawTextDir:   cfg.RawTextDir(),
		CleanTextDir: cfg.CleanTextDir(),
		ImportDir:    cfg.ImportDir(),
	}

	ingestService = services.NewIngestService(paths, store, registry, archive.New(), normalizer, cfg.Workers)
	searchService = services.NewSearchService(store)
	autocompleteService = services.NewAutocompleteService(store)
	documentService = services.NewDocumentService(paths, store)
	statsService = services.NewStatsService(store)
	return nil
}

// buildNormalizer prefers the model-backed normalizer and falls back
// to the rule-based one when the language models cannot be loaded.
func buildNormalizer(cfg file.Config) driven.TextNormalizer {
	if cfg.Normalizer != "rules" {
		res, err := textnorm.NewResources(cfg.Languages, cfg.DefaultLanguage, cfg.Acronyms)
		if err == nil {
			logger.Debug("using model-backed normalizer (%v)", cfg.Languages)
			return textnorm.NewModelBackedNormalizer(res)
		}
		logger.Warn("language models unavailable, using rule-based normalizer: %v", err)
	}
	return textnorm.NewRuleBasedNormalizer(cfg.Languages, cfg.Acronyms)
}
