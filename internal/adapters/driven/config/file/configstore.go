package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config holds every tunable of the tool. Zero values are filled with
// defaults on load, so a partial or absent config file still yields a
// usable configuration.
type Config struct {
	// DataDir is the root under which corpus/, processed/ and the
	// metadata store live. Defaults to ~/.corpus.
	DataDir string `toml:"data_dir"`

	// Workers bounds concurrent per-file pipeline runs during ingestion.
	Workers int `toml:"workers"`

	// Languages lists the ISO 639-1 codes the normaliser may detect.
	Languages []string `toml:"languages"`

	// DefaultLanguage is used when detection is inconclusive.
	DefaultLanguage string `toml:"default_language"`

	// Acronyms extends the built-in list of short tokens kept through
	// normalization.
	Acronyms []string `toml:"acronyms"`

	// Normalizer selects the text cleaning strategy: "model" or "rules".
	Normalizer string `toml:"normalizer"`

	// OCREnabled gates OCR over embedded images where an engine is
	// compiled in.
	OCREnabled bool `toml:"ocr_enabled"`
}

// Defaults returns the configuration used when no file exists.
func Defaults() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Config{
		DataDir:         filepath.Join(home, ".corpus"),
		Workers:         4,
		Languages:       []string{"en", "fr", "es", "de", "it"},
		DefaultLanguage: "en",
		Normalizer:      "model",
		OCREnabled:      true,
	}
}

// DefaultPath returns the standard config file location,
// ~/.corpus/config.toml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".corpus", "config.toml")
}

// Load reads the config file at path, filling missing fields with
// defaults. A missing file yields the defaults without error; a
// malformed file is an error so a typo never silently reverts settings.
func Load(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}

	if cfg.DataDir == "" {
		cfg.DataDir = Defaults().DataDir
	}
	if cfg.Workers <= 0 {
		cfg.Workers = Defaults().Workers
	}
	if len(cfg.Languages) == 0 {
		cfg.Languages = Defaults().Languages
	}
	if cfg.DefaultLanguage == "" {
		cfg.DefaultLanguage = Defaults().DefaultLanguage
	}
	if cfg.Normalizer == "" {
		cfg.Normalizer = Defaults().Normalizer
	}
	return cfg, nil
}

// Save writes the config as TOML, creating the directory if needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}

// CorpusDir is where ingested source files are kept, partitioned by
// document type.
func (c Config) CorpusDir() string {
	return filepath.Join(c.DataDir, "corpus")
}

// RawTextDir holds extracted text before normalization.
func (c Config) RawTextDir() string {
	return filepath.Join(c.DataDir, "processed", "raw_texts")
}

// CleanTextDir holds normalized text.
func (c Config) CleanTextDir() string {
	return filepath.Join(c.DataDir, "processed", "clean_texts")
}

// MetadataPath locates the JSON metadata store.
func (c Config) MetadataPath() string {
	return filepath.Join(c.DataDir, "metadata.json")
}

// ImportDir is the scratch area archives are expanded into before
// their members are ingested.
func (c Config) ImportDir() string {
	return filepath.Join(c.DataDir, "import")
}
