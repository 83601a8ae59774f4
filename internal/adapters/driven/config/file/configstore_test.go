package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, "en", cfg.DefaultLanguage)
	assert.Equal(t, "model", cfg.Normalizer)
	assert.True(t, cfg.OCREnabled)
	assert.Contains(t, cfg.Languages, "fr")
}

func TestLoadPartialFileFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("workers = 8\ndefault_language = \"fr\"\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, "fr", cfg.DefaultLanguage)
	assert.Equal(t, "model", cfg.Normalizer)
	assert.NotEmpty(t, cfg.Languages)
}

func TestLoadMalformedFileErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("workers = = 8"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus", "config.toml")

	cfg := Defaults()
	cfg.DataDir = "/srv/corpus"
	cfg.Workers = 2
	cfg.Acronyms = []string{"gdp"}
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestDerivedPaths(t *testing.T) {
	cfg := Config{DataDir: "/data"}

	assert.Equal(t, filepath.Join("/data", "corpus"), cfg.CorpusDir())
	assert.Equal(t, filepath.Join("/data", "processed", "raw_texts"), cfg.RawTextDir())
	assert.Equal(t, filepath.Join("/data", "processed", "clean_texts"), cfg.CleanTextDir())
	assert.Equal(t, filepath.Join("/data", "metadata.json"), cfg.MetadataPath())
	assert.Equal(t, filepath.Join("/data", "import"), cfg.ImportDir())
}
