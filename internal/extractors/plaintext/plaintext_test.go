package plaintext

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("  first line \n\n\tsecond line\n"), 0o644))

	res, err := New().Extract(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "first line\nsecond line", res.Text)
	assert.Equal(t, 1, res.NumPages)
	assert.Empty(t, res.Thumbnail)
}

func TestExtractRepairsInvalidUTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "latin1.txt")
	require.NoError(t, os.WriteFile(path, []byte{'c', 'a', 'f', 0xe9, '\n'}, 0o644))

	res, err := New().Extract(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "caf", res.Text)
}

func TestExtractMissingFile(t *testing.T) {
	_, err := New().Extract(context.Background(), filepath.Join(t.TempDir(), "absent.txt"))
	assert.Error(t, err)
}
