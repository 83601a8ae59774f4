package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marais-labs/corpus-cli/internal/core/domain"
)

func TestSaveLoadIsolation(t *testing.T) {
	store := NewMetadataStore()
	ctx := context.Background()

	idx := domain.DocumentIndex{"a.txt": {Filename: "a.txt", Type: "txt"}}
	require.NoError(t, store.Save(ctx, idx))

	// Mutating what we saved must not reach the store.
	idx["a.txt"].Type = "changed"

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "txt", loaded["a.txt"].Type)

	// Mutating what we loaded must not reach the store either.
	loaded["a.txt"].Type = "changed"

	again, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "txt", again["a.txt"].Type)
}

func TestLoadEmpty(t *testing.T) {
	idx, err := NewMetadataStore().Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, idx)
	assert.NotNil(t, idx)
}
