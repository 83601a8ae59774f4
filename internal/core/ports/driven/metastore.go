package driven

import (
	"context"

	"github.com/marais-labs/corpus-cli/internal/core/domain"
)

// MetadataStore persists the filename-keyed document index as a single
// durable file, rewritten wholesale on every write.
//
// The store has deliberate load/mutate/persist semantics with no implicit
// caching: every operation starts from a fresh Load, and concurrent
// readers therefore never observe partial writes, only possibly stale
// snapshots while a batch is in flight.
type MetadataStore interface {
	// Load reads the whole index. An absent or malformed store file
	// yields an empty index, never an error, so read operations degrade
	// to empty results and write operations start from a fresh store.
	Load(ctx context.Context) (domain.DocumentIndex, error)

	// Save serialises the whole index, replacing any previous contents.
	Save(ctx context.Context, idx domain.DocumentIndex) error

	// Path returns the location of the store file.
	Path() string
}
