package storage

import (
	"context"

	"github.com/Ramsai26/new-project-personal-brain/core"
)

// Match is one nearest-neighbor hit from a similarity scan.
// Distance is 1 - cosine similarity: lower means more relevant.
type Match struct {
	Entry    *core.IndexedEntry
	Distance float64
}

// EntryRepository provides operations for managing indexed entries.
// Entries are partitioned by collection; an id is unique within its
// collection. Implementations must be thread-safe.
type EntryRepository interface {
	// UpsertEntries inserts or overwrites entries in the given collection.
	// Sets InsertedAt on first write, preserves it on overwrite, and always
	// refreshes UpdatedAt. Journal entries with a JournalDate are also
	// tracked in the date index; a changed date removes the stale index key.
	// Returns ErrEmptyID if any entry has no id.
	UpsertEntries(ctx context.Context, col core.Collection, entries ...*core.IndexedEntry) error

	// GetEntry retrieves a single entry by id.
	// Returns ErrNotFound if the entry doesn't exist.
	GetEntry(ctx context.Context, col core.Collection, id string) (*core.IndexedEntry, error)

	// DeleteEntries removes entries by id, along with their index keys.
	// Returns ErrNotFound if any entry doesn't exist.
	DeleteEntries(ctx context.Context, col core.Collection, ids ...string) error

	// FindSimilar scans the collection for the entries nearest to vector.
	// Returns up to limit matches ordered by distance ascending. Entries
	// without a stored vector are skipped.
	FindSimilar(ctx context.Context, col core.Collection, vector []float32, limit int) ([]*Match, error)

	// FindByJournalDate retrieves journal entries for an exact date
	// (YYYY-MM-DD), in store order, up to limit.
	FindByJournalDate(ctx context.Context, date string, limit int) ([]*core.IndexedEntry, error)

	// FindByTag retrieves entries whose tag list contains tag as a
	// substring, in store order, up to limit.
	FindByTag(ctx context.Context, col core.Collection, tag string, limit int) ([]*core.IndexedEntry, error)

	// GetAllEntries retrieves every entry in the collection, in store
	// order.
	GetAllEntries(ctx context.Context, col core.Collection) ([]*core.IndexedEntry, error)

	// CountEntries returns the number of entries in the collection.
	CountEntries(ctx context.Context, col core.Collection) (int, error)

	// NextSequence returns the next positional number for the collection,
	// used to assign fallback ids to entries without a path.
	NextSequence(ctx context.Context, col core.Collection) (uint64, error)

	// Close releases repository resources. The backend is closed separately.
	Close() error
}
