package badger

import (
	"context"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/Ramsai26/new-project-personal-brain/core"
	"github.com/Ramsai26/new-project-personal-brain/storage"
)

// EntryRepository implements storage.EntryRepository for BadgerDB.
type EntryRepository struct {
	backend     *Backend
	notesSeq    *badger.Sequence
	journalsSeq *badger.Sequence
}

var _ storage.EntryRepository = (*EntryRepository)(nil)

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(backend *Backend) (storage.EntryRepository, error) {
	notesSeq, err := backend.GetSequence(makeEntrySeqName(core.CollectionNotes))
	if err != nil {
		return nil, err
	}
	journalsSeq, err := backend.GetSequence(makeEntrySeqName(core.CollectionJournals))
	if err != nil {
		notesSeq.Release()
		return nil, err
	}

	return &EntryRepository{
		backend:     backend,
		notesSeq:    notesSeq,
		journalsSeq: journalsSeq,
	}, nil
}

// Close releases the id sequences.
func (r *EntryRepository) Close() error {
	err := r.notesSeq.Release()
	if releaseErr := r.journalsSeq.Release(); err == nil {
		err = releaseErr
	}
	return err
}

// NextSequence returns the next positional number for the collection.
func (r *EntryRepository) NextSequence(ctx context.Context, col core.Collection) (uint64, error) {
	if err := core.ValidateCollection(col); err != nil {
		return 0, err
	}
	seq := r.notesSeq
	if col == core.CollectionJournals {
		seq = r.journalsSeq
	}
	return seq.Next()
}

// UpsertEntries inserts or overwrites entries in the given collection.
func (r *EntryRepository) UpsertEntries(ctx context.Context, col core.Collection, entries ...*core.IndexedEntry) error {
	if err := core.ValidateCollection(col); err != nil {
		return err
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, entry := range entries {
			if entry.ID == "" {
				return storage.ErrEmptyID
			}
			key := makeEntryKey(col, entry.ID)

			// Read the old entry for timestamp and index bookkeeping
			old, err := readEntry(tx, key)
			if err != nil {
				return err
			}

			now := time.Now().UTC()
			if old != nil {
				entry.InsertedAt = old.InsertedAt
			} else if entry.InsertedAt.IsZero() {
				entry.InsertedAt = now
			}
			entry.UpdatedAt = now

			value, err := storage.MarshalEntry(entry)
			if err != nil {
				return err
			}
			if err := tx.Set(key, value); err != nil {
				return err
			}

			if col != core.CollectionJournals {
				continue
			}

			// Maintain the journal date index
			if old != nil && old.Metadata.JournalDate != entry.Metadata.JournalDate && old.Metadata.JournalDate != "" {
				staleKey := makeJournalDateKey(old.Metadata.JournalDate, old.ID)
				if err := tx.Delete(staleKey); err != nil {
					return err
				}
			}
			if entry.Metadata.JournalDate != "" {
				dateKey := makeJournalDateKey(entry.Metadata.JournalDate, entry.ID)
				if err := tx.Set(dateKey, storage.MarshalEntryID(entry.ID)); err != nil {
					return err
				}
			}
		}
		return tx.Commit()
	}, true)
}

// GetEntry retrieves a single entry by id.
func (r *EntryRepository) GetEntry(ctx context.Context, col core.Collection, id string) (*core.IndexedEntry, error) {
	if err := core.ValidateCollection(col); err != nil {
		return nil, err
	}

	var result *core.IndexedEntry
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readEntry(tx, makeEntryKey(col, id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// DeleteEntries removes entries by id, along with their date index keys.
func (r *EntryRepository) DeleteEntries(ctx context.Context, col core.Collection, ids ...string) error {
	if err := core.ValidateCollection(col); err != nil {
		return err
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeEntryKey(col, id)

			entry, err := readEntry(tx, key)
			if err != nil {
				return err
			}
			if entry == nil {
				return storage.ErrNotFound
			}

			if col == core.CollectionJournals && entry.Metadata.JournalDate != "" {
				dateKey := makeJournalDateKey(entry.Metadata.JournalDate, entry.ID)
				if err := tx.Delete(dateKey); err != nil {
					return err
				}
			}

			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// FindSimilar scans the collection for the entries nearest to vector.
func (r *EntryRepository) FindSimilar(ctx context.Context, col core.Collection, vector []float32, limit int) ([]*storage.Match, error) {
	if err := core.ValidateCollection(col); err != nil {
		return nil, err
	}
	if len(vector) == 0 || limit <= 0 {
		return nil, storage.ErrInvalidQuery
	}

	var matches []*storage.Match
	err := r.scanCollection(col, func(entry *core.IndexedEntry) bool {
		if len(entry.Vector) == 0 {
			return true
		}
		distance, ok := cosineDistance(vector, entry.Vector)
		if !ok {
			return true
		}
		matches = append(matches, &storage.Match{
			Entry:    entry,
			Distance: distance,
		})
		return true
	})
	if err != nil {
		return nil, err
	}

	// Sort by distance ascending
	slices.SortFunc(matches, func(a, b *storage.Match) int {
		if a.Distance < b.Distance {
			return -1
		}
		if a.Distance > b.Distance {
			return 1
		}
		return 0
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}

	return matches, nil
}

// FindByJournalDate retrieves journal entries for an exact date.
func (r *EntryRepository) FindByJournalDate(ctx context.Context, date string, limit int) ([]*core.IndexedEntry, error) {
	if err := core.ValidateJournalDate(date); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, storage.ErrInvalidQuery
	}

	var results []*core.IndexedEntry
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makePartialJournalDateKey(date)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid() && len(results) < limit; iter.Next() {
			var entryID string
			if err := iter.Item().Value(func(val []byte) error {
				entryID = storage.UnmarshalEntryID(val)
				return nil
			}); err != nil {
				return err
			}

			entry, err := readEntry(tx, makeEntryKey(core.CollectionJournals, entryID))
			if err != nil {
				return err
			}
			if entry != nil {
				results = append(results, entry)
			}
		}
		return nil
	}, false)

	return results, err
}

// FindByTag retrieves entries whose tag list contains tag as a substring.
func (r *EntryRepository) FindByTag(ctx context.Context, col core.Collection, tag string, limit int) ([]*core.IndexedEntry, error) {
	if err := core.ValidateCollection(col); err != nil {
		return nil, err
	}
	if tag == "" || limit <= 0 {
		return nil, storage.ErrInvalidQuery
	}

	var results []*core.IndexedEntry
	err := r.scanCollection(col, func(entry *core.IndexedEntry) bool {
		if strings.Contains(entry.Metadata.Tags, tag) {
			results = append(results, entry)
		}
		return len(results) < limit
	})
	return results, err
}

// GetAllEntries retrieves every entry in the collection, in store order.
func (r *EntryRepository) GetAllEntries(ctx context.Context, col core.Collection) ([]*core.IndexedEntry, error) {
	if err := core.ValidateCollection(col); err != nil {
		return nil, err
	}

	var entries []*core.IndexedEntry
	err := r.scanCollection(col, func(entry *core.IndexedEntry) bool {
		entries = append(entries, entry)
		return true
	})
	return entries, err
}

// CountEntries returns the number of entries in the collection.
func (r *EntryRepository) CountEntries(ctx context.Context, col core.Collection) (int, error) {
	if err := core.ValidateCollection(col); err != nil {
		return 0, err
	}

	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeCollectionPrefix(col)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	return count, err
}

// scanCollection iterates all entries of a collection, calling visit for
// each. Iteration stops when visit returns false.
func (r *EntryRepository) scanCollection(col core.Collection, visit func(*core.IndexedEntry) bool) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeCollectionPrefix(col)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var entry *core.IndexedEntry
			err := iter.Item().Value(func(val []byte) error {
				var err error
				entry, err = storage.UnmarshalEntry(val)
				return err
			})
			if err != nil {
				return err
			}
			if entry == nil {
				continue
			}
			if !visit(entry) {
				return nil
			}
		}
		return nil
	}, false)
}

// readEntry reads an entry from the transaction. Returns nil, nil when the
// key doesn't exist.
func readEntry(tx *badger.Txn, key []byte) (*core.IndexedEntry, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var entry *core.IndexedEntry
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		entry, unmarshalErr = storage.UnmarshalEntry(val)
		return unmarshalErr
	})
	return entry, err
}

// cosineDistance returns 1 - cosine similarity of two vectors.
// Reports false when either vector has zero magnitude.
func cosineDistance(a, b []float32) (float64, bool) {
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}

	var dot, magA, magB float64
	for i := 0; i < minLen; i++ {
		dot += float64(a[i]) * float64(b[i])
		magA += float64(a[i]) * float64(a[i])
		magB += float64(b[i]) * float64(b[i])
	}
	if magA == 0 || magB == 0 {
		return 0, false
	}
	return 1 - dot/(math.Sqrt(magA)*math.Sqrt(magB)), true
}
