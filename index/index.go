package index

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Ramsai26/new-project-personal-brain/ai"
	"github.com/Ramsai26/new-project-personal-brain/core"
	"github.com/Ramsai26/new-project-personal-brain/storage"
)

// Index provides the write and read path over the entry store.
type Index struct {
	repository storage.EntryRepository
	embedder   ai.Embedder
	logger     *slog.Logger
}

// Option configures an Index.
type Option func(*Index) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(ix *Index) error {
		if logger == nil {
			logger = slog.Default()
		}
		ix.logger = logger
		return nil
	}
}

// New creates a new Index over the given repository and embedder.
func New(repository storage.EntryRepository, embedder ai.Embedder, opts ...Option) (*Index, error) {
	if repository == nil {
		return nil, ErrRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	ix := &Index{
		repository: repository,
		embedder:   embedder,
		logger:     slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(ix); err != nil {
			return nil, err
		}
	}

	return ix, nil
}

// UpsertNote embeds and stores one parsed note in its collection.
// Returns core.ErrEmptyContent for notes without clean content; such
// notes are never stored. An unchanged note (same content checksum as
// the stored entry) keeps its existing embedding.
func (ix *Index) UpsertNote(ctx context.Context, record *core.NoteRecord) (*core.IndexedEntry, error) {
	if err := core.ValidateNoteRecord(record); err != nil {
		return nil, err
	}
	if !record.Indexable() {
		return nil, core.ErrEmptyContent
	}

	col := record.Kind
	entry, err := ix.prepareEntry(ctx, record, col)
	if err != nil {
		return nil, err
	}

	if err := ix.repository.UpsertEntries(ctx, col, entry); err != nil {
		return nil, err
	}

	ix.logger.Debug("indexed note", "id", entry.ID, "collection", col.String())
	return entry, nil
}

// UpsertBatch embeds and stores many notes with one bulk write per
// collection. Notes without clean content are excluded and counted in
// skipped. Returns the ids of the stored entries.
func (ix *Index) UpsertBatch(ctx context.Context, records []*core.NoteRecord) ([]string, int, error) {
	batches := make(map[core.Collection][]*core.IndexedEntry)
	skipped := 0
	var ids []string

	for _, record := range records {
		if err := core.ValidateNoteRecord(record); err != nil {
			return nil, 0, err
		}
		if !record.Indexable() {
			skipped++
			continue
		}

		entry, err := ix.prepareEntry(ctx, record, record.Kind)
		if err != nil {
			return nil, 0, err
		}
		batches[record.Kind] = append(batches[record.Kind], entry)
		ids = append(ids, entry.ID)
	}

	for col, entries := range batches {
		if err := ix.repository.UpsertEntries(ctx, col, entries...); err != nil {
			return nil, 0, err
		}
		ix.logger.Debug("indexed batch", "collection", col.String(), "entries", len(entries))
	}

	return ids, skipped, nil
}

// prepareEntry derives the entry id, embeds the content and builds the
// stored entry. An unchanged note keeps its existing embedding.
func (ix *Index) prepareEntry(ctx context.Context, record *core.NoteRecord, col core.Collection) (*core.IndexedEntry, error) {
	id, err := ix.entryID(ctx, record, col)
	if err != nil {
		return nil, err
	}

	checksum := core.Checksum(record.CleanContent)

	// Reuse the stored embedding when content is unchanged
	var vector []float32
	existing, err := ix.repository.GetEntry(ctx, col, id)
	if err != nil && err != storage.ErrNotFound {
		return nil, err
	}
	if existing != nil && existing.Metadata.Checksum == checksum && len(existing.Vector) > 0 {
		vector = existing.Vector
	} else {
		vector, err = ix.embedder.EmbedText(ctx, record.CleanContent)
		if err != nil {
			ix.logger.Error("error embedding note", "id", id, "err", err)
			return nil, err
		}
	}

	return &core.IndexedEntry{
		ID:       id,
		Content:  record.CleanContent,
		Vector:   vector,
		Metadata: buildMetadata(record, checksum),
	}, nil
}

// Search embeds the query and fans out over the collections in scope.
// Results from all collections are merged and ordered by distance
// ascending, truncated to limit.
func (ix *Index) Search(ctx context.Context, query string, scope core.Scope, limit int) ([]*core.SearchResult, error) {
	if limit <= 0 {
		return nil, storage.ErrInvalidQuery
	}

	vector, err := ix.embedder.EmbedText(ctx, query)
	if err != nil {
		ix.logger.Error("error embedding query", "query", query, "err", err)
		return nil, err
	}

	cols := scope.Collections()
	perCol := make([][]*storage.Match, len(cols))

	g, gctx := errgroup.WithContext(ctx)
	for i, col := range cols {
		g.Go(func() error {
			matches, err := ix.repository.FindSimilar(gctx, col, vector, limit)
			if err != nil {
				return fmt.Errorf("search %s: %w", col, err)
			}
			perCol[i] = matches
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var merged []*storage.Match
	for _, matches := range perCol {
		merged = append(merged, matches...)
	}
	slices.SortFunc(merged, func(a, b *storage.Match) int {
		if a.Distance < b.Distance {
			return -1
		}
		if a.Distance > b.Distance {
			return 1
		}
		return 0
	})
	if len(merged) > limit {
		merged = merged[:limit]
	}

	results := make([]*core.SearchResult, 0, len(merged))
	for _, match := range merged {
		distance := match.Distance
		results = append(results, &core.SearchResult{
			ID:       match.Entry.ID,
			Content:  match.Entry.Content,
			Metadata: match.Entry.Metadata,
			Distance: &distance,
		})
	}
	return results, nil
}

// SearchByDate retrieves journal entries for an exact date (YYYY-MM-DD).
// Results are unranked: no embedding is involved, so Distance is nil.
func (ix *Index) SearchByDate(ctx context.Context, date string, limit int) ([]*core.SearchResult, error) {
	entries, err := ix.repository.FindByJournalDate(ctx, date, limit)
	if err != nil {
		return nil, err
	}
	return entriesToResults(entries), nil
}

// SearchByTag retrieves entries carrying the tag across the collections
// in scope. Results are unranked; Distance is nil.
func (ix *Index) SearchByTag(ctx context.Context, tag string, scope core.Scope, limit int) ([]*core.SearchResult, error) {
	if limit <= 0 {
		return nil, storage.ErrInvalidQuery
	}

	var results []*core.SearchResult
	for _, col := range scope.Collections() {
		entries, err := ix.repository.FindByTag(ctx, col, tag, limit-len(results))
		if err != nil {
			return nil, err
		}
		results = append(results, entriesToResults(entries)...)
		if len(results) >= limit {
			break
		}
	}
	return results, nil
}

// Count returns the number of entries across the collections in scope.
func (ix *Index) Count(ctx context.Context, scope core.Scope) (int, error) {
	total := 0
	for _, col := range scope.Collections() {
		count, err := ix.repository.CountEntries(ctx, col)
		if err != nil {
			return 0, err
		}
		total += count
	}
	return total, nil
}

// entryID derives the entry id from the note path, falling back to a
// positional id when the note has no path.
func (ix *Index) entryID(ctx context.Context, record *core.NoteRecord, col core.Collection) (string, error) {
	if id := core.EntryIDFromPath(record.Path); id != "" {
		return id, nil
	}
	n, err := ix.repository.NextSequence(ctx, col)
	if err != nil {
		return "", err
	}
	if col == core.CollectionJournals {
		return fmt.Sprintf("journal_%d", n), nil
	}
	return fmt.Sprintf("note_%d", n), nil
}

// buildMetadata maps note fields onto the filterable entry metadata.
func buildMetadata(record *core.NoteRecord, checksum string) core.EntryMetadata {
	meta := core.EntryMetadata{
		Title:       record.Title,
		Path:        record.Path,
		Journal:     record.Kind == core.CollectionJournals,
		Tags:        strings.Join(record.Tags, ","),
		JournalDate: record.JournalDate,
		Checksum:    checksum,
	}
	if !record.LastModified.IsZero() {
		meta.LastModified = record.LastModified.UTC().Format(time.RFC3339)
	}
	return meta
}

// entriesToResults converts stored entries to unranked search results.
func entriesToResults(entries []*core.IndexedEntry) []*core.SearchResult {
	results := make([]*core.SearchResult, 0, len(entries))
	for _, entry := range entries {
		results = append(results, &core.SearchResult{
			ID:       entry.ID,
			Content:  entry.Content,
			Metadata: entry.Metadata,
		})
	}
	return results
}
