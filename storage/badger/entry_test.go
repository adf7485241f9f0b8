package badger

import (
	"context"
	"errors"
	"testing"

	"github.com/Ramsai26/new-project-personal-brain/core"
	"github.com/Ramsai26/new-project-personal-brain/storage"
)

func TestEntryBasics(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { repo.Close(); backend.Close() }()

	ctx := context.Background()

	entry := &core.IndexedEntry{
		ID:      "projects_golang.md",
		Content: "Go project notes",
		Vector:  []float32{1, 0, 0},
		Metadata: core.EntryMetadata{
			Title: "golang",
			Path:  "projects/golang.md",
		},
	}

	if err := repo.UpsertEntries(ctx, core.CollectionNotes, entry); err != nil {
		t.Fatalf("Failed to upsert entry: %v", err)
	}
	if entry.InsertedAt.IsZero() || entry.UpdatedAt.IsZero() {
		t.Fatal("Expected timestamps to be set on insert")
	}

	retrieved, err := repo.GetEntry(ctx, core.CollectionNotes, "projects_golang.md")
	if err != nil {
		t.Fatalf("Failed to get entry: %v", err)
	}
	if retrieved.Content != "Go project notes" {
		t.Fatalf("Expected 'Go project notes', got '%s'", retrieved.Content)
	}

	// Same id in the other collection is a different entry
	_, err = repo.GetEntry(ctx, core.CollectionJournals, "projects_golang.md")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound in journals collection, got %v", err)
	}
}

func TestEntryUpsertOverwrites(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { repo.Close(); backend.Close() }()

	ctx := context.Background()

	first := &core.IndexedEntry{
		ID:      "inbox.md",
		Content: "original",
		Vector:  []float32{1, 0, 0},
	}
	if err := repo.UpsertEntries(ctx, core.CollectionNotes, first); err != nil {
		t.Fatalf("Failed to upsert entry: %v", err)
	}

	second := &core.IndexedEntry{
		ID:      "inbox.md",
		Content: "rewritten",
		Vector:  []float32{0, 1, 0},
	}
	if err := repo.UpsertEntries(ctx, core.CollectionNotes, second); err != nil {
		t.Fatalf("Failed to re-upsert entry: %v", err)
	}

	retrieved, err := repo.GetEntry(ctx, core.CollectionNotes, "inbox.md")
	if err != nil {
		t.Fatalf("Failed to get entry: %v", err)
	}
	if retrieved.Content != "rewritten" {
		t.Fatalf("Expected overwrite, got '%s'", retrieved.Content)
	}
	if !retrieved.InsertedAt.Equal(first.InsertedAt) {
		t.Fatal("Expected InsertedAt to survive overwrite")
	}

	count, err := repo.CountEntries(ctx, core.CollectionNotes)
	if err != nil {
		t.Fatalf("Failed to count entries: %v", err)
	}
	if count != 1 {
		t.Fatalf("Expected 1 entry after overwrite, got %d", count)
	}
}

func TestEntryUpsertEmptyID(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { repo.Close(); backend.Close() }()

	err = repo.UpsertEntries(context.Background(), core.CollectionNotes, &core.IndexedEntry{Content: "orphan"})
	if !errors.Is(err, storage.ErrEmptyID) {
		t.Fatalf("Expected ErrEmptyID, got %v", err)
	}
}

func TestFindSimilarOrdering(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { repo.Close(); backend.Close() }()

	ctx := context.Background()

	entries := []*core.IndexedEntry{
		{ID: "exact.md", Content: "exact match", Vector: []float32{1, 0, 0}},
		{ID: "close.md", Content: "close match", Vector: []float32{0.9, 0.1, 0}},
		{ID: "far.md", Content: "far match", Vector: []float32{0, 1, 0}},
		{ID: "unembedded.md", Content: "no vector yet"},
	}
	if err := repo.UpsertEntries(ctx, core.CollectionNotes, entries...); err != nil {
		t.Fatalf("Failed to upsert entries: %v", err)
	}

	matches, err := repo.FindSimilar(ctx, core.CollectionNotes, []float32{1, 0, 0}, 10)
	if err != nil {
		t.Fatalf("Failed to find similar: %v", err)
	}

	if len(matches) != 3 {
		t.Fatalf("Expected 3 matches (vectorless entry skipped), got %d", len(matches))
	}
	if matches[0].Entry.ID != "exact.md" {
		t.Fatalf("Expected exact.md first, got %s", matches[0].Entry.ID)
	}
	if matches[0].Distance > 1e-6 {
		t.Fatalf("Expected near-zero distance for exact match, got %f", matches[0].Distance)
	}
	for i := 1; i < len(matches); i++ {
		if matches[i].Distance < matches[i-1].Distance {
			t.Fatal("Expected distances in ascending order")
		}
	}

	// Limit truncates after sorting
	top, err := repo.FindSimilar(ctx, core.CollectionNotes, []float32{1, 0, 0}, 1)
	if err != nil {
		t.Fatalf("Failed to find similar with limit: %v", err)
	}
	if len(top) != 1 || top[0].Entry.ID != "exact.md" {
		t.Fatalf("Expected only best match, got %v", top)
	}
}

func TestFindSimilarScopedToCollection(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { repo.Close(); backend.Close() }()

	ctx := context.Background()

	note := &core.IndexedEntry{ID: "a.md", Content: "note", Vector: []float32{1, 0}}
	journal := &core.IndexedEntry{ID: "journals_2025_03_15.md", Content: "journal", Vector: []float32{1, 0}}
	if err := repo.UpsertEntries(ctx, core.CollectionNotes, note); err != nil {
		t.Fatalf("Failed to upsert note: %v", err)
	}
	if err := repo.UpsertEntries(ctx, core.CollectionJournals, journal); err != nil {
		t.Fatalf("Failed to upsert journal: %v", err)
	}

	matches, err := repo.FindSimilar(ctx, core.CollectionJournals, []float32{1, 0}, 10)
	if err != nil {
		t.Fatalf("Failed to find similar: %v", err)
	}
	if len(matches) != 1 || matches[0].Entry.ID != "journals_2025_03_15.md" {
		t.Fatalf("Expected only the journal entry, got %d matches", len(matches))
	}
}

func TestFindByJournalDate(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { repo.Close(); backend.Close() }()

	ctx := context.Background()

	entries := []*core.IndexedEntry{
		{ID: "journals_2025_03_15.md", Content: "ides of march", Metadata: core.EntryMetadata{Journal: true, JournalDate: "2025-03-15"}},
		{ID: "journals_2025_03_16.md", Content: "next day", Metadata: core.EntryMetadata{Journal: true, JournalDate: "2025-03-16"}},
	}
	if err := repo.UpsertEntries(ctx, core.CollectionJournals, entries...); err != nil {
		t.Fatalf("Failed to upsert journals: %v", err)
	}

	results, err := repo.FindByJournalDate(ctx, "2025-03-15", 10)
	if err != nil {
		t.Fatalf("Failed to find by date: %v", err)
	}
	if len(results) != 1 || results[0].ID != "journals_2025_03_15.md" {
		t.Fatalf("Expected one entry for 2025-03-15, got %d", len(results))
	}

	// No entries for an unknown date
	results, err = repo.FindByJournalDate(ctx, "2024-01-01", 10)
	if err != nil {
		t.Fatalf("Failed to find by date: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("Expected no entries, got %d", len(results))
	}

	// Malformed dates are rejected
	if _, err := repo.FindByJournalDate(ctx, "March 15th", 10); !errors.Is(err, core.ErrInvalidJournalDate) {
		t.Fatalf("Expected ErrInvalidJournalDate, got %v", err)
	}
}

func TestFindByJournalDateAfterDateChange(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { repo.Close(); backend.Close() }()

	ctx := context.Background()

	entry := &core.IndexedEntry{
		ID:       "journals_2025_03_15.md",
		Content:  "misdated",
		Metadata: core.EntryMetadata{Journal: true, JournalDate: "2025-03-14"},
	}
	if err := repo.UpsertEntries(ctx, core.CollectionJournals, entry); err != nil {
		t.Fatalf("Failed to upsert journal: %v", err)
	}

	entry.Metadata.JournalDate = "2025-03-15"
	if err := repo.UpsertEntries(ctx, core.CollectionJournals, entry); err != nil {
		t.Fatalf("Failed to re-upsert journal: %v", err)
	}

	stale, err := repo.FindByJournalDate(ctx, "2025-03-14", 10)
	if err != nil {
		t.Fatalf("Failed to find by stale date: %v", err)
	}
	if len(stale) != 0 {
		t.Fatalf("Expected stale date index to be cleaned up, got %d entries", len(stale))
	}

	current, err := repo.FindByJournalDate(ctx, "2025-03-15", 10)
	if err != nil {
		t.Fatalf("Failed to find by new date: %v", err)
	}
	if len(current) != 1 {
		t.Fatalf("Expected entry under new date, got %d", len(current))
	}
}

func TestFindByTag(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { repo.Close(); backend.Close() }()

	ctx := context.Background()

	entries := []*core.IndexedEntry{
		{ID: "a.md", Content: "go notes", Metadata: core.EntryMetadata{Tags: "go,projects"}},
		{ID: "b.md", Content: "cooking", Metadata: core.EntryMetadata{Tags: "recipes"}},
		{ID: "c.md", Content: "untagged"},
	}
	if err := repo.UpsertEntries(ctx, core.CollectionNotes, entries...); err != nil {
		t.Fatalf("Failed to upsert entries: %v", err)
	}

	results, err := repo.FindByTag(ctx, core.CollectionNotes, "projects", 10)
	if err != nil {
		t.Fatalf("Failed to find by tag: %v", err)
	}
	if len(results) != 1 || results[0].ID != "a.md" {
		t.Fatalf("Expected a.md for tag 'projects', got %d results", len(results))
	}

	if _, err := repo.FindByTag(ctx, core.CollectionNotes, "", 10); !errors.Is(err, storage.ErrInvalidQuery) {
		t.Fatalf("Expected ErrInvalidQuery for empty tag, got %v", err)
	}
}

func TestDeleteEntries(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { repo.Close(); backend.Close() }()

	ctx := context.Background()

	entry := &core.IndexedEntry{
		ID:       "journals_2025_03_15.md",
		Content:  "doomed",
		Metadata: core.EntryMetadata{Journal: true, JournalDate: "2025-03-15"},
	}
	if err := repo.UpsertEntries(ctx, core.CollectionJournals, entry); err != nil {
		t.Fatalf("Failed to upsert journal: %v", err)
	}

	if err := repo.DeleteEntries(ctx, core.CollectionJournals, entry.ID); err != nil {
		t.Fatalf("Failed to delete entry: %v", err)
	}

	if _, err := repo.GetEntry(ctx, core.CollectionJournals, entry.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound after delete, got %v", err)
	}

	results, err := repo.FindByJournalDate(ctx, "2025-03-15", 10)
	if err != nil {
		t.Fatalf("Failed to find by date: %v", err)
	}
	if len(results) != 0 {
		t.Fatal("Expected date index key to be removed with the entry")
	}

	if err := repo.DeleteEntries(ctx, core.CollectionJournals, "missing.md"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound for missing entry, got %v", err)
	}
}

func TestNextSequence(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { repo.Close(); backend.Close() }()

	ctx := context.Background()

	first, err := repo.NextSequence(ctx, core.CollectionNotes)
	if err != nil {
		t.Fatalf("Failed to get sequence: %v", err)
	}
	second, err := repo.NextSequence(ctx, core.CollectionNotes)
	if err != nil {
		t.Fatalf("Failed to get sequence: %v", err)
	}
	if second <= first {
		t.Fatalf("Expected monotonic sequence, got %d then %d", first, second)
	}

	// Journals run their own counter
	journalFirst, err := repo.NextSequence(ctx, core.CollectionJournals)
	if err != nil {
		t.Fatalf("Failed to get journal sequence: %v", err)
	}
	if journalFirst != first {
		t.Fatalf("Expected independent journal sequence starting at %d, got %d", first, journalFirst)
	}
}
