package ingestion

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsai26/new-project-personal-brain/ai"
	"github.com/Ramsai26/new-project-personal-brain/ai/mock"
	"github.com/Ramsai26/new-project-personal-brain/core"
	"github.com/Ramsai26/new-project-personal-brain/index"
	"github.com/Ramsai26/new-project-personal-brain/storage/badger"
)

// staticSource serves a fixed snapshot, or fails.
type staticSource struct {
	snapshot *Snapshot
	err      error
}

func (s *staticSource) Snapshot(ctx context.Context) (*Snapshot, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.snapshot, nil
}

// memoryStatsWriter records every persisted snapshot.
type memoryStatsWriter struct {
	written []*core.RunStats
}

func (w *memoryStatsWriter) Write(stats *core.RunStats) error {
	w.written = append(w.written, stats)
	return nil
}

type testEnv struct {
	provider *mock.MockProvider
	index    *index.Index
	stats    *memoryStatsWriter
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})

	provider := mock.NewMockProvider().(*mock.MockProvider)
	ix, err := index.New(repo, provider.Embedder())
	require.NoError(t, err)

	return &testEnv{
		provider: provider,
		index:    ix,
		stats:    &memoryStatsWriter{},
	}
}

func newTestOrchestrator(t *testing.T, env *testEnv, source NoteSource, opts ...Option) *Orchestrator {
	t.Helper()

	opts = append([]Option{WithPoolSize(2), WithStatsWriter(env.stats)}, opts...)
	o, err := NewOrchestrator(source, env.index, env.provider, opts...)
	require.NoError(t, err)
	t.Cleanup(o.Release)

	return o
}

func TestNewOrchestrator(t *testing.T) {
	env := newTestEnv(t)
	source := &staticSource{snapshot: &Snapshot{}}

	t.Run("valid configuration", func(t *testing.T) {
		o, err := NewOrchestrator(source, env.index, env.provider)
		require.NoError(t, err)
		defer o.Release()
		assert.NotNil(t, o)
	})

	t.Run("nil source", func(t *testing.T) {
		_, err := NewOrchestrator(nil, env.index, env.provider)
		assert.Equal(t, ErrSourceRequired, err)
	})

	t.Run("nil index", func(t *testing.T) {
		_, err := NewOrchestrator(source, nil, env.provider)
		assert.Equal(t, ErrIndexRequired, err)
	})

	t.Run("nil provider", func(t *testing.T) {
		_, err := NewOrchestrator(source, env.index, nil)
		assert.Equal(t, ErrAIProviderRequired, err)
	})
}

func TestProcessAllSinglePage(t *testing.T) {
	env := newTestEnv(t)
	source := &staticSource{snapshot: &Snapshot{
		Pages: []*core.NoteRecord{
			{Title: "golang", Path: "pages/golang.md", CleanContent: "Go concurrency notes", Kind: core.CollectionNotes},
		},
	}}
	o := newTestOrchestrator(t, env, source)

	stats, err := o.ProcessAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, stats.PagesProcessed)
	assert.Equal(t, 1, stats.EnhancedCount)
	assert.Equal(t, 0, stats.JournalsProcessed)
	assert.Equal(t, 0, stats.Errors)
	assert.Equal(t, core.StatusCompleted, stats.Status)
	assert.False(t, stats.EndTime.IsZero())

	// The indexed content is the note model's output, not the raw page
	entry, err := env.index.Search(context.Background(), "enhanced: Go concurrency notes", core.ScopeNotes, 1)
	require.NoError(t, err)
	require.Len(t, entry, 1)
	assert.Equal(t, "enhanced: Go concurrency notes", entry[0].Content)

	// One snapshot persisted on success
	require.Len(t, env.stats.written, 1)
	assert.Equal(t, core.StatusCompleted, env.stats.written[0].Status)
}

func TestProcessAllEnhancementThreshold(t *testing.T) {
	env := newTestEnv(t)
	long := strings.Repeat("x", defaultEnhanceThreshold)
	source := &staticSource{snapshot: &Snapshot{
		Pages: []*core.NoteRecord{
			{Title: "short", Path: "pages/short.md", CleanContent: "short note", Kind: core.CollectionNotes},
			{Title: "long", Path: "pages/long.md", CleanContent: long, Kind: core.CollectionNotes},
		},
	}}
	o := newTestOrchestrator(t, env, source)

	stats, err := o.ProcessAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, stats.PagesProcessed)
	assert.Equal(t, 1, stats.EnhancedCount, "content at the threshold is indexed verbatim")

	enhanced := env.provider.GetMockGenerator().NoteContents()
	require.Len(t, enhanced, 1)
	assert.Equal(t, "short note", enhanced[0])
}

func TestProcessAllConcurrentWorkers(t *testing.T) {
	env := newTestEnv(t)

	const pages = 64
	snapshot := &Snapshot{}
	for i := 0; i < pages; i++ {
		snapshot.Pages = append(snapshot.Pages, &core.NoteRecord{
			Title:        fmt.Sprintf("page %d", i),
			Path:         fmt.Sprintf("pages/page_%d.md", i),
			CleanContent: fmt.Sprintf("content of page %d", i),
			Kind:         core.CollectionNotes,
		})
	}
	source := &staticSource{snapshot: snapshot}
	o := newTestOrchestrator(t, env, source, WithPoolSize(8))

	stats, err := o.ProcessAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, pages, stats.PagesProcessed)
	assert.Equal(t, pages, stats.EnhancedCount)
	assert.Equal(t, 0, stats.Errors)

	assert.Len(t, env.provider.GetMockGenerator().NoteContents(), pages)

	count, err := env.index.Count(context.Background(), core.ScopeNotes)
	require.NoError(t, err)
	assert.Equal(t, pages, count)
}

func TestProcessAllJournalsVerbatim(t *testing.T) {
	env := newTestEnv(t)
	source := &staticSource{snapshot: &Snapshot{
		Journals: []*core.NoteRecord{
			{Title: "2025-03-15", Path: "journals/2025_03_15.md", CleanContent: "short journal entry", Kind: core.CollectionJournals, JournalDate: "2025-03-15"},
		},
	}}
	o := newTestOrchestrator(t, env, source)

	stats, err := o.ProcessAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, stats.JournalsProcessed)
	assert.Equal(t, 0, stats.EnhancedCount)
	assert.Empty(t, env.provider.GetMockGenerator().NoteContents(), "journals never reach the note model")

	results, err := env.index.SearchByDate(context.Background(), "2025-03-15", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "short journal entry", results[0].Content)
}

func TestProcessAllEmptyPagesSkipped(t *testing.T) {
	env := newTestEnv(t)
	source := &staticSource{snapshot: &Snapshot{
		Pages: []*core.NoteRecord{
			{Title: "empty", Path: "pages/empty.md", Kind: core.CollectionNotes},
			{Title: "real", Path: "pages/real.md", CleanContent: "content", Kind: core.CollectionNotes},
		},
	}}
	o := newTestOrchestrator(t, env, source)

	stats, err := o.ProcessAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, stats.PagesProcessed, "empty pages count as processed")
	assert.Equal(t, 0, stats.Errors, "an empty page is a skip, not an error")

	count, err := env.index.Count(context.Background(), core.ScopeNotes)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "empty pages are never stored")
}

func TestProcessAllEnhancementFailureFallsBack(t *testing.T) {
	env := newTestEnv(t)
	env.provider.GetMockGenerator().ProcessNoteFunc = func(ctx context.Context, content string, task ai.NoteTask) (*ai.GenerateResult, error) {
		return nil, errors.New("model unavailable")
	}
	source := &staticSource{snapshot: &Snapshot{
		Pages: []*core.NoteRecord{
			{Title: "page", Path: "pages/page.md", CleanContent: "original content", Kind: core.CollectionNotes},
		},
	}}
	o := newTestOrchestrator(t, env, source)

	stats, err := o.ProcessAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, stats.PagesProcessed)
	assert.Equal(t, 0, stats.EnhancedCount)
	assert.Equal(t, 0, stats.Errors, "enhancement failure is a fallback, not a run error")

	results, err := env.index.Search(context.Background(), "original content", core.ScopeNotes, 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "original content", results[0].Content)
}

func TestProcessAllIndexFailureCounted(t *testing.T) {
	env := newTestEnv(t)
	embedFailure := errors.New("embedding service down")
	env.provider.GetMockEmbedder().EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, embedFailure
	}
	source := &staticSource{snapshot: &Snapshot{
		Pages: []*core.NoteRecord{
			{Title: "a", Path: "pages/a.md", CleanContent: "content a", Kind: core.CollectionNotes},
			{Title: "b", Path: "pages/b.md", CleanContent: "content b", Kind: core.CollectionNotes},
		},
	}}
	o := newTestOrchestrator(t, env, source)

	stats, err := o.ProcessAll(context.Background())
	require.NoError(t, err, "per-note failures never fail the run")

	assert.Equal(t, 2, stats.Errors)
	assert.Equal(t, 0, stats.PagesProcessed)
	assert.Equal(t, core.StatusCompleted, stats.Status)
}

func TestProcessAllSnapshotFailure(t *testing.T) {
	env := newTestEnv(t)
	source := &staticSource{err: errors.New("parser crashed")}
	o := newTestOrchestrator(t, env, source)

	stats, err := o.ProcessAll(context.Background())
	require.Error(t, err)

	assert.Equal(t, core.StatusFailed, stats.Status)
	assert.Contains(t, stats.Error, "parser crashed")
	assert.False(t, stats.EndTime.IsZero())

	// Failed runs persist a snapshot too
	require.Len(t, env.stats.written, 1)
	assert.Equal(t, core.StatusFailed, env.stats.written[0].Status)
}

func TestExportSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "export.json")

	export := `{
		"pages": [
			{"title": "golang", "path": "pages/golang.md", "clean_content": "Go notes"}
		],
		"journals": [
			{"title": "2025-03-15", "path": "journals/2025_03_15.md", "clean_content": "journal entry"},
			{"title": "odd name", "path": "journals/weekly_review.md", "clean_content": "no derivable date"}
		]
	}`
	require.NoError(t, os.WriteFile(path, []byte(export), 0644))

	snapshot, err := NewExportSource(path).Snapshot(context.Background())
	require.NoError(t, err)

	require.Len(t, snapshot.Pages, 1)
	assert.Equal(t, core.CollectionNotes, snapshot.Pages[0].Kind)

	require.Len(t, snapshot.Journals, 2)
	assert.Equal(t, core.CollectionJournals, snapshot.Journals[0].Kind)
	assert.Equal(t, "2025-03-15", snapshot.Journals[0].JournalDate, "date derived from file name")
	assert.Empty(t, snapshot.Journals[1].JournalDate, "underivable names stay dateless")

	t.Run("missing file", func(t *testing.T) {
		_, err := NewExportSource(filepath.Join(dir, "absent.json")).Snapshot(context.Background())
		assert.ErrorIs(t, err, ErrSnapshotFailed)
	})

	t.Run("malformed file", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte("{"), 0644))
		_, err := NewExportSource(bad).Snapshot(context.Background())
		assert.ErrorIs(t, err, ErrSnapshotFailed)
	})
}

func TestFileStatsWriter(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "stats")

	writer, err := NewFileStatsWriter(dir)
	require.NoError(t, err)

	stats := &core.RunStats{Status: core.StatusCompleted, PagesProcessed: 3}
	stats.StartTime = stats.StartTime.UTC()
	require.NoError(t, writer.Write(stats))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Regexp(t, `^processing_stats_\d{8}_\d{6}\.json$`, entries[0].Name())

	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"pages_processed": 3`)
}
