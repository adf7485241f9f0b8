package ingestion

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/Ramsai26/new-project-personal-brain/ai"
	"github.com/Ramsai26/new-project-personal-brain/core"
	"github.com/Ramsai26/new-project-personal-brain/index"
)

// defaultEnhanceThreshold is the content length above which pages are
// indexed verbatim instead of being sent through the note model.
const defaultEnhanceThreshold = 4000

// Orchestrator runs full ingestion passes over a note source.
type Orchestrator struct {
	source           NoteSource
	index            *index.Index
	generator        ai.Generator
	pool             *ants.Pool
	statsWriter      StatsWriter
	enhanceThreshold int
	logger           *slog.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator) error

// WithPoolSize sets the worker pool size for concurrent processing.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(o *Orchestrator) error {
		if size < 1 {
			size = 1
		}

		if o.pool != nil {
			o.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		o.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) error {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
		return nil
	}
}

// WithStatsWriter sets the destination for run statistics snapshots.
// Default discards them.
func WithStatsWriter(writer StatsWriter) Option {
	return func(o *Orchestrator) error {
		if writer == nil {
			writer = discardStatsWriter{}
		}
		o.statsWriter = writer
		return nil
	}
}

// WithEnhanceThreshold sets the content length above which pages skip
// enhancement. Values below 1 restore the default.
func WithEnhanceThreshold(threshold int) Option {
	return func(o *Orchestrator) error {
		if threshold < 1 {
			threshold = defaultEnhanceThreshold
		}
		o.enhanceThreshold = threshold
		return nil
	}
}

// NewOrchestrator creates a new ingestion orchestrator.
func NewOrchestrator(
	source NoteSource,
	ix *index.Index,
	provider ai.Provider,
	opts ...Option,
) (*Orchestrator, error) {
	if source == nil {
		return nil, ErrSourceRequired
	}
	if ix == nil {
		return nil, ErrIndexRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	o := &Orchestrator{
		source:           source,
		index:            ix,
		generator:        provider.Generator(),
		pool:             pool,
		statsWriter:      discardStatsWriter{},
		enhanceThreshold: defaultEnhanceThreshold,
		logger:           slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if optErr := opt(o); optErr != nil {
			o.Release()
			return nil, optErr
		}
	}

	return o, nil
}

// ProcessAll runs one full ingestion pass: snapshot the source, process
// every page and journal on the worker pool, and persist a stats
// snapshot. A failure on an individual note is counted and logged but
// does not abort the run; only a snapshot failure fails the run as a
// whole. The returned stats are valid in both cases.
func (o *Orchestrator) ProcessAll(ctx context.Context) (*core.RunStats, error) {
	stats := &core.RunStats{
		StartTime: time.Now().UTC(),
		Status:    core.StatusInProgress,
	}

	snapshot, err := o.source.Snapshot(ctx)
	if err != nil {
		o.finish(stats, err)
		return stats, err
	}

	o.logger.Info("ingestion run started",
		"pages", len(snapshot.Pages),
		"journals", len(snapshot.Journals))

	var wg sync.WaitGroup
	var mu sync.Mutex

	for _, page := range snapshot.Pages {
		wg.Add(1)
		submitErr := o.pool.Submit(func() {
			defer wg.Done()
			o.processPage(ctx, page, stats, &mu)
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			stats.Errors++
			mu.Unlock()
			o.logger.Error("error submitting page", "path", page.Path, "err", submitErr)
		}
	}

	for _, journal := range snapshot.Journals {
		wg.Add(1)
		submitErr := o.pool.Submit(func() {
			defer wg.Done()
			o.processJournal(ctx, journal, stats, &mu)
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			stats.Errors++
			mu.Unlock()
			o.logger.Error("error submitting journal", "path", journal.Path, "err", submitErr)
		}
	}

	wg.Wait()

	o.finish(stats, nil)
	o.logger.Info("ingestion run finished",
		"pages_processed", stats.PagesProcessed,
		"journals_processed", stats.JournalsProcessed,
		"enhanced", stats.EnhancedCount,
		"errors", stats.Errors,
		"duration_seconds", stats.DurationSeconds)

	return stats, nil
}

// processPage enhances short page content through the note model and
// indexes the page. Enhancement failure falls back to the original
// content; only an indexing failure counts as an error.
func (o *Orchestrator) processPage(ctx context.Context, page *core.NoteRecord, stats *core.RunStats, mu *sync.Mutex) {
	// The snapshot array the record arrived in decides its collection
	page.Kind = core.CollectionNotes

	enhanced := false
	content := page.CleanContent
	if len(content) > 0 && len(content) < o.enhanceThreshold {
		result, err := o.generator.ProcessNote(ctx, content, ai.TaskEnhance)
		if err != nil {
			o.logger.Warn("enhancement failed, indexing original content", "path", page.Path, "err", err)
		} else {
			page.CleanContent = result.Response
			enhanced = true
		}
	}

	_, err := o.index.UpsertNote(ctx, page)
	if err != nil && !errors.Is(err, core.ErrEmptyContent) {
		mu.Lock()
		stats.Errors++
		mu.Unlock()
		o.logger.Error("error indexing page", "path", page.Path, "err", err)
		return
	}

	// Empty pages are skipped by the index but still count as processed
	mu.Lock()
	stats.PagesProcessed++
	if enhanced {
		stats.EnhancedCount++
	}
	mu.Unlock()
}

// processJournal indexes a journal entry verbatim.
func (o *Orchestrator) processJournal(ctx context.Context, journal *core.NoteRecord, stats *core.RunStats, mu *sync.Mutex) {
	journal.Kind = core.CollectionJournals

	_, err := o.index.UpsertNote(ctx, journal)
	if err != nil && !errors.Is(err, core.ErrEmptyContent) {
		mu.Lock()
		stats.Errors++
		mu.Unlock()
		o.logger.Error("error indexing journal", "path", journal.Path, "err", err)
		return
	}

	mu.Lock()
	stats.JournalsProcessed++
	mu.Unlock()
}

// finish closes out the stats snapshot and persists it. Persistence
// failures are logged, never returned: the run outcome already stands.
func (o *Orchestrator) finish(stats *core.RunStats, runErr error) {
	stats.EndTime = time.Now().UTC()
	stats.DurationSeconds = stats.EndTime.Sub(stats.StartTime).Seconds()
	if runErr != nil {
		stats.Status = core.StatusFailed
		stats.Error = runErr.Error()
	} else {
		stats.Status = core.StatusCompleted
	}

	if err := o.statsWriter.Write(stats); err != nil {
		o.logger.Error("error persisting run stats", "err", err)
	}
}

// Release releases the worker pool.
// The orchestrator should not be used after calling Release.
func (o *Orchestrator) Release() {
	if o.pool != nil {
		o.pool.Release()
	}
}
