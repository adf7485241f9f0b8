// Copyright 2025 Personal Brain Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package brain

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/Ramsai26/new-project-personal-brain/ai"
	"github.com/Ramsai26/new-project-personal-brain/ai/ollama"
	"github.com/Ramsai26/new-project-personal-brain/core"
	"github.com/Ramsai26/new-project-personal-brain/index"
	"github.com/Ramsai26/new-project-personal-brain/ingestion"
	"github.com/Ramsai26/new-project-personal-brain/reembed"
	"github.com/Ramsai26/new-project-personal-brain/search"
	"github.com/Ramsai26/new-project-personal-brain/storage"
	"github.com/Ramsai26/new-project-personal-brain/storage/badger"
)

// ErrNotReady is returned by operations invoked before the brain has
// everything it needs (a note source for ingestion, a reachable model
// service for queries). Gated operations have no side effects.
var ErrNotReady = errors.New("brain is not ready")

// Brain is the top-level facade: one handle over the store, the vector
// index, the retrieval engine and the model services.
type Brain struct {
	backend   *badger.Backend
	repo      storage.EntryRepository
	provider  ai.Provider
	index     *index.Index
	retriever *search.Retriever
	source    ingestion.NoteSource
	statsDir  string
	logger    *slog.Logger
}

// Option configures a Brain.
type Option func(*brainOptions)

type brainOptions struct {
	aiConfig *ai.Config
	provider ai.Provider
	source   ingestion.NoteSource
	statsDir string
	inMemory bool
}

// WithAIConfig sets the model service configuration.
// Default is ai.DefaultConfig().
func WithAIConfig(config *ai.Config) Option {
	return func(o *brainOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithProvider injects a pre-built AI provider, bypassing aiConfig.
// Used by tests to substitute mocks.
func WithProvider(provider ai.Provider) Option {
	return func(o *brainOptions) {
		o.provider = provider
	}
}

// WithSource sets the note source for ingestion runs.
// Without a source, ProcessAll returns ErrNotReady.
func WithSource(source ingestion.NoteSource) Option {
	return func(o *brainOptions) {
		o.source = source
	}
}

// WithStatsDir sets where ingestion run statistics are persisted.
// Without a directory, stats are discarded.
func WithStatsDir(dir string) Option {
	return func(o *brainOptions) {
		o.statsDir = dir
	}
}

// WithInMemoryStore uses an in-memory store instead of a directory.
// The filePath argument to New is ignored.
func WithInMemoryStore() Option {
	return func(o *brainOptions) {
		o.inMemory = true
	}
}

// New opens a brain over the store at filePath.
func New(filePath string, opts ...Option) (*Brain, error) {
	options := &brainOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	repo, err := badger.NewEntryRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = ollama.NewProvider(options.aiConfig)
		if err != nil {
			repo.Close()
			backend.Close()
			return nil, err
		}
	}

	ix, err := index.New(repo, provider.Embedder())
	if err != nil {
		provider.Close()
		repo.Close()
		backend.Close()
		return nil, err
	}

	retriever, err := search.NewRetriever(ix, provider)
	if err != nil {
		provider.Close()
		repo.Close()
		backend.Close()
		return nil, err
	}

	return &Brain{
		backend:   backend,
		repo:      repo,
		provider:  provider,
		index:     ix,
		retriever: retriever,
		source:    options.source,
		statsDir:  options.statsDir,
		logger:    slog.Default(),
	}, nil
}

// Readiness reports which of the brain's dependencies are usable.
type Readiness struct {
	// Source is true when a note source is configured.
	Source bool
	// LLM is true when the model service answers a catalog query.
	LLM bool
	// Index is true when the entry store is open and answers queries.
	Index bool
}

// Readiness probes each dependency. The LLM probe performs one catalog
// request against the model service.
func (b *Brain) Readiness(ctx context.Context) Readiness {
	r := Readiness{Source: b.source != nil}

	if _, err := b.provider.Generator().ListModels(ctx); err == nil {
		r.LLM = true
	}

	if _, err := b.repo.CountEntries(ctx, core.CollectionNotes); err == nil {
		r.Index = true
	}

	return r
}

// IsReady reports whether every dependency is usable.
func (b *Brain) IsReady(ctx context.Context) bool {
	r := b.Readiness(ctx)
	return r.Source && r.LLM && r.Index
}

// ProcessAll runs one full ingestion pass over the configured source.
// Returns ErrNotReady, with no side effects, when no source is set.
func (b *Brain) ProcessAll(ctx context.Context, opts ...ingestion.Option) (*core.RunStats, error) {
	if b.source == nil {
		return nil, ErrNotReady
	}

	if b.statsDir != "" {
		writer, err := ingestion.NewFileStatsWriter(b.statsDir)
		if err != nil {
			return nil, err
		}
		opts = append([]ingestion.Option{ingestion.WithStatsWriter(writer)}, opts...)
	}

	orchestrator, err := ingestion.NewOrchestrator(b.source, b.index, b.provider, opts...)
	if err != nil {
		return nil, err
	}
	defer orchestrator.Release()

	return orchestrator.ProcessAll(ctx)
}

// Search runs a semantic query with summary synthesis.
func (b *Brain) Search(ctx context.Context, query string, scope core.Scope, limit int) ([]*core.SearchResult, error) {
	return b.retriever.Search(ctx, query, scope, limit)
}

// SearchByDate retrieves journal entries for a date with a synthesized
// day summary.
func (b *Brain) SearchByDate(ctx context.Context, date string, limit int) ([]*core.SearchResult, error) {
	return b.retriever.SearchByDate(ctx, date, limit)
}

// SearchByTag retrieves entries carrying a tag.
func (b *Brain) SearchByTag(ctx context.Context, tag string, scope core.Scope, limit int) ([]*core.SearchResult, error) {
	return b.retriever.SearchByTag(ctx, tag, scope, limit)
}

// EnhanceNote runs one of the fixed note tasks over content.
func (b *Brain) EnhanceNote(ctx context.Context, content string, task ai.NoteTask) (*ai.GenerateResult, error) {
	return b.provider.Generator().ProcessNote(ctx, content, task)
}

// ListModels queries the model service's catalog.
func (b *Brain) ListModels(ctx context.Context) ([]string, error) {
	return b.provider.Generator().ListModels(ctx)
}

// EntryCount returns the number of entries across the collections in
// scope.
func (b *Brain) EntryCount(ctx context.Context, scope core.Scope) (int, error) {
	return b.index.Count(ctx, scope)
}

// NewReembedder builds a reembedder over the brain's store and embedder.
// progress: where to write progress output (typically os.Stderr)
func (b *Brain) NewReembedder(config *reembed.Config, progress io.Writer) *reembed.Reembedder {
	return reembed.NewReembedder(b.repo, b.provider.Embedder(), config, progress)
}

// Index returns the underlying vector index.
func (b *Brain) Index() *index.Index {
	return b.index
}

// EntryRepository returns the underlying entry repository.
func (b *Brain) EntryRepository() storage.EntryRepository {
	return b.repo
}

// Close releases the provider, the repository and the backend.
func (b *Brain) Close() error {
	if err := b.provider.Close(); err != nil {
		b.logger.Error("error closing AI provider", "err", err)
	}

	if err := b.repo.Close(); err != nil {
		b.logger.Error("error closing entry repository", "err", err)
		return err
	}

	if err := b.backend.Close(); err != nil {
		b.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}
