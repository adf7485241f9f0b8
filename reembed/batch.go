package reembed

import (
	"context"
	"fmt"
	"time"

	"github.com/Ramsai26/new-project-personal-brain/ai"
	"github.com/Ramsai26/new-project-personal-brain/core"
	"github.com/Ramsai26/new-project-personal-brain/storage"
)

// BatchProcessor regenerates embeddings for batches of entries.
type BatchProcessor struct {
	repo           storage.EntryRepository
	embedder       ai.Embedder
	maxRetries     int
	retryBaseDelay time.Duration
}

// NewBatchProcessor creates a new batch processor.
// maxRetries: maximum number of retry attempts for embedding calls
// retryBaseDelay: base delay for exponential backoff
func NewBatchProcessor(repo storage.EntryRepository, embedder ai.Embedder, maxRetries int, retryBaseDelay time.Duration) *BatchProcessor {
	return &BatchProcessor{
		repo:           repo,
		embedder:       embedder,
		maxRetries:     maxRetries,
		retryBaseDelay: retryBaseDelay,
	}
}

// Process embeds a batch of entries and writes them back to the store.
// Vectors are normalized after embedding so cosine distance stays
// well-behaved regardless of the model's output scale.
func (bp *BatchProcessor) Process(ctx context.Context, col core.Collection, entries []*core.IndexedEntry) error {
	if len(entries) == 0 {
		return nil
	}

	texts := make([]string, len(entries))
	for i, entry := range entries {
		texts[i] = entry.Content
	}

	var embeddings [][]float32
	err := RetryWithBackoff(ctx, func() error {
		var err error
		embeddings, err = bp.embedder.EmbedTexts(ctx, texts)
		return err
	}, bp.maxRetries, bp.retryBaseDelay)

	if err != nil {
		return fmt.Errorf("failed to generate embeddings after %d attempts: %w", bp.maxRetries, err)
	}

	if len(embeddings) != len(entries) {
		return fmt.Errorf("embedding count mismatch: expected %d, got %d", len(entries), len(embeddings))
	}

	for i := range entries {
		entries[i].Vector = NormalizeVector(embeddings[i])
	}

	if err := bp.repo.UpsertEntries(ctx, col, entries...); err != nil {
		return fmt.Errorf("failed to update entries: %w", err)
	}

	return nil
}
