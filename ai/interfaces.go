package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity
// search. Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates embeddings for multiple texts in one batch.
	// The returned slice preserves input order.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Generator produces text from a local inference service.
// Implementations must be thread-safe for concurrent use.
type Generator interface {
	// Generate performs one blocking request and returns the full response.
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error)

	// GenerateStream yields the response as ordered chunks over a channel.
	// The channel is closed after the terminal chunk, which carries the
	// accumulated result: the concatenation of every fragment sent before
	// it. Cancelling the context closes the channel and discards partial
	// state.
	GenerateStream(ctx context.Context, req GenerateRequest) (<-chan Chunk, error)

	// ProcessNote runs one of the fixed note tasks (enhance, summarize,
	// tag) over the content. Unrecognized tasks fall back to enhance.
	// Uses the configured note model, which may differ from the default
	// generate model.
	ProcessNote(ctx context.Context, content string, task NoteTask) (*GenerateResult, error)

	// ListModels queries the inference service's model catalog.
	ListModels(ctx context.Context) ([]string, error)
}

// Provider aggregates AI services for convenient initialization and
// lifecycle management.
type Provider interface {
	// Embedder returns the text embedding service.
	Embedder() Embedder

	// Generator returns the text generation service.
	Generator() Generator

	// Close releases resources held by the provider and its services.
	Close() error
}
