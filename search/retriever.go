package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Ramsai26/new-project-personal-brain/ai"
	"github.com/Ramsai26/new-project-personal-brain/core"
	"github.com/Ramsai26/new-project-personal-brain/index"
)

// defaultContextLimit is how many characters of each hit are quoted in
// the synthesis prompt.
const defaultContextLimit = 500

// Retriever answers queries by combining vector search with summary
// synthesis through the generation model.
type Retriever struct {
	index        *index.Index
	generator    ai.Generator
	contextLimit int
	logger       *slog.Logger
}

// Option configures a Retriever.
type Option func(*Retriever) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Retriever) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// WithContextLimit sets how many characters of each hit are quoted in
// the synthesis prompt. Values below 1 restore the default.
func WithContextLimit(limit int) Option {
	return func(r *Retriever) error {
		if limit < 1 {
			limit = defaultContextLimit
		}
		r.contextLimit = limit
		return nil
	}
}

// NewRetriever creates a new retriever.
func NewRetriever(ix *index.Index, provider ai.Provider, opts ...Option) (*Retriever, error) {
	if ix == nil {
		return nil, ErrIndexRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	r := &Retriever{
		index:        ix,
		generator:    provider.Generator(),
		contextLimit: defaultContextLimit,
		logger:       slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Search runs a semantic query over the collections in scope and, when
// there are hits, prepends a synthesized summary of them.
// The summary carries the sentinel id "summary" and no distance; the
// index hits follow it unchanged, in distance order. If synthesis
// fails, the raw hits are returned as-is.
func (r *Retriever) Search(ctx context.Context, query string, scope core.Scope, limit int) ([]*core.SearchResult, error) {
	return r.SearchWithMonitor(ctx, query, scope, limit, nil)
}

// SearchWithMonitor is Search with stage callbacks for observability.
func (r *Retriever) SearchWithMonitor(ctx context.Context, query string, scope core.Scope, limit int, monitor RetrievalMonitor) ([]*core.SearchResult, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(query)

	results, err := r.index.Search(ctx, query, scope, limit)
	if err != nil {
		r.logger.Error("error searching index", "query", query, "err", err)
		return nil, err
	}
	monitor.AfterVectorSearch(results)

	if len(results) == 0 {
		monitor.Finish(results)
		return results, nil
	}

	blocks := make([]string, 0, len(results))
	for _, result := range results {
		blocks = append(blocks, fmt.Sprintf("Document: %s\nContent: %s...",
			titleOrUntitled(result.Metadata.Title), truncate(result.Content, r.contextLimit)))
	}
	prompt := fmt.Sprintf(
		"I want to answer the question: '%s'\n\n"+
			"Here are the relevant documents:\n%s\n\n"+
			"Based on these documents, provide a comprehensive answer to the question.",
		query, strings.Join(blocks, "\n\n"))

	generated, err := r.generator.Generate(ctx, ai.GenerateRequest{Prompt: prompt})
	if err != nil {
		// Degrade to raw index hits
		r.logger.Warn("summary synthesis failed, returning raw results", "query", query, "err", err)
		monitor.SynthesisFailed(err)
		monitor.Finish(results)
		return results, nil
	}
	monitor.AfterSynthesis(generated.Response)

	summary := &core.SearchResult{
		ID:      core.SummaryResultID,
		Content: generated.Response,
		Metadata: core.EntryMetadata{
			Title:   fmt.Sprintf("Summary for query: %s", query),
			Summary: true,
		},
	}
	results = append([]*core.SearchResult{summary}, results...)
	monitor.Finish(results)

	return results, nil
}

// SearchByDate retrieves journal entries for an exact date and, when
// there are hits, prepends a synthesized summary of that day.
func (r *Retriever) SearchByDate(ctx context.Context, date string, limit int) ([]*core.SearchResult, error) {
	results, err := r.index.SearchByDate(ctx, date, limit)
	if err != nil {
		r.logger.Error("error searching journals by date", "date", date, "err", err)
		return nil, err
	}

	if len(results) == 0 {
		return results, nil
	}

	blocks := make([]string, 0, len(results))
	for _, result := range results {
		journalDate := result.Metadata.JournalDate
		if journalDate == "" {
			journalDate = "Unknown Date"
		}
		blocks = append(blocks, fmt.Sprintf("Journal Entry (%s):\n%s...",
			journalDate, truncate(result.Content, r.contextLimit)))
	}
	prompt := fmt.Sprintf(
		"I want to summarize what I was thinking about on %s.\n\n"+
			"Here are the relevant journal entries:\n%s\n\n"+
			"Please provide a concise summary of the key thoughts, activities, and ideas from this day.",
		date, strings.Join(blocks, "\n\n"))

	generated, err := r.generator.Generate(ctx, ai.GenerateRequest{Prompt: prompt})
	if err != nil {
		r.logger.Warn("day summary synthesis failed, returning raw results", "date", date, "err", err)
		return results, nil
	}

	summary := &core.SearchResult{
		ID:      core.SummaryResultID,
		Content: generated.Response,
		Metadata: core.EntryMetadata{
			Title:       fmt.Sprintf("Summary for date: %s", date),
			Summary:     true,
			JournalDate: date,
		},
	}
	return append([]*core.SearchResult{summary}, results...), nil
}

// SearchByTag retrieves entries carrying the tag. Tag lookups are exact
// metadata filters; no summary is synthesized.
func (r *Retriever) SearchByTag(ctx context.Context, tag string, scope core.Scope, limit int) ([]*core.SearchResult, error) {
	return r.index.SearchByTag(ctx, tag, scope, limit)
}

// titleOrUntitled falls back to a placeholder for entries without a title.
func titleOrUntitled(title string) string {
	if title == "" {
		return "Untitled"
	}
	return title
}

// truncate cuts s to at most limit bytes.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
