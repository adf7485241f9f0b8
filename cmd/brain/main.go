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

package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v2"

	brain "github.com/Ramsai26/new-project-personal-brain"
	"github.com/Ramsai26/new-project-personal-brain/ai"
	"github.com/Ramsai26/new-project-personal-brain/core"
	"github.com/Ramsai26/new-project-personal-brain/ingestion"
	"github.com/Ramsai26/new-project-personal-brain/reembed"
)

func main() {
	app := &cli.App{
		Name:  "brain",
		Usage: "Semantic index and retrieval over personal notes",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to the entry store directory",
				EnvVars: []string{"BRAIN_DB"},
				Value:   "./brain_db",
			},
			&cli.StringFlag{
				Name:    "ollama-host",
				Usage:   "Ollama service host URL",
				EnvVars: []string{"OLLAMA_HOST"},
				Value:   "http://localhost:11434",
			},
			&cli.StringFlag{
				Name:    "model",
				Usage:   "Generation model name",
				EnvVars: []string{"BRAIN_MODEL"},
				Value:   "mistral:latest",
			},
			&cli.StringFlag{
				Name:    "note-model",
				Usage:   "Model for note tasks (defaults to the generation model)",
				EnvVars: []string{"BRAIN_NOTE_MODEL"},
			},
			&cli.StringFlag{
				Name:    "embedding-model",
				Usage:   "Embedding model name",
				EnvVars: []string{"BRAIN_EMBEDDING_MODEL"},
				Value:   "nomic-embed-text",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "ingest",
				Usage:  "Run a full ingestion pass over a note export",
				Action: ingestCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "export",
						Aliases:  []string{"e"},
						Usage:    "Path to the JSON note export file",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "stats-dir",
						Usage: "Directory for run statistics snapshots",
						Value: "./stats",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Worker pool size for note processing",
					},
					&cli.IntFlag{
						Name:  "enhance-threshold",
						Usage: "Content length above which pages skip enhancement",
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Semantic search with a synthesized summary",
				Action:    searchCommand,
				ArgsUsage: "<query>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "scope",
						Usage: "Collections to search (all, notes, journals)",
						Value: "all",
					},
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "Maximum number of results",
						Value:   5,
					},
				},
			},
			{
				Name:      "search-date",
				Usage:     "Retrieve journal entries for a date with a day summary",
				Action:    searchDateCommand,
				ArgsUsage: "<YYYY-MM-DD>",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "Maximum number of results",
						Value:   5,
					},
				},
			},
			{
				Name:      "search-tag",
				Usage:     "Retrieve entries carrying a tag",
				Action:    searchTagCommand,
				ArgsUsage: "<tag>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "scope",
						Usage: "Collections to search (all, notes, journals)",
						Value: "all",
					},
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "Maximum number of results",
						Value:   10,
					},
				},
			},
			{
				Name:      "enhance",
				Usage:     "Run a note task (enhance, summarize, tag) over stdin or a file",
				Action:    enhanceCommand,
				ArgsUsage: "[file]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "task",
						Usage: "Note task to run (enhance, summarize, tag)",
						Value: "enhance",
					},
				},
			},
			{
				Name:   "models",
				Usage:  "List models available on the Ollama service",
				Action: modelsCommand,
			},
			{
				Name:   "reembed",
				Usage:  "Reembed all entries with new embeddings",
				Action: reembedCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of entries to process in each batch",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N entries",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed operations",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// aiConfig builds the model service configuration from global flags.
func aiConfig(c *cli.Context) *ai.Config {
	return ai.NewConfig(
		ai.WithHost(c.String("ollama-host")),
		ai.WithGenerateModel(c.String("model")),
		ai.WithNoteModel(c.String("note-model")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
	)
}

// openBrain opens the brain over the configured store.
func openBrain(c *cli.Context, opts ...brain.Option) (*brain.Brain, error) {
	config := aiConfig(c)
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	opts = append([]brain.Option{brain.WithAIConfig(config)}, opts...)
	b, err := brain.New(c.String("db"), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	return b, nil
}

func ingestCommand(c *cli.Context) error {
	ctx := context.Background()

	source := ingestion.NewExportSource(c.String("export"))
	b, err := openBrain(c,
		brain.WithSource(source),
		brain.WithStatsDir(c.String("stats-dir")))
	if err != nil {
		return err
	}
	defer b.Close()

	var opts []ingestion.Option
	if workers := c.Int("workers"); workers > 0 {
		opts = append(opts, ingestion.WithPoolSize(workers))
	}
	if threshold := c.Int("enhance-threshold"); threshold > 0 {
		opts = append(opts, ingestion.WithEnhanceThreshold(threshold))
	}

	stats, err := b.ProcessAll(ctx, opts...)
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	fmt.Printf("Processed %d pages and %d journals (%d enhanced, %d errors) in %.1fs\n",
		stats.PagesProcessed, stats.JournalsProcessed,
		stats.EnhancedCount, stats.Errors, stats.DurationSeconds)
	return nil
}

func searchCommand(c *cli.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("query is required")
	}

	scope, err := core.ParseScope(c.String("scope"))
	if err != nil {
		return fmt.Errorf("invalid scope %q", c.String("scope"))
	}

	b, err := openBrain(c)
	if err != nil {
		return err
	}
	defer b.Close()

	results, err := b.Search(context.Background(), query, scope, c.Int("limit"))
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	printResults(results)
	return nil
}

func searchDateCommand(c *cli.Context) error {
	date := c.Args().First()
	if date == "" {
		return fmt.Errorf("date is required (YYYY-MM-DD)")
	}

	b, err := openBrain(c)
	if err != nil {
		return err
	}
	defer b.Close()

	results, err := b.SearchByDate(context.Background(), date, c.Int("limit"))
	if err != nil {
		return fmt.Errorf("date search failed: %w", err)
	}

	printResults(results)
	return nil
}

func searchTagCommand(c *cli.Context) error {
	tag := c.Args().First()
	if tag == "" {
		return fmt.Errorf("tag is required")
	}

	scope, err := core.ParseScope(c.String("scope"))
	if err != nil {
		return fmt.Errorf("invalid scope %q", c.String("scope"))
	}

	b, err := openBrain(c)
	if err != nil {
		return err
	}
	defer b.Close()

	results, err := b.SearchByTag(context.Background(), tag, scope, c.Int("limit"))
	if err != nil {
		return fmt.Errorf("tag search failed: %w", err)
	}

	printResults(results)
	return nil
}

func enhanceCommand(c *cli.Context) error {
	var content []byte
	var err error
	if path := c.Args().First(); path != "" {
		content, err = os.ReadFile(path)
	} else {
		content, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return fmt.Errorf("failed to read note content: %w", err)
	}

	task := ai.ParseNoteTask(c.String("task"))

	b, err := openBrain(c)
	if err != nil {
		return err
	}
	defer b.Close()

	result, err := b.EnhanceNote(context.Background(), string(content), task)
	if err != nil {
		return fmt.Errorf("note task failed: %w", err)
	}

	fmt.Println(result.Response)
	return nil
}

func modelsCommand(c *cli.Context) error {
	b, err := openBrain(c)
	if err != nil {
		return err
	}
	defer b.Close()

	models, err := b.ListModels(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list models: %w", err)
	}

	for _, model := range models {
		fmt.Println(model)
	}
	return nil
}

func reembedCommand(c *cli.Context) error {
	config := &reembed.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
	}
	if config.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if config.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if config.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	b, err := openBrain(c)
	if err != nil {
		return err
	}
	defer b.Close()

	fmt.Fprintf(os.Stderr, "Store: %s\n", c.String("db"))
	fmt.Fprintf(os.Stderr, "Embedding model: %s\n", c.String("embedding-model"))
	fmt.Fprintln(os.Stderr)

	if err := b.NewReembedder(config, os.Stderr).Run(context.Background()); err != nil {
		return fmt.Errorf("reembedding failed: %w", err)
	}
	return nil
}

// printResults renders search results for the terminal.
func printResults(results []*core.SearchResult) {
	if len(results) == 0 {
		fmt.Println("No results.")
		return
	}

	rank := 0
	for _, result := range results {
		if result.IsSummary() {
			fmt.Printf("=== %s ===\n%s\n", result.Metadata.Title, result.Content)
			continue
		}

		rank++
		fmt.Printf("\n%d. %s", rank, result.Metadata.Title)
		if result.Distance != nil {
			fmt.Printf(" (distance %.4f)", *result.Distance)
		}
		fmt.Printf("\n   %s\n", snippet(result.Content, 200))
	}
}

// snippet cuts content down to a single preview line.
func snippet(s string, limit int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) > limit {
		s = s[:limit] + "..."
	}
	return s
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
