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


package ai

import (
	"errors"
	"strings"
	"time"
)

// Config holds configuration for AI service providers. It is constructed
// once at startup and passed into each component; nothing in this package
// reads the environment.
type Config struct {
	// GenerateHost is the base URL of the Ollama server used for text
	// generation, without an API suffix.
	// Example: "http://localhost:11434"
	GenerateHost string

	// EmbeddingHost is the base URL for the embedding service API.
	// Example: "http://localhost:11434/v1" for a local OpenAI-compatible
	// endpoint.
	EmbeddingHost string

	// GenerateModel is the default model for generation requests.
	// Example: "mistral:latest"
	GenerateModel string

	// NoteModel is the model used by note-processing tasks (enhance,
	// summarize, tag). Empty means GenerateModel. The original system
	// pinned note processing to a hardcoded model regardless of the
	// configured default; keeping it as an explicit override preserves
	// that capability without the silent constant.
	NoteModel string

	// EmbeddingModel is the model identifier for text embeddings.
	// Example: "nomic-embed-text", "text-embedding-3-small"
	EmbeddingModel string

	// Temperature is the default sampling temperature. Default: 0.7
	Temperature float64

	// MaxTokens is the default generation length bound. Default: 2048
	MaxTokens int

	// NoteTimeout bounds each note-processing call. Default: 30s
	NoteTimeout time.Duration
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithHost sets both the generate and embedding hosts from one base URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.GenerateHost = host
		c.EmbeddingHost = host
	}
}

// WithGenerateHost sets the generation service host URL.
func WithGenerateHost(host string) ConfigOption {
	return func(c *Config) {
		c.GenerateHost = host
	}
}

// WithEmbeddingHost sets the embedding service host URL.
func WithEmbeddingHost(host string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingHost = host
	}
}

// WithGenerateModel sets the default generation model.
func WithGenerateModel(model string) ConfigOption {
	return func(c *Config) {
		c.GenerateModel = model
	}
}

// WithNoteModel sets the note-processing model override.
func WithNoteModel(model string) ConfigOption {
	return func(c *Config) {
		c.NoteModel = model
	}
}

// WithEmbeddingModel sets the embedding model identifier.
func WithEmbeddingModel(model string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingModel = model
	}
}

// WithTemperature sets the default sampling temperature.
func WithTemperature(t float64) ConfigOption {
	return func(c *Config) {
		c.Temperature = t
	}
}

// WithMaxTokens sets the default generation length bound.
func WithMaxTokens(n int) ConfigOption {
	return func(c *Config) {
		c.MaxTokens = n
	}
}

// WithNoteTimeout sets the per-call timeout for note processing.
func WithNoteTimeout(d time.Duration) ConfigOption {
	return func(c *Config) {
		c.NoteTimeout = d
	}
}

// DefaultConfig returns a Config with sensible defaults for a local Ollama
// server.
func DefaultConfig() *Config {
	return &Config{
		GenerateHost:   "http://localhost:11434",
		EmbeddingHost:  "http://localhost:11434/v1",
		GenerateModel:  "mistral:latest",
		EmbeddingModel: "nomic-embed-text",
		Temperature:    0.7,
		MaxTokens:      2048,
		NoteTimeout:    30 * time.Second,
	}
}

// NewConfig creates a Config with default values and applies the provided
// options.
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form. The embedding
// host gets a /v1 suffix as required by OpenAI-compatible APIs; the generate
// host is trimmed of any trailing slash because the Ollama API paths are
// appended verbatim.
func (c *Config) Normalize() {
	c.GenerateHost = strings.TrimSuffix(c.GenerateHost, "/")
	if c.EmbeddingHost != "" && !strings.HasSuffix(c.EmbeddingHost, "/v1") {
		c.EmbeddingHost = strings.TrimSuffix(c.EmbeddingHost, "/") + "/v1"
	}
	if c.NoteModel == "" {
		c.NoteModel = c.GenerateModel
	}
}

// Validate checks that the configuration is valid and complete.
// It normalizes the configuration before validating.
func (c *Config) Validate() error {
	c.Normalize()

	if c.GenerateHost == "" {
		return errors.New("ai config: GenerateHost is required")
	}
	if c.EmbeddingHost == "" {
		return errors.New("ai config: EmbeddingHost is required")
	}
	if c.GenerateModel == "" {
		return errors.New("ai config: GenerateModel is required")
	}
	if c.EmbeddingModel == "" {
		return errors.New("ai config: EmbeddingModel is required")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return errors.New("ai config: Temperature must be between 0 and 2")
	}
	if c.MaxTokens <= 0 {
		return errors.New("ai config: MaxTokens must be positive")
	}
	if c.NoteTimeout <= 0 {
		return errors.New("ai config: NoteTimeout must be positive")
	}
	return nil
}
