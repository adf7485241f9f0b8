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


package ollama

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Ramsai26/new-project-personal-brain/ai"
)

// Client implements ai.Generator against Ollama's native API.
// The client is stateless apart from configuration and is safe for
// concurrent use.
type Client struct {
	apiURL       string
	defaultModel string
	noteModel    string
	temperature  float64
	maxTokens    int
	noteTimeout  time.Duration
	httpClient   *http.Client
	logger       *slog.Logger
}

var _ ai.Generator = (*Client)(nil)

// newClient is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newClient(config *ai.Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Client{
		apiURL:       config.GenerateHost + "/api",
		defaultModel: config.GenerateModel,
		noteModel:    config.NoteModel,
		temperature:  config.Temperature,
		maxTokens:    config.MaxTokens,
		noteTimeout:  config.NoteTimeout,
		httpClient:   &http.Client{},
		logger:       slog.Default().With("component", "ollama-client"),
	}, nil
}

// NewClient creates a new generation client using the provided
// configuration.
//
// Returns ai.Generator interface to enforce abstraction.
func NewClient(config *ai.Config) (ai.Generator, error) {
	return newClient(config)
}

// generatePayload is the request body for /api/generate.
type generatePayload struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	System  string          `json:"system,omitempty"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options"`
}

type generateOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict"`
}

// generateResponse is one response object from /api/generate. In streaming
// mode the server sends one JSON object per line; the last carries done=true.
type generateResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

func (c *Client) payload(req ai.GenerateRequest, stream bool) generatePayload {
	model := req.Model
	if model == "" {
		model = c.defaultModel
	}
	temperature := req.Temperature
	if temperature == 0 {
		temperature = c.temperature
	}
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = c.maxTokens
	}
	return generatePayload{
		Model:  model,
		Prompt: req.Prompt,
		System: req.SystemPrompt,
		Stream: stream,
		Options: generateOptions{
			Temperature: temperature,
			NumPredict:  maxTokens,
		},
	}
}

func (c *Client) post(ctx context.Context, payload generatePayload) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+"/generate", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreachable, err)
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: status %d: %s", ErrBadStatus, resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	return resp, nil
}

// Generate performs one blocking generation request.
func (c *Client) Generate(ctx context.Context, req ai.GenerateRequest) (*ai.GenerateResult, error) {
	if req.Prompt == "" {
		return nil, ErrEmptyPrompt
	}

	payload := c.payload(req, false)
	c.logger.Debug("generating response", "model", payload.Model, "promptLength", len(payload.Prompt))

	resp, err := c.post(ctx, payload)
	if err != nil {
		c.logger.Error("generation request failed", "model", payload.Model, "err", err)
		return nil, err
	}
	defer resp.Body.Close()

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	return &ai.GenerateResult{Response: out.Response, Model: out.Model}, nil
}

// GenerateStream yields the response as ordered chunks over a channel.
// The terminal chunk carries the accumulated result, equal to the
// concatenation of every fragment sent before it. On context cancellation
// the channel is closed and partial state discarded.
func (c *Client) GenerateStream(ctx context.Context, req ai.GenerateRequest) (<-chan ai.Chunk, error) {
	if req.Prompt == "" {
		return nil, ErrEmptyPrompt
	}

	payload := c.payload(req, true)
	c.logger.Debug("streaming response", "model", payload.Model)

	resp, err := c.post(ctx, payload)
	if err != nil {
		return nil, err
	}

	chunks := make(chan ai.Chunk)
	go func() {
		defer close(chunks)
		defer resp.Body.Close()

		var full strings.Builder
		model := payload.Model

		scanner := bufio.NewScanner(resp.Body)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			line := bytes.TrimSpace(scanner.Bytes())
			if len(line) == 0 {
				continue
			}

			var part generateResponse
			if err := json.Unmarshal(line, &part); err != nil {
				c.sendChunk(ctx, chunks, ai.Chunk{Done: true, Err: fmt.Errorf("%w: %w", ErrMalformedResponse, err)})
				return
			}
			if part.Model != "" {
				model = part.Model
			}

			if part.Response != "" {
				full.WriteString(part.Response)
				if !c.sendChunk(ctx, chunks, ai.Chunk{Text: part.Response}) {
					return
				}
			}

			if part.Done {
				c.sendChunk(ctx, chunks, ai.Chunk{
					Done:   true,
					Result: &ai.GenerateResult{Response: full.String(), Model: model},
				})
				return
			}
		}

		err := scanner.Err()
		if err == nil {
			err = io.ErrUnexpectedEOF
		}
		c.sendChunk(ctx, chunks, ai.Chunk{Done: true, Err: fmt.Errorf("%w: %w", ErrMalformedResponse, err)})
	}()

	return chunks, nil
}

// sendChunk delivers a chunk unless the context is cancelled first.
// Returns false when the stream should stop.
func (c *Client) sendChunk(ctx context.Context, chunks chan<- ai.Chunk, chunk ai.Chunk) bool {
	select {
	case chunks <- chunk:
		return true
	case <-ctx.Done():
		return false
	}
}

// ProcessNote runs one of the fixed note tasks over content. The call is
// non-streaming, bounded by the configured note timeout, and uses the note
// model, which may be pinned independently of the default generate model.
func (c *Client) ProcessNote(ctx context.Context, content string, task ai.NoteTask) (*ai.GenerateResult, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyPrompt
	}

	task = ai.ParseNoteTask(string(task))
	c.logger.Debug("processing note", "task", task, "model", c.noteModel, "contentLength", len(content))

	ctx, cancel := context.WithTimeout(ctx, c.noteTimeout)
	defer cancel()

	return c.Generate(ctx, ai.GenerateRequest{
		Prompt: notePrompt(task, content),
		Model:  c.noteModel,
	})
}

// tagsResponse is the body of /api/tags.
type tagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// ListModels queries the inference service's model catalog.
func (c *Client) ListModels(ctx context.Context) ([]string, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"/tags", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: status %d: %s", ErrBadStatus, resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var out tagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	names := make([]string, 0, len(out.Models))
	for _, m := range out.Models {
		names = append(names, m.Name)
	}
	return names, nil
}
