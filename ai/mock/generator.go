package mock

import (
	"context"
	"sync"

	"github.com/Ramsai26/new-project-personal-brain/ai"
)

// MockGenerator is a test double for ai.Generator.
// It allows custom behavior injection via function fields and records the
// prompts it receives. Recorded state is guarded so the mock can be called
// from concurrent workers.
type MockGenerator struct {
	// GenerateFunc is called by Generate if set.
	GenerateFunc func(ctx context.Context, req ai.GenerateRequest) (*ai.GenerateResult, error)

	// ProcessNoteFunc is called by ProcessNote if set.
	ProcessNoteFunc func(ctx context.Context, content string, task ai.NoteTask) (*ai.GenerateResult, error)

	// ListModelsFunc is called by ListModels if set.
	ListModelsFunc func(ctx context.Context) ([]string, error)

	mu           sync.Mutex
	prompts      []string
	noteContents []string
	callCount    int
}

var _ ai.Generator = (*MockGenerator)(nil)

// NewMockGenerator creates a mock generator with default canned behavior.
// Returns the concrete type to allow test assertions.
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

// Generate returns a canned result echoing the prompt length, or the
// injected behavior.
func (m *MockGenerator) Generate(ctx context.Context, req ai.GenerateRequest) (*ai.GenerateResult, error) {
	m.mu.Lock()
	m.callCount++
	m.prompts = append(m.prompts, req.Prompt)
	m.mu.Unlock()

	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, req)
	}

	return &ai.GenerateResult{Response: "mock response", Model: "mock-model"}, nil
}

// GenerateStream yields the canned response as a single fragment followed
// by a terminal chunk.
func (m *MockGenerator) GenerateStream(ctx context.Context, req ai.GenerateRequest) (<-chan ai.Chunk, error) {
	result, err := m.Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	chunks := make(chan ai.Chunk, 2)
	chunks <- ai.Chunk{Text: result.Response}
	chunks <- ai.Chunk{Done: true, Result: result}
	close(chunks)
	return chunks, nil
}

// ProcessNote returns a canned enhanced result, or the injected behavior.
func (m *MockGenerator) ProcessNote(ctx context.Context, content string, task ai.NoteTask) (*ai.GenerateResult, error) {
	m.mu.Lock()
	m.callCount++
	m.noteContents = append(m.noteContents, content)
	m.mu.Unlock()

	if m.ProcessNoteFunc != nil {
		return m.ProcessNoteFunc(ctx, content, task)
	}

	return &ai.GenerateResult{Response: "enhanced: " + content, Model: "mock-model"}, nil
}

// ListModels returns a canned catalog, or the injected behavior.
func (m *MockGenerator) ListModels(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	m.callCount++
	m.mu.Unlock()

	if m.ListModelsFunc != nil {
		return m.ListModelsFunc(ctx)
	}

	return []string{"mock-model"}, nil
}

// Prompts returns a copy of every prompt passed to Generate, in order.
func (m *MockGenerator) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}

// NoteContents returns a copy of every content passed to ProcessNote, in
// order.
func (m *MockGenerator) NoteContents() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.noteContents...)
}

// CallCount returns the number of times any method was called.
func (m *MockGenerator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Reset clears recorded calls and injected behavior.
func (m *MockGenerator) Reset() {
	m.mu.Lock()
	m.callCount = 0
	m.prompts = nil
	m.noteContents = nil
	m.mu.Unlock()

	m.GenerateFunc = nil
	m.ProcessNoteFunc = nil
	m.ListModelsFunc = nil
}
