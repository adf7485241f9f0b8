package mock

import (
	"context"
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsai26/new-project-personal-brain/ai"
)

func TestDeterministicVector(t *testing.T) {
	a := deterministicVector("same text", 384)
	b := deterministicVector("same text", 384)
	c := deterministicVector("other text", 384)

	assert.Equal(t, a, b, "identical text produces identical vectors")
	assert.NotEqual(t, a, c)

	var sumSquares float64
	for _, v := range a {
		sumSquares += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, math.Sqrt(sumSquares), 1e-3, "vectors are unit length")
}

func TestMockGeneratorConcurrentRecording(t *testing.T) {
	generator := NewMockGenerator()
	ctx := context.Background()

	const workers = 8
	const callsPerWorker = 16

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < callsPerWorker; i++ {
				_, err := generator.ProcessNote(ctx, fmt.Sprintf("note %d/%d", w, i), ai.TaskEnhance)
				assert.NoError(t, err)
				_, err = generator.Generate(ctx, ai.GenerateRequest{Prompt: fmt.Sprintf("prompt %d/%d", w, i)})
				assert.NoError(t, err)
			}
		}(w)
	}
	wg.Wait()

	assert.Len(t, generator.NoteContents(), workers*callsPerWorker)
	assert.Len(t, generator.Prompts(), workers*callsPerWorker)
	assert.Equal(t, 2*workers*callsPerWorker, generator.CallCount())
}

func TestMockEmbedderConcurrentCalls(t *testing.T) {
	embedder := NewMockEmbedder()
	ctx := context.Background()

	const workers = 8
	const callsPerWorker = 16

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < callsPerWorker; i++ {
				vec, err := embedder.EmbedText(ctx, fmt.Sprintf("text %d/%d", w, i))
				assert.NoError(t, err)
				assert.Len(t, vec, 384)
			}
		}(w)
	}
	wg.Wait()

	assert.Equal(t, workers*callsPerWorker, embedder.CallCount())
}

func TestMockGeneratorRecordedCopies(t *testing.T) {
	generator := NewMockGenerator()

	_, err := generator.Generate(context.Background(), ai.GenerateRequest{Prompt: "original"})
	require.NoError(t, err)

	recorded := generator.Prompts()
	recorded[0] = "mutated"
	assert.Equal(t, []string{"original"}, generator.Prompts(), "accessors return copies")
}
