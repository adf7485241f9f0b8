// Package mock provides test double implementations of the AI service
// interfaces.
//
// The mocks run without an inference service and behave deterministically:
//
//   - MockEmbedder returns vectors derived from a hash of the text, so the
//     same text always embeds identically
//   - MockGenerator echoes canned responses and records prompts
//   - MockProvider aggregates both
//
// Behavior can be overridden per test through the exported func fields:
//
//	embedder := mock.NewMockEmbedder()
//	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
//	    return []float32{0.1, 0.2, 0.3}, nil
//	}
package mock
