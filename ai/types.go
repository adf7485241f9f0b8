package ai

// GenerateRequest describes one text generation call.
// Zero-valued fields fall back to the client's configured defaults.
type GenerateRequest struct {
	// Prompt is the user prompt. Required.
	Prompt string

	// Model overrides the client's default model when non-empty.
	Model string

	// SystemPrompt is an optional system instruction.
	SystemPrompt string

	// Temperature controls sampling randomness. Zero means the client
	// default (0.7).
	Temperature float64

	// MaxTokens bounds the generated length. Zero means the client
	// default (2048).
	MaxTokens int
}

// GenerateResult is the outcome of a successful generation call.
type GenerateResult struct {
	// Response is the generated text. For streaming calls it equals the
	// ordered concatenation of all chunk fragments.
	Response string

	// Model is the model that produced the response.
	Model string
}

// Chunk is one fragment of a streaming generation.
type Chunk struct {
	// Text is the incremental fragment. Empty on the terminal chunk.
	Text string

	// Done marks the terminal chunk.
	Done bool

	// Result is the accumulated result, set only when Done is true and
	// the stream finished without error.
	Result *GenerateResult

	// Err is set on the terminal chunk if the stream failed.
	Err error
}

// NoteTask selects one of the fixed note-processing prompt templates.
type NoteTask string

const (
	// TaskEnhance rewrites a note for clarity and organization.
	TaskEnhance NoteTask = "enhance"
	// TaskSummarize produces a short summary of a note.
	TaskSummarize NoteTask = "summarize"
	// TaskTag extracts key tags as a comma-separated list.
	TaskTag NoteTask = "tag"
)

// ParseNoteTask maps a task name to a NoteTask. Unrecognized values fall
// back to TaskEnhance, matching the permissive behavior expected by
// callers that pass user input through.
func ParseNoteTask(s string) NoteTask {
	switch NoteTask(s) {
	case TaskEnhance, TaskSummarize, TaskTag:
		return NoteTask(s)
	default:
		return TaskEnhance
	}
}
