package ollama

import (
	"fmt"

	"github.com/Ramsai26/new-project-personal-brain/ai"
)

// notePrompt builds the fixed prompt for a note-processing task.
// Unknown tasks fall back to the enhance template.
func notePrompt(task ai.NoteTask, content string) string {
	switch task {
	case ai.TaskSummarize:
		return fmt.Sprintf("Please summarize this note:\n\n%s", content)
	case ai.TaskTag:
		return fmt.Sprintf("Extract key tags from this note as a comma-separated list:\n\n%s", content)
	default:
		return fmt.Sprintf("Please enhance this note by improving clarity and organization:\n\n%s", content)
	}
}
