package index

import "errors"

var (
	// ErrRepositoryRequired indicates a nil entry repository was provided.
	ErrRepositoryRequired = errors.New("entry repository is required")

	// ErrEmbedderRequired indicates a nil embedder was provided.
	ErrEmbedderRequired = errors.New("embedder is required")
)
