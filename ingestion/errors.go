package ingestion

import "errors"

var (
	// ErrSourceRequired is returned when a note source is not provided.
	ErrSourceRequired = errors.New("note source required")

	// ErrIndexRequired is returned when a vector index is not provided.
	ErrIndexRequired = errors.New("vector index required")

	// ErrAIProviderRequired is returned when an AI provider is not provided.
	ErrAIProviderRequired = errors.New("AI provider required")

	// ErrSnapshotFailed is returned when the note source cannot produce
	// a snapshot.
	ErrSnapshotFailed = errors.New("note source snapshot failed")
)
