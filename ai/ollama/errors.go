package ollama

import "errors"

var (
	// ErrUnreachable indicates a transport-level failure talking to the
	// inference service.
	ErrUnreachable = errors.New("inference service unreachable")

	// ErrBadStatus indicates a non-success status from the inference
	// service.
	ErrBadStatus = errors.New("inference service returned an error status")

	// ErrMalformedResponse indicates a response body that could not be
	// decoded.
	ErrMalformedResponse = errors.New("malformed inference service response")

	// ErrEmptyPrompt indicates a generation request without a prompt.
	ErrEmptyPrompt = errors.New("prompt cannot be empty")
)
