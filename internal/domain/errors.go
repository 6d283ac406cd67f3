package domain

import "errors"

// Model gateway and persistence error types

var (
	// ErrModelUnavailable indicates the Gemini API call failed or timed out
	ErrModelUnavailable = errors.New("model service unavailable")

	// ErrTranscriptCorrupt indicates the persisted transcript document is
	// unreadable or structurally invalid
	ErrTranscriptCorrupt = errors.New("transcript document corrupt")

	// ErrTranscriptWriteFailed indicates the transcript snapshot could not be written
	ErrTranscriptWriteFailed = errors.New("transcript write failed")
)
