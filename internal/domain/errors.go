package domain

import "errors"

// Fatal errors abort the whole pipeline run and prevent the completion
// sentinel from being written. Per-file fetch problems are never errors at
// this level; they are reported as Outcome values instead.
var (
	// ErrInvalidSessionURL means the session id pattern did not match the URL
	ErrInvalidSessionURL = errors.New("session id not found in URL")

	// ErrMetadataUnavailable means the presentation text document could not
	// be opened or parsed, so slide expansion is impossible
	ErrMetadataUnavailable = errors.New("presentation text metadata unavailable")

	// Task errors
	ErrTaskNotFound = errors.New("download task not found")
)
