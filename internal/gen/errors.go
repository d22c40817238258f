package gen

import "errors"

var (
	// ErrEmptyPrompt is returned before any backend work happens.
	ErrEmptyPrompt = errors.New("prompt is empty")

	// ErrNotConfigured means the text upstream has no API key.
	ErrNotConfigured = errors.New("completion upstream not configured")

	// ErrUpstream covers any failure of the remote completion call:
	// transport errors, timeouts, bad status, malformed responses.
	ErrUpstream = errors.New("completion upstream failed")

	// ErrGeneration covers image backend load and synthesis failures.
	ErrGeneration = errors.New("image generation failed")
)
