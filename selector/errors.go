package selector

import "errors"

// Sentinel errors returned by a Renderer to report user cancellation.
var (
	// ErrCancelled means the user backed out of the current prompt.
	ErrCancelled = errors.New("selection cancelled")

	// ErrQuit means the user asked to stop processing altogether.
	ErrQuit = errors.New("quit requested")
)
