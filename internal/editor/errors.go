package editor

import "errors"

// Errors surfaced by editing operations. All of them are recoverable:
// the document and draft stay in their last-known-good state.
var (
	// ErrEmptySelection indicates a range-requiring format was invoked
	// with a caret. Surfaced as an advisory, never applied silently.
	ErrEmptySelection = errors.New("selection required")

	// ErrNoImageAtCaret indicates a resize had no resolvable target.
	ErrNoImageAtCaret = errors.New("no image at caret")

	// ErrNotRendered indicates an embed's visual element has not been
	// materialized by the surface's deferred render pass yet.
	ErrNotRendered = errors.New("embed not rendered")
)
