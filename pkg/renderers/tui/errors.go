package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrCancelled is returned when the user declines to place the order.
	ErrCancelled = errors.New("tui: order cancelled")
	// ErrNoForm is returned when a session is started without a form.
	ErrNoForm = errors.New("tui: order form is required")
)
