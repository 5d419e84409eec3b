package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNoDriver is returned when a session has nothing to prompt with.
	ErrNoDriver = errors.New("tui: prompt driver is nil")
)
