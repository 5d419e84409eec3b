package tui

import "log/slog"

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by sessions.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithStyles replaces the lipgloss styles.
func WithStyles(styles Styles) Option {
	return func(r *Renderer) {
		r.styles = styles
	}
}

// WithLogger routes session logs.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMaxAttempts bounds how many times a session offers to resend after a
// validation failure. Zero means a single attempt.
func WithMaxAttempts(n int) Option {
	return func(r *Renderer) {
		if n > 0 {
			r.maxAttempts = n
		}
	}
}
