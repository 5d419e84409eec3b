package render

import theme "github.com/goliatone/go-theme"

// RenderOptions describe per-request data that renderers can use to customise
// their output without touching the section itself.
type RenderOptions struct {
	// Action is the URL the form posts to. Renderers fall back to the current
	// page when it is empty.
	Action string
	// HiddenFields are emitted as hidden inputs, sorted by name.
	HiddenFields map[string]string
	// Theme carries tokens, CSS variables and asset resolution for the
	// selected theme variant.
	Theme *theme.RendererConfig
	// ScriptURL points at the browser runtime that plays pending reveals.
	ScriptURL string
}
