package contactform

import (
	"io/fs"

	"github.com/goliatone/go-contactform/pkg/renderers/html"
)

// EmbeddedTemplates exposes the built-in HTML section template so callers
// can reuse or extend it without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return html.TemplatesFS()
}
