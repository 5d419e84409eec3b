package render

import (
	"context"

	"github.com/goliatone/go-contactform/pkg/section"
)

// Renderer converts a section view into a byte representation (HTML, JSON,
// terminal text).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, view section.View, options RenderOptions) ([]byte, error)
}
