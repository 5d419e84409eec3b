package contactform

import (
	"context"
	"fmt"
	"net/http"

	"github.com/goliatone/go-contactform/components/contact"
	"github.com/goliatone/go-contactform/pkg/content"
	"github.com/goliatone/go-contactform/pkg/formspree"
	"github.com/goliatone/go-contactform/pkg/render"
	"github.com/goliatone/go-contactform/pkg/reveal"
	"github.com/goliatone/go-contactform/pkg/section"
	"github.com/goliatone/go-contactform/pkg/submission"
)

// RenderOptions describes per-request extras renderers can use (form action,
// hidden inputs, theme, runtime script).
type RenderOptions = render.RenderOptions

// Content aliases content.Content for callers loading display strings.
type Content = content.Content

// View aliases the section render contract.
type View = section.View

// NewSection exposes the section constructor from the top-level module.
func NewSection(c Content, collaborator submission.Collaborator, options ...section.Option) *section.Section {
	return section.New(c, collaborator, options...)
}

// LoadContent reads a YAML or JSON content file. An empty path yields the
// built-in defaults.
func LoadContent(path string) (Content, error) {
	return content.Load(path)
}

// NewFormspree returns a collaborator that posts to the given Formspree form.
func NewFormspree(formID string, options ...formspree.Option) (*formspree.Client, error) {
	return formspree.New(formID, options...)
}

// RenderSection renders an idle section with the named renderer ("html" or
// "json"; empty picks the default). It is the simplest entry point for
// callers that just want markup, e.g. static site generators. The reveal
// is left pending for the browser runtime unless reducedMotion is set.
func RenderSection(ctx context.Context, c Content, rendererName string, reducedMotion bool, opts RenderOptions) ([]byte, error) {
	registry, err := contact.DefaultRegistry()
	if err != nil {
		return nil, err
	}
	r, err := pickRenderer(registry, rendererName)
	if err != nil {
		return nil, err
	}

	s := section.New(c, nil, section.WithObserver(reveal.NewViewport(0)))
	if err := s.Mount(reveal.NewNode(section.ContentColumnID), reveal.NewNode(section.FormColumnID), reducedMotion); err != nil {
		return nil, fmt.Errorf("contactform: mount section: %w", err)
	}
	defer s.Unmount()

	if opts.HiddenFields == nil {
		opts.HiddenFields = render.MergeHiddenFields(nil, render.Honeypot())
	}
	return r.Render(ctx, s.View(), opts)
}

// Handler returns the contact section handler configured with fns.
func Handler(fns ...contact.OptionFn) http.Handler {
	return contact.Handler(fns...)
}

// RegisterRoutes mounts the section and its browser assets under basePath.
func RegisterRoutes(mux contact.Mux, basePath string, fns ...contact.OptionFn) (string, error) {
	return contact.RegisterRoutes(mux, basePath, fns...)
}

func pickRenderer(registry *render.Registry, name string) (render.Renderer, error) {
	if name == "" {
		return registry.Negotiate("")
	}
	return registry.Get(name)
}
