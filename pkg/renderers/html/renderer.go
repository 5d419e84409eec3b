// Package html renders a contact section as an HTML fragment using the
// pongo2 template engine.
package html

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-contactform/pkg/render"
	rendertemplate "github.com/goliatone/go-contactform/pkg/render/template"
	gotemplate "github.com/goliatone/go-contactform/pkg/render/template/gotemplate"
	"github.com/goliatone/go-contactform/pkg/section"
)

const templateName = "templates/section"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	policy           *bluemonday.Policy
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS. The bundle
// must contain templates/section.tmpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithSanitizer replaces the policy applied to the friendly message.
func WithSanitizer(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		if policy != nil {
			cfg.policy = policy
		}
	}
}

type Renderer struct {
	templates rendertemplate.TemplateRenderer
	policy    *bluemonday.Policy
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the HTML renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.policy == nil {
		cfg.policy = MessagePolicy()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer, policy: cfg.policy}, nil
}

func (r *Renderer) Name() string {
	return "html"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *Renderer) Render(ctx context.Context, view section.View, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("html renderer: template renderer is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data := map[string]any{
		"view":          view,
		"friendly":      sanitizeMessage(r.policy, view.FriendlyMessage),
		"action":        options.Action,
		"hidden":        render.SortedHiddenFields(options.HiddenFields),
		"contentColumn": column(view, section.ContentColumnID),
		"formColumn":    column(view, section.FormColumnID),
		"revealPending": revealPending(view),
		"script":        options.ScriptURL,
	}
	if cfg := options.Theme; cfg != nil {
		data["theme"] = map[string]any{
			"name":    cfg.Theme,
			"variant": cfg.Variant,
		}
		data["themeStyle"] = render.CSSVarsStyle("#"+view.ID, cfg.CSSVars)
		if cfg.AssetURL != nil {
			data["stylesheet"] = cfg.AssetURL(StylesheetAssetKey)
		}
	}

	result, err := r.templates.RenderTemplate(templateName, data)
	if err != nil {
		return nil, fmt.Errorf("html renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func column(view section.View, id string) section.ColumnView {
	for _, col := range view.Columns {
		if col.ID == id {
			return col
		}
	}
	return section.ColumnView{ID: id}
}

func revealPending(view section.View) bool {
	for _, col := range view.Columns {
		if col.Reveal != nil {
			return true
		}
	}
	return false
}
