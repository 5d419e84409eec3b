// Package jsonview encodes a section view as JSON for script-driven clients.
package jsonview

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-contactform/pkg/render"
	"github.com/goliatone/go-contactform/pkg/section"
)

// Payload is the document written for each view.
type Payload struct {
	View   section.View         `json:"view"`
	Action string               `json:"action,omitempty"`
	Hidden []render.HiddenField `json:"hidden,omitempty"`
	Theme  *Theme               `json:"theme,omitempty"`
}

// Theme is the serialisable part of a theme.RendererConfig.
type Theme struct {
	Name    string            `json:"name,omitempty"`
	Variant string            `json:"variant,omitempty"`
	CSSVars map[string]string `json:"cssVars,omitempty"`
}

type Renderer struct {
	indent string
}

var _ render.Renderer = (*Renderer)(nil)

// New returns a compact JSON renderer.
func New() *Renderer {
	return &Renderer{}
}

// NewIndented returns a renderer that pretty-prints with two spaces.
func NewIndented() *Renderer {
	return &Renderer{indent: "  "}
}

func (r *Renderer) Name() string {
	return "json"
}

func (r *Renderer) ContentType() string {
	return "application/json"
}

func (r *Renderer) Render(ctx context.Context, view section.View, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	payload := Payload{
		View:   view,
		Action: options.Action,
		Hidden: render.SortedHiddenFields(options.HiddenFields),
	}
	if cfg := options.Theme; cfg != nil {
		payload.Theme = &Theme{Name: cfg.Theme, Variant: cfg.Variant, CSSVars: cfg.CSSVars}
	}

	var (
		out []byte
		err error
	)
	if r.indent != "" {
		out, err = json.MarshalIndent(payload, "", r.indent)
	} else {
		out, err = json.Marshal(payload)
	}
	if err != nil {
		return nil, fmt.Errorf("jsonview: encode: %w", err)
	}
	return out, nil
}
