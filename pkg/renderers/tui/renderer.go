// Package tui renders the contact section as terminal text and drives an
// interactive submission session through a PromptDriver.
package tui

import (
	"context"
	"fmt"
	"html"
	"io"
	"log/slog"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-contactform/pkg/render"
	"github.com/goliatone/go-contactform/pkg/section"
)

// Renderer implements render.Renderer for terminals and runs prompt
// sessions against a section.
type Renderer struct {
	driver      PromptDriver
	styles      Styles
	logger      *slog.Logger
	maxAttempts int
	strip       *bluemonday.Policy
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver on stdout,
// default styles, three attempts).
func New(options ...Option) *Renderer {
	r := &Renderer{
		styles:      DefaultStyles(),
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		maxAttempts: 3,
		strip:       bluemonday.StrictPolicy(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	return r
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the format produced by Render.
func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

// Render writes the view as styled terminal text.
func (r *Renderer) Render(ctx context.Context, view section.View, _ render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return []byte(r.text(view)), nil
}

func (r *Renderer) text(view section.View) string {
	var b strings.Builder
	st := r.styles

	if view.Heading != "" {
		b.WriteString(st.Heading.Render(view.Heading))
		b.WriteString("\n")
	}
	if msg := r.plain(view.FriendlyMessage); msg != "" {
		b.WriteString(st.Message.Render(msg))
		b.WriteString("\n")
	}

	if n := view.Notice; n != nil {
		b.WriteString("\n")
		b.WriteString(r.notice(n))
		b.WriteString("\n")
	}

	if len(view.Fields) > 0 {
		b.WriteString("\n")
	}
	for _, field := range view.Fields {
		value := field.Value
		if value == "" {
			value = st.Muted.Render("(empty)")
		}
		fmt.Fprintf(&b, "%s %s\n", st.Label.Render(field.Label+":"), value)
		for _, message := range field.Errors {
			fmt.Fprintf(&b, "  %s\n", st.FieldError.Render("! "+message))
		}
	}

	if view.Submit.Label != "" {
		label := "[" + view.Submit.Label + "]"
		if view.Submit.Disabled {
			label = st.Muted.Render(label)
		}
		b.WriteString(label)
		b.WriteString("\n")
	}
	return b.String()
}

func (r *Renderer) notice(n *section.Notice) string {
	st := r.styles
	if n.Kind == section.NoticeSuccess {
		return st.Success.Render(n.Message)
	}

	line := n.Message
	switch {
	case n.ContactEmail != "":
		line += " " + n.ContactEmail
	case n.Fallback != "":
		line += " " + n.Fallback
	}
	out := st.Failure.Render(line)
	for _, detail := range n.Details {
		out += "\n  " + st.FieldError.Render("- "+detail)
	}
	return out
}

func (r *Renderer) plain(markup string) string {
	return strings.TrimSpace(html.UnescapeString(r.strip.Sanitize(markup)))
}
