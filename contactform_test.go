package contactform

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/goliatone/go-contactform/pkg/content"
	"github.com/goliatone/go-contactform/pkg/reveal/ease"
)

func TestRenderSectionDefaultsToHTML(t *testing.T) {
	ease.Install()

	out, err := RenderSection(context.Background(), content.Default(), "", false, RenderOptions{Action: "/contact"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)
	for _, fragment := range []string{`action="/contact"`, `data-reveal`, `name="_gotcha"`} {
		if !strings.Contains(html, fragment) {
			t.Fatalf("output missing %q:\n%s", fragment, html)
		}
	}
}

func TestRenderSectionJSON(t *testing.T) {
	ease.Install()

	out, err := RenderSection(context.Background(), content.Default(), "json", true, RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	var payload struct {
		View View `json:"view"`
	}
	if err := json.Unmarshal(out, &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.View.State != "idle" {
		t.Fatalf("expected idle state, got %q", payload.View.State)
	}
	for _, column := range payload.View.Columns {
		if column.Reveal != nil {
			t.Fatalf("reduced motion should not leave reveals pending: %+v", column)
		}
	}
}

func TestRenderSectionUnknownRenderer(t *testing.T) {
	if _, err := RenderSection(context.Background(), content.Default(), "pdf", false, RenderOptions{}); err == nil {
		t.Fatalf("expected error for unknown renderer")
	}
}
