package render_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-contactform/pkg/render"
	"github.com/goliatone/go-contactform/pkg/section"
)

type stubRenderer struct {
	name        string
	contentType string
}

func (s stubRenderer) Name() string        { return s.name }
func (s stubRenderer) ContentType() string { return s.contentType }
func (s stubRenderer) Render(context.Context, section.View, render.RenderOptions) ([]byte, error) {
	return []byte(s.name), nil
}

func TestRegistry_RegisterAndNegotiate(t *testing.T) {
	registry := render.NewRegistry()
	registry.MustRegister(stubRenderer{name: "html", contentType: "text/html; charset=utf-8"})
	registry.MustRegister(stubRenderer{name: "json", contentType: "application/json"})

	if err := registry.Register(stubRenderer{name: "html", contentType: "text/html"}); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if diff := cmp.Diff([]string{"html", "json"}, registry.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}

	cases := map[string]string{
		"":                                "html",
		"*/*":                             "html",
		"application/json":                "json",
		"application/json, text/plain":    "json",
		"text/html,application/xhtml+xml": "html",
		"image/png":                       "html",
	}
	for accept, want := range cases {
		renderer, err := registry.Negotiate(accept)
		if err != nil {
			t.Fatalf("negotiate %q: %v", accept, err)
		}
		if renderer.Name() != want {
			t.Fatalf("negotiate %q: want %s, got %s", accept, want, renderer.Name())
		}
	}

	if err := registry.SetFallback("json"); err != nil {
		t.Fatalf("set fallback: %v", err)
	}
	if renderer, _ := registry.Negotiate("image/png"); renderer.Name() != "json" {
		t.Fatalf("expected json fallback, got %s", renderer.Name())
	}
	if err := registry.SetFallback("xml"); err == nil {
		t.Fatalf("expected unknown fallback error")
	}
}

func TestRegistry_NegotiateEmpty(t *testing.T) {
	if _, err := render.NewRegistry().Negotiate("text/html"); err == nil {
		t.Fatalf("expected error from empty registry")
	}
}

func TestThemeConfig_MergesVariant(t *testing.T) {
	manifest := &theme.Manifest{
		Name:    "studio",
		Version: "1.0.0",
		Tokens: map[string]string{
			"brand":   "#123456",
			"surface": "#ffffff",
		},
		Assets: theme.Assets{
			Prefix: "/assets/themes/studio",
			Files: map[string]string{
				"contact.stylesheet": "contact.css",
			},
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{"surface": "#101010"},
				Assets: theme.Assets{
					Files: map[string]string{"contact.stylesheet": "contact.dark.css"},
				},
			},
		},
	}

	cfg := render.ThemeConfig(manifest, "dark")
	if cfg.Theme != "studio" || cfg.Variant != "dark" {
		t.Fatalf("unexpected identity %s/%s", cfg.Theme, cfg.Variant)
	}
	wantVars := map[string]string{"--brand": "#123456", "--surface": "#101010"}
	if diff := cmp.Diff(wantVars, cfg.CSSVars); diff != "" {
		t.Fatalf("css vars mismatch (-want +got):\n%s", diff)
	}
	if got := cfg.AssetURL("contact.stylesheet"); got != "/assets/themes/studio/contact.dark.css" {
		t.Fatalf("unexpected asset url %q", got)
	}
	if got := cfg.AssetURL("missing"); got != "" {
		t.Fatalf("expected empty url for unknown asset, got %q", got)
	}

	base := render.ThemeConfig(manifest, "unknown")
	if base.Variant != "" || base.CSSVars["--surface"] != "#ffffff" {
		t.Fatalf("unknown variant should fall back to base tokens, got %+v", base)
	}
	if render.ThemeConfig(nil, "dark") != nil {
		t.Fatalf("nil manifest should produce nil config")
	}
}

func TestCSSVarsStyle(t *testing.T) {
	got := render.CSSVarsStyle("#contact", map[string]string{"--b": "2", "--a": "1"})
	if want := "#contact { --a: 1; --b: 2; }"; got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
	if render.CSSVarsStyle("#contact", nil) != "" {
		t.Fatalf("expected empty style for no vars")
	}
}
