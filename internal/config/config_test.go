package config

import (
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Fatalf("expected default addr, got %q", cfg.Addr)
	}
	if cfg.SubmitTimeout != 10*time.Second {
		t.Fatalf("expected default submit timeout, got %s", cfg.SubmitTimeout)
	}
	level, err := cfg.Level()
	if err != nil || level != slog.LevelInfo {
		t.Fatalf("expected info level, got %v (%v)", level, err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("CONTACTFORM_FORM_ID", "xyzzy")
	t.Setenv("CONTACTFORM_REDUCE_MOTION", "true")
	t.Setenv("CONTACTFORM_LOG_LEVEL", "debug")
	t.Setenv("CONTACTFORM_THEME_TOKENS", "contact-accent=#ff0000,radius=4px")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.FormID != "xyzzy" || !cfg.ReduceMotion {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if level, _ := cfg.Level(); level != slog.LevelDebug {
		t.Fatalf("expected debug level, got %v", level)
	}

	manifest := cfg.Manifest()
	if manifest.Tokens["contact-accent"] != "#ff0000" {
		t.Fatalf("token override not applied: %v", manifest.Tokens)
	}
	if manifest.Tokens["radius"] != "4px" {
		t.Fatalf("extra token missing: %v", manifest.Tokens)
	}
	if _, ok := manifest.Variants["dark"]; !ok {
		t.Fatalf("dark variant missing")
	}
}

func TestLoadErrors(t *testing.T) {
	t.Setenv("CONTACTFORM_SUBMIT_TIMEOUT", "soon")
	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env error, got %v", err)
	}

	t.Setenv("CONTACTFORM_SUBMIT_TIMEOUT", "1s")
	t.Setenv("CONTACTFORM_LOG_LEVEL", "loud")
	if _, err := Load(); err == nil {
		t.Fatalf("expected log level error")
	}
}

func TestLevelRejectsUnknownName(t *testing.T) {
	level, err := Config{LogLevel: "loud"}.Level()
	if err == nil || !strings.Contains(err.Error(), `log level "loud"`) {
		t.Fatalf("expected log level error, got %v", err)
	}
	if level != slog.LevelInfo {
		t.Fatalf("expected info fallback, got %v", level)
	}
}
