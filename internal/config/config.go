// Package config loads process configuration for the contact binaries from
// the environment.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	theme "github.com/goliatone/go-theme"
)

// Config is shared by cmd/contact-server and cmd/contact-cli. Flags in the
// CLI override the values read here.
type Config struct {
	Addr            string        `env:"CONTACTFORM_ADDR"             envDefault:":8080"`
	BasePath        string        `env:"CONTACTFORM_BASE_PATH"        envDefault:"/"`
	FormID          string        `env:"CONTACTFORM_FORM_ID"`
	Endpoint        string        `env:"CONTACTFORM_ENDPOINT"`
	ContentPath     string        `env:"CONTACTFORM_CONTENT"`
	ReduceMotion    bool          `env:"CONTACTFORM_REDUCE_MOTION"`
	SubmitTimeout   time.Duration `env:"CONTACTFORM_SUBMIT_TIMEOUT"   envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"CONTACTFORM_SHUTDOWN_TIMEOUT" envDefault:"5s"`
	LogLevel        string        `env:"CONTACTFORM_LOG_LEVEL"        envDefault:"info"`

	ThemeName    string            `env:"CONTACTFORM_THEME"         envDefault:"default"`
	ThemeVariant string            `env:"CONTACTFORM_THEME_VARIANT"`
	ThemeTokens  map[string]string `env:"CONTACTFORM_THEME_TOKENS"  envSeparator:"," envKeyValSeparator:"="`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load returns the configuration with defaults applied.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if _, err := cfg.Level(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("config: log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// Manifest describes the theme built from the environment. A dark variant is
// always declared so CONTACTFORM_THEME_VARIANT=dark works without extra
// tokens.
func (c Config) Manifest() *theme.Manifest {
	tokens := map[string]string{
		"contact-accent":     "#2563eb",
		"contact-foreground": "#111827",
		"contact-background": "#ffffff",
		"contact-error":      "#b91c1c",
		"contact-success":    "#15803d",
	}
	for key, value := range c.ThemeTokens {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		tokens[key] = strings.TrimSpace(value)
	}

	name := strings.TrimSpace(c.ThemeName)
	if name == "" {
		name = "default"
	}
	return &theme.Manifest{
		Name:    name,
		Version: "1.0.0",
		Tokens:  tokens,
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"contact-foreground": "#f9fafb",
					"contact-background": "#111827",
				},
			},
		},
	}
}
