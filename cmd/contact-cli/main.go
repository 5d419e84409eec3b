package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"

	contactform "github.com/goliatone/go-contactform"
	"github.com/goliatone/go-contactform/components/contact"
	"github.com/goliatone/go-contactform/internal/config"
	"github.com/goliatone/go-contactform/pkg/content"
	"github.com/goliatone/go-contactform/pkg/formspree"
	"github.com/goliatone/go-contactform/pkg/render"
	"github.com/goliatone/go-contactform/pkg/renderers/html"
	"github.com/goliatone/go-contactform/pkg/renderers/tui"
	"github.com/goliatone/go-contactform/pkg/reveal/ease"
	"github.com/goliatone/go-contactform/pkg/section"
	"github.com/goliatone/go-contactform/pkg/submission"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	formID := flag.String("form", cfg.FormID, "Formspree form ID")
	endpoint := flag.String("endpoint", cfg.Endpoint, "submission endpoint (overrides -form)")
	contentPath := flag.String("content", cfg.ContentPath, "content file (YAML or JSON)")
	timeout := flag.Duration("timeout", cfg.SubmitTimeout, "submission timeout")
	renderer := flag.String("render", "", "render the section with this renderer (html, json) instead of prompting")
	output := flag.String("output", "", "output file for -render (stdout if empty)")
	verbose := flag.Bool("v", false, "log debug output to stderr")
	flag.Parse()

	level, err := cfg.Level()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ease.Install()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	c, err := content.Load(*contentPath)
	if err != nil {
		log.Fatalf("Failed to load content: %v", err)
	}

	if *renderer != "" {
		out, err := contactform.RenderSection(ctx, c, *renderer, cfg.ReduceMotion, renderOptions(cfg))
		if err != nil {
			log.Fatalf("Failed to render section: %v", err)
		}
		if *output != "" {
			if err := os.WriteFile(*output, out, 0o644); err != nil {
				log.Fatalf("Failed to write output: %v", err)
			}
			fmt.Printf("Section written to %s\n", *output)
			return
		}
		fmt.Println(string(out))
		return
	}

	client, err := formspree.New(*formID, formspree.WithEndpoint(*endpoint), formspree.WithLogger(logger))
	if err != nil {
		log.Fatalf("Failed to configure submission: %v", err)
	}

	submitCtx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	s := section.New(c, client, section.WithLogger(logger))
	snap, err := tui.New(tui.WithLogger(logger)).Run(submitCtx, s)
	switch {
	case errors.Is(err, tui.ErrAborted):
		os.Exit(130)
	case err != nil:
		log.Fatalf("Failed to submit: %v", err)
	case snap.State != submission.Succeeded:
		os.Exit(1)
	}
}

func renderOptions(cfg config.Config) contactform.RenderOptions {
	return contactform.RenderOptions{
		Action:    contact.MountPath(cfg.BasePath),
		Theme:     render.ThemeConfig(cfg.Manifest(), cfg.ThemeVariant),
		ScriptURL: contact.AssetPath(cfg.BasePath, html.RuntimeScriptName),
	}
}
