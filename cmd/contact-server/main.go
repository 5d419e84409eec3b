package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-contactform/components/contact"
	"github.com/goliatone/go-contactform/internal/config"
	"github.com/goliatone/go-contactform/pkg/content"
	"github.com/goliatone/go-contactform/pkg/formspree"
	"github.com/goliatone/go-contactform/pkg/render"
	"github.com/goliatone/go-contactform/pkg/reveal/ease"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	level, err := cfg.Level()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ease.Install()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("contact-server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	c, err := content.Load(cfg.ContentPath)
	if err != nil {
		return err
	}

	client, err := formspree.New(cfg.FormID,
		formspree.WithEndpoint(cfg.Endpoint),
		formspree.WithHTTPClient(&http.Client{Timeout: cfg.SubmitTimeout}),
		formspree.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	fns := []contact.OptionFn{
		contact.WithContent(c),
		contact.WithCollaborator(client),
		contact.WithTheme(render.ThemeConfig(cfg.Manifest(), cfg.ThemeVariant)),
		contact.WithSubmitTimeout(cfg.SubmitTimeout),
		contact.WithLogger(logger),
	}
	if cfg.ReduceMotion {
		fns = append(fns, contact.WithAlwaysReducedMotion())
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	pattern, err := contact.New(fns...).RegisterRoutes(router, cfg.BasePath)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		logger.Info("contact-server listening", "addr", cfg.Addr, "route", pattern, "endpoint", client.Endpoint())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		logger.Info("contact-server shutting down")
		return server.Shutdown(shutdownCtx)
	})
	return group.Wait()
}
