package contact

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-contactform/pkg/render"
	"github.com/goliatone/go-contactform/pkg/renderers/html"
	"github.com/goliatone/go-contactform/pkg/renderers/jsonview"
	"github.com/goliatone/go-contactform/pkg/reveal"
	"github.com/goliatone/go-contactform/pkg/section"
	"github.com/goliatone/go-contactform/pkg/submission"
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

// awaitGrace lets a collaborator that honours cancellation report back after
// the submit deadline fires.
const awaitGrace = time.Second

// Handler builds a net/http handler with default options plus any overrides.
func Handler(fns ...OptionFn) http.Handler {
	return NewHandler(fns...)
}

func NewHandler(fns ...OptionFn) http.Handler {
	opts := NewOptions(fns...)
	return HandlerWithOptions(opts)
}

// DefaultRegistry returns the HTML renderer (negotiation fallback) and the
// JSON view renderer.
func DefaultRegistry() (*render.Registry, error) {
	htmlRenderer, err := html.New()
	if err != nil {
		return nil, err
	}
	registry := render.NewRegistry()
	if err := registry.Register(htmlRenderer); err != nil {
		return nil, err
	}
	if err := registry.Register(jsonview.New()); err != nil {
		return nil, err
	}
	return registry, nil
}

// HandlerWithOptions builds a net/http handler from a pre-constructed Options
// value.
func HandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	registry := opts.Registry
	var registryErr error
	if registry == nil {
		registry, registryErr = DefaultRegistry()
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r == nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodPost:
		default:
			w.Header().Set("Allow", strings.Join([]string{http.MethodGet, http.MethodHead, http.MethodPost}, ", "))
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		if opts.Guard != nil {
			if err := opts.Guard(r); err != nil {
				writeError(w, err, http.StatusForbidden)
				return
			}
		}
		if registryErr != nil {
			logger.Error("contact: renderer setup failed", "error", registryErr)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		renderer, err := registry.Negotiate(r.Header.Get("Accept"))
		if err != nil {
			logger.Error("contact: negotiate renderer", "error", err)
			http.Error(w, http.StatusText(http.StatusNotAcceptable), http.StatusNotAcceptable)
			return
		}

		var (
			values  submission.Values
			spam    bool
			hidden  = render.MergeHiddenFields(nil, render.Honeypot())
			collab  = opts.Collaborator
			status  = http.StatusOK
			posting = r.Method == http.MethodPost
		)
		if posting {
			values, spam, err = readValues(w, r, opts.MaxBodyBytes)
			if err != nil {
				writeError(w, err, http.StatusBadRequest)
				return
			}
			if spam {
				logger.Info("contact: dropped submission caught by honeypot", "remote", r.RemoteAddr)
				collab = submission.CollaboratorFunc(func(context.Context, submission.Values) error { return nil })
			}
		}
		if opts.HiddenFields != nil {
			hidden = render.MergeHiddenFields(opts.HiddenFields(r), render.Honeypot())
		}

		sectionOptions := append([]section.Option{
			section.WithLogger(logger),
			section.WithObserver(reveal.NewViewport(0)),
		}, opts.SectionOptions...)
		s := section.New(opts.Content, collab, sectionOptions...)

		reduced := opts.ReducedMotion(r)
		if err := s.Mount(reveal.NewNode(section.ContentColumnID), reveal.NewNode(section.FormColumnID), reduced); err != nil {
			logger.Error("contact: mount section", "error", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		defer s.Unmount()

		if posting {
			status = submit(r.Context(), s, values, opts.SubmitTimeout, logger)
		}

		out, err := renderer.Render(r.Context(), s.View(), render.RenderOptions{
			Action:       r.URL.Path,
			HiddenFields: hidden,
			Theme:        opts.Theme,
			ScriptURL:    opts.ScriptURL,
		})
		if err != nil {
			logger.Error("contact: render section", "renderer", renderer.Name(), "error", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		header := w.Header()
		header.Set("Content-Type", renderer.ContentType())
		header.Set("Accept-CH", ReducedMotionHeader)
		header.Add("Vary", "Accept")
		header.Add("Vary", ReducedMotionHeader)
		if posting {
			header.Set("Cache-Control", "no-store")
		}
		w.WriteHeader(status)
		if r.Method == http.MethodHead {
			return
		}
		_, _ = w.Write(out)
	})
}

// submit runs one attempt and maps its outcome to a status code.
func submit(ctx context.Context, s *section.Section, values submission.Values, timeout time.Duration, logger *slog.Logger) int {
	for name, value := range values {
		if err := s.SetField(name, value); err != nil {
			logger.Debug("contact: ignoring unknown field", "field", name)
		}
	}

	submitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if _, err := s.Submit(submitCtx); err != nil {
		var missing *section.MissingFieldsError
		if errors.As(err, &missing) {
			return http.StatusBadRequest
		}
		logger.Error("contact: submit", "error", err)
		return http.StatusInternalServerError
	}

	awaitCtx, cancelAwait := context.WithTimeout(ctx, timeout+awaitGrace)
	defer cancelAwait()
	snap, err := s.Await(awaitCtx)
	if err != nil {
		// Settle as a general failure so the page renders resubmittable.
		s.Machine().Abandon(fmt.Errorf("contact: submission did not settle: %w", err))
		logger.Warn("contact: submission did not settle", "attempt", snap.Attempt, "error", err)
		return http.StatusGatewayTimeout
	}

	switch {
	case snap.State == submission.Succeeded:
		logger.Info("contact: submission accepted", "attempt", snap.Attempt)
		return http.StatusOK
	case snap.General:
		logger.Warn("contact: submission failed", "attempt", snap.Attempt, "error", snap.Err)
		return http.StatusBadGateway
	default:
		logger.Info("contact: submission rejected", "attempt", snap.Attempt, "errors", len(snap.Errors))
		return http.StatusUnprocessableEntity
	}
}

// readValues decodes the posted fields and reports whether the honeypot was
// filled in.
func readValues(w http.ResponseWriter, r *http.Request, limit int64) (submission.Values, bool, error) {
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	raw := make(map[string]string)
	if mediaType == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			return nil, false, StatusError{Code: http.StatusBadRequest, Err: fmt.Errorf("contact: decode json body: %w", err)}
		}
	} else {
		if err := r.ParseForm(); err != nil {
			return nil, false, StatusError{Code: http.StatusBadRequest, Err: fmt.Errorf("contact: parse form: %w", err)}
		}
		for key := range r.PostForm {
			raw[key] = r.PostForm.Get(key)
		}
	}

	values := make(submission.Values, len(submission.FieldNames()))
	for _, name := range submission.FieldNames() {
		values[name] = raw[name]
	}
	return values, strings.TrimSpace(raw[render.HoneypotField]) != "", nil
}

func writeError(w http.ResponseWriter, err error, fallback int) {
	if w == nil {
		return
	}
	code := fallback
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		if code <= 0 {
			code = fallback
		}
	}
	http.Error(w, http.StatusText(code), code)
}
