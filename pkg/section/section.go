package section

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-contactform/pkg/content"
	"github.com/goliatone/go-contactform/pkg/reveal"
	"github.com/goliatone/go-contactform/pkg/submission"
)

// Column element IDs.
const (
	ContentColumnID = "contact-content"
	FormColumnID    = "contact-form"
)

// ErrUnknownField is returned for field names outside submission.FieldNames.
var ErrUnknownField = errors.New("section: unknown field")

// MissingFieldsError blocks a submit when required fields are empty, before
// the machine is involved.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "section: required fields are empty: " + strings.Join(e.Fields, ", ")
}

// Section is one mounted contact form. Instances share nothing.
type Section struct {
	content      content.Content
	machine      *submission.Machine
	reveal       *reveal.Controller
	revealConfig reveal.Config
	stagger      time.Duration
	logger       *slog.Logger

	mu            sync.Mutex
	values        submission.Values
	targets       []reveal.Target
	reducedMotion bool
	unsubscribe   func()
}

// New builds an unmounted section with empty fields.
func New(c content.Content, collaborator submission.Collaborator, options ...Option) *Section {
	cfg := defaultConfig()
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	logger := cfg.logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	revealOptions := []reveal.Option{reveal.WithLogger(logger)}
	if cfg.observer != nil {
		revealOptions = append(revealOptions, reveal.WithObserver(cfg.observer))
	}
	if cfg.scheduler != nil {
		revealOptions = append(revealOptions, reveal.WithScheduler(cfg.scheduler))
	}

	machineOptions := append([]submission.Option{submission.WithLogger(logger)}, cfg.machineOptions...)

	s := &Section{
		content:      c,
		machine:      submission.New(collaborator, machineOptions...),
		reveal:       reveal.New(revealOptions...),
		revealConfig: cfg.revealConfig,
		stagger:      cfg.stagger,
		logger:       logger,
		values:       emptyValues(),
	}
	s.unsubscribe = s.machine.Subscribe(s.onTransition)
	return s
}

// Content returns the display strings the section was built with.
func (s *Section) Content() content.Content {
	return s.content
}

// Machine exposes the submission state for read-only queries.
func (s *Section) Machine() *submission.Machine {
	return s.machine
}

// Mount attaches the column reveal. The form column trails the content
// column by the stagger step.
func (s *Section) Mount(contentColumn, formColumn reveal.Element, reducedMotion bool) error {
	targets := reveal.Stagger([]reveal.Element{contentColumn, formColumn}, s.revealConfig, s.stagger)
	if err := s.reveal.Attach(targets, reducedMotion); err != nil {
		return fmt.Errorf("section: mount: %w", err)
	}

	s.mu.Lock()
	s.targets = targets
	s.reducedMotion = reducedMotion
	if s.unsubscribe == nil {
		s.unsubscribe = s.machine.Subscribe(s.onTransition)
	}
	s.mu.Unlock()
	return nil
}

// Unmount detaches the reveal, releases the section's machine subscription
// and cancels any in-flight submission. Mount subscribes again. Safe to call
// repeatedly.
func (s *Section) Unmount() {
	s.reveal.Detach()

	s.mu.Lock()
	s.targets = nil
	unsubscribe := s.unsubscribe
	s.unsubscribe = nil
	s.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	s.machine.Cancel()
}

// SetField updates one field value.
func (s *Section) SetField(name, value string) error {
	name = strings.TrimSpace(name)
	if !submission.IsField(name) {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[name] = value
	return nil
}

// Value returns the current value of a field.
func (s *Section) Value(name string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[name]
}

// Values returns a copy of every field value.
func (s *Section) Values() submission.Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values.Clone()
}

// Submit hands the current values to the machine. It reports false when an
// attempt is already in flight, and fails with *MissingFieldsError when a
// required field is blank.
func (s *Section) Submit(ctx context.Context) (bool, error) {
	values := s.Values()

	var missing []string
	for _, name := range submission.FieldNames() {
		if strings.TrimSpace(values[name]) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return false, &MissingFieldsError{Fields: missing}
	}
	return s.machine.Submit(ctx, values), nil
}

// Await blocks until the current attempt settles or ctx is done.
func (s *Section) Await(ctx context.Context) (submission.Snapshot, error) {
	return s.machine.Wait(ctx)
}

func (s *Section) onTransition(snap submission.Snapshot) {
	if snap.State != submission.Succeeded {
		return
	}
	s.mu.Lock()
	s.values = emptyValues()
	s.mu.Unlock()
	s.logger.Debug("section: cleared fields after success", "attempt", snap.Attempt)
}

func emptyValues() submission.Values {
	values := make(submission.Values, len(submission.FieldNames()))
	for _, name := range submission.FieldNames() {
		values[name] = ""
	}
	return values
}
