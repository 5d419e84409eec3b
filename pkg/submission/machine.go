package submission

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// ErrNoCollaborator fails every attempt of a Machine built without one.
var ErrNoCollaborator = errors.New("submission: collaborator is nil")

// ErrAbandoned is the failure recorded by Abandon.
var ErrAbandoned = errors.New("submission: attempt abandoned")

// Collaborator delivers values to the form-processing service. A nil error
// is success, a *Rejection carries validation problems, anything else is a
// transport failure.
type Collaborator interface {
	Submit(ctx context.Context, values Values) error
}

// CollaboratorFunc adapts a function to Collaborator.
type CollaboratorFunc func(ctx context.Context, values Values) error

func (fn CollaboratorFunc) Submit(ctx context.Context, values Values) error {
	return fn(ctx, values)
}

// Option configures a Machine.
type Option func(*Machine)

// WithLogger routes lifecycle logs.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Machine) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithAttemptIDs overrides the attempt identifier generator.
func WithAttemptIDs(next func() string) Option {
	return func(m *Machine) {
		if next != nil {
			m.newID = next
		}
	}
}

// Listener observes every transition.
type Listener func(Snapshot)

type listenerEntry struct {
	id uint64
	fn Listener
}

// Machine owns the submission lifecycle of one form.
type Machine struct {
	collaborator Collaborator
	logger       *slog.Logger
	newID        func() string

	mu           sync.Mutex
	snap         Snapshot
	done         chan struct{}
	cancel       context.CancelFunc
	listeners    []listenerEntry
	nextListener uint64
}

// New returns an Idle machine delegating to collaborator.
func New(collaborator Collaborator, options ...Option) *Machine {
	m := &Machine{
		collaborator: collaborator,
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		newID:        uuid.NewString,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(m)
	}
	return m
}

// Submit starts an attempt with a copy of values and returns true. While an
// attempt is outstanding it returns false and does nothing.
func (m *Machine) Submit(ctx context.Context, values Values) bool {
	if ctx == nil {
		ctx = context.Background()
	}

	m.mu.Lock()
	if m.snap.State == Submitting {
		attempt := m.snap.Attempt
		m.mu.Unlock()
		m.logger.Debug("submission: dropped submit while in flight", "attempt", attempt)
		return false
	}

	attempt := m.newID()
	callCtx, cancel := context.WithCancel(ctx)
	m.snap = Snapshot{State: Submitting, Attempt: attempt}
	m.done = make(chan struct{})
	m.cancel = cancel
	snap := m.snapshotLocked()
	listeners := m.listenersLocked()
	m.mu.Unlock()

	m.logger.Info("submission: started", "attempt", attempt)
	notify(listeners, snap)

	go m.run(callCtx, cancel, attempt, values.Clone())
	return true
}

func (m *Machine) run(ctx context.Context, cancel context.CancelFunc, attempt string, values Values) {
	defer cancel()

	err := ErrNoCollaborator
	if m.collaborator != nil {
		err = m.collaborator.Submit(ctx, values)
	}
	m.complete(attempt, err)
}

func (m *Machine) complete(attempt string, err error) {
	m.mu.Lock()
	if m.snap.State != Submitting || m.snap.Attempt != attempt {
		m.mu.Unlock()
		return
	}

	next := Snapshot{Attempt: attempt}
	var rejection *Rejection
	switch {
	case err == nil:
		next.State = Succeeded
	case errors.As(err, &rejection) && rejection != nil:
		next.State = Failed
		next.Err = err
		for _, verr := range rejection.Errors {
			if IsField(verr.Field) {
				next.Errors = append(next.Errors, verr)
				continue
			}
			next.FormErrors = append(next.FormErrors, verr.Message)
		}
		next.FormErrors = MergeFormErrors(next.FormErrors, rejection.Form...)
		next.General = len(next.Errors) == 0
	default:
		next.State = Failed
		next.General = true
		next.Err = err
	}

	m.snap = next
	done := m.done
	m.cancel = nil
	snap := m.snapshotLocked()
	listeners := m.listenersLocked()
	m.mu.Unlock()

	if snap.State == Succeeded {
		m.logger.Info("submission: succeeded", "attempt", attempt)
	} else {
		m.logger.Warn("submission: failed",
			"attempt", attempt,
			"field_errors", len(snap.Errors),
			"general", snap.General,
			"error", err,
		)
	}
	notify(listeners, snap)
	// Waiters resume only after listeners have seen the outcome.
	close(done)
}

// Wait blocks until the latest attempt has settled and its listeners have
// run, or ctx is done. It returns immediately when nothing was submitted.
func (m *Machine) Wait(ctx context.Context) (Snapshot, error) {
	m.mu.Lock()
	done := m.done
	m.mu.Unlock()

	if done == nil {
		return m.Snapshot(), nil
	}
	select {
	case <-done:
		return m.Snapshot(), nil
	case <-ctx.Done():
		return m.Snapshot(), ctx.Err()
	}
}

// Cancel cancels the context handed to the outstanding collaborator call.
// The attempt settles once the collaborator returns.
func (m *Machine) Cancel() {
	m.mu.Lock()
	cancel := m.cancel
	m.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// Abandon settles the outstanding attempt as a transport failure without
// waiting for the collaborator, and cancels its context. A late response from
// the abandoned call is ignored. It reports false when nothing was in flight.
func (m *Machine) Abandon(err error) bool {
	if err == nil {
		err = ErrAbandoned
	}
	m.mu.Lock()
	if m.snap.State != Submitting {
		m.mu.Unlock()
		return false
	}
	attempt := m.snap.Attempt
	cancel := m.cancel
	m.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	m.complete(attempt, err)
	return true
}

// Subscribe registers fn for every later transition.
func (m *Machine) Subscribe(fn Listener) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}

	m.mu.Lock()
	m.nextListener++
	id := m.nextListener
	m.listeners = append(m.listeners, listenerEntry{id: id, fn: fn})
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			for i, entry := range m.listeners {
				if entry.id == id {
					m.listeners = append(m.listeners[:i], m.listeners[i+1:]...)
					return
				}
			}
		})
	}
}

// Snapshot returns a copy of the current state.
func (m *Machine) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snap.State
}

func (m *Machine) IsSubmitting() bool {
	return m.State() == Submitting
}

func (m *Machine) HasSucceeded() bool {
	return m.State() == Succeeded
}

func (m *Machine) HasFailed() bool {
	return m.State() == Failed
}

// GeneralFailure reports a failure that carries no field-level detail.
func (m *Machine) GeneralFailure() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snap.State == Failed && m.snap.General
}

// ErrorsFor returns the validation messages attached to field.
func (m *Machine) ErrorsFor(field string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snap.ErrorsFor(field)
}

// FormErrors returns failure messages not tied to a field.
func (m *Machine) FormErrors() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.snap.FormErrors...)
}

func (m *Machine) snapshotLocked() Snapshot {
	out := m.snap
	out.Errors = append([]ValidationError(nil), m.snap.Errors...)
	out.FormErrors = append([]string(nil), m.snap.FormErrors...)
	return out
}

func (m *Machine) listenersLocked() []Listener {
	if len(m.listeners) == 0 {
		return nil
	}
	out := make([]Listener, 0, len(m.listeners))
	for _, entry := range m.listeners {
		out = append(out, entry.fn)
	}
	return out
}

func notify(listeners []Listener, snap Snapshot) {
	for _, fn := range listeners {
		fn(snap)
	}
}
