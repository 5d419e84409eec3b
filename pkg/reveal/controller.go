package reveal

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/goliatone/go-contactform/pkg/reveal/ease"
)

var (
	// ErrAttached is returned when Attach is called on an attached controller.
	ErrAttached = errors.New("reveal: controller already attached")
	// ErrNoObserver is returned when animated targets are attached without an
	// Observer to trigger them.
	ErrNoObserver = errors.New("reveal: observer is required unless motion is reduced")
)

// Option configures a Controller.
type Option func(*Controller)

// WithObserver sets the visibility source used for animated attaches.
func WithObserver(observer Observer) Option {
	return func(c *Controller) {
		c.observer = observer
	}
}

// WithScheduler overrides the wall-clock scheduler.
func WithScheduler(scheduler Scheduler) Option {
	return func(c *Controller) {
		if scheduler != nil {
			c.scheduler = scheduler
		}
	}
}

// WithLogger routes diagnostics (skipped targets, dropped callbacks).
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithFrameInterval sets the delay between animation frames.
func WithFrameInterval(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.frame = d
		}
	}
}

// Controller animates one batch of targets per attach cycle.
type Controller struct {
	observer  Observer
	scheduler Scheduler
	logger    *slog.Logger
	frame     time.Duration

	mu           sync.Mutex
	generation   uint64
	attached     bool
	unsubscribes []func()
	timers       map[Timer]struct{}
}

type run struct {
	target  Target
	curve   ease.Func
	fired   bool
	started time.Time
}

// New constructs a detached controller.
func New(options ...Option) *Controller {
	c := &Controller{
		scheduler: SystemScheduler{},
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		frame:     DefaultFrameInterval,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

// Attached reports whether a cycle is active.
func (c *Controller) Attached() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.attached
}

// Attach starts a cycle over targets. With reducedMotion every connected
// target is settled before Attach returns and nothing is observed.
func (c *Controller) Attach(targets []Target, reducedMotion bool) error {
	var curves []ease.Func
	if !reducedMotion {
		if c.observer == nil {
			return ErrNoObserver
		}
		curves = make([]ease.Func, len(targets))
		for i, target := range targets {
			curve, err := ease.Resolve(target.Config.ease())
			if err != nil {
				return fmt.Errorf("reveal: target %d: %w", i, err)
			}
			curves[i] = curve
		}
	}

	c.mu.Lock()
	if c.attached {
		c.mu.Unlock()
		return ErrAttached
	}
	c.attached = true
	c.generation++
	gen := c.generation
	c.timers = make(map[Timer]struct{})
	c.unsubscribes = nil

	if reducedMotion {
		for _, target := range targets {
			if !c.usable(target.Element, "attach") {
				continue
			}
			target.Element.Apply(target.Config.To)
		}
		c.mu.Unlock()
		return nil
	}

	runs := make([]*run, 0, len(targets))
	for i, target := range targets {
		if !c.usable(target.Element, "attach") {
			continue
		}
		target.Element.Apply(target.Config.From)
		runs = append(runs, &run{target: target, curve: curves[i]})
	}
	c.mu.Unlock()

	for _, r := range runs {
		unsubscribe := c.observer.Observe(r.target.Element, r.target.Config.threshold(), func() {
			c.trigger(gen, r)
		})

		c.mu.Lock()
		if c.generation != gen {
			c.mu.Unlock()
			unsubscribe()
			return nil
		}
		c.unsubscribes = append(c.unsubscribes, unsubscribe)
		c.mu.Unlock()
	}
	return nil
}

// Detach ends the current cycle: observers are released and scheduled frames
// cancelled before it returns. Calling it on a detached controller is a no-op.
func (c *Controller) Detach() {
	c.mu.Lock()
	if !c.attached {
		c.mu.Unlock()
		return
	}
	c.attached = false
	c.generation++
	for timer := range c.timers {
		timer.Stop()
	}
	c.timers = nil
	unsubscribes := c.unsubscribes
	c.unsubscribes = nil
	c.mu.Unlock()

	for _, unsubscribe := range unsubscribes {
		unsubscribe()
	}
}

func (c *Controller) trigger(gen uint64, r *run) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.generation != gen {
		c.logger.Debug("reveal: dropped trigger from previous cycle", "target", r.target.Element.ID())
		return
	}
	if r.fired {
		return
	}
	r.fired = true
	c.scheduleLocked(gen, r.target.Config.Delay, func() { c.beginLocked(gen, r) })
}

func (c *Controller) beginLocked(gen uint64, r *run) {
	el := r.target.Element
	if !c.usable(el, "begin") {
		return
	}
	cfg := r.target.Config
	if cfg.Duration <= 0 {
		el.Apply(cfg.To)
		return
	}
	r.started = c.scheduler.Now()
	c.scheduleLocked(gen, c.frame, func() { c.stepLocked(gen, r) })
}

func (c *Controller) stepLocked(gen uint64, r *run) {
	el := r.target.Element
	if !c.usable(el, "frame") {
		return
	}
	cfg := r.target.Config
	progress := float64(c.scheduler.Now().Sub(r.started)) / float64(cfg.Duration)
	if progress >= 1 {
		el.Apply(cfg.To)
		return
	}
	el.Apply(Lerp(cfg.From, cfg.To, r.curve(progress)))
	c.scheduleLocked(gen, c.frame, func() { c.stepLocked(gen, r) })
}

// scheduleLocked must be called with c.mu held. The callback runs with c.mu
// held and only if the cycle that scheduled it is still current.
func (c *Controller) scheduleLocked(gen uint64, d time.Duration, fn func()) {
	var timer Timer
	timer = c.scheduler.AfterFunc(d, func() {
		c.mu.Lock()
		defer c.mu.Unlock()

		if c.timers != nil {
			delete(c.timers, timer)
		}
		if c.generation != gen {
			return
		}
		fn()
	})
	if c.timers != nil {
		c.timers[timer] = struct{}{}
	}
}

func (c *Controller) usable(el Element, phase string) bool {
	if el == nil {
		c.logger.Debug("reveal: skipped nil target", "phase", phase)
		return false
	}
	if !el.Connected() {
		c.logger.Debug("reveal: skipped disconnected target", "target", el.ID(), "phase", phase)
		return false
	}
	return true
}
