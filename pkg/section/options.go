package section

import (
	"log/slog"
	"time"

	"github.com/goliatone/go-contactform/pkg/reveal"
	"github.com/goliatone/go-contactform/pkg/submission"
)

// Option configures a Section.
type Option func(*config)

type config struct {
	logger         *slog.Logger
	observer       reveal.Observer
	scheduler      reveal.Scheduler
	revealConfig   reveal.Config
	stagger        time.Duration
	machineOptions []submission.Option
}

func defaultConfig() config {
	return config{
		revealConfig: reveal.DefaultConfig(),
		stagger:      reveal.DefaultStagger,
	}
}

// WithLogger routes section, machine and controller logs.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}

// WithObserver supplies the visibility source for the column reveal.
func WithObserver(observer reveal.Observer) Option {
	return func(cfg *config) {
		cfg.observer = observer
	}
}

// WithScheduler overrides the animation clock.
func WithScheduler(scheduler reveal.Scheduler) Option {
	return func(cfg *config) {
		cfg.scheduler = scheduler
	}
}

// WithRevealConfig replaces the per-column animation config. Each column's
// delay is this Delay plus its stagger offset.
func WithRevealConfig(rc reveal.Config) Option {
	return func(cfg *config) {
		cfg.revealConfig = rc
	}
}

// WithStagger sets the delay increment between the two columns.
func WithStagger(step time.Duration) Option {
	return func(cfg *config) {
		if step >= 0 {
			cfg.stagger = step
		}
	}
}

// WithMachineOptions forwards options to the submission machine.
func WithMachineOptions(options ...submission.Option) Option {
	return func(cfg *config) {
		cfg.machineOptions = append(cfg.machineOptions, options...)
	}
}
