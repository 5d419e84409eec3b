package contact

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-contactform/pkg/content"
	"github.com/goliatone/go-contactform/pkg/render"
	"github.com/goliatone/go-contactform/pkg/section"
	"github.com/goliatone/go-contactform/pkg/submission"
)

const (
	defaultRoutePath     = "/contact"
	defaultAssetsPath    = "/contact/assets"
	defaultSubmitTimeout = 10 * time.Second
	defaultMaxBodyBytes  = 64 << 10

	// ReducedMotionHeader is the client hint consulted by PrefersReducedMotion.
	ReducedMotionHeader = "Sec-CH-Prefers-Reduced-Motion"
)

type GuardFunc func(r *http.Request) error

// MotionFunc reports whether a request prefers reduced motion.
type MotionFunc func(r *http.Request) bool

// HiddenFieldsFunc supplies per-request hidden inputs such as CSRF tokens.
type HiddenFieldsFunc func(r *http.Request) map[string]string

type Options struct {
	RoutePath  string
	AssetsPath string
	// ScriptURL is where pages load the reveal runtime from. Route
	// registration fills it in from AssetsPath when empty.
	ScriptURL string

	Content      content.Content
	Collaborator submission.Collaborator
	Registry     *render.Registry
	Theme        *theme.RendererConfig

	SubmitTimeout time.Duration
	MaxBodyBytes  int64
	ReducedMotion MotionFunc
	HiddenFields  HiddenFieldsFunc
	Guard         GuardFunc
	Logger        *slog.Logger

	SectionOptions []section.Option
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath:     defaultRoutePath,
		AssetsPath:    defaultAssetsPath,
		Content:       content.Default(),
		SubmitTimeout: defaultSubmitTimeout,
		MaxBodyBytes:  defaultMaxBodyBytes,
		ReducedMotion: PrefersReducedMotion,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if strings.TrimSpace(opts.RoutePath) == "" {
		opts.RoutePath = defaultRoutePath
	}
	if strings.TrimSpace(opts.AssetsPath) == "" {
		opts.AssetsPath = defaultAssetsPath
	}
	if opts.SubmitTimeout <= 0 {
		opts.SubmitTimeout = defaultSubmitTimeout
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = defaultMaxBodyBytes
	}
	if opts.ReducedMotion == nil {
		opts.ReducedMotion = PrefersReducedMotion
	}
	if opts.SectionOptions != nil {
		opts.SectionOptions = append([]section.Option{}, opts.SectionOptions...)
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

func WithAssetsPath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.AssetsPath = path
	}
}

func WithScriptURL(url string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.ScriptURL = url
	}
}

func WithContent(c content.Content) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Content = c.WithDefaults(content.Default())
	}
}

func WithCollaborator(collaborator submission.Collaborator) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Collaborator = collaborator
	}
}

// WithRegistry replaces the renderer set used for content negotiation.
func WithRegistry(registry *render.Registry) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Registry = registry
	}
}

func WithTheme(cfg *theme.RendererConfig) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Theme = cfg
	}
}

func WithSubmitTimeout(d time.Duration) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.SubmitTimeout = d
	}
}

func WithMaxBodyBytes(n int64) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxBodyBytes = n
	}
}

// WithReducedMotion overrides how reduced motion is detected.
func WithReducedMotion(fn MotionFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.ReducedMotion = fn
	}
}

// WithAlwaysReducedMotion disables the entrance animation for every request.
func WithAlwaysReducedMotion() OptionFn {
	return WithReducedMotion(func(*http.Request) bool { return true })
}

func WithHiddenFields(fn HiddenFieldsFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.HiddenFields = fn
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

func WithLogger(logger *slog.Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}

func WithSectionOptions(options ...section.Option) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.SectionOptions = append(o.SectionOptions, options...)
	}
}

// PrefersReducedMotion reads the reduced motion client hint, letting a
// "motion" query parameter ("reduce" or "full") override it.
func PrefersReducedMotion(r *http.Request) bool {
	if r == nil {
		return false
	}
	switch strings.ToLower(r.URL.Query().Get("motion")) {
	case "reduce":
		return true
	case "full":
		return false
	}
	return strings.EqualFold(strings.TrimSpace(r.Header.Get(ReducedMotionHeader)), "reduce")
}
