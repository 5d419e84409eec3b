package reveal

import "time"

const (
	// DefaultDuration is the tween length for a single target.
	DefaultDuration = 600 * time.Millisecond
	// DefaultEase names the curve used when a config leaves Ease empty.
	DefaultEase = "power2.out"
	// DefaultThreshold triggers when an element's top reaches 85% of the
	// viewport height ("top 85%").
	DefaultThreshold = 0.85
	// DefaultOffsetY is the initial downward offset in pixels.
	DefaultOffsetY = 24
	// DefaultStagger separates consecutive targets of one batch.
	DefaultStagger = 50 * time.Millisecond
	// DefaultFrameInterval approximates one animation frame at 60Hz.
	DefaultFrameInterval = 16 * time.Millisecond
)

// Config describes how one target animates.
type Config struct {
	From     Style         `json:"from"`
	To       Style         `json:"to"`
	Duration time.Duration `json:"duration"`
	Ease     string        `json:"ease"`
	Delay    time.Duration `json:"delay"`
	// Threshold is the fraction of the viewport height, measured from its
	// top, the element's top must reach to trigger.
	Threshold float64 `json:"threshold"`
}

// DefaultConfig fades targets in from 24px below over 600ms.
func DefaultConfig() Config {
	return Config{
		From:      HiddenStyle(DefaultOffsetY),
		To:        SettledStyle(),
		Duration:  DefaultDuration,
		Ease:      DefaultEase,
		Threshold: DefaultThreshold,
	}
}

func (c Config) threshold() float64 {
	if c.Threshold <= 0 {
		return DefaultThreshold
	}
	return c.Threshold
}

func (c Config) ease() string {
	if c.Ease == "" {
		return DefaultEase
	}
	return c.Ease
}

// Target pairs an element with its animation config.
type Target struct {
	Element Element
	Config  Config
}

// Stagger builds one target per element, delaying each by index*step so a
// batch cascades instead of settling at once.
func Stagger(elements []Element, base Config, step time.Duration) []Target {
	if len(elements) == 0 {
		return nil
	}
	targets := make([]Target, 0, len(elements))
	for i, el := range elements {
		cfg := base
		cfg.Delay = base.Delay + time.Duration(i)*step
		targets = append(targets, Target{Element: el, Config: cfg})
	}
	return targets
}
