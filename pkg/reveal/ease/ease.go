// Package ease holds the process-wide registry of easing curves used by the
// reveal controller.
//
// Nothing is registered on import. Binaries call Install once at startup to
// load the built-in curves; additional curves can be added with Register.
package ease

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
)

// Func maps normalised progress in [0,1] to eased progress.
type Func func(t float64) float64

// ErrUnknown is returned by Resolve when no curve is registered under a name.
var ErrUnknown = errors.New("ease: unknown curve")

var (
	mu       sync.RWMutex
	registry = make(map[string]Func)

	installOnce sync.Once
)

// Install registers the built-in curves. Safe to call more than once; only
// the first call has an effect.
func Install() {
	installOnce.Do(func() {
		builtins := map[string]Func{
			"none":   Linear,
			"linear": Linear,
			"sine.in": func(t float64) float64 {
				return 1 - math.Cos(t*math.Pi/2)
			},
			"sine.out": func(t float64) float64 {
				return math.Sin(t * math.Pi / 2)
			},
			"sine.inOut": func(t float64) float64 {
				return -(math.Cos(math.Pi*t) - 1) / 2
			},
		}
		for power := 1; power <= 4; power++ {
			exp := float64(power + 1)
			builtins[fmt.Sprintf("power%d.in", power)] = powerIn(exp)
			builtins[fmt.Sprintf("power%d.out", power)] = powerOut(exp)
			builtins[fmt.Sprintf("power%d.inOut", power)] = powerInOut(exp)
		}

		mu.Lock()
		defer mu.Unlock()
		for name, fn := range builtins {
			if _, exists := registry[name]; !exists {
				registry[name] = fn
			}
		}
	})
}

// Register adds a named curve. Duplicate names return an error.
func Register(name string, fn Func) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("ease: name is required")
	}
	if fn == nil {
		return fmt.Errorf("ease: curve %q is nil", name)
	}

	mu.Lock()
	defer mu.Unlock()

	if _, exists := registry[name]; exists {
		return fmt.Errorf("ease: curve %q already registered", name)
	}
	registry[name] = fn
	return nil
}

// Lookup returns the curve registered under name.
func Lookup(name string) (Func, bool) {
	mu.RLock()
	defer mu.RUnlock()

	fn, ok := registry[strings.TrimSpace(name)]
	return fn, ok
}

// Resolve is Lookup with an error for unknown names.
func Resolve(name string) (Func, error) {
	fn, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknown, name)
	}
	return fn, nil
}

// Names lists registered curves in sorted order.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Linear is the identity curve.
func Linear(t float64) float64 {
	return clamp(t)
}

func powerIn(exp float64) Func {
	return func(t float64) float64 {
		return math.Pow(clamp(t), exp)
	}
}

func powerOut(exp float64) Func {
	return func(t float64) float64 {
		return 1 - math.Pow(1-clamp(t), exp)
	}
}

func powerInOut(exp float64) Func {
	return func(t float64) float64 {
		t = clamp(t)
		if t < 0.5 {
			return math.Pow(2*t, exp) / 2
		}
		return 1 - math.Pow(2*(1-t), exp)/2
	}
}

func clamp(t float64) float64 {
	switch {
	case t < 0:
		return 0
	case t > 1:
		return 1
	default:
		return t
	}
}
