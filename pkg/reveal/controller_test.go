package reveal

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-contactform/pkg/reveal/ease"
)

func TestMain(m *testing.M) {
	ease.Install()
	os.Exit(m.Run())
}

type harness struct {
	viewport  *Viewport
	scheduler *ManualScheduler
	ctrl      *Controller
}

func newHarness() harness {
	viewport := NewViewport(1000)
	scheduler := NewManualScheduler(time.Unix(0, 0))
	return harness{
		viewport:  viewport,
		scheduler: scheduler,
		ctrl:      New(WithObserver(viewport), WithScheduler(scheduler)),
	}
}

func TestAttach_ReducedMotionSettlesImmediately(t *testing.T) {
	h := newHarness()
	content, form := NewNode("content"), NewNode("form")
	h.viewport.Place("content", 5000)

	targets := Stagger([]Element{content, form}, DefaultConfig(), DefaultStagger)
	if err := h.ctrl.Attach(targets, true); err != nil {
		t.Fatalf("attach: %v", err)
	}

	for _, node := range []*Node{content, form} {
		if diff := cmp.Diff(SettledStyle(), node.Style()); diff != "" {
			t.Fatalf("%s not settled (-want +got):\n%s", node.ID(), diff)
		}
		if got := len(node.History()); got != 1 {
			t.Fatalf("%s: expected a single style write, got %d", node.ID(), got)
		}
	}
	if got := h.viewport.Observers(); got != 0 {
		t.Fatalf("expected no observers under reduced motion, got %d", got)
	}
	if got := h.scheduler.Pending(); got != 0 {
		t.Fatalf("expected nothing scheduled under reduced motion, got %d", got)
	}
}

func TestAttach_WaitsForThreshold(t *testing.T) {
	h := newHarness()
	node := NewNode("form")
	h.viewport.Place("form", 2000)

	if err := h.ctrl.Attach([]Target{{Element: node, Config: DefaultConfig()}}, false); err != nil {
		t.Fatalf("attach: %v", err)
	}
	if diff := cmp.Diff(HiddenStyle(DefaultOffsetY), node.Style()); diff != "" {
		t.Fatalf("initial style mismatch (-want +got):\n%s", diff)
	}

	h.scheduler.Advance(10 * time.Second)
	h.viewport.ScrollTo(1100) // top at 900px, line at 850px
	h.scheduler.Advance(10 * time.Second)
	if got := len(node.History()); got != 1 {
		t.Fatalf("animation started before crossing threshold: %d writes", got)
	}

	h.viewport.ScrollTo(1200)
	h.scheduler.Advance(DefaultFrameInterval)
	mid := node.Style()
	if mid.Hidden || mid.Opacity <= 0 || mid.Opacity >= 1 {
		t.Fatalf("expected a partial frame after crossing, got %+v", mid)
	}

	h.scheduler.Advance(time.Second)
	if diff := cmp.Diff(SettledStyle(), node.Style()); diff != "" {
		t.Fatalf("final style mismatch (-want +got):\n%s", diff)
	}
	if got := h.scheduler.Pending(); got != 0 {
		t.Fatalf("expected no pending frames after settling, got %d", got)
	}
}

func TestAttach_StaggersBatch(t *testing.T) {
	h := newHarness()
	first, second := NewNode("content"), NewNode("form")
	h.viewport.Place("content", 100)
	h.viewport.Place("form", 100)

	targets := Stagger([]Element{first, second}, DefaultConfig(), DefaultStagger)
	if err := h.ctrl.Attach(targets, false); err != nil {
		t.Fatalf("attach: %v", err)
	}

	h.scheduler.Advance(DefaultFrameInterval)
	if got := len(first.History()); got < 2 {
		t.Fatalf("expected first target to be animating, got %d writes", got)
	}
	if got := len(second.History()); got != 1 {
		t.Fatalf("expected second target to wait for its delay, got %d writes", got)
	}

	h.scheduler.Advance(DefaultStagger)
	if got := len(second.History()); got < 2 {
		t.Fatalf("expected second target to animate after its delay, got %d writes", got)
	}
	if first.Style().Opacity <= second.Style().Opacity {
		t.Fatalf("expected first target ahead of second: %+v vs %+v", first.Style(), second.Style())
	}

	h.scheduler.Advance(time.Second)
	for _, node := range []*Node{first, second} {
		if diff := cmp.Diff(SettledStyle(), node.Style()); diff != "" {
			t.Fatalf("%s not settled (-want +got):\n%s", node.ID(), diff)
		}
	}
}

func TestDetach_CancelsInFlightAndIsIdempotent(t *testing.T) {
	h := newHarness()
	node := NewNode("form")
	h.viewport.Place("form", 0)

	if err := h.ctrl.Attach([]Target{{Element: node, Config: DefaultConfig()}}, false); err != nil {
		t.Fatalf("attach: %v", err)
	}
	h.scheduler.Advance(3 * DefaultFrameInterval)
	writes := len(node.History())

	h.ctrl.Detach()
	h.ctrl.Detach()

	if h.ctrl.Attached() {
		t.Fatalf("expected controller to be detached")
	}
	if got := h.viewport.Observers(); got != 0 {
		t.Fatalf("expected observers released, got %d", got)
	}
	if got := h.scheduler.Pending(); got != 0 {
		t.Fatalf("expected scheduled frames cancelled, got %d", got)
	}

	h.scheduler.Advance(time.Second)
	if got := len(node.History()); got != writes {
		t.Fatalf("style written after detach: %d -> %d", writes, got)
	}
}

func TestDetach_WithoutAttach(t *testing.T) {
	ctrl := New()
	ctrl.Detach()
	if ctrl.Attached() {
		t.Fatalf("expected detached controller")
	}
}

func TestAttach_SkipsRemovedTargets(t *testing.T) {
	h := newHarness()
	kept, removed := NewNode("content"), NewNode("form")
	h.viewport.Place("content", 1500)
	h.viewport.Place("form", 1500)

	targets := Stagger([]Element{kept, removed}, DefaultConfig(), DefaultStagger)
	if err := h.ctrl.Attach(targets, false); err != nil {
		t.Fatalf("attach: %v", err)
	}

	removed.Remove()
	h.viewport.ScrollTo(1000)
	h.scheduler.Advance(time.Second)

	if diff := cmp.Diff(SettledStyle(), kept.Style()); diff != "" {
		t.Fatalf("kept target not settled (-want +got):\n%s", diff)
	}
	if got := len(removed.History()); got != 1 {
		t.Fatalf("removed target animated: %d writes", got)
	}
}

func TestAttach_RemovedMidAnimationStops(t *testing.T) {
	h := newHarness()
	node := NewNode("form")
	h.viewport.Place("form", 0)

	if err := h.ctrl.Attach([]Target{{Element: node, Config: DefaultConfig()}}, false); err != nil {
		t.Fatalf("attach: %v", err)
	}
	h.scheduler.Advance(2 * DefaultFrameInterval)
	node.Remove()
	writes := len(node.History())

	h.scheduler.Advance(time.Second)
	if got := len(node.History()); got != writes {
		t.Fatalf("expected no writes after removal, got %d -> %d", writes, got)
	}
	if got := h.scheduler.Pending(); got != 0 {
		t.Fatalf("expected animation loop to stop, got %d pending", got)
	}
}

func TestAttach_ReattachDoesNotLeakObservers(t *testing.T) {
	h := newHarness()
	nodes := []Element{NewNode("content"), NewNode("form")}

	for cycle := 0; cycle < 3; cycle++ {
		if err := h.ctrl.Attach(Stagger(nodes, DefaultConfig(), DefaultStagger), false); err != nil {
			t.Fatalf("attach cycle %d: %v", cycle, err)
		}
		if got := h.viewport.Observers(); got != len(nodes) {
			t.Fatalf("cycle %d: expected %d observers, got %d", cycle, len(nodes), got)
		}
		h.ctrl.Detach()
		if got := h.viewport.Observers(); got != 0 {
			t.Fatalf("cycle %d: expected observers released, got %d", cycle, got)
		}
	}
}

func TestAttach_TwiceFails(t *testing.T) {
	h := newHarness()
	targets := []Target{{Element: NewNode("form"), Config: DefaultConfig()}}

	if err := h.ctrl.Attach(targets, false); err != nil {
		t.Fatalf("attach: %v", err)
	}
	if err := h.ctrl.Attach(targets, false); !errors.Is(err, ErrAttached) {
		t.Fatalf("expected ErrAttached, got %v", err)
	}
}

func TestAttach_UnknownEaseLeavesTargetsUntouched(t *testing.T) {
	h := newHarness()
	node := NewNode("form")
	cfg := DefaultConfig()
	cfg.Ease = "elastic.sideways"

	err := h.ctrl.Attach([]Target{{Element: node, Config: cfg}}, false)
	if !errors.Is(err, ease.ErrUnknown) {
		t.Fatalf("expected ease.ErrUnknown, got %v", err)
	}
	if got := len(node.History()); got != 0 {
		t.Fatalf("expected target untouched, got %d writes", got)
	}
	if h.ctrl.Attached() {
		t.Fatalf("failed attach must not leave the controller attached")
	}
}

func TestAttach_RequiresObserverUnlessReduced(t *testing.T) {
	ctrl := New()
	targets := []Target{{Element: NewNode("form"), Config: DefaultConfig()}}

	if err := ctrl.Attach(targets, false); !errors.Is(err, ErrNoObserver) {
		t.Fatalf("expected ErrNoObserver, got %v", err)
	}
	if err := ctrl.Attach(targets, true); err != nil {
		t.Fatalf("reduced attach without observer: %v", err)
	}
}

func TestAttach_ZeroDurationSettlesOnTrigger(t *testing.T) {
	h := newHarness()
	node := NewNode("form")
	cfg := DefaultConfig()
	cfg.Duration = 0
	h.viewport.Place("form", 0)

	if err := h.ctrl.Attach([]Target{{Element: node, Config: cfg}}, false); err != nil {
		t.Fatalf("attach: %v", err)
	}
	h.scheduler.Advance(0)

	want := []Style{HiddenStyle(DefaultOffsetY), SettledStyle()}
	if diff := cmp.Diff(want, node.History()); diff != "" {
		t.Fatalf("history mismatch (-want +got):\n%s", diff)
	}
}
