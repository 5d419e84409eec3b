package reveal

import (
	"sort"
	"sync"
)

// Observer delivers a one-shot callback when an element's top crosses the
// threshold line of the viewport. The returned function unsubscribes; it is
// safe to call more than once.
type Observer interface {
	Observe(el Element, threshold float64, fn func()) (unsubscribe func())
}

// Viewport is an Observer over a scroll position and the document offsets
// of placed elements. Elements that are never placed never trigger.
type Viewport struct {
	mu      sync.Mutex
	height  float64
	scrollY float64
	offsets map[string]float64
	subs    map[uint64]*subscription
	nextID  uint64
}

type subscription struct {
	id        uint64
	elementID string
	threshold float64
	fn        func()
	fired     bool
}

var _ Observer = (*Viewport)(nil)

// NewViewport returns a viewport of the given height scrolled to the top.
func NewViewport(height float64) *Viewport {
	return &Viewport{
		height:  height,
		offsets: make(map[string]float64),
		subs:    make(map[uint64]*subscription),
	}
}

// Observe subscribes fn to el. If el is already past the line the callback
// fires before Observe returns.
func (v *Viewport) Observe(el Element, threshold float64, fn func()) func() {
	if el == nil || fn == nil {
		return func() {}
	}

	v.mu.Lock()
	v.nextID++
	sub := &subscription{
		id:        v.nextID,
		elementID: el.ID(),
		threshold: threshold,
		fn:        fn,
	}
	v.subs[sub.id] = sub
	due := v.collectLocked()
	v.mu.Unlock()

	fire(due)

	var once sync.Once
	return func() {
		once.Do(func() {
			v.mu.Lock()
			delete(v.subs, sub.id)
			v.mu.Unlock()
		})
	}
}

// Place records the document offset of an element's top edge.
func (v *Viewport) Place(elementID string, top float64) {
	v.mu.Lock()
	v.offsets[elementID] = top
	due := v.collectLocked()
	v.mu.Unlock()

	fire(due)
}

// ScrollTo moves the viewport and fires every subscription that crossed
// its threshold line.
func (v *Viewport) ScrollTo(y float64) {
	v.mu.Lock()
	v.scrollY = y
	due := v.collectLocked()
	v.mu.Unlock()

	fire(due)
}

// Resize changes the viewport height.
func (v *Viewport) Resize(height float64) {
	v.mu.Lock()
	v.height = height
	due := v.collectLocked()
	v.mu.Unlock()

	fire(due)
}

// Observers reports the number of live subscriptions.
func (v *Viewport) Observers() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.subs)
}

func (v *Viewport) collectLocked() []*subscription {
	var due []*subscription
	for _, sub := range v.subs {
		if sub.fired {
			continue
		}
		top, placed := v.offsets[sub.elementID]
		if !placed {
			continue
		}
		if top-v.scrollY <= sub.threshold*v.height {
			sub.fired = true
			due = append(due, sub)
		}
	}
	sort.Slice(due, func(i, j int) bool { return due[i].id < due[j].id })
	return due
}

func fire(due []*subscription) {
	for _, sub := range due {
		sub.fn()
	}
}
