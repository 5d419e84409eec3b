package reveal

import (
	"sync"
	"time"
)

// Timer is a scheduled callback that can be cancelled.
type Timer interface {
	Stop() bool
}

// Scheduler supplies time and deferred execution to the controller.
type Scheduler interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) Timer
}

// SystemScheduler runs callbacks on the wall clock.
type SystemScheduler struct{}

func (SystemScheduler) Now() time.Time {
	return time.Now()
}

func (SystemScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// ManualScheduler only moves when Advance is called, running due callbacks
// in time order on the caller's goroutine.
type ManualScheduler struct {
	mu      sync.Mutex
	now     time.Time
	seq     uint64
	pending []*manualTimer
}

type manualTimer struct {
	owner *ManualScheduler
	at    time.Time
	seq   uint64
	fn    func()
	done  bool
}

var (
	_ Scheduler = SystemScheduler{}
	_ Scheduler = (*ManualScheduler)(nil)
)

// NewManualScheduler starts the clock at start.
func NewManualScheduler(start time.Time) *ManualScheduler {
	return &ManualScheduler{now: start}
}

func (s *ManualScheduler) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

func (s *ManualScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	if d < 0 {
		d = 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	timer := &manualTimer{owner: s, at: s.now.Add(d), seq: s.seq, fn: fn}
	s.pending = append(s.pending, timer)
	return timer
}

// Advance moves the clock forward by d, firing callbacks that come due,
// including ones scheduled by earlier callbacks within the window.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now.Add(d)
	s.mu.Unlock()

	for {
		s.mu.Lock()
		next := s.nextDueLocked(target)
		if next == nil {
			if target.After(s.now) {
				s.now = target
			}
			s.mu.Unlock()
			return
		}
		next.done = true
		s.removeLocked(next)
		if next.at.After(s.now) {
			s.now = next.at
		}
		fn := next.fn
		s.mu.Unlock()

		if fn != nil {
			fn()
		}
	}
}

// Pending reports how many callbacks are scheduled.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

func (s *ManualScheduler) nextDueLocked(target time.Time) *manualTimer {
	var next *manualTimer
	for _, timer := range s.pending {
		if timer.at.After(target) {
			continue
		}
		if next == nil || timer.at.Before(next.at) || (timer.at.Equal(next.at) && timer.seq < next.seq) {
			next = timer
		}
	}
	return next
}

func (s *ManualScheduler) removeLocked(target *manualTimer) {
	for i, timer := range s.pending {
		if timer == target {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			return
		}
	}
}

func (t *manualTimer) Stop() bool {
	s := t.owner
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.done {
		return false
	}
	t.done = true
	s.removeLocked(t)
	return true
}
