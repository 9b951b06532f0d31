package scheduler

import (
	"sync"
	"time"
)

// Timer fires a single pending task after a fixed delay, backed by one
// time.AfterFunc. The name identifies the scheduler in logs and debugging.
type Timer struct {
	name  string
	delay Duration

	mu     sync.Mutex
	timer  *time.Timer
	closed bool
}

// NewTimer creates a timer scheduler. The delay is validated at
// construction: a non-positive delay or time unit is rejected immediately.
func NewTimer(name string, delay Duration) (*Timer, error) {
	if err := delay.validate(); err != nil {
		return nil, err
	}
	return &Timer{name: name, delay: delay}, nil
}

// Name returns the scheduler's identifying name.
func (s *Timer) Name() string {
	return s.name
}

// Start arms the task, atomically cancelling any pending one first.
func (s *Timer) Start(task Task) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.cancelPending()
	s.timer = time.AfterFunc(s.delay.Interval(), task)
}

// Stop cancels the pending task if one exists.
func (s *Timer) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelPending()
}

// Shutdown cancels the pending task and prevents any further Start.
func (s *Timer) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelPending()
	s.closed = true
}

// cancelPending must be called with s.mu held.
func (s *Timer) cancelPending() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
