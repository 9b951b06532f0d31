package scheduler

import (
	"sync"
	"time"
)

// queueCapacity bounds the pending command queue of a Queue scheduler.
const queueCapacity = 16

type queueOp int

const (
	opArm queueOp = iota
	opCancel
)

type queueCmd struct {
	op   queueOp
	task Task
}

// Queue is a scheduler backed by a single background goroutine servicing a
// bounded command queue. Arm/cancel cycles are cheap (a channel send), so
// this variant suits pools where every worker re-arms its own scheduler on
// each call.
type Queue struct {
	delay Duration
	cmds  chan queueCmd
	done  chan struct{}
	once  sync.Once
}

// NewQueue creates a queue scheduler and starts its worker goroutine. The
// delay is validated at construction. Shutdown releases the goroutine
// permanently.
func NewQueue(delay Duration) (*Queue, error) {
	if err := delay.validate(); err != nil {
		return nil, err
	}
	s := &Queue{
		delay: delay,
		cmds:  make(chan queueCmd, queueCapacity),
		done:  make(chan struct{}),
	}
	go s.run()
	return s, nil
}

// Start arms the task, replacing any pending one.
func (s *Queue) Start(task Task) {
	select {
	case s.cmds <- queueCmd{op: opArm, task: task}:
	case <-s.done:
	}
}

// Stop cancels the pending task if one exists.
func (s *Queue) Stop() {
	select {
	case s.cmds <- queueCmd{op: opCancel}:
	case <-s.done:
	}
}

// Shutdown cancels the pending task and stops the worker goroutine.
func (s *Queue) Shutdown() {
	s.once.Do(func() {
		close(s.done)
	})
}

func (s *Queue) run() {
	timer := time.NewTimer(s.delay.Interval())
	if !timer.Stop() {
		<-timer.C
	}

	var pending Task
	for {
		select {
		case cmd := <-s.cmds:
			s.disarm(timer, pending != nil)
			pending = nil
			if cmd.op == opArm {
				pending = cmd.task
				timer.Reset(s.delay.Interval())
			}
		case <-timer.C:
			task := pending
			pending = nil
			if task != nil {
				task()
			}
		case <-s.done:
			s.disarm(timer, pending != nil)
			return
		}
	}
}

// disarm stops the timer and drains a stale tick if one was armed.
func (s *Queue) disarm(timer *time.Timer, armed bool) {
	if !armed {
		return
	}
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
}
