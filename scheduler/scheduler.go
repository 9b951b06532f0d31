// Package scheduler provides the delayed-task schedulers used to tear down
// idle exiftool workers.
//
// A Scheduler arms at most one pending task at a time: Start replaces any
// pending task, Stop cancels it, Shutdown permanently releases the
// scheduler. Three variants share the interface:
//
//   - NoOp, used when idle teardown is disabled
//   - Timer, one time.AfterFunc per armed task
//   - Queue, a single background goroutine servicing arm/cancel cycles,
//     suited to one-scheduler-per-pooled-worker setups
package scheduler

// Task is the unit of work fired after the configured delay.
type Task func()

// Scheduler arms and cancels a single delayed task.
type Scheduler interface {
	// Start arms the task, replacing any currently pending one.
	Start(task Task)

	// Stop cancels the pending task if any. No-op otherwise.
	Stop()

	// Shutdown cancels the pending task and permanently releases the
	// scheduler. The scheduler cannot be restarted afterwards. Idempotent.
	Shutdown()
}

// NoOp is the scheduler used when idle teardown is disabled.
type NoOp struct{}

// NewNoOp creates a scheduler that never fires.
func NewNoOp() NoOp {
	return NoOp{}
}

// Start does nothing.
func (NoOp) Start(Task) {}

// Stop does nothing.
func (NoOp) Stop() {}

// Shutdown does nothing.
func (NoOp) Shutdown() {}
