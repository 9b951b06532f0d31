package exiftool

import (
	"context"

	"github.com/mjeanroy/exiftool/process"
)

// State of a stay-open execution strategy's worker.
type State string

// Worker states.
const (
	StateNotStarted State = "not_started" // No worker spawned yet
	StateRunning    State = "running"     // Worker alive, accepting requests
	StateStopped    State = "stopped"     // Worker torn down; next call respawns
)

// StateListener observes worker state transitions. Called outside the
// strategy's request lock; implementations must not call back into the
// strategy synchronously.
type StateListener func(old, updated State)

// ExecutionStrategy decides how a logical exiftool invocation maps to OS
// processes: one throwaway process per call, one persistent worker, or a
// pool of persistent workers.
type ExecutionStrategy interface {
	// Execute runs one logical operation (the argument list of a read or
	// write) and forwards every output line to the handler.
	Execute(ctx context.Context, executor process.Executor, path string, args []string, handler process.OutputHandler) error

	// IsSupported reports whether the probed version can serve this
	// strategy. Evaluated once at engine construction, not per call.
	IsSupported(version Version) bool

	// IsRunning reports whether at least one worker is currently alive.
	IsRunning() bool

	// Close gracefully stops the workers. The strategy stays usable: the
	// next Execute respawns.
	Close() error

	// Shutdown forcibly terminates the workers and releases all resources.
	// Idempotent, best-effort.
	Shutdown() error
}
