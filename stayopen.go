package exiftool

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strconv"
	"sync"

	"github.com/mjeanroy/exiftool/process"
	"github.com/mjeanroy/exiftool/scheduler"
)

// stayOpenMinVersion is the first exiftool release shipping the
// -stay_open daemon mode.
var stayOpenMinVersion = Version{Major: 8, Minor: 36}

// StayOpenOptions configures a StayOpenStrategy.
type StayOpenOptions struct {
	// Scheduler arms the idle-timeout teardown task. Nil disables idle
	// teardown (a no-op scheduler is used).
	Scheduler scheduler.Scheduler

	// Logger for worker lifecycle events. Nil uses slog.Default().
	Logger *slog.Logger

	// OnStateChange is invoked on every worker state transition (optional).
	OnStateChange StateListener
}

// StayOpenStrategy keeps one exiftool worker alive across calls, speaking
// the -stay_open line protocol over its stdin/stdout pipes. Requests are
// strictly serialized: the protocol has no multiplexing, so a second
// concurrent caller waits for the first to complete.
type StayOpenStrategy struct {
	scheduler     scheduler.Scheduler
	logger        *slog.Logger
	onStateChange StateListener

	// reqMu serializes requests and graceful close: one in-flight
	// request at a time.
	reqMu sync.Mutex

	// stateMu guards worker and state so Shutdown can reclaim the worker
	// without waiting behind an in-flight request.
	stateMu sync.Mutex
	worker  process.Process
	state   State

	// Per-session sentinel. The worker echoes readyMarker after each
	// response; a random token keeps the marker from ever colliding with
	// real tool output.
	endMarker   string
	readyMarker string
}

// NewStayOpenStrategy creates a persistent-worker strategy. The worker is
// spawned lazily on the first Execute.
func NewStayOpenStrategy(opts *StayOpenOptions) *StayOpenStrategy {
	if opts == nil {
		opts = &StayOpenOptions{}
	}

	sched := opts.Scheduler
	if sched == nil {
		sched = scheduler.NewNoOp()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &StayOpenStrategy{
		scheduler:     sched,
		logger:        logger,
		onStateChange: opts.OnStateChange,
		state:         StateNotStarted,
	}
	s.rotateSentinel()
	return s
}

// rotateSentinel picks a fresh random token for the request terminator.
// exiftool echoes "{readyNUM}" when the request ends with "-executeNUM".
func (s *StayOpenStrategy) rotateSentinel() {
	token := strconv.Itoa(10000 + rand.Intn(89999))
	s.endMarker = "-execute" + token
	s.readyMarker = "{ready" + token + "}"
}

// Execute sends one request to the worker and forwards response lines to
// the handler until the sentinel echo is observed. The sentinel line is
// consumed, never forwarded. On success the idle-timeout scheduler is
// re-armed.
func (s *StayOpenStrategy) Execute(ctx context.Context, executor process.Executor, path string, args []string, handler process.OutputHandler) error {
	s.reqMu.Lock()
	defer s.reqMu.Unlock()

	// Hold off a pending teardown while the request is in flight.
	s.scheduler.Stop()

	worker, err := s.ensureWorker(ctx, executor, path)
	if err != nil {
		return err
	}

	request := make([]string, 0, len(args)+1)
	request = append(request, args...)
	request = append(request, s.endMarker)

	if err := worker.Write(request...); err != nil {
		s.teardown(worker)
		return &TransportError{Op: "write request", cause: err}
	}

	forwarding := true
	err = worker.Read(func(line string) bool {
		if line == s.readyMarker {
			return false
		}
		if forwarding {
			forwarding = handler(line)
		}
		return true
	})
	if err != nil {
		s.teardown(worker)
		return &TransportError{Op: "read response", cause: err}
	}

	s.scheduler.Start(s.idleClose)
	return nil
}

// ensureWorker spawns the worker if the strategy is NOT_STARTED or STOPPED,
// or if the previous worker died behind our back.
func (s *StayOpenStrategy) ensureWorker(ctx context.Context, executor process.Executor, path string) (process.Process, error) {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()

	if s.state == StateRunning && s.worker != nil && s.worker.IsRunning() {
		return s.worker, nil
	}

	cmd, err := process.NewCommand(path, "-stay_open", "True", "-@", "-")
	if err != nil {
		return nil, err
	}

	worker, err := executor.Start(ctx, cmd)
	if err != nil {
		return nil, &TransportError{Op: "spawn worker", cause: err}
	}

	s.rotateSentinel()
	s.worker = worker
	s.transition(StateRunning)
	s.logger.Debug("Stay-open worker spawned", "path", path)
	return worker, nil
}

// teardown kills the worker after a transport failure so the next call
// respawns a clean one. No automatic retry of the failed call.
func (s *StayOpenStrategy) teardown(worker process.Process) {
	if err := worker.Kill(); err != nil {
		s.logger.Warn("Failed to kill broken worker", "error", err)
	}

	s.stateMu.Lock()
	if s.worker == worker {
		s.worker = nil
		s.transition(StateStopped)
	}
	s.stateMu.Unlock()
}

// idleClose is the scheduler task fired after the configured inactivity
// delay.
func (s *StayOpenStrategy) idleClose() {
	s.logger.Debug("Idle timeout elapsed, closing stay-open worker")
	if err := s.Close(); err != nil {
		s.logger.Warn("Idle close failed", "error", err)
	}
}

// IsSupported reports whether the probed version ships -stay_open mode.
func (s *StayOpenStrategy) IsSupported(version Version) bool {
	return version.AtLeast(stayOpenMinVersion)
}

// IsRunning reports whether the worker is alive.
func (s *StayOpenStrategy) IsRunning() bool {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	return s.state == StateRunning && s.worker != nil && s.worker.IsRunning()
}

// Close gracefully stops the worker: the deactivation sequence is written,
// then the worker is awaited. A no-op when no worker is running. The
// strategy stays usable; the next Execute respawns.
func (s *StayOpenStrategy) Close() error {
	s.reqMu.Lock()
	defer s.reqMu.Unlock()

	s.scheduler.Stop()

	s.stateMu.Lock()
	worker := s.worker
	running := s.state == StateRunning
	s.stateMu.Unlock()

	if !running || worker == nil {
		return nil
	}

	var closeErr error
	if err := worker.Write("-stay_open", "False"); err != nil {
		closeErr = fmt.Errorf("send deactivation: %w", err)
	}
	if err := worker.Close(); err != nil && closeErr == nil {
		closeErr = err
	}

	s.stateMu.Lock()
	if s.worker == worker {
		s.worker = nil
		s.transition(StateStopped)
	}
	s.stateMu.Unlock()

	return closeErr
}

// Shutdown unconditionally terminates the worker and releases the
// scheduler. Idempotent and non-blocking with respect to in-flight
// requests: killing the worker unblocks any reader stuck on a dead pipe.
func (s *StayOpenStrategy) Shutdown() error {
	s.scheduler.Shutdown()

	s.stateMu.Lock()
	worker := s.worker
	s.worker = nil
	if s.state == StateRunning {
		s.transition(StateStopped)
	}
	s.stateMu.Unlock()

	if worker != nil {
		if err := worker.Kill(); err != nil {
			s.logger.Warn("Failed to kill worker during shutdown", "error", err)
		}
	}
	return nil
}

// transition must be called with s.stateMu held.
func (s *StayOpenStrategy) transition(updated State) {
	old := s.state
	if old == updated {
		return
	}
	s.state = updated
	if s.onStateChange != nil {
		go s.onStateChange(old, updated)
	}
}
