package exiftool

import (
	"log/slog"
	"time"

	"github.com/mjeanroy/exiftool/process"
	"github.com/mjeanroy/exiftool/scheduler"
)

// DefaultIdleTimeout is the inactivity delay after which stay-open workers
// are torn down when no explicit timeout is configured.
const DefaultIdleTimeout = 10 * time.Minute

type settings struct {
	path          string
	executor      process.Executor
	stayOpen      bool
	idleTimeout   time.Duration
	poolSize      int
	strategy      ExecutionStrategy
	scheduler     scheduler.Scheduler
	numeric       bool
	logger        *slog.Logger
	onStateChange StateListener
	cache         *VersionCache
}

// Option configures an ExifTool engine.
type Option func(*settings)

// WithPath sets the exiftool executable path. Default is $EXIFTOOL_PATH,
// falling back to "exiftool" on the system path.
func WithPath(path string) Option {
	return func(s *settings) {
		s.path = path
	}
}

// WithExecutor overrides the command executor. Mainly useful for tests.
func WithExecutor(executor process.Executor) Option {
	return func(s *settings) {
		s.executor = executor
	}
}

// WithStayOpen enables the persistent worker. Workers idle longer than
// idleTimeout are torn down automatically and respawned on the next call;
// a timeout <= 0 disables idle teardown entirely.
func WithStayOpen(idleTimeout time.Duration) Option {
	return func(s *settings) {
		s.stayOpen = true
		s.idleTimeout = idleTimeout
	}
}

// WithPoolSize enables a pool of n persistent workers, each with its own
// idle-timeout scheduler. n <= 0 is ignored.
func WithPoolSize(n int, idleTimeout time.Duration) Option {
	return func(s *settings) {
		if n > 0 {
			s.poolSize = n
			s.idleTimeout = idleTimeout
		}
	}
}

// WithStrategy overrides strategy selection entirely. Takes precedence
// over WithStayOpen and WithPoolSize.
func WithStrategy(strategy ExecutionStrategy) Option {
	return func(s *settings) {
		s.strategy = strategy
	}
}

// WithScheduler overrides the idle-timeout scheduler of a single stay-open
// worker. Ignored for pools, which build one scheduler per member.
func WithScheduler(sched scheduler.Scheduler) Option {
	return func(s *settings) {
		s.scheduler = sched
	}
}

// WithNumericOutput makes read operations return machine-parsable numeric
// values (-n) instead of human-readable ones.
func WithNumericOutput() Option {
	return func(s *settings) {
		s.numeric = true
	}
}

// WithLogger sets the logger for engine and worker lifecycle events.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithStateListener registers a listener for worker state transitions.
func WithStateListener(listener StateListener) Option {
	return func(s *settings) {
		s.onStateChange = listener
	}
}

// withVersionCache overrides the process-wide version cache (tests only).
func withVersionCache(cache *VersionCache) Option {
	return func(s *settings) {
		s.cache = cache
	}
}
