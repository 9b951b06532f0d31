package exiftool

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/mjeanroy/exiftool/process"
	"github.com/mjeanroy/exiftool/scheduler"
)

// ExifTool drives an external exiftool binary to read and write file
// metadata. Construction probes the binary's version once (memoized
// process-wide per path) and verifies the selected execution strategy is
// supported.
//
// Instances are safe for concurrent use. Stop tears down workers but keeps
// the instance reusable; Close is terminal.
type ExifTool struct {
	path     string
	executor process.Executor
	strategy ExecutionStrategy
	version  Version
	numeric  bool
	logger   *slog.Logger
}

// New creates an engine. Without options it runs one throwaway process per
// call against "exiftool" on the system path.
func New(opts ...Option) (*ExifTool, error) {
	s := settings{
		idleTimeout: DefaultIdleTimeout,
		cache:       defaultVersionCache,
	}
	for _, opt := range opts {
		opt(&s)
	}

	if s.path == "" {
		s.path = os.Getenv("EXIFTOOL_PATH")
	}
	if s.path == "" {
		s.path = "exiftool"
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.executor == nil {
		s.executor = process.NewExecutor(process.WithLogger(s.logger))
	}

	strategy, err := buildStrategy(&s)
	if err != nil {
		return nil, err
	}

	version, err := s.cache.Load(context.Background(), s.path, s.executor)
	if err != nil {
		_ = strategy.Shutdown()
		return nil, err
	}

	if !strategy.IsSupported(version) {
		_ = strategy.Shutdown()
		return nil, &UnsupportedFeatureError{Path: s.path, Version: version, Minimum: stayOpenMinVersion}
	}

	s.logger.Debug("ExifTool engine created", "path", s.path, "version", version.String())

	return &ExifTool{
		path:     s.path,
		executor: s.executor,
		strategy: strategy,
		version:  version,
		numeric:  s.numeric,
		logger:   s.logger,
	}, nil
}

// buildStrategy selects the execution strategy from the settings:
// explicit strategy > pool > stay-open > one-shot.
func buildStrategy(s *settings) (ExecutionStrategy, error) {
	if s.strategy != nil {
		return s.strategy, nil
	}

	if s.poolSize > 0 {
		members := make([]ExecutionStrategy, 0, s.poolSize)
		for i := 0; i < s.poolSize; i++ {
			sched, err := newIdleScheduler(s, true)
			if err != nil {
				return nil, err
			}
			members = append(members, NewStayOpenStrategy(&StayOpenOptions{
				Scheduler:     sched,
				Logger:        s.logger,
				OnStateChange: s.onStateChange,
			}))
		}
		return NewPoolStrategy(members, s.logger)
	}

	if s.stayOpen {
		sched, err := newIdleScheduler(s, false)
		if err != nil {
			return nil, err
		}
		return NewStayOpenStrategy(&StayOpenOptions{
			Scheduler:     sched,
			Logger:        s.logger,
			OnStateChange: s.onStateChange,
		}), nil
	}

	return NewOneShotStrategy(s.logger), nil
}

// newIdleScheduler builds the idle-teardown scheduler: no-op when disabled,
// a queue scheduler per pool member, a named timer otherwise.
func newIdleScheduler(s *settings, pooled bool) (scheduler.Scheduler, error) {
	if s.scheduler != nil && !pooled {
		return s.scheduler, nil
	}
	if s.idleTimeout <= 0 {
		return scheduler.NewNoOp(), nil
	}
	delay := scheduler.Millis(s.idleTimeout.Milliseconds())
	if pooled {
		return scheduler.NewQueue(delay)
	}
	return scheduler.NewTimer("exiftool-idle-cleanup", delay)
}

// Version returns the probed version of the configured executable.
func (e *ExifTool) Version() Version {
	return e.version
}

// IsRunning reports whether at least one worker process is alive.
func (e *ExifTool) IsRunning() bool {
	return e.strategy.IsRunning()
}

// ReadMetadata extracts the given tags from the file, or every tag when
// none are specified. Tag names are raw exiftool names; values are
// returned unconverted. Tags absent from the file are omitted.
func (e *ExifTool) ReadMetadata(ctx context.Context, file string, tags ...string) (map[string]string, error) {
	if err := checkReadable(file); err != nil {
		return nil, err
	}

	args := e.commonArgs()
	if len(tags) == 0 {
		args = append(args, "-All")
	}
	for _, tag := range tags {
		args = append(args, "-"+tag)
	}
	args = append(args, file)

	collector := newTagCollector()
	if err := e.strategy.Execute(ctx, e.executor, e.path, args, collector.handle); err != nil {
		return nil, err
	}
	return collector.values, nil
}

// WriteMetadata writes the given tag/value pairs to the file.
func (e *ExifTool) WriteMetadata(ctx context.Context, file string, tags map[string]string) error {
	if len(tags) == 0 {
		return fmt.Errorf("at least one tag is required")
	}
	if err := checkReadable(file); err != nil {
		return err
	}

	args := e.commonArgs()
	names := make([]string, 0, len(tags))
	for name := range tags {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		args = append(args, fmt.Sprintf("-%s=%s", name, tags[name]))
	}
	args = append(args, file)

	return e.strategy.Execute(ctx, e.executor, e.path, args, discardOutput)
}

// Raw passes the given arguments through unchecked and returns the
// unparsed output. The caller owns argument validity and output parsing.
func (e *ExifTool) Raw(ctx context.Context, file string, args ...string) (string, error) {
	if err := checkReadable(file); err != nil {
		return "", err
	}

	full := make([]string, 0, len(args)+1)
	full = append(full, args...)
	full = append(full, file)

	collector := &rawCollector{}
	if err := e.strategy.Execute(ctx, e.executor, e.path, full, collector.handle); err != nil {
		return "", err
	}
	return collector.output(), nil
}

// Stop tears down worker processes but keeps the instance usable: the next
// call respawns what it needs.
func (e *ExifTool) Stop() error {
	return e.strategy.Close()
}

// Close releases every resource held by the engine. The instance must not
// be used afterwards. Implements io.Closer.
func (e *ExifTool) Close() error {
	return e.strategy.Shutdown()
}

// commonArgs returns the argument prefix shared by read and write
// operations: compact output, plus numeric format when configured.
func (e *ExifTool) commonArgs() []string {
	args := make([]string, 0, 8)
	if e.numeric {
		args = append(args, "-n")
	}
	args = append(args, "-S")
	return args
}

func checkReadable(file string) error {
	info, err := os.Stat(file)
	if err != nil {
		return fmt.Errorf("unable to read file %q: %w", file, err)
	}
	if info.IsDir() {
		return fmt.Errorf("unable to read file %q: is a directory", file)
	}
	return nil
}
