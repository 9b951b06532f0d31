package process

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

// OutputHandler receives one line of output from the external tool.
// Returning false tells the caller to stop forwarding further lines.
type OutputHandler func(line string) bool

// Result holds the outcome of a one-shot command execution.
type Result struct {
	ExitCode int
	Output   string
}

// Success reports whether the command exited with code zero.
func (r Result) Success() bool {
	return r.ExitCode == 0
}

// Executor runs external commands. Implementations must be safe for
// concurrent use: strategies sharing one executor serialize access to the
// Process handles they own, not to the executor itself.
type Executor interface {
	// Execute runs the command to completion and captures its standard
	// output. A non-zero exit code is reported through the Result, not as
	// an error; errors are reserved for failures to run the command at all.
	Execute(ctx context.Context, cmd Command) (Result, error)

	// Start spawns the command as a long-lived worker and returns a handle
	// to its stdin/stdout pipes. The caller owns the handle exclusively and
	// must release it with Close or Kill.
	Start(ctx context.Context, cmd Command) (Process, error)
}

// Process is an exclusive handle on a running worker and its pipes.
type Process interface {
	// Write sends the given arguments to the worker, one per line.
	Write(args ...string) error

	// Read forwards worker output lines to the handler until the handler
	// returns false. It returns an error if the pipe closes first.
	Read(handler OutputHandler) error

	// IsRunning reports whether the worker process is still alive.
	IsRunning() bool

	// Close closes the worker's stdin and waits for it to exit normally,
	// force-killing after a timeout.
	Close() error

	// Kill forcibly terminates the worker. Idempotent.
	Kill() error
}

type executorOptions struct {
	logger          *slog.Logger
	gracefulTimeout time.Duration
}

// ExecutorOption configures the default executor.
type ExecutorOption func(*executorOptions)

// WithLogger sets the logger used for worker lifecycle events.
func WithLogger(logger *slog.Logger) ExecutorOption {
	return func(o *executorOptions) {
		o.logger = logger
	}
}

// WithGracefulTimeout sets how long Close waits for a worker to exit
// before force-killing it. Default is 5s.
func WithGracefulTimeout(d time.Duration) ExecutorOption {
	return func(o *executorOptions) {
		o.gracefulTimeout = d
	}
}

// NewExecutor creates the default executor backed by os/exec.
func NewExecutor(opts ...ExecutorOption) Executor {
	o := executorOptions{
		logger:          slog.Default(),
		gracefulTimeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &executor{opts: o}
}

type executor struct {
	opts executorOptions
}

func (e *executor) Execute(ctx context.Context, cmd Command) (Result, error) {
	args := cmd.Arguments()
	c := exec.CommandContext(ctx, args[0], args[1:]...)

	var stdout bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = io.Discard

	err := c.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return Result{}, fmt.Errorf("run %s: %w", args[0], err)
		}
		return Result{ExitCode: exitErr.ExitCode(), Output: strings.TrimSpace(stdout.String())}, nil
	}

	return Result{ExitCode: 0, Output: strings.TrimSpace(stdout.String())}, nil
}

func (e *executor) Start(ctx context.Context, cmd Command) (Process, error) {
	args := cmd.Arguments()
	c := exec.Command(args[0], args[1:]...)

	stdin, err := c.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("create stdin pipe: %w", err)
	}

	stdout, err := c.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("create stdout pipe: %w", err)
	}

	stderr, err := c.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("create stderr pipe: %w", err)
	}

	if err := c.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", args[0], err)
	}

	e.opts.logger.Debug("Worker started", "pid", c.Process.Pid, "command", cmd.String())

	w := &worker{
		cmd:             c,
		stdin:           stdin,
		scanner:         bufio.NewScanner(stdout),
		done:            make(chan struct{}),
		logger:          e.opts.logger,
		gracefulTimeout: e.opts.gracefulTimeout,
	}

	// Drain stderr so the worker can never block on a full pipe.
	go w.drainStderr(stderr)

	go func() {
		w.waitErr = c.Wait()
		close(w.done)
	}()

	return w, nil
}
