package exiftool

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mjeanroy/exiftool/process"
)

// OneShotStrategy spawns a throwaway process for every call. Simple and
// always supported, at the cost of full process-startup overhead per
// invocation.
type OneShotStrategy struct {
	logger *slog.Logger
}

// NewOneShotStrategy creates the per-call strategy.
func NewOneShotStrategy(logger *slog.Logger) *OneShotStrategy {
	if logger == nil {
		logger = slog.Default()
	}
	return &OneShotStrategy{logger: logger}
}

// Execute runs the command to completion and feeds captured output lines
// to the handler.
func (s *OneShotStrategy) Execute(ctx context.Context, executor process.Executor, path string, args []string, handler process.OutputHandler) error {
	cmd, err := process.NewCommand(path, args...)
	if err != nil {
		return err
	}

	res, err := executor.Execute(ctx, cmd)
	if err != nil {
		return &TransportError{Op: "one-shot execution", cause: err}
	}
	if !res.Success() {
		return fmt.Errorf("exiftool exited with code %d", res.ExitCode)
	}

	if res.Output == "" {
		return nil
	}
	for _, line := range strings.Split(res.Output, "\n") {
		if !handler(line) {
			break
		}
	}
	return nil
}

// IsSupported always reports true: one-shot mode needs no particular
// exiftool version.
func (s *OneShotStrategy) IsSupported(Version) bool {
	return true
}

// IsRunning always reports false: no worker outlives a call.
func (s *OneShotStrategy) IsRunning() bool {
	return false
}

// Close is a no-op.
func (s *OneShotStrategy) Close() error {
	return nil
}

// Shutdown is a no-op.
func (s *OneShotStrategy) Shutdown() error {
	return nil
}
