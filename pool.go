package exiftool

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mjeanroy/exiftool/process"
)

// PoolStrategy owns a fixed set of stay-open strategies and hands out
// exclusive access to callers. When every member is busy, Execute blocks
// until one is released or the context is cancelled. Membership is fixed
// at construction; the pool never grows or shrinks.
type PoolStrategy struct {
	members []ExecutionStrategy
	idle    chan ExecutionStrategy
	logger  *slog.Logger
}

// NewPoolStrategy creates a pool over the given members. Every member
// starts idle.
func NewPoolStrategy(members []ExecutionStrategy, logger *slog.Logger) (*PoolStrategy, error) {
	if len(members) == 0 {
		return nil, fmt.Errorf("pool requires at least one strategy")
	}
	if logger == nil {
		logger = slog.Default()
	}

	idle := make(chan ExecutionStrategy, len(members))
	for _, m := range members {
		idle <- m
	}

	return &PoolStrategy{members: members, idle: idle, logger: logger}, nil
}

// Size returns the fixed number of pool members.
func (p *PoolStrategy) Size() int {
	return len(p.members)
}

// Execute acquires the first available member, delegates the call, and
// releases the member back to the idle set whether or not the call
// succeeded.
func (p *PoolStrategy) Execute(ctx context.Context, executor process.Executor, path string, args []string, handler process.OutputHandler) error {
	var member ExecutionStrategy
	select {
	case member = <-p.idle:
	case <-ctx.Done():
		return fmt.Errorf("acquire pool member: %w", ctx.Err())
	}
	defer func() {
		p.idle <- member
	}()

	return member.Execute(ctx, executor, path, args, handler)
}

// IsSupported reports whether every member supports the given version.
func (p *PoolStrategy) IsSupported(version Version) bool {
	for _, m := range p.members {
		if !m.IsSupported(version) {
			return false
		}
	}
	return true
}

// IsRunning reports whether at least one member has a live worker.
func (p *PoolStrategy) IsRunning() bool {
	for _, m := range p.members {
		if m.IsRunning() {
			return true
		}
	}
	return false
}

// Close gracefully stops every member. The first failure is surfaced, but
// teardown of the remaining members is still attempted.
func (p *PoolStrategy) Close() error {
	var firstErr error
	for i, m := range p.members {
		if err := m.Close(); err != nil {
			p.logger.Warn("Failed to close pool member", "member", i, "error", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// Shutdown forcibly terminates every member, best-effort.
func (p *PoolStrategy) Shutdown() error {
	var firstErr error
	for i, m := range p.members {
		if err := m.Shutdown(); err != nil {
			p.logger.Warn("Failed to shut down pool member", "member", i, "error", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
