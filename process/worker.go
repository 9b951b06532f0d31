package process

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"
)

// worker is the default Process implementation around an exec.Cmd.
type worker struct {
	cmd             *exec.Cmd
	stdin           io.WriteCloser
	scanner         *bufio.Scanner
	done            chan struct{}
	waitErr         error
	logger          *slog.Logger
	gracefulTimeout time.Duration

	closeOnce sync.Once
	closeErr  error
	killOnce  sync.Once
}

func (w *worker) Write(args ...string) error {
	if len(args) == 0 {
		return nil
	}
	if !w.IsRunning() {
		return fmt.Errorf("write to worker: %w", os.ErrProcessDone)
	}
	if _, err := io.WriteString(w.stdin, strings.Join(args, "\n")+"\n"); err != nil {
		return fmt.Errorf("write to worker: %w", err)
	}
	return nil
}

func (w *worker) Read(handler OutputHandler) error {
	for w.scanner.Scan() {
		if !handler(w.scanner.Text()) {
			return nil
		}
	}
	if err := w.scanner.Err(); err != nil {
		return fmt.Errorf("read from worker: %w", err)
	}
	// The pipe closed before the handler was satisfied: the worker died
	// mid-response.
	return fmt.Errorf("read from worker: %w", io.ErrUnexpectedEOF)
}

func (w *worker) IsRunning() bool {
	select {
	case <-w.done:
		return false
	default:
		return true
	}
}

func (w *worker) Close() error {
	w.closeOnce.Do(func() {
		if err := w.stdin.Close(); err != nil {
			w.logger.Warn("Failed to close worker stdin", "error", err)
		}

		select {
		case <-w.done:
		case <-time.After(w.gracefulTimeout):
			w.logger.Warn("Worker did not exit in time, forcing kill", "pid", w.cmd.Process.Pid)
			w.closeErr = w.Kill()
			return
		}

		if w.waitErr != nil {
			var exitErr *exec.ExitError
			if !errors.As(w.waitErr, &exitErr) {
				w.closeErr = fmt.Errorf("wait for worker: %w", w.waitErr)
			}
		}
	})
	return w.closeErr
}

func (w *worker) Kill() error {
	var err error
	w.killOnce.Do(func() {
		_ = w.stdin.Close()
		if killErr := w.cmd.Process.Kill(); killErr != nil && !errors.Is(killErr, os.ErrProcessDone) {
			err = fmt.Errorf("kill worker: %w", killErr)
			return
		}
		select {
		case <-w.done:
		case <-time.After(w.gracefulTimeout):
			w.logger.Error("Worker did not exit after kill", "pid", w.cmd.Process.Pid)
		}
	})
	return err
}

func (w *worker) drainStderr(r io.Reader) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		w.logger.Debug("Worker stderr", "line", scanner.Text())
	}
}
