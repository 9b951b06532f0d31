package exiftool

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/mjeanroy/exiftool/process"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeExecutor is a scripted process.Executor. Execute results are served
// by executeFn; Start hands out workers built by startFn.
type fakeExecutor struct {
	mu        sync.Mutex
	executeFn func(cmd process.Command) (process.Result, error)
	startFn   func(cmd process.Command) (process.Process, error)
	executed  []process.Command
	started   int
}

func (f *fakeExecutor) Execute(_ context.Context, cmd process.Command) (process.Result, error) {
	f.mu.Lock()
	f.executed = append(f.executed, cmd)
	f.mu.Unlock()

	if f.executeFn == nil {
		return process.Result{}, fmt.Errorf("unexpected Execute call: %s", cmd)
	}
	return f.executeFn(cmd)
}

func (f *fakeExecutor) Start(_ context.Context, cmd process.Command) (process.Process, error) {
	f.mu.Lock()
	f.started++
	f.mu.Unlock()

	if f.startFn == nil {
		return nil, fmt.Errorf("unexpected Start call: %s", cmd)
	}
	return f.startFn(cmd)
}

func (f *fakeExecutor) executions() []process.Command {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]process.Command(nil), f.executed...)
}

func (f *fakeExecutor) startCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.started
}

// versionExecutor scripts a successful -ver probe.
func versionExecutor(version string) *fakeExecutor {
	return &fakeExecutor{
		executeFn: func(process.Command) (process.Result, error) {
			return process.Result{Output: version}, nil
		},
	}
}

// fakeWorker emulates a stay-open exiftool worker. Each request (the lines
// written up to an -execute<token> terminator) is answered by respond,
// followed by the {ready<token>} echo. Setting dieMidResponse drops the
// echo and marks the worker dead, simulating a crash before the sentinel.
type fakeWorker struct {
	mu             sync.Mutex
	respond        func(request []string) []string
	dieMidResponse bool

	running  bool
	request  []string
	requests [][]string
	pending  []string
	killed   bool
	closed   bool
	sawStop  bool
}

func newFakeWorker(respond func(request []string) []string) *fakeWorker {
	if respond == nil {
		respond = func(request []string) []string { return request }
	}
	return &fakeWorker{respond: respond, running: true}
}

func (w *fakeWorker) Write(args ...string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return fmt.Errorf("write to dead worker")
	}

	for _, arg := range args {
		switch {
		case strings.HasPrefix(arg, "-execute"):
			token := strings.TrimPrefix(arg, "-execute")
			w.requests = append(w.requests, append([]string(nil), w.request...))
			w.pending = append(w.pending, w.respond(w.request)...)
			w.request = nil
			if w.dieMidResponse {
				w.running = false
			} else {
				w.pending = append(w.pending, "{ready"+token+"}")
			}
		case w.sawStop && arg == "False":
			w.sawStop = false
			w.running = false
		case arg == "-stay_open":
			w.sawStop = true
		default:
			w.request = append(w.request, arg)
		}
	}
	return nil
}

func (w *fakeWorker) Read(handler process.OutputHandler) error {
	for {
		w.mu.Lock()
		if len(w.pending) == 0 {
			running := w.running
			w.mu.Unlock()
			if !running {
				return fmt.Errorf("read from worker: %w", io.ErrUnexpectedEOF)
			}
			return fmt.Errorf("read from worker: no pending output")
		}
		line := w.pending[0]
		w.pending = w.pending[1:]
		w.mu.Unlock()

		if !handler(line) {
			return nil
		}
	}
}

func (w *fakeWorker) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

func (w *fakeWorker) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	w.running = false
	return nil
}

func (w *fakeWorker) Kill() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.killed = true
	w.running = false
	return nil
}

func (w *fakeWorker) requestLog() [][]string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([][]string(nil), w.requests...)
}

func (w *fakeWorker) wasClosed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closed
}

func (w *fakeWorker) wasKilled() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.killed
}

// stayOpenExecutor scripts an executor whose Start spawns fakeWorkers.
func stayOpenExecutor(respond func(request []string) []string) (*fakeExecutor, *[]*fakeWorker) {
	workers := &[]*fakeWorker{}
	var mu sync.Mutex
	ex := &fakeExecutor{
		startFn: func(process.Command) (process.Process, error) {
			w := newFakeWorker(respond)
			mu.Lock()
			*workers = append(*workers, w)
			mu.Unlock()
			return w, nil
		},
	}
	return ex, workers
}

// collectLines returns an OutputHandler appending every line to dst.
func collectLines(dst *[]string) process.OutputHandler {
	return func(line string) bool {
		*dst = append(*dst, line)
		return true
	}
}

// stubStrategy is a controllable ExecutionStrategy for pool tests.
type stubStrategy struct {
	mu        sync.Mutex
	executeFn func() error
	supported bool
	running   bool
	closeErr  error
	closes    int
	shutdowns int
}

func (s *stubStrategy) Execute(context.Context, process.Executor, string, []string, process.OutputHandler) error {
	if s.executeFn != nil {
		return s.executeFn()
	}
	return nil
}

func (s *stubStrategy) IsSupported(Version) bool { return s.supported }

func (s *stubStrategy) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *stubStrategy) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closes++
	return s.closeErr
}

func (s *stubStrategy) Shutdown() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shutdowns++
	return nil
}

func (s *stubStrategy) closeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closes
}

func (s *stubStrategy) shutdownCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shutdowns
}

func mustParseVersion(t *testing.T, s string) Version {
	t.Helper()
	v, err := ParseVersion(s)
	if err != nil {
		t.Fatalf("ParseVersion(%q) failed: %v", s, err)
	}
	return v
}
