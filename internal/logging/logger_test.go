package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func resetLoggingState() {
	mutex.Lock()
	moduleLoggers = make(map[string]*slog.Logger)
	moduleLevelVars = make(map[string]*slog.LevelVar)
	isInitialized = false
	globalConfig = Config{}
	mutex.Unlock()
}

func TestModuleLevelOverride(t *testing.T) {
	resetLoggingState()

	// Global info level, engine at debug, api at warn
	Initialize(Config{
		Level:  "info",
		Format: "text",
		Modules: map[string]string{
			"engine": "debug",
			"api":    "warn",
		},
	})

	tests := []struct {
		module    string
		wantDebug bool
		wantInfo  bool
		wantWarn  bool
	}{
		{"engine", true, true, true},
		{"api", false, false, true},
		{"other", false, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.module, func(t *testing.T) {
			handler := GetLogger(tt.module).Handler()

			gotDebug := handler.Enabled(context.Background(), slog.LevelDebug)
			gotInfo := handler.Enabled(context.Background(), slog.LevelInfo)
			gotWarn := handler.Enabled(context.Background(), slog.LevelWarn)

			if gotDebug != tt.wantDebug {
				t.Errorf("module %q: Debug enabled = %v, want %v", tt.module, gotDebug, tt.wantDebug)
			}
			if gotInfo != tt.wantInfo {
				t.Errorf("module %q: Info enabled = %v, want %v", tt.module, gotInfo, tt.wantInfo)
			}
			if gotWarn != tt.wantWarn {
				t.Errorf("module %q: Warn enabled = %v, want %v", tt.module, gotWarn, tt.wantWarn)
			}
		})
	}
}

func TestSetLevelAtRuntime(t *testing.T) {
	resetLoggingState()

	Initialize(Config{Level: "info", Format: "text"})

	handler := GetLogger("engine").Handler()
	if handler.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("engine should start at info level")
	}

	SetLevel("engine", "debug")
	if !handler.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("engine should accept debug after SetLevel")
	}

	// Unknown level strings are ignored
	SetLevel("engine", "bogus")
	if !handler.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("invalid level must not change the module level")
	}
}

func TestGetLoggerBeforeInitialize(t *testing.T) {
	resetLoggingState()

	// Logger created before Initialize defaults to info level
	loggerBefore := GetLogger("engine")
	handlerBefore := loggerBefore.Handler()

	if handlerBefore.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("logger created before Initialize should not have debug enabled")
	}

	Initialize(Config{
		Level:  "info",
		Format: "text",
		Modules: map[string]string{
			"engine": "debug",
		},
	})

	// Same cached logger, level updated through the LevelVar
	loggerAfter := GetLogger("engine")
	if loggerBefore != loggerAfter {
		t.Error("logger should be cached across Initialize")
	}
	if !handlerBefore.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("cached logger should have debug enabled after Initialize")
	}
}

func TestBufferRecordsEntries(t *testing.T) {
	resetLoggingState()

	Initialize(Config{Level: "info", Format: "text"})

	logger := GetLogger("engine")
	logger.Info("worker spawned", "pid", 4242)

	entries := GetBuffer().ReadAll()
	if len(entries) == 0 {
		t.Fatal("expected at least one buffered entry")
	}

	last := entries[len(entries)-1]
	if last.Module != "engine" || last.Message != "worker spawned" {
		t.Fatalf("unexpected entry: %+v", last)
	}
	if last.Attributes["pid"] != int64(4242) {
		t.Fatalf("attributes = %v", last.Attributes)
	}
}

func TestRingBufferWrapAround(t *testing.T) {
	rb := NewRingBuffer(3)
	for i := 0; i < 5; i++ {
		rb.Write(LogEntry{Message: string(rune('a' + i))})
	}

	entries := rb.ReadAll()
	if len(entries) != 3 {
		t.Fatalf("count = %d, want 3", len(entries))
	}
	if entries[0].Message != "c" || entries[2].Message != "e" {
		t.Fatalf("unexpected order: %v", entries)
	}
}

func TestMultiHandlerDebugOutput(t *testing.T) {
	var buf bytes.Buffer

	debugHandler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	infoHandler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})

	multi := NewMultiHandler(debugHandler, infoHandler)
	logger := slog.New(multi).With("module", "test")

	logger.Debug("debug only message")

	output := buf.String()
	if count := strings.Count(output, "debug only message"); count != 1 {
		t.Errorf("expected 1 debug message, got %d. Output: %s", count, output)
	}
}

func TestFormatLogLine(t *testing.T) {
	line := FormatLogLine(LogEntry{
		Level:      "info",
		Module:     "engine",
		Message:    "respawned worker",
		Attributes: map[string]any{"pid": 7, "attempt": 2},
	})

	if !strings.Contains(line, "[INFO] [engine] respawned worker") {
		t.Errorf("unexpected line: %s", line)
	}
	// Attributes are sorted by key
	if !strings.Contains(line, "attempt=2 pid=7") {
		t.Errorf("attributes not sorted: %s", line)
	}
}

func TestParseLevelValues(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
		isNil bool
	}{
		{"debug", slog.LevelDebug, false},
		{"DEBUG", slog.LevelDebug, false},
		{"info", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"invalid", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := parseLevel(tt.input)
			if tt.isNil {
				if got != nil {
					t.Errorf("parseLevel(%q) = %v, want nil", tt.input, *got)
				}
				return
			}
			if got == nil {
				t.Errorf("parseLevel(%q) = nil, want %v", tt.input, tt.want)
			} else if *got != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, *got, tt.want)
			}
		})
	}
}
