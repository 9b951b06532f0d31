package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSnapshotTracksActivity(t *testing.T) {
	before := Snapshot()

	ObserveExecution("read", 0.012)
	ObserveExecution("write", 0.030)
	ObserveError("transport")
	ObserveRespawn()

	after := Snapshot()
	if got := after.Executions - before.Executions; got != 2 {
		t.Errorf("executions delta = %d, want 2", got)
	}
	if got := after.Errors - before.Errors; got != 1 {
		t.Errorf("errors delta = %d, want 1", got)
	}
	if got := after.Respawns - before.Respawns; got != 1 {
		t.Errorf("respawns delta = %d, want 1", got)
	}
}

func TestSnapshotReturnsCopy(t *testing.T) {
	s := Snapshot()
	s.Executions = -1

	if Snapshot().Executions == -1 {
		t.Error("Snapshot must return a copy, not shared state")
	}
}

func TestHTTPHandlerExposesEngineMetrics(t *testing.T) {
	ObserveExecution("read", 0.005)
	ObserveStateTransition("running")

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	HTTPHandler().ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Fatalf("status = %d", rec.Code)
	}
	body, _ := io.ReadAll(rec.Body)
	text := string(body)
	if !strings.Contains(text, "exifd_engine_executions_total") {
		t.Error("executions counter missing from exposition")
	}
	if !strings.Contains(text, "exifd_engine_state_transitions_total") {
		t.Error("state transitions counter missing from exposition")
	}
}
