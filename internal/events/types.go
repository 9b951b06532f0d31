package events

// Event type constants for kelindar/event.
const (
	TypeEngineStateChanged uint32 = iota + 1
	TypeWorkerRespawned
	TypeMetadataRead
	TypeMetadataWritten
	TypeConfigReloaded
)

// Event interface required by kelindar/event.
type Event interface {
	Type() uint32
}

// EngineStateChangedEvent is published when an execution strategy's worker
// transitions between lifecycle states.
type EngineStateChangedEvent struct {
	OldState  string `json:"old_state" example:"not_started" doc:"State before the transition"`
	NewState  string `json:"new_state" example:"running" doc:"State after the transition"`
	Timestamp string `json:"timestamp" example:"2026-01-27T10:30:00Z" doc:"Transition timestamp"`
}

// Type returns the event type identifier for EngineStateChangedEvent.
func (e EngineStateChangedEvent) Type() uint32 { return TypeEngineStateChanged }

// WorkerRespawnedEvent is published when a dead stay-open worker is replaced
// by a fresh one on the next call.
type WorkerRespawnedEvent struct {
	Path      string `json:"path" example:"/usr/bin/exiftool" doc:"Executable path"`
	Timestamp string `json:"timestamp" doc:"Respawn timestamp"`
}

// Type returns the event type identifier for WorkerRespawnedEvent.
func (e WorkerRespawnedEvent) Type() uint32 { return TypeWorkerRespawned }

// MetadataReadEvent is published after a read operation completes.
type MetadataReadEvent struct {
	File      string  `json:"file" example:"/photos/img_0001.jpg" doc:"File the metadata was read from"`
	TagCount  int     `json:"tag_count" example:"42" doc:"Number of tags returned"`
	Duration  float64 `json:"duration_seconds" doc:"Operation duration in seconds"`
	Timestamp string  `json:"timestamp" doc:"Completion timestamp"`
}

// Type returns the event type identifier for MetadataReadEvent.
func (e MetadataReadEvent) Type() uint32 { return TypeMetadataRead }

// MetadataWrittenEvent is published after a write operation completes.
type MetadataWrittenEvent struct {
	File      string  `json:"file" example:"/photos/img_0001.jpg" doc:"File the metadata was written to"`
	TagCount  int     `json:"tag_count" example:"2" doc:"Number of tags written"`
	Duration  float64 `json:"duration_seconds" doc:"Operation duration in seconds"`
	Timestamp string  `json:"timestamp" doc:"Completion timestamp"`
}

// Type returns the event type identifier for MetadataWrittenEvent.
func (e MetadataWrittenEvent) Type() uint32 { return TypeMetadataWritten }

// ConfigReloadedEvent is published when the watched config file changes and
// the new settings have been applied.
type ConfigReloadedEvent struct {
	Level     string `json:"level" example:"debug" doc:"New global log level"`
	Timestamp string `json:"timestamp" doc:"Reload timestamp"`
}

// Type returns the event type identifier for ConfigReloadedEvent.
func (e ConfigReloadedEvent) Type() uint32 { return TypeConfigReloaded }
