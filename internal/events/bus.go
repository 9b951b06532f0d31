package events

import (
	"github.com/kelindar/event"
)

// Bus wraps the kelindar/event dispatcher for in-process event broadcasting.
// The daemon publishes engine lifecycle and metadata activity on it; metrics
// and log fan-out subscribe.
type Bus struct {
	dispatcher *event.Dispatcher
}

// New creates a new event bus.
func New() *Bus {
	return &Bus{
		dispatcher: event.NewDispatcher(),
	}
}

// Publish publishes an event to all subscribers.
// Usage: bus.Publish(EngineStateChangedEvent{...})
func (b *Bus) Publish(ev Event) {
	// Type switch so the generic Publish sees the concrete type
	switch e := ev.(type) {
	case EngineStateChangedEvent:
		event.Publish(b.dispatcher, e)
	case WorkerRespawnedEvent:
		event.Publish(b.dispatcher, e)
	case MetadataReadEvent:
		event.Publish(b.dispatcher, e)
	case MetadataWrittenEvent:
		event.Publish(b.dispatcher, e)
	case ConfigReloadedEvent:
		event.Publish(b.dispatcher, e)
	}
}

// Subscribe subscribes to events with a handler function.
// The handler's parameter type determines which events it receives.
// Returns an unsubscribe function.
// Usage: unsub := bus.Subscribe(func(e EngineStateChangedEvent) { ... })
func (b *Bus) Subscribe(handler any) func() {
	switch h := handler.(type) {
	case func(EngineStateChangedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(WorkerRespawnedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(MetadataReadEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(MetadataWrittenEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(ConfigReloadedEvent):
		return event.Subscribe(b.dispatcher, h)
	default:
		// No-op unsubscribe for unrecognized handler types
		return func() {}
	}
}
