package engine

import "github.com/pitfigu/GuardianSurvivor/event"

// EventHandler processes specific event types
// Systems implementing it are registered automatically by World.AddSystem
type EventHandler interface {
	// HandleEvent runs synchronously during the settle phase after systems update
	HandleEvent(ev event.GameEvent)

	// EventTypes returns the event types this handler processes
	EventTypes() []event.EventType
}

// EventRouter dispatches events to registered handlers
//
// Architecture:
//   - Single-threaded dispatch on the simulation goroutine
//   - Multiple handlers can register for the same event type
//   - Handlers are invoked in registration order
type EventRouter struct {
	handlers map[event.EventType][]EventHandler
}

func NewEventRouter() *EventRouter {
	return &EventRouter{handlers: make(map[event.EventType][]EventHandler)}
}

// Register adds a handler for its declared event types
func (r *EventRouter) Register(h EventHandler) {
	for _, t := range h.EventTypes() {
		r.handlers[t] = append(r.handlers[t], h)
	}
}

// Dispatch routes events in FIFO order
func (r *EventRouter) Dispatch(events []event.GameEvent) {
	for _, ev := range events {
		for _, h := range r.handlers[ev.Type] {
			h.HandleEvent(ev)
		}
	}
}

// HandlerCount returns the number of handlers registered for t
func (r *EventRouter) HandlerCount(t event.EventType) int {
	return len(r.handlers[t])
}
