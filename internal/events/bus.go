// Package events provides the in-process publish/subscribe bus the store
// and its services emit domain events on.
//
// Delivery is synchronous and at-most-once: Emit calls every listener
// registered for the event name, in registration order, on the caller's
// goroutine, before returning. There is no buffering and no cross-process
// delivery.
package events

// Event names emitted by the core. Collection events are derived as
// "<collection>_created", "<collection>_updated", "<collection>_deleted".
const (
	AppointmentBooked = "appointment_booked"
	DatabaseError     = "database_error"
)

// Listener receives an event payload. The payload is the affected
// document for collection events, or an error description for
// DatabaseError.
type Listener func(payload any)

// Bus dispatches named events to registered listeners.
//
// Bus is not safe for concurrent use on its own; the store's mutex
// serializes every emitting operation.
type Bus struct {
	listeners map[string][]Listener
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{listeners: make(map[string][]Listener)}
}

// Subscribe registers fn for the named event. Listeners for the same
// event fire in the order they were registered.
func (b *Bus) Subscribe(event string, fn Listener) {
	b.listeners[event] = append(b.listeners[event], fn)
}

// Emit delivers payload to every listener registered for event.
func (b *Bus) Emit(event string, payload any) {
	for _, fn := range b.listeners[event] {
		fn(payload)
	}
}

// Created returns the creation event name for a collection.
func Created(collection string) string { return collection + "_created" }

// Updated returns the update event name for a collection.
func Updated(collection string) string { return collection + "_updated" }

// Deleted returns the deletion event name for a collection.
func Deleted(collection string) string { return collection + "_deleted" }
