package telemetry

import (
	"sync"
	"time"
)

// Event is one call captured by Recording.
type Event struct {
	Kind   string
	Method string
	URL    string
	Status int
	Name   string
	Err    error
}

// Recording captures events in memory. It is meant for tests.
type Recording struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recording) add(e Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

func (r *Recording) APICall(method, url string) {
	r.add(Event{Kind: "call", Method: method, URL: url})
}

func (r *Recording) APIResponse(method, url string, status int, _ time.Duration) {
	r.add(Event{Kind: "response", Method: method, URL: url, Status: status})
}

func (r *Recording) APIError(method, url string, status int, err error) {
	r.add(Event{Kind: "error", Method: method, URL: url, Status: status, Err: err})
}

func (r *Recording) ComponentError(component, operation string, err error) {
	r.add(Event{Kind: "component", Name: component + "." + operation, Err: err})
}

func (r *Recording) Measure(name string, _ time.Duration, _ map[string]any) {
	r.add(Event{Kind: "measure", Name: name})
}

func (r *Recording) Warn(msg string, _ map[string]any) {
	r.add(Event{Kind: "warn", Name: msg})
}

// Events returns a copy of the captured events.
func (r *Recording) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Count returns how many events of kind were captured.
func (r *Recording) Count(kind string) int {
	n := 0
	for _, e := range r.Events() {
		if e.Kind == kind {
			n++
		}
	}
	return n
}
