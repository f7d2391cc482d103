package telemetry

import "time"

// Recorder receives request, error and timing events from the backend client and
// the state stores. Implementations must be safe for concurrent use.
type Recorder interface {
	APICall(method, url string)
	APIResponse(method, url string, status int, d time.Duration)
	APIError(method, url string, status int, err error)
	ComponentError(component, operation string, err error)
	Measure(name string, d time.Duration, meta map[string]any)
	Warn(msg string, fields map[string]any)
}

// Nop discards every event.
type Nop struct{}

func (Nop) APICall(string, string)                        {}
func (Nop) APIResponse(string, string, int, time.Duration) {}
func (Nop) APIError(string, string, int, error)           {}
func (Nop) ComponentError(string, string, error)          {}
func (Nop) Measure(string, time.Duration, map[string]any) {}
func (Nop) Warn(string, map[string]any)                   {}

// OrNop returns r, or Nop when r is nil.
func OrNop(r Recorder) Recorder {
	if r == nil {
		return Nop{}
	}
	return r
}
