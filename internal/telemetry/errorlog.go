package telemetry

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type ErrorType string

const (
	ErrorTypeAPI        ErrorType = "api"
	ErrorTypeComponent  ErrorType = "component"
	ErrorTypeNavigation ErrorType = "navigation"
	ErrorTypeUnknown    ErrorType = "unknown"
)

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// DefaultMaxErrors is the number of error entries kept before the oldest is evicted.
const DefaultMaxErrors = 100

// ErrorEntry is one record of the error log.
type ErrorEntry struct {
	ID        string         `json:"id"`
	Timestamp time.Time      `json:"timestamp"`
	Type      ErrorType      `json:"type"`
	Severity  Severity       `json:"severity"`
	Message   string         `json:"message"`
	Data      map[string]any `json:"additionalData,omitempty"`
}

// ErrorFilter narrows Entries. Zero values match everything.
type ErrorFilter struct {
	Type     ErrorType
	Severity Severity
	Limit    int
}

// ErrorLog keeps the most recent errors in memory for the debug panel.
type ErrorLog struct {
	buf *ring[ErrorEntry]
	now func() time.Time
}

func NewErrorLog(max int) *ErrorLog {
	if max <= 0 {
		max = DefaultMaxErrors
	}
	return &ErrorLog{buf: newRing[ErrorEntry](max), now: time.Now}
}

// Log stores e, filling in id, timestamp and defaults, and returns the id.
func (l *ErrorLog) Log(e ErrorEntry) string {
	if e.ID == "" {
		e.ID = "error_" + uuid.NewString()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = l.now().UTC()
	}
	if e.Type == "" {
		e.Type = ErrorTypeUnknown
	}
	if e.Severity == "" {
		e.Severity = SeverityMedium
	}
	if e.Message == "" {
		e.Message = "Unknown error"
	}
	l.buf.push(e)
	return e.ID
}

func (l *ErrorLog) LogAPIError(method, url string, status int, message string, data map[string]any) string {
	severity := SeverityMedium
	if status >= 500 {
		severity = SeverityHigh
	}
	if message == "" {
		message = "Unknown API error"
	}
	fields := map[string]any{"method": method, "url": url}
	if status > 0 {
		fields["status"] = status
	}
	for k, v := range data {
		fields[k] = v
	}
	return l.Log(ErrorEntry{
		Type:     ErrorTypeAPI,
		Severity: severity,
		Message:  fmt.Sprintf("API Error: %s %s - %s", strings.ToUpper(method), url, message),
		Data:     fields,
	})
}

func (l *ErrorLog) LogComponentError(component, message string, err error) string {
	fields := map[string]any{"componentName": component}
	if err != nil {
		fields["errorMessage"] = err.Error()
	}
	return l.Log(ErrorEntry{
		Type:     ErrorTypeComponent,
		Severity: SeverityMedium,
		Message:  fmt.Sprintf("Component Error in %s: %s", component, message),
		Data:     fields,
	})
}

// Entries returns matching entries, newest first.
func (l *ErrorLog) Entries(f ErrorFilter) []ErrorEntry {
	all := l.buf.newestFirst()
	out := make([]ErrorEntry, 0, len(all))
	for _, e := range all {
		if f.Type != "" && e.Type != f.Type {
			continue
		}
		if f.Severity != "" && e.Severity != f.Severity {
			continue
		}
		out = append(out, e)
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out
}

func (l *ErrorLog) Len() int { return l.buf.len() }

func (l *ErrorLog) Clear() { l.buf.reset() }
