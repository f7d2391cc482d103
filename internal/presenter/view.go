package presenter

import (
	"github.com/wichananm65/tokopedia-trends/internal/backend"
	"github.com/wichananm65/tokopedia-trends/internal/state"
)

type Status string

const (
	Loading Status = "loading"
	Failed  Status = "error"
	Blank   Status = "empty"
	Ready   Status = "ready"
)

// ErrorView is what an error panel shows: the message, the manual retry
// count so far and whether another retry is still offered.
type ErrorView struct {
	Message        string `json:"message"`
	Attempt        int    `json:"attempt"`
	MaxAttempts    int    `json:"maxAttempts"`
	CanRetry       bool   `json:"canRetry"`
	NextAttempt    int    `json:"nextAttempt,omitempty"`
	SupportMessage string `json:"supportMessage,omitempty"`
}

// View is the presentational state of one section of a page.
type View[T any] struct {
	Status  Status     `json:"status"`
	Data    T          `json:"data"`
	Error   *ErrorView `json:"error,omitempty"`
	Message string     `json:"message,omitempty"`
}

// FromSnapshot picks the view for a resource. attempt is the number of manual
// retries already made by the caller.
func FromSnapshot[T any](s state.Snapshot[T], attempt int) View[T] {
	switch {
	case s.Loading:
		return View[T]{Status: Loading, Data: s.Data}
	case s.Kind == backend.Failure:
		return View[T]{Status: Failed, Data: s.Data, Error: ErrorPanel(s.Err, attempt)}
	case s.Kind == backend.Empty:
		return View[T]{Status: Blank, Data: s.Data}
	default:
		return View[T]{Status: Ready, Data: s.Data}
	}
}

// Items is the ready view of an already-derived list, or the empty view when
// there is nothing to show.
func Items[T any](items []T) View[[]T] {
	if items == nil {
		items = []T{}
	}
	if len(items) == 0 {
		return View[[]T]{Status: Blank, Data: items}
	}
	return View[[]T]{Status: Ready, Data: items}
}

// ErrorPanel builds the error panel for err. Once attempt reaches the retry cap
// the retry action is withdrawn and the support message is shown instead.
func ErrorPanel(err error, attempt int) *ErrorView {
	msg := "Something went wrong"
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	gate := state.NewRetryGate(state.DefaultMaxRetries)
	gate.Restore(attempt)
	v := &ErrorView{
		Message:     msg,
		Attempt:     gate.Attempts(),
		MaxAttempts: gate.Max(),
	}
	if gate.Allow() {
		v.CanRetry = true
		v.NextAttempt = gate.Attempts()
	} else {
		v.SupportMessage = state.SupportMessage
	}
	return v
}
