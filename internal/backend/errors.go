package backend

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"syscall"
)

// Error kinds. Every *Error wraps exactly one of these.
var (
	ErrConnectionRefused = errors.New("connection refused")
	ErrNetwork           = errors.New("network error")
	ErrTimeout           = errors.New("request timed out")
	ErrCanceled          = errors.New("request canceled")
	ErrInvalidRequest    = errors.New("invalid request")
	ErrHTTPStatus        = errors.New("http error status")
	ErrApplication       = errors.New("application error")
	ErrMalformed         = errors.New("malformed payload")
)

// Error describes a failed backend call. Message is safe to show to end users.
type Error struct {
	Kind    error
	Method  string
	URL     string
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Retryable reports whether err is worth another attempt: only refused
// connections and generic network failures are.
func Retryable(err error) bool {
	return errors.Is(err, ErrConnectionRefused) || errors.Is(err, ErrNetwork)
}

// classify turns a transport error from http.Client.Do into an *Error.
func classify(err error, method, url, base string) *Error {
	e := &Error{Method: method, URL: url, Err: err}
	var netErr net.Error
	switch {
	case errors.Is(err, context.Canceled):
		e.Kind = ErrCanceled
		e.Message = fmt.Sprintf("request to %s was canceled", url)
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
		e.Kind = ErrTimeout
		e.Message = fmt.Sprintf("request to %s timed out", url)
	case errors.Is(err, syscall.ECONNREFUSED):
		e.Kind = ErrConnectionRefused
		e.Message = fmt.Sprintf("cannot connect to the server at %s; make sure the backend is running", base)
	default:
		e.Kind = ErrNetwork
		e.Message = fmt.Sprintf("network error while accessing %s; check the connection or CORS configuration", base)
	}
	return e
}

// HTTPStatus maps a backend failure onto the status an API gateway should
// answer with.
func HTTPStatus(err error) int {
	var e *Error
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, ErrCanceled):
		return http.StatusServiceUnavailable
	case errors.Is(err, ErrInvalidRequest):
		return http.StatusInternalServerError
	case errors.As(err, &e) && e.Status >= http.StatusBadRequest:
		return e.Status
	case errors.As(err, &e):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
