package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Envelope is the wrapper every backend response uses.
type Envelope struct {
	Error   bool            `json:"error"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Kind tags the outcome of a facade call.
type Kind int

const (
	Ok Kind = iota
	Empty
	Failure
)

func (k Kind) String() string {
	switch k {
	case Ok:
		return "ok"
	case Empty:
		return "empty"
	default:
		return "failure"
	}
}

// Result is the normalized outcome of a facade call. For list results Value is
// never nil, even on Failure.
type Result[T any] struct {
	Kind   Kind
	Value  T
	Reason error
}

// Envelope performs req and unwraps the envelope. Application errors
// (error:true) and non-2xx statuses come back as *Error. A body that is not an
// envelope at all is treated as an envelope without data.
func (c *Client) Envelope(ctx context.Context, req Request) (Envelope, error) {
	resp, err := c.Do(ctx, req)
	if err != nil {
		return Envelope{}, err
	}
	target := c.base + req.Path

	var env Envelope
	decodeErr := json.Unmarshal(resp.Body, &env)
	if resp.Status < http.StatusOK || resp.Status >= http.StatusMultipleChoices {
		if decodeErr == nil && env.Error && env.Message != "" {
			return Envelope{}, &Error{Kind: ErrApplication, Method: req.Method, URL: target, Status: resp.Status, Message: env.Message}
		}
		return Envelope{}, &Error{
			Kind:    ErrHTTPStatus,
			Method:  req.Method,
			URL:     target,
			Status:  resp.Status,
			Message: fmt.Sprintf("HTTP error! status: %d", resp.Status),
		}
	}
	if decodeErr != nil {
		c.rec.Warn("response is not an envelope", map[string]any{"url": target})
		return Envelope{}, nil
	}
	if env.Error {
		msg := env.Message
		if msg == "" {
			msg = "API Error"
		}
		return Envelope{}, &Error{Kind: ErrApplication, Method: req.Method, URL: target, Status: resp.Status, Message: msg}
	}
	return env, nil
}

// FetchList calls req and decodes data as a list. Null, absent or wrongly
// shaped data becomes an empty list; null or non-object elements are dropped.
// Mistyped fields inside an element are repaired or zeroed, see decodeLenient.
func FetchList[T any](ctx context.Context, c *Client, req Request) Result[[]T] {
	env, err := c.Envelope(ctx, req)
	if err != nil {
		return Result[[]T]{Kind: Failure, Value: []T{}, Reason: err}
	}

	data := bytes.TrimSpace(env.Data)
	if isNull(data) {
		return Result[[]T]{Kind: Empty, Value: []T{}}
	}
	var raw []json.RawMessage
	if data[0] != '[' || json.Unmarshal(data, &raw) != nil {
		c.rec.Warn("data is not an array, using empty list", map[string]any{"url": c.base + req.Path})
		return Result[[]T]{Kind: Empty, Value: []T{}}
	}

	out := make([]T, 0, len(raw))
	dropped := 0
	for _, item := range raw {
		item = bytes.TrimSpace(item)
		if isNull(item) || item[0] != '{' {
			dropped++
			continue
		}
		v, repaired, err := decodeLenient[T](item)
		if err != nil {
			dropped++
			continue
		}
		if len(repaired) > 0 {
			c.rec.Warn("coerced mistyped fields", map[string]any{"url": c.base + req.Path, "fields": repaired})
		}
		out = append(out, v)
	}
	if dropped > 0 {
		c.rec.Warn("dropped malformed list items", map[string]any{"url": c.base + req.Path, "dropped": dropped})
	}
	if len(out) == 0 {
		return Result[[]T]{Kind: Empty, Value: out}
	}
	return Result[[]T]{Kind: Ok, Value: out}
}

// FetchOne calls req and decodes data as a single object. Anything other than
// a JSON object becomes Empty.
func FetchOne[T any](ctx context.Context, c *Client, req Request) Result[T] {
	var zero T
	env, err := c.Envelope(ctx, req)
	if err != nil {
		return Result[T]{Kind: Failure, Value: zero, Reason: err}
	}

	data := bytes.TrimSpace(env.Data)
	if isNull(data) {
		return Result[T]{Kind: Empty, Value: zero}
	}
	if data[0] != '{' {
		c.rec.Warn("data is not an object", map[string]any{"url": c.base + req.Path})
		return Result[T]{Kind: Empty, Value: zero}
	}
	v, repaired, err := decodeLenient[T](data)
	if err != nil {
		c.rec.Warn("data could not be decoded", map[string]any{"url": c.base + req.Path, "error": err.Error()})
		return Result[T]{Kind: Empty, Value: zero}
	}
	if len(repaired) > 0 {
		c.rec.Warn("coerced mistyped fields", map[string]any{"url": c.base + req.Path, "fields": repaired})
	}
	return Result[T]{Kind: Ok, Value: v}
}

func isNull(b []byte) bool {
	return len(b) == 0 || bytes.Equal(b, []byte("null"))
}
