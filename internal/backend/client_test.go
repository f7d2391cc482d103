package backend

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wichananm65/tokopedia-trends/internal/telemetry"
)

func newTestClient(t *testing.T, base string, rec telemetry.Recorder) *Client {
	t.Helper()
	return New(Config{
		BaseURL:          base,
		Timeout:          time.Second,
		InferenceTimeout: 2 * time.Second,
		MaxAttempts:      3,
		RetryDelay:       time.Millisecond,
		Recorder:         rec,
	})
}

func refusedURL(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	u := srv.URL
	srv.Close()
	return u
}

func TestNew_Defaults(t *testing.T) {
	c := New(Config{})
	require.Equal(t, DefaultBaseURL, c.BaseURL())
	require.Equal(t, DefaultTimeout, c.timeout)
	require.Equal(t, DefaultInferenceTimeout, c.inference)
	require.Equal(t, DefaultMaxAttempts, c.maxAttempts)
	require.Equal(t, DefaultRetryDelay, c.retryDelay)
	require.IsType(t, telemetry.Nop{}, c.rec)
}

func TestDo_SendsJSONHeadersAndParams(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		w.Write([]byte(`{"error":false,"message":"ok","data":[]}`))
	}))
	defer srv.Close()

	rec := &telemetry.Recording{}
	c := newTestClient(t, srv.URL+"/", rec)
	resp, err := c.Do(context.Background(), Request{Path: "/getAllProductsByName", Params: url.Values{"name": {"kopi susu"}}})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.Status)
	require.Equal(t, "application/json", got.Header.Get("Accept"))
	require.Equal(t, "/getAllProductsByName", got.URL.Path)
	require.Equal(t, "kopi susu", got.URL.Query().Get("name"))
	require.Equal(t, 1, rec.Count("call"))
	require.Equal(t, 1, rec.Count("response"))
}

func TestDo_ConnectionRefusedExhaustsRetryBudget(t *testing.T) {
	rec := &telemetry.Recording{}
	c := newTestClient(t, refusedURL(t), rec)

	_, err := c.Do(context.Background(), Request{Path: "/getAllProduct"})
	require.Error(t, err)
	require.ErrorIs(t, err, ErrConnectionRefused)
	require.Contains(t, err.Error(), "cannot connect to the server")
	require.Equal(t, 3, rec.Count("call"))
	require.Equal(t, 2, rec.Count("warn"))

	var be *Error
	require.True(t, errors.As(err, &be))
	require.Equal(t, http.MethodGet, be.Method)
}

func TestDo_HTTPErrorIsNotRetried(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	rec := &telemetry.Recording{}
	resp, err := newTestClient(t, srv.URL, rec).Do(context.Background(), Request{Path: "/getAllReview"})
	require.NoError(t, err)
	require.Equal(t, http.StatusInternalServerError, resp.Status)
	require.EqualValues(t, 1, atomic.LoadInt32(&hits))
	require.Equal(t, 1, rec.Count("error"))
}

func TestDo_TimeoutIsNotRetried(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, Timeout: 50 * time.Millisecond, RetryDelay: time.Millisecond})
	_, err := c.Do(context.Background(), Request{Path: "/getAllCategory"})
	require.ErrorIs(t, err, ErrTimeout)
	require.False(t, Retryable(err))
	require.EqualValues(t, 1, atomic.LoadInt32(&hits))
}

func TestDo_InferenceUsesLongerTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		w.Write([]byte(`{"error":false,"message":"ok","data":null}`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, Timeout: 20 * time.Millisecond, InferenceTimeout: time.Second})
	_, err := c.Do(context.Background(), Request{Path: "/getReviewsSumOfProduct", Inference: true})
	require.NoError(t, err)
}

func TestDo_CanceledContextStopsRetrying(t *testing.T) {
	rec := &telemetry.Recording{}
	c := New(Config{BaseURL: refusedURL(t), RetryDelay: time.Hour, Recorder: rec})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	_, err := c.Do(ctx, Request{Path: "/"})
	require.ErrorIs(t, err, ErrCanceled)
	require.Equal(t, 1, rec.Count("call"))
}

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Hello world"))
	}))
	defer srv.Close()

	rec := &telemetry.Recording{}
	require.True(t, newTestClient(t, srv.URL, rec).Health(context.Background()))
	require.Zero(t, rec.Count("warn"))
	require.False(t, newTestClient(t, refusedURL(t), nil).Health(context.Background()))
}

func TestHealth_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	require.False(t, newTestClient(t, srv.URL, nil).Health(context.Background()))
}

func TestDo_InvalidRequestIsNotRetried(t *testing.T) {
	rec := &telemetry.Recording{}
	c := newTestClient(t, "http://127.0.0.1:1", rec)

	_, err := c.Do(context.Background(), Request{Method: "BAD METHOD", Path: "/getAllProduct"})
	require.ErrorIs(t, err, ErrInvalidRequest)
	require.False(t, Retryable(err))
	require.Zero(t, rec.Count("call"))
	require.Zero(t, rec.Count("warn"))
}

func TestDo_RetriesUntilBackendRecovers(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) == 1 {
			if conn, _, err := w.(http.Hijacker).Hijack(); err == nil {
				conn.Close()
			}
			return
		}
		w.Write([]byte(`{"error":false,"message":"ok","data":[]}`))
	}))
	defer srv.Close()

	rec := &telemetry.Recording{}
	resp, err := newTestClient(t, srv.URL, rec).Do(context.Background(), Request{Path: "/getAllCategory"})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.Status)
	require.EqualValues(t, 2, atomic.LoadInt32(&hits))
	require.Equal(t, 1, rec.Count("warn"))
}

func TestError_MessageAndUnwrap(t *testing.T) {
	cause := errors.New("dial tcp: boom")
	e := &Error{Kind: ErrNetwork, Message: "network error", Err: cause}
	require.Equal(t, "network error", e.Error())
	require.ErrorIs(t, e, ErrNetwork)
	require.ErrorIs(t, e, cause)
	require.True(t, Retryable(e))
	require.True(t, strings.HasPrefix(classify(context.Canceled, "GET", "/x", "b").Message, "request to /x"))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"timeout", &Error{Kind: ErrTimeout}, http.StatusGatewayTimeout},
		{"canceled", &Error{Kind: ErrCanceled}, http.StatusServiceUnavailable},
		{"backend status", &Error{Kind: ErrHTTPStatus, Status: 404}, http.StatusNotFound},
		{"application error on 200", &Error{Kind: ErrApplication, Status: 200}, http.StatusBadGateway},
		{"refused", &Error{Kind: ErrConnectionRefused}, http.StatusBadGateway},
		{"invalid request", &Error{Kind: ErrInvalidRequest}, http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}
