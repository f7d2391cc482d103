package state

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wichananm65/tokopedia-trends/internal/backend"
	"github.com/wichananm65/tokopedia-trends/internal/telemetry"
)

func okList(v ...int) func(context.Context) backend.Result[[]int] {
	return func(context.Context) backend.Result[[]int] {
		return backend.Result[[]int]{Kind: backend.Ok, Value: v}
	}
}

func TestResource_SuccessThenFailureResetsData(t *testing.T) {
	rec := &telemetry.Recording{}
	r := NewResource("useProducts", []int{}, rec)

	snap, applied := r.Load(context.Background(), "fetchProducts", okList(1, 2))
	require.True(t, applied)
	require.Equal(t, []int{1, 2}, snap.Data)
	require.Equal(t, backend.Ok, snap.Kind)
	require.False(t, snap.Loading)
	require.NoError(t, snap.Err)

	boom := errors.New("Error fetching data")
	snap, _ = r.Load(context.Background(), "fetchProducts", func(context.Context) backend.Result[[]int] {
		return backend.Result[[]int]{Kind: backend.Failure, Value: []int{}, Reason: boom}
	})
	require.Equal(t, backend.Failure, snap.Kind)
	require.NotNil(t, snap.Data)
	require.Empty(t, snap.Data)
	require.ErrorIs(t, snap.Err, boom)
	require.Equal(t, 1, rec.Count("component"))
	require.Equal(t, 2, rec.Count("measure"))
}

func TestResource_StaleResponseDiscarded(t *testing.T) {
	r := NewResource("useProducts", []int{}, nil)

	release := make(chan struct{})
	started := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	var slowApplied bool
	go func() {
		defer wg.Done()
		_, slowApplied = r.Load(context.Background(), "searchProducts", func(context.Context) backend.Result[[]int] {
			close(started)
			<-release
			return backend.Result[[]int]{Kind: backend.Ok, Value: []int{1}}
		})
	}()
	<-started

	snap, applied := r.Load(context.Background(), "searchProducts", okList(2))
	require.True(t, applied)
	require.Equal(t, []int{2}, snap.Data)

	close(release)
	wg.Wait()
	require.False(t, slowApplied)
	require.Equal(t, []int{2}, r.Snapshot().Data)
}

func TestResource_LoadingWhileInFlight(t *testing.T) {
	r := NewResource("useCategories", []int{}, nil)
	release := make(chan struct{})
	started := make(chan struct{})
	done := make(chan struct{})
	go func() {
		r.Load(context.Background(), "fetchCategories", func(context.Context) backend.Result[[]int] {
			close(started)
			<-release
			return backend.Result[[]int]{Kind: backend.Empty, Value: []int{}}
		})
		close(done)
	}()
	<-started
	require.True(t, r.Snapshot().Loading)
	close(release)
	<-done
	snap := r.Snapshot()
	require.False(t, snap.Loading)
	require.Equal(t, backend.Empty, snap.Kind)
}

func TestResource_ClearDiscardsInFlight(t *testing.T) {
	r := NewResource("useSentiment", []int{}, nil)
	r.Load(context.Background(), "getSentimentByProduct", okList(5))
	gen := r.Snapshot().Generation

	r.Clear()
	snap := r.Snapshot()
	require.Empty(t, snap.Data)
	require.Equal(t, backend.Empty, snap.Kind)
	require.Greater(t, snap.Generation, gen)
}

func TestRetryGate(t *testing.T) {
	g := NewRetryGate(0)
	require.Equal(t, DefaultMaxRetries, g.Max())
	for i := 0; i < 3; i++ {
		require.True(t, g.Allow())
	}
	require.False(t, g.Allow())
	require.Equal(t, 3, g.Attempts())

	g.Restore(1)
	require.True(t, g.Allow())
	require.Equal(t, 2, g.Attempts())

	g.Restore(-4)
	require.Zero(t, g.Attempts())
}
