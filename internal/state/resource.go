package state

import (
	"context"
	"sync"
	"time"

	"github.com/wichananm65/tokopedia-trends/internal/backend"
	"github.com/wichananm65/tokopedia-trends/internal/telemetry"
)

// Snapshot is a consistent copy of a Resource.
type Snapshot[T any] struct {
	Data       T
	Kind       backend.Kind
	Loading    bool
	Err        error
	Generation uint64
}

// Resource holds the data, loading flag and error of one fetched resource.
// Every Load is numbered; a completion that is older than the latest issued
// Load is discarded, so the last request issued wins regardless of the order
// responses arrive in.
type Resource[T any] struct {
	mu        sync.RWMutex
	component string
	empty     T
	data      T
	kind      backend.Kind
	loading   bool
	err       error
	issued    uint64
	gen       uint64
	rec       telemetry.Recorder
}

// NewResource returns a Resource whose data starts (and resets on failure) to empty.
func NewResource[T any](component string, empty T, rec telemetry.Recorder) *Resource[T] {
	return &Resource[T]{
		component: component,
		empty:     empty,
		data:      empty,
		kind:      backend.Empty,
		rec:       telemetry.OrNop(rec),
	}
}

// Load runs fn and stores its outcome. It returns the resulting snapshot and
// whether this call's outcome was applied (false when a newer Load superseded it).
func (r *Resource[T]) Load(ctx context.Context, operation string, fn func(context.Context) backend.Result[T]) (Snapshot[T], bool) {
	r.mu.Lock()
	r.issued++
	seq := r.issued
	r.loading = true
	r.err = nil
	r.mu.Unlock()

	start := time.Now()
	res := fn(ctx)
	r.rec.Measure(r.component+"."+operation, time.Since(start), map[string]any{"kind": res.Kind.String()})

	r.mu.Lock()
	defer r.mu.Unlock()
	if seq != r.issued {
		return r.snapshotLocked(), false
	}
	r.loading = false
	r.gen++
	if res.Kind == backend.Failure {
		r.data = r.empty
		r.kind = backend.Failure
		r.err = res.Reason
		r.rec.ComponentError(r.component, operation, res.Reason)
		return r.snapshotLocked(), true
	}
	r.data = res.Value
	r.kind = res.Kind
	return r.snapshotLocked(), true
}

// Clear resets to the empty state and discards any in-flight Load.
func (r *Resource[T]) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.issued++
	r.gen++
	r.data = r.empty
	r.kind = backend.Empty
	r.loading = false
	r.err = nil
}

func (r *Resource[T]) Snapshot() Snapshot[T] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshotLocked()
}

func (r *Resource[T]) snapshotLocked() Snapshot[T] {
	return Snapshot[T]{
		Data:       r.data,
		Kind:       r.kind,
		Loading:    r.loading,
		Err:        r.err,
		Generation: r.gen,
	}
}
