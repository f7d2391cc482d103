package product

import (
	"context"
	"strings"
	"sync"

	"github.com/wichananm65/tokopedia-trends/internal/backend"
	"github.com/wichananm65/tokopedia-trends/internal/state"
	"github.com/wichananm65/tokopedia-trends/internal/telemetry"
)

// Fetcher is the part of Service a Store needs.
type Fetcher interface {
	List(ctx context.Context) backend.Result[[]Product]
	Search(ctx context.Context, name string) backend.Result[[]Product]
	ByCategory(ctx context.Context, categoryID int) backend.Result[[]Product]
	GetByID(ctx context.Context, id int) (Product, error)
}

// Store holds the product list of one page along with its derived trending view.
type Store struct {
	fetch Fetcher
	res   *state.Resource[[]Product]
	rec   telemetry.Recorder

	mu   sync.Mutex
	memo trendingMemo
}

type trendingMemo struct {
	valid bool
	gen   uint64
	limit int
	out   []Product
}

func NewStore(fetch Fetcher, rec telemetry.Recorder) *Store {
	rec = telemetry.OrNop(rec)
	return &Store{
		fetch: fetch,
		res:   state.NewResource("useProducts", []Product{}, rec),
		rec:   rec,
	}
}

func (s *Store) Fetch(ctx context.Context) state.Snapshot[[]Product] {
	return s.load(ctx, "fetchProducts", s.fetch.List)
}

// Search replaces the list with name matches. A blank query fetches everything.
func (s *Store) Search(ctx context.Context, query string) state.Snapshot[[]Product] {
	if strings.TrimSpace(query) == "" {
		return s.Fetch(ctx)
	}
	return s.load(ctx, "searchProducts", func(ctx context.Context) backend.Result[[]Product] {
		return s.fetch.Search(ctx, query)
	})
}

func (s *Store) FilterByCategory(ctx context.Context, categoryID int) state.Snapshot[[]Product] {
	return s.load(ctx, "filterByCategory", func(ctx context.Context) backend.Result[[]Product] {
		return s.fetch.ByCategory(ctx, categoryID)
	})
}

// Get fetches one product without touching the list.
func (s *Store) Get(ctx context.Context, id int) (Product, error) {
	p, err := s.fetch.GetByID(ctx, id)
	if err != nil {
		s.rec.ComponentError("useProducts", "getProduct", err)
		return Product{}, err
	}
	s.checkDiscount(p)
	return p, nil
}

// Trending derives the trending list from the current products. The result is
// cached until the list changes or a different limit is asked for.
func (s *Store) Trending(limit int) []Product {
	snap := s.res.Snapshot()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.memo.valid && s.memo.gen == snap.Generation && s.memo.limit == limit {
		return s.memo.out
	}
	out := Trending(snap.Data, limit)
	s.memo = trendingMemo{valid: true, gen: snap.Generation, limit: limit, out: out}
	return out
}

func (s *Store) State() state.Snapshot[[]Product] { return s.res.Snapshot() }

func (s *Store) load(ctx context.Context, op string, fn func(context.Context) backend.Result[[]Product]) state.Snapshot[[]Product] {
	snap, applied := s.res.Load(ctx, op, fn)
	if applied {
		for _, p := range snap.Data {
			s.checkDiscount(p)
		}
	}
	return snap
}

func (s *Store) checkDiscount(p Product) {
	if p.DiscountMismatch() {
		s.rec.Warn("discount does not match prices", map[string]any{
			"productId": p.ID,
			"discount":  p.Discount,
			"computed":  p.ComputedDiscount(),
		})
	}
}
