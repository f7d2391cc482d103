package review

import (
	"context"

	"github.com/wichananm65/tokopedia-trends/internal/backend"
	"github.com/wichananm65/tokopedia-trends/internal/state"
	"github.com/wichananm65/tokopedia-trends/internal/telemetry"
)

type Fetcher interface {
	List(ctx context.Context) backend.Result[[]Review]
	ByProduct(ctx context.Context, productID int) backend.Result[[]Review]
	ByCategory(ctx context.Context, categoryID int) backend.Result[[]Review]
}

type Summarizer interface {
	Summary(ctx context.Context, productID int) (Summary, error)
}

// Store holds the reviews shown on one page.
type Store struct {
	fetch Fetcher
	res   *state.Resource[[]Review]
}

func NewStore(fetch Fetcher, rec telemetry.Recorder) *Store {
	return &Store{fetch: fetch, res: state.NewResource("useReviews", []Review{}, rec)}
}

func (s *Store) FetchAll(ctx context.Context) state.Snapshot[[]Review] {
	snap, _ := s.res.Load(ctx, "fetchAllReviews", s.fetch.List)
	return snap
}

func (s *Store) FetchByProduct(ctx context.Context, productID int) state.Snapshot[[]Review] {
	snap, _ := s.res.Load(ctx, "fetchReviews", func(ctx context.Context) backend.Result[[]Review] {
		return s.fetch.ByProduct(ctx, productID)
	})
	return snap
}

func (s *Store) FetchByCategory(ctx context.Context, categoryID int) state.Snapshot[[]Review] {
	snap, _ := s.res.Load(ctx, "fetchReviewsByCategory", func(ctx context.Context) backend.Result[[]Review] {
		return s.fetch.ByCategory(ctx, categoryID)
	})
	return snap
}

func (s *Store) Clear() { s.res.Clear() }

func (s *Store) State() state.Snapshot[[]Review] { return s.res.Snapshot() }

// Stats summarizes the currently loaded reviews.
func (s *Store) Stats() Stats { return Summarize(s.res.Snapshot().Data) }

// SummaryStore holds the review summary of the product being viewed.
type SummaryStore struct {
	sum Summarizer
	res *state.Resource[string]
	rec telemetry.Recorder
}

func NewSummaryStore(sum Summarizer, rec telemetry.Recorder) *SummaryStore {
	rec = telemetry.OrNop(rec)
	return &SummaryStore{sum: sum, res: state.NewResource("useReviewSummary", "", rec), rec: rec}
}

// Get loads the summary text of a product. Without a product nothing is requested.
func (s *SummaryStore) Get(ctx context.Context, productID int) state.Snapshot[string] {
	if productID <= 0 {
		s.rec.Warn("product ID is required for review summary", nil)
		return s.res.Snapshot()
	}
	snap, _ := s.res.Load(ctx, "getReviewSummary", func(ctx context.Context) backend.Result[string] {
		sum, err := s.sum.Summary(ctx, productID)
		if err != nil {
			return backend.Result[string]{Kind: backend.Failure, Reason: err}
		}
		return backend.Result[string]{Kind: backend.Ok, Value: sum.Summary}
	})
	return snap
}

func (s *SummaryStore) Clear() { s.res.Clear() }

func (s *SummaryStore) State() state.Snapshot[string] { return s.res.Snapshot() }
