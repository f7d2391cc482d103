package sentiment

import (
	"context"

	"github.com/wichananm65/tokopedia-trends/internal/backend"
	"github.com/wichananm65/tokopedia-trends/internal/state"
	"github.com/wichananm65/tokopedia-trends/internal/telemetry"
)

type Fetcher interface {
	ByProduct(ctx context.Context, productID int) backend.Result[[]Data]
}

type Store struct {
	fetch Fetcher
	res   *state.Resource[[]Data]
}

func NewStore(fetch Fetcher, rec telemetry.Recorder) *Store {
	return &Store{fetch: fetch, res: state.NewResource("useSentiment", []Data{}, rec)}
}

func (s *Store) Fetch(ctx context.Context, productID int) state.Snapshot[[]Data] {
	snap, _ := s.res.Load(ctx, "getSentimentByProduct", func(ctx context.Context) backend.Result[[]Data] {
		return s.fetch.ByProduct(ctx, productID)
	})
	return snap
}

func (s *Store) Clear() { s.res.Clear() }

func (s *Store) State() state.Snapshot[[]Data] { return s.res.Snapshot() }

func (s *Store) Breakdown() Breakdown { return Summarize(s.res.Snapshot().Data) }
