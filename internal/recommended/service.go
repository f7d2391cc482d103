package recommended

import (
	"context"
	"net/url"
	"strconv"

	"github.com/wichananm65/tokopedia-trends/internal/backend"
	"github.com/wichananm65/tokopedia-trends/internal/state"
	"github.com/wichananm65/tokopedia-trends/internal/telemetry"
)

// Service is the recommendation facade. Items keep the backend's order.
type Service struct {
	client *backend.Client
}

func NewService(client *backend.Client) *Service {
	return &Service{client: client}
}

func (s *Service) ForProduct(ctx context.Context, productID int) backend.Result[[]Item] {
	return backend.FetchList[Item](ctx, s.client, backend.Request{
		Path:      "/getRecommendProducts",
		Params:    url.Values{"product": {strconv.Itoa(productID)}},
		Inference: true,
	})
}

type Fetcher interface {
	ForProduct(ctx context.Context, productID int) backend.Result[[]Item]
}

// Store holds the recommendations shown next to one product.
type Store struct {
	fetch Fetcher
	res   *state.Resource[[]Item]
}

func NewStore(fetch Fetcher, rec telemetry.Recorder) *Store {
	return &Store{fetch: fetch, res: state.NewResource("useProducts", []Item{}, rec)}
}

func (s *Store) Fetch(ctx context.Context, productID int) state.Snapshot[[]Item] {
	snap, _ := s.res.Load(ctx, "getRecommendations", func(ctx context.Context) backend.Result[[]Item] {
		return s.fetch.ForProduct(ctx, productID)
	})
	return snap
}

func (s *Store) State() state.Snapshot[[]Item] { return s.res.Snapshot() }
