package product

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/wichananm65/tokopedia-trends/internal/backend"
)

// Service is the product facade over the analytics backend.
type Service struct {
	client *backend.Client
}

func NewService(client *backend.Client) *Service {
	return &Service{client: client}
}

func (s *Service) List(ctx context.Context) backend.Result[[]Product] {
	return backend.FetchList[Product](ctx, s.client, backend.Request{Path: "/getAllProduct"})
}

// Search looks products up by name. A blank name lists everything.
func (s *Service) Search(ctx context.Context, name string) backend.Result[[]Product] {
	name = strings.TrimSpace(name)
	if name == "" {
		return s.List(ctx)
	}
	return backend.FetchList[Product](ctx, s.client, backend.Request{
		Path:   "/getAllProductsByName",
		Params: url.Values{"name": {name}},
	})
}

func (s *Service) ByCategory(ctx context.Context, categoryID int) backend.Result[[]Product] {
	return backend.FetchList[Product](ctx, s.client, backend.Request{
		Path:   "/getAllProductByCategory",
		Params: url.Values{"category": {strconv.Itoa(categoryID)}},
	})
}

// GetByID returns ErrNotFound when the backend answers without a product.
func (s *Service) GetByID(ctx context.Context, id int) (Product, error) {
	res := backend.FetchOne[Product](ctx, s.client, backend.Request{
		Path: "/getProductById/" + url.PathEscape(strconv.Itoa(id)),
	})
	switch res.Kind {
	case backend.Ok:
		return res.Value, nil
	case backend.Empty:
		return Product{}, ErrNotFound
	default:
		return Product{}, res.Reason
	}
}
