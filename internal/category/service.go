package category

import (
	"context"

	"github.com/wichananm65/tokopedia-trends/internal/backend"
)

// Service is the category facade over the analytics backend.
type Service struct {
	client *backend.Client
}

func NewService(client *backend.Client) *Service {
	return &Service{client: client}
}

func (s *Service) List(ctx context.Context) backend.Result[[]Category] {
	return backend.FetchList[Category](ctx, s.client, backend.Request{Path: "/getAllCategory"})
}
