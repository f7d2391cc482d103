package review

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/wichananm65/tokopedia-trends/internal/backend"
)

// Service is the review facade over the analytics backend.
type Service struct {
	client *backend.Client
}

func NewService(client *backend.Client) *Service {
	return &Service{client: client}
}

func (s *Service) List(ctx context.Context) backend.Result[[]Review] {
	return backend.FetchList[Review](ctx, s.client, backend.Request{Path: "/getAllReview"})
}

func (s *Service) ByProduct(ctx context.Context, productID int) backend.Result[[]Review] {
	return backend.FetchList[Review](ctx, s.client, backend.Request{
		Path:   "/getAllReviewByProduct",
		Params: url.Values{"product": {strconv.Itoa(productID)}},
	})
}

func (s *Service) ByCategory(ctx context.Context, categoryID int) backend.Result[[]Review] {
	return backend.FetchList[Review](ctx, s.client, backend.Request{
		Path:   "/getAllReviewByCategory",
		Params: url.Values{"category": {strconv.Itoa(categoryID)}},
	})
}

// Summary fetches the generated review summary of a product. The backend may
// answer with a summary object, a one-element list of them, or the bare text.
// A missing summary is ErrSummaryNotFound; a blank one reads NoSummaryText.
func (s *Service) Summary(ctx context.Context, productID int) (Summary, error) {
	env, err := s.client.Envelope(ctx, backend.Request{
		Path:      "/getReviewsSumOfProduct",
		Params:    url.Values{"product": {strconv.Itoa(productID)}},
		Inference: true,
	})
	if err != nil {
		return Summary{}, err
	}

	out := Summary{ProductID: productID}
	data := bytes.TrimSpace(env.Data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		return Summary{}, ErrSummaryNotFound
	case data[0] == '"':
		if err := json.Unmarshal(data, &out.Summary); err != nil {
			return Summary{}, fmt.Errorf("decode review summary: %w", err)
		}
	case data[0] == '[':
		var list []Summary
		if err := json.Unmarshal(data, &list); err != nil || len(list) == 0 {
			return Summary{}, ErrSummaryNotFound
		}
		out.Summary = list[0].Summary
	case data[0] == '{':
		var one Summary
		if err := json.Unmarshal(data, &one); err != nil {
			return Summary{}, fmt.Errorf("decode review summary: %w", err)
		}
		out.Summary = one.Summary
	default:
		return Summary{}, ErrSummaryNotFound
	}

	if strings.TrimSpace(out.Summary) == "" {
		out.Summary = NoSummaryText
	}
	return out, nil
}
