package sentiment

import (
	"context"
	"errors"
	"math"
	"net/url"
	"strconv"

	"github.com/wichananm65/tokopedia-trends/internal/backend"
)

var ErrProductRequired = errors.New("product ID is required")

// Data is the aggregate sentiment of one product's reviews.
type Data struct {
	ProductID int `json:"productId"`
	Positive  int `json:"sentiment_positive"`
	Negative  int `json:"sentiment_negative"`
	Neutral   int `json:"sentiment_neutral"`
}

// Breakdown sums sentiment counts and expresses them as whole percentages of
// the total.
type Breakdown struct {
	Positive    int     `json:"positive"`
	Negative    int     `json:"negative"`
	Neutral     int     `json:"neutral"`
	Total       int     `json:"total"`
	PositivePct float64 `json:"positivePct"`
	NegativePct float64 `json:"negativePct"`
	NeutralPct  float64 `json:"neutralPct"`
}

func Summarize(data []Data) Breakdown {
	var b Breakdown
	for _, d := range data {
		b.Positive += max(d.Positive, 0)
		b.Negative += max(d.Negative, 0)
		b.Neutral += max(d.Neutral, 0)
	}
	b.Total = b.Positive + b.Negative + b.Neutral
	if b.Total == 0 {
		return b
	}
	b.PositivePct = pct(b.Positive, b.Total)
	b.NegativePct = pct(b.Negative, b.Total)
	b.NeutralPct = pct(b.Neutral, b.Total)
	return b
}

func pct(n, total int) float64 {
	return math.Round(float64(n) / float64(total) * 100)
}

type Service struct {
	client *backend.Client
}

func NewService(client *backend.Client) *Service {
	return &Service{client: client}
}

// ByProduct fetches the sentiment aggregate of a product. It runs on the
// inference timeout.
func (s *Service) ByProduct(ctx context.Context, productID int) backend.Result[[]Data] {
	if productID <= 0 {
		return backend.Result[[]Data]{Kind: backend.Failure, Value: []Data{}, Reason: ErrProductRequired}
	}
	return backend.FetchList[Data](ctx, s.client, backend.Request{
		Path:      "/getSentimentByProduct",
		Params:    url.Values{"product": {strconv.Itoa(productID)}},
		Inference: true,
	})
}
