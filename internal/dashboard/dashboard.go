package dashboard

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/wichananm65/tokopedia-trends/internal/backend"
	"github.com/wichananm65/tokopedia-trends/internal/category"
	"github.com/wichananm65/tokopedia-trends/internal/presenter"
	"github.com/wichananm65/tokopedia-trends/internal/product"
	"github.com/wichananm65/tokopedia-trends/internal/telemetry"
)

// HomeTrendingLimit is how many trending products the unfiltered homepage shows.
const HomeTrendingLimit = 8

// Query is what the visitor searched or filtered by. Search wins over CategoryID.
type Query struct {
	Search     string
	CategoryID int
	Attempt    int
}

func (q Query) Filtered() bool {
	return strings.TrimSpace(q.Search) != "" || q.CategoryID > 0
}

// Card is a product tile on the homepage.
type Card struct {
	product.Detail
	CategoryName string `json:"categoryName"`
}

type Stats struct {
	TotalProducts   int `json:"totalProducts"`
	TotalCategories int `json:"totalCategories"`
}

// Page is everything the homepage renders.
type Page struct {
	Status            presenter.Status                    `json:"status"`
	Products          presenter.View[[]Card]              `json:"products"`
	Categories        presenter.View[[]category.Category] `json:"categories"`
	ShowTrendingBadge bool                                `json:"showTrendingBadge"`
	Stats             Stats                               `json:"stats"`
	Error             *presenter.ErrorView                `json:"error,omitempty"`

	err error
}

// Err is the failure that put the page in the error state, if any.
func (p Page) Err() error { return p.err }

type Service struct {
	products   product.Fetcher
	categories category.Lister
	rec        telemetry.Recorder
}

func NewService(products product.Fetcher, categories category.Lister, rec telemetry.Recorder) *Service {
	return &Service{products: products, categories: categories, rec: telemetry.OrNop(rec)}
}

// Load fetches products and categories concurrently and assembles the page.
// Unfiltered, the product section shows the trending list; otherwise it shows
// the search or category results as returned.
func (s *Service) Load(ctx context.Context, q Query) Page {
	ps := product.NewStore(s.products, s.rec)
	cs := category.NewStore(s.categories, s.rec)

	var g errgroup.Group
	g.Go(func() error {
		switch {
		case strings.TrimSpace(q.Search) != "":
			ps.Search(ctx, q.Search)
		case q.CategoryID > 0:
			ps.FilterByCategory(ctx, q.CategoryID)
		default:
			ps.Fetch(ctx)
		}
		return nil
	})
	g.Go(func() error {
		cs.Fetch(ctx)
		return nil
	})
	_ = g.Wait()

	prodSnap := ps.State()
	catSnap := cs.State()

	display := prodSnap.Data
	if !q.Filtered() {
		display = ps.Trending(HomeTrendingLimit)
	}
	cards := make([]Card, 0, len(display))
	for _, p := range display {
		cards = append(cards, Card{Detail: product.NewDetail(p), CategoryName: cs.Name(p.CategoryID)})
	}

	page := Page{
		Categories:        presenter.FromSnapshot(catSnap, q.Attempt),
		ShowTrendingBadge: !q.Filtered(),
		Stats: Stats{
			TotalProducts:   len(prodSnap.Data),
			TotalCategories: len(catSnap.Data),
		},
	}

	switch {
	case prodSnap.Kind == backend.Failure:
		page.err = prodSnap.Err
	case catSnap.Kind == backend.Failure:
		page.err = catSnap.Err
	}

	if prodSnap.Kind == backend.Failure {
		page.Products = presenter.View[[]Card]{Status: presenter.Failed, Data: cards, Error: presenter.ErrorPanel(prodSnap.Err, q.Attempt)}
	} else {
		page.Products = presenter.Items(cards)
	}

	switch {
	case page.err != nil:
		page.Status = presenter.Failed
		page.Error = presenter.ErrorPanel(page.err, q.Attempt)
	case len(cards) == 0:
		page.Status = presenter.Blank
	default:
		page.Status = presenter.Ready
	}
	return page
}
