package product

import (
	"cmp"
	"slices"
)

// DefaultTrendingLimit is the homepage size of the trending list.
const DefaultTrendingLimit = 8

// Trending ranks in-stock products by discount (desc), then stock (desc), then
// current price (asc), keeping input order for full ties, and returns at most
// limit of them. When nothing is in stock the first limit products are
// returned unranked. The input is not modified.
func Trending(products []Product, limit int) []Product {
	if limit <= 0 {
		limit = DefaultTrendingLimit
	}

	ranked := make([]Product, 0, len(products))
	for _, p := range products {
		if p.InStock() {
			ranked = append(ranked, p)
		}
	}
	if len(ranked) == 0 {
		n := min(limit, len(products))
		out := make([]Product, n)
		copy(out, products[:n])
		return out
	}

	slices.SortStableFunc(ranked, compareTrending)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

func compareTrending(a, b Product) int {
	if c := cmp.Compare(b.Discount, a.Discount); c != 0 {
		return c
	}
	if c := cmp.Compare(b.Stock, a.Stock); c != 0 {
		return c
	}
	return cmp.Compare(a.CurrentPrice, b.CurrentPrice)
}
