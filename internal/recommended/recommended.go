package recommended

import (
	"math"

	"github.com/wichananm65/tokopedia-trends/internal/product"
)

// DefaultMaxItems is how many recommendations a product page shows before "show all".
const DefaultMaxItems = 6

// Item is a product the recommender considers similar to another one.
// SimilarityScore (0..1) comes from the backend and is only ever displayed.
type Item struct {
	product.Product
	SimilarityScore float64 `json:"similarity_score"`
}

// MatchPercent is the similarity score as a whole percentage.
func (i Item) MatchPercent() int {
	return int(math.Round(i.SimilarityScore * 100))
}
