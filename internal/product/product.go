package product

import (
	"errors"
	"math"
)

var ErrNotFound = errors.New("Product not found")

// Product is a marketplace listing as delivered by the analytics backend.
// JSON tags follow the backend contract.
type Product struct {
	ID            int      `json:"id"`
	Name          string   `json:"name"`
	CurrentPrice  float64  `json:"currentPrice"`
	OriginalPrice float64  `json:"originalPrice"`
	ImgURL        string   `json:"imgUrl"`
	Stock         int      `json:"stock"`
	CategoryID    int      `json:"categoryId"`
	Discount      float64  `json:"discount"`
	Description   *string  `json:"description,omitempty"`
	Rating        *float64 `json:"rating,omitempty"`
	ReviewCount   *int     `json:"reviewCount,omitempty"`
}

// discountTolerance is how many percentage points the backend discount may
// drift from the one implied by the prices before it is reported.
const discountTolerance = 1.0

// ComputedDiscount derives the discount percentage from the two prices,
// rounded to a whole percent. Discount (from the backend) stays the source of
// truth; this is only used to cross-check it.
func (p Product) ComputedDiscount() float64 {
	if p.OriginalPrice <= 0 || p.CurrentPrice >= p.OriginalPrice {
		return 0
	}
	return math.Round((p.OriginalPrice - p.CurrentPrice) / p.OriginalPrice * 100)
}

// DiscountMismatch reports whether the backend discount disagrees with the prices.
func (p Product) DiscountMismatch() bool {
	if p.OriginalPrice <= 0 {
		return false
	}
	return math.Abs(p.Discount-p.ComputedDiscount()) > discountTolerance
}

// InStock reports whether at least one unit is available.
func (p Product) InStock() bool { return p.Stock > 0 }
