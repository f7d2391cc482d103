package review

import "errors"

const NoSummaryText = "No summary available"

var ErrSummaryNotFound = errors.New("Review summary not found")

type Review struct {
	ID        int    `json:"id"`
	Review    string `json:"review"`
	Rating    int    `json:"rating"`
	Tanggal   string `json:"tanggal"`
	ProductID int    `json:"productId"`
}

// Summary is the generated digest of all reviews of one product.
type Summary struct {
	ProductID int    `json:"productId"`
	Summary   string `json:"summary"`
}
