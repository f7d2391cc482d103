package review

// Stats aggregates the ratings of a set of reviews. Distribution always holds
// the five buckets 1..5; ratings outside that range count towards Count and
// AverageRating only.
type Stats struct {
	Count         int         `json:"count"`
	AverageRating float64     `json:"averageRating"`
	Distribution  map[int]int `json:"distribution"`
}

func AverageRating(reviews []Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	total := 0
	for _, r := range reviews {
		total += r.Rating
	}
	return float64(total) / float64(len(reviews))
}

func RatingDistribution(reviews []Review) map[int]int {
	dist := map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}
	for _, r := range reviews {
		if _, ok := dist[r.Rating]; ok {
			dist[r.Rating]++
		}
	}
	return dist
}

func Summarize(reviews []Review) Stats {
	return Stats{
		Count:         len(reviews),
		AverageRating: AverageRating(reviews),
		Distribution:  RatingDistribution(reviews),
	}
}
