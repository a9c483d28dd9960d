package scoring

import (
	"math"

	"CryptoDigest/internal/domain"
)

// Metric weights. Interaction-type signals (likes, shares, replies)
// count more heavily than raw views, which are dampened logarithmically
// so large view counts cannot dominate the ranking.
const (
	likeWeight  = 2.0
	shareWeight = 3.0
	replyWeight = 1.5
	viewWeight  = 0.8
)

// Score converts raw interaction counts into a non-negative ranking
// score. It is monotonic non-decreasing in every individual metric and
// returns 0 when every metric is zero. Malformed values (negative or
// non-finite) contribute nothing.
func Score(m domain.Metrics) float64 {
	likes := sanitize(m.Likes)
	shares := sanitize(m.Shares)
	replies := sanitize(m.Replies)
	views := sanitize(m.Views)

	return likeWeight*likes +
		shareWeight*shares +
		replyWeight*replies +
		viewWeight*math.Log1p(views)
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
