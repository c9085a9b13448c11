package ranker

import (
	"math"

	"golang.org/x/exp/rand"

	"feedsim/model"
)

// pickEngagement samples posts with probability proportional to
// (likes+1)^alpha. Alpha 0 degenerates to uniform; large alpha gives
// winner-take-all dynamics where viral posts dominate.
func pickEngagement(cands []candidate, ps *model.PostStore, alpha float64, k int, rng *rand.Rand) []candidate {
	weights := make([]float64, len(cands))
	for i, c := range cands {
		weights[i] = math.Pow(float64(ps.Likes(c.author, c.slot))+1, alpha)
	}
	return weightedSample(cands, weights, k, rng)
}
