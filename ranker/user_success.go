package ranker

import (
	"math"

	"golang.org/x/exp/rand"
)

// pickUserSuccess samples posts with probability proportional to
// (author's all-time cumulative likes + 1)^alpha. Unlike Engagement
// this weights the author, not the post, creating rich-get-richer
// dynamics at the user level.
func pickUserSuccess(cands []candidate, cumulativeLikes []int, alpha float64, k int, rng *rand.Rand) []candidate {
	weights := make([]float64, len(cands))
	for i, c := range cands {
		weights[i] = math.Pow(float64(cumulativeLikes[c.author])+1, alpha)
	}
	return weightedSample(cands, weights, k, rng)
}
