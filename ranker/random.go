package ranker

import "golang.org/x/exp/rand"

// pickRandom: uniform sample without replacement of size min(k, available).
func pickRandom(cands []candidate, k int, rng *rand.Rand) []candidate {
	return randomSubset(cands, k, rng)
}
