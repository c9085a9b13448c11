package ranker

import (
	"golang.org/x/exp/rand"

	"feedsim/model"
)

// pickDiverseEngagement fills slots first from a random subset of the
// posts within epsilon of the viewer's opinion, then pads any shortfall
// with a random subset of the posts outside the bound. The outside-
// epsilon fallback is what distinguishes it from Evil.
func pickDiverseEngagement(cands []candidate, ps *model.PostStore, viewerOpinion, epsilon float64, k int, rng *rand.Rand) []candidate {
	within, outside := splitByBound(cands, ps, viewerOpinion, epsilon)

	if len(within) >= k {
		if len(within) == k {
			out := make([]candidate, k)
			copy(out, within)
			return out
		}
		return randomSubset(within, k, rng)
	}

	out := make([]candidate, len(within), k)
	copy(out, within)
	if remaining := k - len(out); remaining > 0 && len(outside) > 0 {
		out = append(out, randomSubset(outside, remaining, rng)...)
	}
	return out
}
