package ranker

import (
	"math"

	"feedsim/model"
)

// pickEvil first restricts to posts within epsilon of the viewer's
// opinion (the engagement-safe set), then takes the k of those closest
// to the target. When nothing is within epsilon it selects nothing:
// there is deliberately no fallback to posts the user would ignore,
// unlike Diverse_Engagement.
func pickEvil(cands []candidate, ps *model.PostStore, viewerOpinion, epsilon, target float64, k int) []candidate {
	within, _ := splitByBound(cands, ps, viewerOpinion, epsilon)
	if len(within) == 0 {
		return nil
	}
	dists := make([]float64, len(within))
	for i, c := range within {
		dists[i] = math.Abs(ps.Opinion(c.author, c.slot) - target)
	}
	return takeSmallest(within, dists, k)
}
