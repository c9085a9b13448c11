package ranker

import (
	"math"

	"feedsim/model"
)

// pickClosest selects the k posts whose opinions are nearest the
// viewer's own, the strongest filter-bubble policy.
func pickClosest(cands []candidate, ps *model.PostStore, viewerOpinion float64, k int) []candidate {
	dists := make([]float64, len(cands))
	for i, c := range cands {
		dists[i] = math.Abs(ps.Opinion(c.author, c.slot) - viewerOpinion)
	}
	return takeSmallest(cands, dists, k)
}
