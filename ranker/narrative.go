package ranker

import (
	"math"

	"feedsim/model"
)

// pickNarrative selects the k posts whose opinions are nearest the
// target, regardless of the viewer: platform-level bias toward one
// narrative.
func pickNarrative(cands []candidate, ps *model.PostStore, target float64, k int) []candidate {
	dists := make([]float64, len(cands))
	for i, c := range cands {
		dists[i] = math.Abs(ps.Opinion(c.author, c.slot) - target)
	}
	return takeSmallest(cands, dists, k)
}
