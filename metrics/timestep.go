package metrics

import (
	"math"

	"feedsim/model"
	"feedsim/network"
)

// Timestep computes the per-step observables after the opinion commit:
// filter-bubble strength for this step's selection, Gini coefficients
// of success (likes) and reach (views) over the whole current buffer,
// and opinion homophily over the network's edges.
func Timestep(net *network.Network, st *model.State, sel *model.Selection) (filterBubble, giniSuccess, giniReach, homophily float64) {
	filterBubble = filterBubbleStrength(st, sel)
	giniSuccess, giniReach = bufferInequality(st.Posts)
	homophily = opinionHomophily(net, st.Opinions)
	return filterBubble, giniSuccess, giniReach, homophily
}

// filterBubbleStrength is 1 - mean |viewer opinion - post opinion| over
// every valid selection slot this step, or 0 when nothing was selected.
func filterBubbleStrength(st *model.State, sel *model.Selection) float64 {
	var sum float64
	var count int
	for i := 0; i < sel.NumUsers(); i++ {
		for j, author := range sel.Authors[i] {
			if author == model.NoPost {
				continue
			}
			sum += math.Abs(st.Opinions[i] - st.Posts.Opinion(author, sel.Times[i][j]))
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return 1 - sum/float64(count)
}

// bufferInequality collects the positive like and view counts across
// the entire current buffer and returns their Gini coefficients.
func bufferInequality(ps *model.PostStore) (success, reach float64) {
	var likes, views []float64
	ps.ForEachPost(func(_, _ int, _ float64, l, v int) {
		if l > 0 {
			likes = append(likes, float64(l))
		}
		if v > 0 {
			views = append(views, float64(v))
		}
	})
	return Gini(likes), Gini(views)
}

// opinionHomophily is the mean of 1 - |o_i - o_j| over all adjacent
// pairs, 0 for an edgeless network. Each undirected edge contributes
// from both endpoints, which leaves the mean unchanged.
func opinionHomophily(net *network.Network, opinions []float64) float64 {
	var sum float64
	var count int
	for i := 0; i < net.N; i++ {
		for _, j := range net.AdjList[i] {
			sum += 1 - math.Abs(opinions[i]-opinions[j])
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}
