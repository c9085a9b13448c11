package ranker

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/sampleuv"
)

// weightedSample draws up to k candidates without replacement with
// probability proportional to weights. A zero weight sum cannot occur
// with the +1 smoothing the policies apply, but is guarded as uniform
// rather than raising.
func weightedSample(cands []candidate, weights []float64, k int, rng *rand.Rand) []candidate {
	if k > len(cands) {
		k = len(cands)
	}
	if floats.Sum(weights) <= 0 {
		for i := range weights {
			weights[i] = 1
		}
	}

	w := sampleuv.NewWeighted(weights, rng)
	out := make([]candidate, 0, k)
	for len(out) < k {
		idx, ok := w.Take()
		if !ok {
			break
		}
		out = append(out, cands[idx])
	}
	return out
}

// randomSubset picks size candidates uniformly without replacement, or
// all of them in order when size covers the whole set.
func randomSubset(cands []candidate, size int, rng *rand.Rand) []candidate {
	if size >= len(cands) {
		out := make([]candidate, len(cands))
		copy(out, cands)
		return out
	}
	out := make([]candidate, 0, size)
	for _, idx := range rng.Perm(len(cands))[:size] {
		out = append(out, cands[idx])
	}
	return out
}
