package simulation

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"

	"feedsim/metrics"
	"feedsim/model"
	"feedsim/network"
)

// Result holds the time series and histograms of a single replica.
type Result struct {
	// Per-step series, length n_steps.
	Mean         []float64 `msgpack:"mean"`
	Pol          []float64 `msgpack:"pol"`
	FilterBubble []float64 `msgpack:"filter_bubble"`
	GiniSuccess  []float64 `msgpack:"gini_success"`
	GiniReach    []float64 `msgpack:"gini_reach"`
	Homophily    []float64 `msgpack:"homophily"`

	// Opinions is the full trajectory, (n_steps, n_users).
	Opinions [][]float64 `msgpack:"opinions"`

	// Success histograms over every post that ever existed.
	Histogram1D []int   `msgpack:"histogram_1d"`
	Histogram2D [][]int `msgpack:"histogram_2d"`
}

func newResult(nSteps, nUsers int) *Result {
	res := &Result{
		Mean:         make([]float64, nSteps),
		Pol:          make([]float64, nSteps),
		FilterBubble: make([]float64, nSteps),
		GiniSuccess:  make([]float64, nSteps),
		GiniReach:    make([]float64, nSteps),
		Homophily:    make([]float64, nSteps),
		Opinions:     make([][]float64, nSteps),
	}
	for i := range res.Opinions {
		res.Opinions[i] = make([]float64, nUsers)
	}
	return res
}

// Simulate runs one replica to completion. Everything is deterministic
// in (cfg, seed): the same seed reproduces bit-identical results.
//
// Each step: capture the post about to be overwritten (once the buffer
// has wrapped), rank, update opinions and posts, then record metrics
// on the committed state.
func Simulate(cfg Config, seed uint64) (*Result, error) {
	rng := rand.New(rand.NewSource(seed))

	net, err := network.Build(cfg.Graph, rng)
	if err != nil {
		return nil, err
	}
	od, err := cfg.OD.NewModel()
	if err != nil {
		return nil, err
	}
	policy, err := cfg.Ranker.Policy()
	if err != nil {
		return nil, err
	}

	history := cfg.postHistory()
	k := cfg.kPosts()
	nSteps := cfg.nSteps()

	st := model.NewState(net.N, history, rng)
	hist := metrics.NewHistograms()
	res := newResult(nSteps, net.N)

	for step := 0; step < nSteps; step++ {
		if step >= history {
			hist.RecordDying(st.Posts, st.TimeIdx)
		}

		sel := policy.Rank(net, st, od.Epsilon, k, rng)
		od.Update(st, sel)

		fb, giniS, giniR, hom := metrics.Timestep(net, st, sel)

		mean := stat.Mean(st.Opinions, nil)
		res.Mean[step] = mean
		res.Pol[step] = stat.MomentAbout(2, st.Opinions, mean, nil)
		res.FilterBubble[step] = fb
		res.GiniSuccess[step] = giniS
		res.GiniReach[step] = giniR
		res.Homophily[step] = hom
		copy(res.Opinions[step], st.Opinions)
	}

	hist.Finalize(st.Posts)
	res.Histogram1D = hist.Likes
	res.Histogram2D = hist.OpinionLikes

	return res, nil
}
