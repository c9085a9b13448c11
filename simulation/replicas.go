package simulation

import (
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
)

// ReplicaOptions controls the orchestrator.
type ReplicaOptions struct {
	// NReplicas is the number of independent replicas to run.
	NReplicas int
	// NSaveTrajectories caps how many replicas keep their full
	// (n_steps, n_users) opinion trajectory; the rest are dropped
	// after aggregation to bound memory.
	NSaveTrajectories int
	// Workers limits concurrent replicas; 0 means GOMAXPROCS.
	Workers int
	// Seed is the base random seed; replica i runs with Seed+i.
	Seed uint64
	// Progress enables a progress bar on stderr.
	Progress bool
}

// Aggregate stacks per-replica results. Replicas share no mutable
// state and only fully-completed results are merged.
type Aggregate struct {
	NReplicas          int `msgpack:"n_replicas"`
	NSavedTrajectories int `msgpack:"n_saved_trajectories"`

	// Per-replica series, (n_replicas, n_steps).
	Mean         [][]float64 `msgpack:"mean"`
	Pol          [][]float64 `msgpack:"pol"`
	FilterBubble [][]float64 `msgpack:"filter_bubble"`
	GiniSuccess  [][]float64 `msgpack:"gini_success"`
	GiniReach    [][]float64 `msgpack:"gini_reach"`
	Homophily    [][]float64 `msgpack:"homophily"`

	// Per-replica histograms.
	Histogram1D [][]int   `msgpack:"histogram_1d"`
	Histogram2D [][][]int `msgpack:"histogram_2d"`

	// Opinions keeps the first NSavedTrajectories replicas' full
	// trajectories, (n_saved, n_steps, n_users).
	Opinions [][][]float64 `msgpack:"opinions"`
}

// RunReplicas runs NReplicas independent simulations of cfg and stacks
// their results. Replicas run concurrently up to Workers, each with
// its own derived seed, so the aggregate is reproducible regardless of
// scheduling. Any replica error aborts the run: there is no partial
// merging.
func RunReplicas(cfg Config, opts ReplicaOptions) (*Aggregate, error) {
	if opts.NReplicas <= 0 {
		return nil, fmt.Errorf("simulation: n_replicas must be positive, got %d", opts.NReplicas)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	nSave := opts.NSaveTrajectories
	if nSave > opts.NReplicas {
		nSave = opts.NReplicas
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > opts.NReplicas {
		workers = opts.NReplicas
	}

	slog.Info("running replicas",
		"n_replicas", opts.NReplicas,
		"workers", workers,
		"ranker", cfg.Ranker.Rule,
		"seed", opts.Seed)
	start := time.Now()

	var bar *progressbar.ProgressBar
	if opts.Progress {
		bar = progressbar.Default(int64(opts.NReplicas), "replicas")
	}

	results := make([]*Result, opts.NReplicas)
	errs := make([]error, opts.NReplicas)

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for rep := range jobs {
				res, err := Simulate(cfg, opts.Seed+uint64(rep))
				results[rep] = res
				errs[rep] = err
				if bar != nil {
					bar.Add(1)
				}
			}
		}()
	}
	for rep := 0; rep < opts.NReplicas; rep++ {
		jobs <- rep
	}
	close(jobs)
	wg.Wait()

	for rep, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("simulation: replica %d: %w", rep, err)
		}
	}

	agg := &Aggregate{
		NReplicas:          opts.NReplicas,
		NSavedTrajectories: nSave,
		Mean:               make([][]float64, opts.NReplicas),
		Pol:                make([][]float64, opts.NReplicas),
		FilterBubble:       make([][]float64, opts.NReplicas),
		GiniSuccess:        make([][]float64, opts.NReplicas),
		GiniReach:          make([][]float64, opts.NReplicas),
		Homophily:          make([][]float64, opts.NReplicas),
		Histogram1D:        make([][]int, opts.NReplicas),
		Histogram2D:        make([][][]int, opts.NReplicas),
		Opinions:           make([][][]float64, nSave),
	}
	for rep, res := range results {
		agg.Mean[rep] = res.Mean
		agg.Pol[rep] = res.Pol
		agg.FilterBubble[rep] = res.FilterBubble
		agg.GiniSuccess[rep] = res.GiniSuccess
		agg.GiniReach[rep] = res.GiniReach
		agg.Homophily[rep] = res.Homophily
		agg.Histogram1D[rep] = res.Histogram1D
		agg.Histogram2D[rep] = res.Histogram2D
		if rep < nSave {
			agg.Opinions[rep] = res.Opinions
		}
	}

	slog.Info("replicas complete",
		"n_replicas", opts.NReplicas,
		"elapsed", time.Since(start).Round(time.Millisecond))

	return agg, nil
}
