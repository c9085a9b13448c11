package model

import (
	"golang.org/x/exp/rand"
)

// State is the mutable simulation state for one replica. One instance
// is created per Simulate call and owned by it exclusively; no
// component retains references across steps.
type State struct {
	// Opinions holds each user's committed opinion in [0,1]. Only the
	// opinion model writes here.
	Opinions []float64

	// CumulativeLikes[i] is author i's all-time like total, including
	// likes on posts that have since been overwritten. Read by the
	// User_Success ranker, maintained by the opinion model.
	CumulativeLikes []int

	// Posts is the circular post buffer.
	Posts *PostStore

	// TimeIdx is the next buffer slot to write, shared by all authors
	// and advanced modulo the history length once per step.
	TimeIdx int
}

// NewState draws initial opinions uniformly in [0,1) from rng and
// seeds the post store with the virtual backlog.
func NewState(n, history int, rng *rand.Rand) *State {
	opinions := make([]float64, n)
	for i := range opinions {
		opinions[i] = rng.Float64()
	}
	return &State{
		Opinions:        opinions,
		CumulativeLikes: make([]int, n),
		Posts:           NewPostStore(opinions, history),
	}
}

// NumUsers returns the network size.
func (st *State) NumUsers() int { return len(st.Opinions) }
