package model

import (
	"fmt"
	"math"
)

// ODSpec is the "OD" section of the run configuration. Only the
// bounded-confidence model is known.
type ODSpec struct {
	Model   string   `json:"model"`
	Epsilon *float64 `json:"epsilon,omitempty"`
	Mu      *float64 `json:"mu,omitempty"`
}

const (
	DefaultEpsilon = 0.2
	DefaultMu      = 0.1
)

// NewModel validates the spec and resolves defaults. Unknown model
// names fail before any simulation work begins.
func (s ODSpec) NewModel() (*BCM, error) {
	if s.Model != "BCM" {
		return nil, fmt.Errorf("model: unknown opinion model %q", s.Model)
	}
	m := &BCM{Epsilon: DefaultEpsilon, Mu: DefaultMu}
	if s.Epsilon != nil {
		m.Epsilon = *s.Epsilon
	}
	if s.Mu != nil {
		m.Mu = *s.Mu
	}
	return m, nil
}

// BCM is the bounded-confidence opinion model: a user moves toward a
// post's opinion by a factor Mu only when the difference is strictly
// below the confidence bound Epsilon, and likes the post when it does.
type BCM struct {
	Epsilon float64
	Mu      float64
}

// Update executes one step of the dynamics given the ranker's
// selection. Slots are evaluated strictly in order: a user's opinion
// drift from slot j is already in effect when slot j+1 is read, so the
// same post can land inside or outside the confidence bound depending
// on what the user saw before it. Within a slot, users are independent.
//
// After the k slots, the working opinions are committed, every author
// writes one new post carrying their updated opinion at the current
// buffer slot, and the write cursor advances.
func (m *BCM) Update(st *State, sel *Selection) {
	n := st.NumUsers()
	k := sel.K()

	cur := make([]float64, n)
	copy(cur, st.Opinions)

	for slot := 0; slot < k; slot++ {
		for i := 0; i < n; i++ {
			author := sel.Authors[i][slot]
			if author == NoPost {
				continue
			}
			t := sel.Times[i][slot]

			diff := st.Posts.Opinion(author, t) - cur[i]
			if math.Abs(diff) < m.Epsilon {
				st.Posts.AddLike(author, t)
				st.CumulativeLikes[author]++
				cur[i] += m.Mu * diff
			}
			// Seen regardless of whether the post was liked.
			st.Posts.MarkSeen(author, t, i)
		}
	}

	copy(st.Opinions, cur)

	for i := 0; i < n; i++ {
		st.Posts.Write(i, st.TimeIdx, st.Opinions[i])
	}
	st.TimeIdx = (st.TimeIdx + 1) % st.Posts.History()
}
