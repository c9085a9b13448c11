package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestState(opinions []float64, history int) *State {
	return &State{
		Opinions:        append([]float64(nil), opinions...),
		CumulativeLikes: make([]int, len(opinions)),
		Posts:           NewPostStore(opinions, history),
	}
}

func TestNewModelUnknown(t *testing.T) {
	_, err := ODSpec{Model: "DeGroot"}.NewModel()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown opinion model")
}

func TestNewModelDefaults(t *testing.T) {
	m, err := ODSpec{Model: "BCM"}.NewModel()
	require.NoError(t, err)
	assert.Equal(t, DefaultEpsilon, m.Epsilon)
	assert.Equal(t, DefaultMu, m.Mu)

	eps, mu := 0.35, 0.25
	m, err = ODSpec{Model: "BCM", Epsilon: &eps, Mu: &mu}.NewModel()
	require.NoError(t, err)
	assert.Equal(t, 0.35, m.Epsilon)
	assert.Equal(t, 0.25, m.Mu)
}

// Two users each shown the other's backlog post. Both posts are read at
// their pre-step values, so with mu=0.5 the opinions meet exactly
// halfway.
func TestUpdateSymmetricConvergence(t *testing.T) {
	st := newTestState([]float64{0.2, 0.8}, 2)
	m := &BCM{Epsilon: 1.0, Mu: 0.5}

	sel := NewSelection(2, 1)
	sel.Set(0, 0, 1, 1)
	sel.Set(1, 0, 0, 1)

	m.Update(st, sel)

	assert.InDelta(t, 0.5, st.Opinions[0], 1e-12)
	assert.InDelta(t, 0.5, st.Opinions[1], 1e-12)

	// Slot 1 keeps its like and view; slot 0 was rewritten with the
	// committed opinions.
	assert.Equal(t, 1, st.Posts.Likes(0, 1))
	assert.Equal(t, 1, st.Posts.Likes(1, 1))
	assert.True(t, st.Posts.Seen(1, 1, 0))
	assert.True(t, st.Posts.Seen(0, 1, 1))
	assert.InDelta(t, 0.5, st.Posts.Opinion(0, 0), 1e-12)
	assert.InDelta(t, 0.5, st.Posts.Opinion(1, 0), 1e-12)

	assert.Equal(t, []int{1, 1}, st.CumulativeLikes)
	assert.Equal(t, 1, st.TimeIdx)
}

// Slots are evaluated in order with the drift from earlier slots
// already applied: a post too far from the user's starting opinion can
// still be accepted after a closer post pulled the user toward it.
func TestUpdateSequentialSlots(t *testing.T) {
	st := newTestState([]float64{0.0, 0.5}, 2)
	st.Posts.Write(1, 0, 0.1)
	st.Posts.Write(1, 1, 0.25)
	m := &BCM{Epsilon: 0.2, Mu: 1.0}

	sel := NewSelection(2, 2)
	sel.Set(0, 0, 1, 0)
	sel.Set(0, 1, 1, 1)

	m.Update(st, sel)

	// Slot 0 moved user 0 to 0.1, bringing slot 1's post (0.25) inside
	// the bound; the final opinion is the second post's value.
	assert.InDelta(t, 0.25, st.Opinions[0], 1e-12)
	assert.Equal(t, 2, st.CumulativeLikes[1])

	// The liked slot-0 post was overwritten by this step's write, but
	// the slot-1 like survives.
	assert.Zero(t, st.Posts.Likes(1, 0))
	assert.Equal(t, 1, st.Posts.Likes(1, 1))
}

// A post outside the confidence bound is seen but neither liked nor
// moved toward.
func TestUpdateOutsideBound(t *testing.T) {
	st := newTestState([]float64{0.1, 0.9}, 2)
	m := &BCM{Epsilon: 0.2, Mu: 0.5}

	sel := NewSelection(2, 1)
	sel.Set(0, 0, 1, 1)

	m.Update(st, sel)

	assert.Equal(t, 0.1, st.Opinions[0])
	assert.Zero(t, st.Posts.Likes(1, 1))
	assert.True(t, st.Posts.Seen(1, 1, 0))
	assert.Equal(t, 1, st.Posts.Views(1, 1))
	assert.Zero(t, st.CumulativeLikes[1])
}

// Likes from several viewers in the same step accumulate on the post.
func TestUpdateLikeAggregation(t *testing.T) {
	st := newTestState([]float64{0.5, 0.5, 0.5, 0.52}, 2)
	m := &BCM{Epsilon: 0.1, Mu: 0.1}

	sel := NewSelection(4, 1)
	sel.Set(0, 0, 3, 1)
	sel.Set(1, 0, 3, 1)
	sel.Set(2, 0, 3, 1)

	m.Update(st, sel)

	assert.Equal(t, 3, st.Posts.Likes(3, 1))
	assert.Equal(t, 3, st.Posts.Views(3, 1))
	assert.Equal(t, 3, st.CumulativeLikes[3])
}

// Empty slots are skipped; the cursor still advances and everyone still
// posts.
func TestUpdateNoSelection(t *testing.T) {
	st := newTestState([]float64{0.3, 0.7}, 3)
	m := &BCM{Epsilon: 0.2, Mu: 0.1}

	m.Update(st, NewSelection(2, 2))

	assert.Equal(t, []float64{0.3, 0.7}, st.Opinions)
	assert.Equal(t, 1, st.TimeIdx)
	assert.Equal(t, 0.3, st.Posts.Opinion(0, 0))
	assert.Equal(t, 0.7, st.Posts.Opinion(1, 0))
}

// The cursor wraps after History steps.
func TestUpdateCursorWraps(t *testing.T) {
	st := newTestState([]float64{0.5}, 2)
	m := &BCM{Epsilon: 0.2, Mu: 0.1}
	for it := 0; it < 2; it++ {
		m.Update(st, NewSelection(1, 1))
	}
	assert.Zero(t, st.TimeIdx)
}
