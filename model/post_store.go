package model

// PostStore is the per-author circular buffer of posts. Every author
// owns exactly `history` slots; the global write cursor (State.TimeIdx)
// is shared by all authors, so slot t always holds every author's post
// from the same step. The store owns its arrays exclusively: all access
// goes through the methods below.
type PostStore struct {
	numUsers int
	history  int

	// opinions[author][slot] is the opinion value at posting time.
	opinions [][]float64
	// likes[author][slot] only grows within a slot's lifetime and is
	// reset to zero when the slot is rewritten.
	likes [][]int
	// seenBy[author][slot][viewer] records which users viewed the post.
	// Never cleared except on rewrite.
	seenBy [][][]bool
	// views[author][slot] caches the per-post view count so the reach
	// metric does not have to sum the seen bitmap each step.
	views [][]int
}

// NewPostStore allocates the buffers and fills every slot of author i
// with initialOpinions[i], modeling a virtual backlog of identical
// posts made before the simulation starts.
func NewPostStore(initialOpinions []float64, history int) *PostStore {
	n := len(initialOpinions)
	ps := &PostStore{
		numUsers: n,
		history:  history,
		opinions: make([][]float64, n),
		likes:    make([][]int, n),
		seenBy:   make([][][]bool, n),
		views:    make([][]int, n),
	}
	for i := 0; i < n; i++ {
		ps.opinions[i] = make([]float64, history)
		ps.likes[i] = make([]int, history)
		ps.views[i] = make([]int, history)
		ps.seenBy[i] = make([][]bool, history)
		for s := 0; s < history; s++ {
			ps.opinions[i][s] = initialOpinions[i]
			ps.seenBy[i][s] = make([]bool, n)
		}
	}
	return ps
}

// NumUsers returns the number of authors.
func (ps *PostStore) NumUsers() int { return ps.numUsers }

// History returns the buffer length H.
func (ps *PostStore) History() int { return ps.history }

// Opinion returns the opinion value of the post at (author, slot).
func (ps *PostStore) Opinion(author, slot int) float64 { return ps.opinions[author][slot] }

// Likes returns the like count of the post at (author, slot).
func (ps *PostStore) Likes(author, slot int) int { return ps.likes[author][slot] }

// Views returns how many distinct users have seen (author, slot).
func (ps *PostStore) Views(author, slot int) int { return ps.views[author][slot] }

// Seen reports whether viewer has already seen the post at (author, slot).
func (ps *PostStore) Seen(author, slot, viewer int) bool { return ps.seenBy[author][slot][viewer] }

// Write overwrites the slot with a fresh post: the new opinion value,
// zero likes, and an empty seen bitmap. Any dying-post capture for the
// slot must happen before this call; the previous occupant is gone
// afterwards.
func (ps *PostStore) Write(author, slot int, opinion float64) {
	ps.opinions[author][slot] = opinion
	ps.likes[author][slot] = 0
	ps.views[author][slot] = 0
	seen := ps.seenBy[author][slot]
	for v := range seen {
		seen[v] = false
	}
}

// MarkSeen records that viewer has seen (author, slot). Idempotent:
// repeated calls do not inflate the view count.
func (ps *PostStore) MarkSeen(author, slot, viewer int) {
	if ps.seenBy[author][slot][viewer] {
		return
	}
	ps.seenBy[author][slot][viewer] = true
	ps.views[author][slot]++
}

// AddLike increments the slot's like count by one.
func (ps *PostStore) AddLike(author, slot int) {
	ps.likes[author][slot]++
}

// ForEachPost calls fn once for every (author, slot) pair in the
// buffer, in author-ascending, slot-ascending order. The callback gets
// value copies only; it cannot retain access to the store's arrays.
func (ps *PostStore) ForEachPost(fn func(author, slot int, opinion float64, likes, views int)) {
	for a := 0; a < ps.numUsers; a++ {
		for s := 0; s < ps.history; s++ {
			fn(a, s, ps.opinions[a][s], ps.likes[a][s], ps.views[a][s])
		}
	}
}
