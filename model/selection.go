package model

// NoPost is the sentinel for "no post available" in a selection slot.
const NoPost = -1

// Selection is a ranker's output for one step: for each user, up to k
// (author, time) post references. Authors[i][j] == NoPost if and only
// if Times[i][j] == NoPost; unfilled slots stay at the sentinel when a
// user has fewer than k eligible posts.
type Selection struct {
	Authors [][]int
	Times   [][]int
}

// NewSelection returns an (nUsers, k) selection with every slot set to
// the sentinel.
func NewSelection(nUsers, k int) *Selection {
	sel := &Selection{
		Authors: make([][]int, nUsers),
		Times:   make([][]int, nUsers),
	}
	for i := 0; i < nUsers; i++ {
		sel.Authors[i] = make([]int, k)
		sel.Times[i] = make([]int, k)
		for j := 0; j < k; j++ {
			sel.Authors[i][j] = NoPost
			sel.Times[i][j] = NoPost
		}
	}
	return sel
}

// NumUsers returns the first dimension of the selection.
func (s *Selection) NumUsers() int { return len(s.Authors) }

// K returns the per-user slot count.
func (s *Selection) K() int {
	if len(s.Authors) == 0 {
		return 0
	}
	return len(s.Authors[0])
}

// Set fills one selection slot.
func (s *Selection) Set(user, slot, author, time int) {
	s.Authors[user][slot] = author
	s.Times[user][slot] = time
}
