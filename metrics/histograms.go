package metrics

import "feedsim/model"

// LikeBinEdges are the like-count bin boundaries. A value lands in the
// bin counting the edges it reaches: bin index = number of edges <=
// value. Bin 0 is therefore structurally empty for non-negative
// counts, and the last bin collects everything at or above 100. The
// layout matches the binning of the archived experiment data, so
// results remain comparable.
var LikeBinEdges = []int{0, 1, 2, 5, 10, 20, 50, 100}

// NumLikeBins includes the overflow bin.
var NumLikeBins = len(LikeBinEdges) + 1

// NumOpinionBins are equal-width bins over the opinion range [0,1].
const NumOpinionBins = 10

// Histograms accumulate the permanent record of post success. Posts
// enter exactly once: either when their buffer slot is overwritten
// (dying-post capture) or, for posts still alive at simulation end,
// during finalization.
type Histograms struct {
	// Likes is the 1-D like-count histogram.
	Likes []int
	// OpinionLikes is the 2-D (opinion bin, like bin) histogram.
	OpinionLikes [][]int
}

// NewHistograms returns zeroed histograms.
func NewHistograms() *Histograms {
	h := &Histograms{
		Likes:        make([]int, NumLikeBins),
		OpinionLikes: make([][]int, NumOpinionBins),
	}
	for i := range h.OpinionLikes {
		h.OpinionLikes[i] = make([]int, NumLikeBins)
	}
	return h
}

func likeBin(likes int) int {
	idx := 0
	for _, edge := range LikeBinEdges {
		if likes < edge {
			break
		}
		idx++
	}
	return idx
}

func opinionBin(opinion float64) int {
	idx := int(opinion * NumOpinionBins)
	if idx < 0 {
		idx = 0
	}
	if idx >= NumOpinionBins {
		idx = NumOpinionBins - 1
	}
	return idx
}

func (h *Histograms) add(opinion float64, likes int) {
	lb := likeBin(likes)
	h.Likes[lb]++
	h.OpinionLikes[opinionBin(opinion)][lb]++
}

// RecordDying bins the posts currently occupying the given slot for
// every author. Call immediately before the slot is rewritten, and
// only once the buffer has wrapped; the slot's state is unrecoverable
// afterwards.
func (h *Histograms) RecordDying(ps *model.PostStore, slot int) {
	for author := 0; author < ps.NumUsers(); author++ {
		h.add(ps.Opinion(author, slot), ps.Likes(author, slot))
	}
}

// Finalize bins every post still alive in the buffer at simulation
// end. Together with RecordDying this counts every post that ever
// existed exactly once.
func (h *Histograms) Finalize(ps *model.PostStore) {
	ps.ForEachPost(func(_, _ int, opinion float64, likes, _ int) {
		h.add(opinion, likes)
	})
}

// Total returns the number of posts recorded so far.
func (h *Histograms) Total() int {
	total := 0
	for _, c := range h.Likes {
		total += c
	}
	return total
}
