package ranker

import "sort"

// valIdx pairs a distance with its candidate index.
type valIdx struct {
	val   float64
	index int
}

// worse orders heap entries: a is worse than b when it is farther, or
// equally far but later in candidate order. The root of the max-heap
// is always the worst kept entry, so ties resolve to the earlier
// candidate.
func worse(a, b valIdx) bool {
	return a.val > b.val || (a.val == b.val && a.index > b.index)
}

// bottomK returns the indices of the k smallest values, sorted
// ascending by (value, index). It keeps a max-heap of the k best seen
// so far; a new value only displaces the root when strictly smaller,
// which preserves array order among equals.
func bottomK(vals []float64, k int) []int {
	if k <= 0 || len(vals) == 0 {
		return nil
	}
	if k > len(vals) {
		k = len(vals)
	}

	heap := make([]valIdx, k)
	for i := 0; i < k; i++ {
		heap[i] = valIdx{vals[i], i}
	}
	for i := k/2 - 1; i >= 0; i-- {
		siftDown(heap, i)
	}

	for i := k; i < len(vals); i++ {
		if vals[i] < heap[0].val {
			heap[0] = valIdx{vals[i], i}
			siftDown(heap, 0)
		}
	}

	sort.Slice(heap, func(i, j int) bool { return worse(heap[j], heap[i]) })

	indices := make([]int, k)
	for i, e := range heap {
		indices[i] = e.index
	}
	return indices
}

func siftDown(heap []valIdx, root int) {
	end := len(heap) - 1
	for {
		child := root*2 + 1
		if child > end {
			break
		}
		if child+1 <= end && worse(heap[child+1], heap[child]) {
			child++
		}
		if !worse(heap[child], heap[root]) {
			break
		}
		heap[root], heap[child] = heap[child], heap[root]
		root = child
	}
}

// takeSmallest selects the k candidates with the smallest distances,
// ties broken by candidate order.
func takeSmallest(cands []candidate, dists []float64, k int) []candidate {
	indices := bottomK(dists, k)
	out := make([]candidate, len(indices))
	for i, idx := range indices {
		out[i] = cands[idx]
	}
	return out
}
