package ranker

import (
	"feedsim/model"
	"feedsim/network"
)

// candidate is one eligible (author, slot) post reference for a viewer.
type candidate struct {
	author int
	slot   int
}

// eligible enumerates the viewer's candidate posts: every buffer slot
// of every neighbor the viewer has not yet seen. Order is
// author-ascending, slot-ascending; the distance-ranked policies break
// ties by this order.
func eligible(net *network.Network, ps *model.PostStore, viewer int) []candidate {
	h := ps.History()
	var out []candidate
	for _, author := range net.AdjList[viewer] {
		for slot := 0; slot < h; slot++ {
			if !ps.Seen(author, slot, viewer) {
				out = append(out, candidate{author: author, slot: slot})
			}
		}
	}
	return out
}

// splitByBound partitions candidates into those whose post opinion lies
// strictly within epsilon of the viewer's opinion and the rest,
// preserving candidate order in both halves.
func splitByBound(cands []candidate, ps *model.PostStore, viewerOpinion, epsilon float64) (within, outside []candidate) {
	for _, c := range cands {
		diff := ps.Opinion(c.author, c.slot) - viewerOpinion
		if diff < 0 {
			diff = -diff
		}
		if diff < epsilon {
			within = append(within, c)
		} else {
			outside = append(outside, c)
		}
	}
	return within, outside
}
