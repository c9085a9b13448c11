package ranker

import (
	"fmt"

	"golang.org/x/exp/rand"

	"feedsim/model"
	"feedsim/network"
)

// Rule names a ranking policy. The set is closed: configuration
// validation rejects anything else, so downstream dispatch can assume
// one of these values.
type Rule string

const (
	Random            Rule = "Random"
	Closest           Rule = "Closest"
	Engagement        Rule = "Engagement"
	UserSuccess       Rule = "User_Success"
	Narrative         Rule = "Narrative"
	Evil              Rule = "Evil"
	DiverseEngagement Rule = "Diverse_Engagement"
)

// Spec is the "Ranker" section of the run configuration. Alpha and
// TargetOpinion are optional; absent values resolve to the defaults
// below.
type Spec struct {
	Rule          Rule     `json:"rule"`
	Alpha         *float64 `json:"alpha,omitempty"`
	TargetOpinion *float64 `json:"target_opinion,omitempty"`
}

const (
	DefaultAlpha  = 1.0
	DefaultTarget = 0.5
)

// Policy is a validated ranking policy with resolved parameters.
type Policy struct {
	Rule   Rule
	Alpha  float64
	Target float64
}

// Policy validates the spec and resolves parameter defaults. Unknown
// rules are a configuration error, surfaced before any simulation
// work.
func (s Spec) Policy() (Policy, error) {
	switch s.Rule {
	case Random, Closest, Engagement, UserSuccess, Narrative, Evil, DiverseEngagement:
	default:
		return Policy{}, fmt.Errorf("ranker: unknown rule %q", s.Rule)
	}
	p := Policy{Rule: s.Rule, Alpha: DefaultAlpha, Target: DefaultTarget}
	if s.Alpha != nil {
		p.Alpha = *s.Alpha
	}
	if s.TargetOpinion != nil {
		p.Target = *s.TargetOpinion
	}
	return p, nil
}

// Rank selects up to k posts per user from the eligible set: posts
// authored by a neighbor that the viewer has not seen in any prior
// step. Slots beyond the available candidates keep the NoPost
// sentinel. epsilon is the opinion model's confidence bound, used by
// the policies that exploit knowledge of user behavior.
func (p Policy) Rank(net *network.Network, st *model.State, epsilon float64, k int, rng *rand.Rand) *model.Selection {
	sel := model.NewSelection(net.N, k)

	for viewer := 0; viewer < net.N; viewer++ {
		cands := eligible(net, st.Posts, viewer)
		if len(cands) == 0 {
			continue
		}

		var chosen []candidate
		switch p.Rule {
		case Random:
			chosen = pickRandom(cands, k, rng)
		case Closest:
			chosen = pickClosest(cands, st.Posts, st.Opinions[viewer], k)
		case Engagement:
			chosen = pickEngagement(cands, st.Posts, p.Alpha, k, rng)
		case UserSuccess:
			chosen = pickUserSuccess(cands, st.CumulativeLikes, p.Alpha, k, rng)
		case Narrative:
			chosen = pickNarrative(cands, st.Posts, p.Target, k)
		case Evil:
			chosen = pickEvil(cands, st.Posts, st.Opinions[viewer], epsilon, p.Target, k)
		case DiverseEngagement:
			chosen = pickDiverseEngagement(cands, st.Posts, st.Opinions[viewer], epsilon, k, rng)
		default:
			panic(fmt.Sprintf("ranker: unvalidated rule %q", p.Rule))
		}

		for j, c := range chosen {
			sel.Set(viewer, j, c.author, c.slot)
		}
	}

	return sel
}
