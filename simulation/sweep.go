package simulation

import (
	"encoding/json"
	"fmt"
	"os"

	"feedsim/ranker"
)

// Grid lists the parameter values a sweep varies. Key names follow the
// dotted config paths used by the experiment grids on disk.
type Grid struct {
	Epsilons []float64     `json:"OD.epsilon"`
	Rules    []ranker.Rule `json:"Ranker.rule"`
	Alphas   []float64     `json:"Ranker.alpha,omitempty"`
	Targets  []float64     `json:"Ranker.target_opinion,omitempty"`
}

// GridRules captures which extra parameters each ranker rule sweeps
// over. Rules not listed get a single combination per epsilon.
type GridRules struct {
	ConditionalParams map[ranker.Rule][]string `json:"conditional_params"`
}

// Sweep is a full parameter grid: every epsilon crossed with every
// ranker rule, expanded by that rule's conditional parameters.
type Sweep struct {
	Grid  Grid      `json:"grid"`
	Rules GridRules `json:"rules"`
}

// LoadSweep reads a parameter grid from a JSON file.
func LoadSweep(path string) (*Sweep, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("simulation: reading param grid: %w", err)
	}
	var s Sweep
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("simulation: parsing param grid: %w", err)
	}
	return &s, nil
}

// Combination is one point of the sweep grid. Alpha and Target are nil
// when the rule does not sweep them.
type Combination struct {
	Epsilon float64
	Rule    ranker.Rule
	Alpha   *float64
	Target  *float64
}

// Apply overlays the combination onto a base configuration.
func (c Combination) Apply(base Config) Config {
	cfg := base
	eps := c.Epsilon
	cfg.OD.Epsilon = &eps
	cfg.Ranker.Rule = c.Rule
	cfg.Ranker.Alpha = c.Alpha
	cfg.Ranker.TargetOpinion = c.Target
	return cfg
}

// BaseName builds the descriptive artifact base name for the
// combination, e.g. "eps0.2000_Engagement_alpha1.5".
func (c Combination) BaseName() string {
	name := fmt.Sprintf("eps%.4f_%s", c.Epsilon, c.Rule)
	if c.Alpha != nil {
		name += fmt.Sprintf("_alpha%g", *c.Alpha)
	}
	if c.Target != nil {
		name += fmt.Sprintf("_target%g", *c.Target)
	}
	return name
}

// Combinations expands the grid in deterministic order: epsilons
// outermost, then rules, then each rule's conditional parameters in
// their declared order.
func (s *Sweep) Combinations() []Combination {
	var combos []Combination
	for _, eps := range s.Grid.Epsilons {
		for _, rule := range s.Grid.Rules {
			base := Combination{Epsilon: eps, Rule: rule}
			params := s.Rules.ConditionalParams[rule]
			combos = append(combos, s.expand(base, params)...)
		}
	}
	return combos
}

// expand crosses the combination with the values of the remaining
// conditional parameters. Unknown or empty parameters are skipped.
func (s *Sweep) expand(c Combination, params []string) []Combination {
	if len(params) == 0 {
		return []Combination{c}
	}

	var values []float64
	var set func(c *Combination, v float64)
	switch params[0] {
	case "alpha":
		values = s.Grid.Alphas
		set = func(c *Combination, v float64) { c.Alpha = &v }
	case "target_opinion":
		values = s.Grid.Targets
		set = func(c *Combination, v float64) { c.Target = &v }
	}
	if len(values) == 0 {
		return s.expand(c, params[1:])
	}

	var out []Combination
	for _, v := range values {
		next := c
		set(&next, v)
		out = append(out, s.expand(next, params[1:])...)
	}
	return out
}

// JobConfig resolves job index i of the sweep against a base
// configuration. An index beyond the combination count is fatal to the
// caller: there is nothing sensible to run.
func (s *Sweep) JobConfig(base Config, jobID int) (Config, Combination, error) {
	combos := s.Combinations()
	if jobID < 0 || jobID >= len(combos) {
		return Config{}, Combination{}, fmt.Errorf(
			"simulation: job index %d out of range, grid has %d combinations", jobID, len(combos))
	}
	combo := combos[jobID]
	cfg := combo.Apply(base)
	if err := cfg.Validate(); err != nil {
		return Config{}, Combination{}, err
	}
	return cfg, combo, nil
}
