package simulation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feedsim/ranker"
)

func testSweep() *Sweep {
	return &Sweep{
		Grid: Grid{
			Epsilons: []float64{0.1, 0.2},
			Rules:    []ranker.Rule{ranker.Random, ranker.Engagement, ranker.Evil},
			Alphas:   []float64{1, 2},
			Targets:  []float64{0.3},
		},
		Rules: GridRules{
			ConditionalParams: map[ranker.Rule][]string{
				ranker.Engagement: {"alpha"},
				ranker.Evil:       {"target_opinion"},
			},
		},
	}
}

func TestCombinations(t *testing.T) {
	combos := testSweep().Combinations()

	// Per epsilon: Random 1, Engagement 2 (alphas), Evil 1 (target).
	require.Len(t, combos, 8)

	// Epsilons outermost, then rules in declared order.
	assert.Equal(t, ranker.Random, combos[0].Rule)
	assert.Equal(t, 0.1, combos[0].Epsilon)
	assert.Nil(t, combos[0].Alpha)
	assert.Nil(t, combos[0].Target)

	assert.Equal(t, ranker.Engagement, combos[1].Rule)
	require.NotNil(t, combos[1].Alpha)
	assert.Equal(t, 1.0, *combos[1].Alpha)
	require.NotNil(t, combos[2].Alpha)
	assert.Equal(t, 2.0, *combos[2].Alpha)

	assert.Equal(t, ranker.Evil, combos[3].Rule)
	require.NotNil(t, combos[3].Target)
	assert.Equal(t, 0.3, *combos[3].Target)

	assert.Equal(t, 0.2, combos[4].Epsilon)
}

func TestCombinationBaseName(t *testing.T) {
	combos := testSweep().Combinations()
	assert.Equal(t, "eps0.1000_Random", combos[0].BaseName())
	assert.Equal(t, "eps0.1000_Engagement_alpha1", combos[1].BaseName())
	assert.Equal(t, "eps0.1000_Evil_target0.3", combos[3].BaseName())

	// Base names must be unique across the grid.
	names := make(map[string]bool)
	for _, c := range combos {
		name := c.BaseName()
		assert.False(t, names[name], "duplicate base name %s", name)
		names[name] = true
	}
}

func TestJobConfig(t *testing.T) {
	sweep := testSweep()
	base := testConfig()

	cfg, combo, err := sweep.JobConfig(base, 1)
	require.NoError(t, err)
	assert.Equal(t, ranker.Engagement, cfg.Ranker.Rule)
	require.NotNil(t, cfg.OD.Epsilon)
	assert.Equal(t, 0.1, *cfg.OD.Epsilon)
	require.NotNil(t, cfg.Ranker.Alpha)
	assert.Equal(t, 1.0, *cfg.Ranker.Alpha)
	assert.Equal(t, combo.Rule, cfg.Ranker.Rule)

	// Untouched sections carry over from the base config.
	assert.Equal(t, base.Graph, cfg.Graph)
	assert.Equal(t, base.Details, cfg.Details)
}

func TestJobConfigOutOfRange(t *testing.T) {
	sweep := testSweep()
	base := testConfig()

	_, _, err := sweep.JobConfig(base, 8)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")

	_, _, err = sweep.JobConfig(base, -1)
	require.Error(t, err)
}

func TestLoadSweep(t *testing.T) {
	path := filepath.Join(t.TempDir(), "param_grid.json")
	grid := `{
		"grid": {
			"OD.epsilon": [0.1, 0.3],
			"Ranker.rule": ["Random", "Narrative"],
			"Ranker.target_opinion": [0.2, 0.8]
		},
		"rules": {
			"conditional_params": {"Narrative": ["target_opinion"]}
		}
	}`
	require.NoError(t, os.WriteFile(path, []byte(grid), 0644))

	sweep, err := LoadSweep(path)
	require.NoError(t, err)

	combos := sweep.Combinations()
	// Per epsilon: Random 1, Narrative 2.
	assert.Len(t, combos, 6)
}
