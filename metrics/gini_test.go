package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGiniEquality(t *testing.T) {
	assert.Zero(t, Gini([]float64{1, 1, 1, 1}))
	assert.Zero(t, Gini([]float64{42, 42}))
}

func TestGiniDegenerate(t *testing.T) {
	assert.Zero(t, Gini(nil))
	assert.Zero(t, Gini([]float64{5}))
	assert.Zero(t, Gini([]float64{0, 0, 0}))
}

func TestGiniTwoValues(t *testing.T) {
	// One person holds everything: G = 0.5 for m = 2.
	assert.InDelta(t, 0.5, Gini([]float64{0, 1}), 1e-12)
	// Order does not matter.
	assert.InDelta(t, 0.5, Gini([]float64{1, 0}), 1e-12)
}

func TestGiniScaleInvariant(t *testing.T) {
	v := []float64{1, 2, 3, 4, 10}
	scaled := make([]float64, len(v))
	for i := range v {
		scaled[i] = v[i] * 7
	}
	assert.InDelta(t, Gini(v), Gini(scaled), 1e-12)
}

func TestGiniMonotone(t *testing.T) {
	// Concentrating the total raises inequality.
	spread := Gini([]float64{3, 3, 3, 3})
	mild := Gini([]float64{2, 2, 4, 4})
	extreme := Gini([]float64{0, 0, 0, 12})
	assert.Less(t, spread, mild)
	assert.Less(t, mild, extreme)
}
