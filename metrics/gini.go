package metrics

import "sort"

// Gini computes the Gini coefficient of a set of non-negative values:
// 0 for perfect equality, approaching 1 for perfect inequality. With
// fewer than two values inequality is undefined and reported as 0.
//
// For sorted ascending v_1..v_m with total T:
//
//	Gini = (2 * sum(i * v_i)) / (m * T) - (m + 1) / m
func Gini(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	var total, weighted float64
	for i, v := range sorted {
		total += v
		weighted += float64(i+1) * v
	}
	if total == 0 {
		return 0
	}

	m := float64(len(sorted))
	return 2*weighted/(m*total) - (m+1)/m
}
