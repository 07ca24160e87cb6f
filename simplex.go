package allocation

import (
	"slices"
	"sort"
)

// projectOntoSimplex replaces v by its Euclidean projection onto the probability simplex
// {w : w_i >= 0, Σw_i = 1}, using the sort based algorithm of Duchi et al. (2008).
func projectOntoSimplex(v []float64) {
	n := len(v)
	if n == 0 {
		return
	}

	u := slices.Clone(v)
	sort.Sort(sort.Reverse(sort.Float64Slice(u)))

	// rho is the largest index j such that u[j] - (Σ_{i<=j} u[i] - 1)/(j+1) > 0.
	cumSum, rho, rhoSum := 0.0, 0, u[0]
	for j := 0; j < n; j++ {
		cumSum += u[j]
		if u[j]-(cumSum-1)/float64(j+1) > 0 {
			rho, rhoSum = j, cumSum
		}
	}
	theta := (rhoSum - 1) / float64(rho+1)

	for i := range v {
		v[i] = max(0, v[i]-theta)
	}
}
