package allocation

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Solver finds the long-only, fully invested weights of minimum variance for a target return.
type Solver interface {
	// MinVariance returns weights w minimizing w'Σw subject to Σw_i = 1, μ'w = target and w >= 0.
	MinVariance(target float64, mu []float64, cov mat.Symmetric) ([]float64, error)
}

// flatTolerance is the spread of expected returns below which they are considered equal.
const flatTolerance = 1e-12

// checkProblem validates the dimensions of a minimum-variance problem, and returns the range
// of achievable returns.
func checkProblem(mu []float64, cov mat.Symmetric) (lo, hi float64, err error) {
	if len(mu) == 0 {
		return 0, 0, &InsufficientInputError{Reason: "no asset to allocate"}
	}
	if n := cov.SymmetricDim(); n != len(mu) {
		return 0, 0, &InsufficientInputError{Reason: fmt.Sprintf("%d expected returns for a %dx%d covariance", len(mu), n, n)}
	}
	return floats.Min(mu), floats.Max(mu), nil
}

// finite reports whether every value is a number.
func finite(v []float64) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
