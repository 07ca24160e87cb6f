package allocation

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const (
	gradientRounds    = 20   // augmented Lagrangian rounds
	gradientTolerance = 1e-6 // accepted distance to the target return
)

// GradientSolver approximates the minimum-variance weights with a projected gradient descent
// on the simplex. The target return is enforced by an augmented Lagrangian penalty
//
//	w'Σw + λ(μ'w - t) + ρ/2 (μ'w - t)²
//
// whose multiplier λ is updated after each round, and whose weight ρ grows tenfold when the
// distance to the target stalls.
type GradientSolver struct {
	MaxIterations int // cap on the descent steps of a single round
}

func (s *GradientSolver) MinVariance(target float64, mu []float64, cov mat.Symmetric) ([]float64, error) {
	lo, hi, err := checkProblem(mu, cov)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(target) {
		return nil, &DegenerateCovarianceError{Target: target, Err: errors.New("target is not a number")}
	}
	target = math.Max(lo, math.Min(hi, target))

	n := len(mu)
	w := make([]float64, n)
	for i := range w {
		w[i] = 1 / float64(n)
	}
	trace := math.Max(mat.Trace(cov), 1e-12)

	rho := 0.0
	if hi-lo > flatTolerance {
		// scale the penalty curvature to the covariance one.
		mean := floats.Sum(mu) / float64(n)
		centered := 0.0
		for _, m := range mu {
			centered += (m - mean) * (m - mean)
		}
		rho = trace / math.Max(centered, 1e-12)
	}
	norm2 := floats.Dot(mu, mu)

	lambda, previous := 0.0, math.NaN()
	for range gradientRounds {
		s.descend(w, target, mu, cov, lambda, rho, 1/(2*trace+rho*norm2))
		gap := floats.Dot(mu, w) - target
		if rho == 0 || math.Abs(gap) < gradientTolerance {
			break
		}
		lambda += rho * gap
		if !math.IsNaN(previous) && math.Abs(gap) > 0.25*math.Abs(previous) {
			rho *= 10
		}
		previous = gap
	}
	if !finite(w) {
		return nil, &DegenerateCovarianceError{Target: target, Err: errors.New("gradient descent diverged")}
	}
	return w, nil
}

// descend runs projected gradient steps from w, in place, until the weights stop moving.
func (s *GradientSolver) descend(w []float64, target float64, mu []float64, cov mat.Symmetric, lambda, rho, step float64) {
	n := len(w)
	sigmaW := make([]float64, n)
	next := make([]float64, n)
	wv, sv := mat.NewVecDense(n, w), mat.NewVecDense(n, sigmaW)

	maxIterations := s.MaxIterations
	if maxIterations <= 0 {
		maxIterations = 1000
	}
	for range maxIterations {
		sv.MulVec(cov, wv)
		c := lambda + rho*(floats.Dot(mu, w)-target)
		for i := range next {
			next[i] = w[i] - step*(2*sigmaW[i]+c*mu[i])
		}
		projectOntoSimplex(next)
		moved := floats.Distance(next, w, math.Inf(1))
		copy(w, next)
		if moved < 1e-12 || math.IsNaN(moved) {
			return
		}
	}
}
