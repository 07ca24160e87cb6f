package allocation

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// ActiveSetSolver solves the minimum-variance problem exactly with a primal active-set method.
//
// Each iteration solves the equality constrained problem on the free assets through its KKT
// system, then either steps toward its solution until a weight reaches zero, or releases the
// bound asset with the most negative multiplier.
type ActiveSetSolver struct {
	MaxIterations int
}

func (s *ActiveSetSolver) MinVariance(target float64, mu []float64, cov mat.Symmetric) ([]float64, error) {
	lo, hi, err := checkProblem(mu, cov)
	if err != nil {
		return nil, err
	}
	tol := 1e-9 * math.Max(1, math.Max(math.Abs(lo), math.Abs(hi)))
	if math.IsNaN(target) || target < lo-tol || target > hi+tol {
		return nil, &DegenerateCovarianceError{Target: target, Err: fmt.Errorf("target is outside of the achievable returns [%.4f, %.4f]", lo, hi)}
	}
	target = math.Max(lo, math.Min(hi, target))

	n := len(mu)
	w, free := feasibleStart(target, mu)
	// a tiny ridge keeps the KKT system regular when the covariance is singular.
	ridge := math.Max(1e-10*mat.Trace(cov)/float64(n), 1e-12)

	maxIterations := s.MaxIterations
	if maxIterations <= 0 {
		maxIterations = 1000
	}
	idx := make([]int, 0, n)
	for range maxIterations {
		idx = idx[:0]
		for i, f := range free {
			if f {
				idx = append(idx, i)
			}
		}
		wF, lambda, err := solveKKT(idx, mu, cov, ridge, target)
		if err != nil {
			return nil, &DegenerateCovarianceError{Target: target, Err: err}
		}
		p := make([]float64, len(idx))
		for a, i := range idx {
			p[a] = wF[a] - w[i]
		}

		if floats.Norm(p, math.Inf(1)) <= 1e-12 {
			// w is optimal on the current face, check the multipliers of the bound assets.
			g := gradient(w, cov, ridge)
			threshold := -1e-10 * math.Max(1, floats.Norm(g, math.Inf(1)))
			release := -1
			for i, f := range free {
				if f {
					continue
				}
				if nu := g[i] - lambda[0] - lambda[1]*mu[i]; nu < threshold {
					threshold, release = nu, i
				}
			}
			if release < 0 {
				return w, nil
			}
			free[release] = true
			continue
		}

		// ratio test: go as far as possible toward wF while keeping w >= 0.
		alpha, block := 1.0, -1
		for a, i := range idx {
			if p[a] < 0 {
				if r := -w[i] / p[a]; r < alpha {
					alpha, block = r, i
				}
			}
		}
		for a, i := range idx {
			w[i] = math.Max(0, w[i]+alpha*p[a])
		}
		if block >= 0 {
			w[block], free[block] = 0, false
		}
	}
	// the iteration cap leaves a feasible point that is no worse than the start.
	return w, nil
}

// feasibleStart returns a feasible point mixing the lowest and highest return assets, or
// equal weights when all expected returns are the same.
func feasibleStart(target float64, mu []float64) (w []float64, free []bool) {
	n := len(mu)
	w, free = make([]float64, n), make([]bool, n)
	lo, hi := floats.MinIdx(mu), floats.MaxIdx(mu)
	spread := mu[hi] - mu[lo]
	if spread <= flatTolerance {
		for i := range w {
			w[i], free[i] = 1/float64(n), true
		}
		return w, free
	}
	a := (mu[hi] - target) / spread
	w[lo], w[hi] = a, 1-a
	free[lo], free[hi] = a > 0, a < 1
	return w, free
}

// gradient returns 2(Σ + ridge I)w.
func gradient(w []float64, cov mat.Symmetric, ridge float64) []float64 {
	var g mat.VecDense
	g.MulVec(cov, mat.NewVecDense(len(w), w))
	g.AddScaledVec(&g, ridge, mat.NewVecDense(len(w), w))
	g.ScaleVec(2, &g)
	return g.RawVector().Data
}

// solveKKT minimizes w'(Σ+ridge I)w on the free assets idx subject to the budget and the
// target return constraints. The return row is dropped when the free assets share the same
// expected return, it is then implied by the budget row. The multipliers of such a system are
// not unique and the minimum norm pair is returned.
func solveKKT(idx []int, mu []float64, cov mat.Symmetric, ridge, target float64) (wF []float64, lambda [2]float64, err error) {
	k := len(idx)
	if k == 0 {
		return nil, lambda, errors.New("no free asset")
	}
	muF := make([]float64, k)
	for a, i := range idx {
		muF[a] = mu[i]
	}
	flat := floats.Max(muF)-floats.Min(muF) <= flatTolerance
	m := 2
	if flat {
		m = 1
	}

	kkt := mat.NewDense(k+m, k+m, nil)
	rhs := mat.NewVecDense(k+m, nil)
	for a, i := range idx {
		for b, j := range idx {
			kkt.Set(a, b, 2*cov.At(i, j))
		}
		kkt.Set(a, a, kkt.At(a, a)+2*ridge)
		kkt.Set(a, k, -1)
		kkt.Set(k, a, 1)
		if !flat {
			kkt.Set(a, k+1, -mu[i])
			kkt.Set(k+1, a, mu[i])
		}
	}
	rhs.SetVec(k, 1)
	if !flat {
		rhs.SetVec(k+1, target)
	}

	var x mat.VecDense
	if err := x.SolveVec(kkt, rhs); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) || math.IsInf(float64(cond), 1) {
			return nil, lambda, fmt.Errorf("singular KKT system: %w", err)
		}
	}
	sol := x.RawVector().Data
	if !finite(sol) {
		return nil, lambda, errors.New("KKT system has no finite solution")
	}

	wF = sol[:k]
	if flat {
		l, c := sol[k], muF[0]
		lambda = [2]float64{l / (1 + c*c), l * c / (1 + c*c)}
	} else {
		lambda = [2]float64{sol[k], sol[k+1]}
	}
	return wF, lambda, nil
}
