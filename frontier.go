package allocation

import (
	"cmp"
	"context"
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"golang.org/x/sync/errgroup"
)

// plausibleMax bounds the risk and return of the points kept on the frontier.
const plausibleMax = 0.35

// Frontier is the efficient frontier: non dominated points sorted by increasing risk.
type Frontier []Point

// GenerateFrontier solves the minimum-variance problem for NumPoints+1 target returns spread
// between the lowest and the highest expected return, and keeps the efficient points.
//
// Targets are spaced quadratically, lo + (hi-lo)(i/N)², to sample the curved low risk end
// more densely. Solutions outside [0, 0.35] in risk or return are discarded as implausible.
func GenerateFrontier(ctx context.Context, mu []float64, cov mat.Symmetric, opts Options) (Frontier, error) {
	if len(mu) < 2 {
		return nil, &InsufficientInputError{Reason: fmt.Sprintf("at least 2 assets are required, got %d", len(mu))}
	}
	if n := cov.SymmetricDim(); n != len(mu) {
		return nil, &InsufficientInputError{Reason: fmt.Sprintf("%d expected returns for a %dx%d covariance", len(mu), n, n)}
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	log := opts.logger()
	solver := opts.solver()

	lo, hi := floats.Min(mu), floats.Max(mu)
	targets := make([]float64, opts.NumPoints+1)
	for i := range targets {
		t := float64(i) / float64(opts.NumPoints)
		targets[i] = lo + (hi-lo)*t*t
	}

	points := make([]*Point, len(targets))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.workers())
	for i, target := range targets {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			w, err := solver.MinVariance(target, mu, cov)
			if err != nil {
				return err
			}
			p := Metrics(w, mu, cov, opts.RiskFreeRate)
			if p.plausible(0, 0, plausibleMax) {
				points[i] = &p
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var solved []Point
	for _, p := range points {
		if p != nil {
			solved = append(solved, *p)
		}
	}
	discarded := len(targets) - len(solved)
	frontier := efficient(solved)
	if len(frontier) == 0 {
		return nil, &OptimizationFailureError{Targets: len(targets), Discarded: discarded}
	}

	log.Debug().
		Int("targets", len(targets)).
		Int("discarded", discarded).
		Int("points", len(frontier)).
		Float64("min_risk", frontier[0].Risk).
		Float64("max_risk", frontier[len(frontier)-1].Risk).
		Float64("min_return", frontier[0].Return).
		Float64("max_return", frontier[len(frontier)-1].Return).
		Bool("convex", frontier.IsConvex(0.1)).
		Msg("efficient frontier generated")
	return frontier, nil
}

// efficient sorts points by risk and keeps those not dominated by a less risky one. Points
// closer than 1e-6 in risk to the previous kept one are duplicates.
func efficient(points []Point) Frontier {
	slices.SortStableFunc(points, func(a, b Point) int { return cmp.Compare(a.Risk, b.Risk) })
	var frontier Frontier
	bestReturn := math.Inf(-1)
	for _, p := range points {
		if p.Return < bestReturn {
			continue
		}
		if n := len(frontier); n > 0 && p.Risk-frontier[n-1].Risk <= 1e-6 {
			continue
		}
		frontier = append(frontier, p)
		bestReturn = p.Return
	}
	return frontier
}

// IsConvex checks that the slope of the frontier never increases by more than tolerance from
// one segment to the next. Pairs of segments where risk does not grow are not compared.
func (f Frontier) IsConvex(tolerance float64) bool {
	for i := 1; i+1 < len(f); i++ {
		dr1, dr2 := f[i].Risk-f[i-1].Risk, f[i+1].Risk-f[i].Risk
		if dr1 <= 0 || dr2 <= 0 {
			continue
		}
		slope1 := (f[i].Return - f[i-1].Return) / dr1
		slope2 := (f[i+1].Return - f[i].Return) / dr2
		if slope2 > slope1+tolerance {
			return false
		}
	}
	return true
}

// MinimumRisk returns the least risky point of the frontier.
func (f Frontier) MinimumRisk() (Point, bool) {
	if len(f) == 0 {
		return Point{}, false
	}
	return f[0], true
}

// MaxSharpe returns the point with the highest Sharpe ratio, the first one on ties.
func (f Frontier) MaxSharpe() (Point, bool) {
	if len(f) == 0 {
		return Point{}, false
	}
	best := f[0]
	for _, p := range f[1:] {
		if p.Sharpe > best.Sharpe {
			best = p
		}
	}
	return best, true
}
