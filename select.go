package allocation

import (
	"math"
	"slices"
)

// SelectOptimal picks the frontier point nearest to (targetRisk, targetReturn) in L1 distance,
// the first one on ties. The returned point holds the weights of the nearest point, but
// reports the target return and risk, with the Sharpe ratio computed from them.
func SelectOptimal(frontier Frontier, targetReturn, targetRisk, riskFreeRate float64) (Point, error) {
	nearest, err := SelectNearest(frontier, targetReturn, targetRisk)
	if err != nil {
		return Point{}, err
	}
	sharpe := 0.0
	if targetRisk > 0 {
		sharpe = (targetReturn - riskFreeRate) / targetRisk
	}
	return Point{Return: targetReturn, Risk: targetRisk, Sharpe: sharpe, Weights: nearest.Weights}, nil
}

// SelectNearest returns a copy of the frontier point nearest to (targetRisk, targetReturn) in
// L1 distance, the first one on ties.
func SelectNearest(frontier Frontier, targetReturn, targetRisk float64) (Point, error) {
	if len(frontier) == 0 {
		return Point{}, &OptimizationFailureError{}
	}
	best, distance := 0, math.Inf(1)
	for i, p := range frontier {
		if d := math.Abs(p.Return-targetReturn) + math.Abs(p.Risk-targetRisk); d < distance {
			best, distance = i, d
		}
	}
	p := frontier[best]
	p.Weights = slices.Clone(p.Weights)
	return p, nil
}

// SelectMinimumRisk returns a copy of the least risky frontier point.
func SelectMinimumRisk(frontier Frontier) (Point, error) {
	p, ok := frontier.MinimumRisk()
	if !ok {
		return Point{}, &OptimizationFailureError{}
	}
	p.Weights = slices.Clone(p.Weights)
	return p, nil
}

// Select applies the selection policy of opts to the frontier.
func Select(frontier Frontier, opts Options) (Point, error) {
	switch opts.Selection {
	case ByNearest:
		return SelectNearest(frontier, opts.TargetReturn, opts.TargetRisk)
	case BySharpe:
		p, ok := frontier.MaxSharpe()
		if !ok {
			return Point{}, &OptimizationFailureError{}
		}
		p.Weights = slices.Clone(p.Weights)
		return p, nil
	default:
		return SelectOptimal(frontier, opts.TargetReturn, opts.TargetRisk, opts.RiskFreeRate)
	}
}
