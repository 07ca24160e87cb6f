package allocation

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Point is a portfolio: a weight vector with its expected return, risk and Sharpe ratio.
type Point struct {
	Return  float64   `json:"return"`
	Risk    float64   `json:"risk"`
	Sharpe  float64   `json:"sharpeRatio"`
	Weights []float64 `json:"weights"`
}

// Metrics computes the expected return, the risk (standard deviation) and the Sharpe ratio of
// a weight vector. The Sharpe ratio is 0 for a riskless portfolio.
func Metrics(weights, mu []float64, cov mat.Symmetric, riskFreeRate float64) Point {
	w := mat.NewVecDense(len(weights), slices.Clone(weights))
	ret := floats.Dot(weights, mu)
	variance := mat.Inner(w, cov, w)
	// rounding may leave a tiny negative variance.
	risk := math.Sqrt(math.Max(0, variance))
	sharpe := 0.0
	if risk > 0 {
		sharpe = (ret - riskFreeRate) / risk
	}
	return Point{Return: ret, Risk: risk, Sharpe: sharpe, Weights: slices.Clone(weights)}
}

// plausible reports whether a point lies in the band [minRisk, hi] x [minReturn, hi].
func (p Point) plausible(minRisk, minReturn, hi float64) bool {
	if math.IsNaN(p.Risk) || math.IsNaN(p.Return) {
		return false
	}
	return p.Risk >= minRisk && p.Risk <= hi && p.Return >= minReturn && p.Return <= hi
}
