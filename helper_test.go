package allocation

import (
	"math"
	"testing"

	"github.com/etnz/allocation/date"
	"gonum.org/v1/gonum/mat"
)

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// NO is a helper for test to create money from const wit no currency set
func NO(v float64) Money { return M(v, "") }

// holding is a helper to create a holding bought at its current price.
func holding(symbol string, quantity, price float64) Holding {
	return Holding{Symbol: symbol, Quantity: Q(quantity), Price: USD(price), PurchasePrice: USD(price)}
}

// syntheticPrices builds a price series of n+1 days whose daily returns are
// mean + vol*pattern[k%len(pattern)].
func syntheticPrices(start date.Date, n int, mean, vol float64, pattern []float64) *date.History[float64] {
	h := new(date.History[float64])
	p := 100.0
	h.Append(start, p)
	for k := 0; k < n; k++ {
		p *= 1 + mean + vol*pattern[k%len(pattern)]
		h.Append(start.Add(k+1), p)
	}
	return h
}

// scenarioPrices returns prices of two uncorrelated assets: AAA with an annualized return of
// 0.10 and risk 0.15, BBB with a return of 0.04 and risk 0.05.
func scenarioPrices(n int) Prices {
	// ±1 patterns are orthogonal over any multiple of 4 days.
	x := []float64{1, -1, 1, -1}
	y := []float64{1, 1, -1, -1}
	// sample variance of a ±1 pattern over n days is n/(n-1).
	scale := math.Sqrt(252 * float64(n) / float64(n-1))
	start := date.New(2024, 1, 1)
	return Prices{
		"AAA": syntheticPrices(start, n, 0.10/252, 0.15/scale, x),
		"BBB": syntheticPrices(start, n, 0.04/252, 0.05/scale, y),
	}
}

// diagonal returns a covariance matrix of uncorrelated assets.
func diagonal(variances ...float64) *mat.SymDense {
	cov := mat.NewSymDense(len(variances), nil)
	for i, v := range variances {
		cov.SetSym(i, i, v)
	}
	return cov
}

// fourAssets returns a correlated universe.
func fourAssets() ([]float64, *mat.SymDense) {
	mu := []float64{0.10, 0.07, 0.15, 0.04}
	vol := []float64{0.2, 0.15, 0.3, 0.05}
	corr := [][]float64{
		{1, .5, .3, .1},
		{.5, 1, .2, 0},
		{.3, .2, 1, -.2},
		{.1, 0, -.2, 1},
	}
	cov := mat.NewSymDense(4, nil)
	for i := range 4 {
		for j := i; j < 4; j++ {
			cov.SetSym(i, j, vol[i]*vol[j]*corr[i][j])
		}
	}
	return mu, cov
}

func near(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

func checkWeights(t *testing.T, w []float64) {
	t.Helper()
	sum := 0.0
	for i, x := range w {
		if x < -1e-12 || x > 1+1e-12 {
			t.Errorf("weight[%d] = %v, want in [0, 1]", i, x)
		}
		sum += x
	}
	if !near(sum, 1, 1e-9) {
		t.Errorf("sum of weights = %v, want 1", sum)
	}
}
