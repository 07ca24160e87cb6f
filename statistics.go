package allocation

import (
	"fmt"
	"math"

	"github.com/etnz/allocation/date"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Prices maps a symbol to its historical price series.
type Prices map[string]*date.History[float64]

// Add appends a price for symbol on a given day.
func (p Prices) Add(symbol string, on date.Date, price float64) {
	h, ok := p[symbol]
	if !ok {
		h = new(date.History[float64])
		p[symbol] = h
	}
	h.Append(on, price)
}

// Statistics holds the annualized expected returns and covariance of a set of assets.
type Statistics struct {
	Symbols         []string
	ExpectedReturns []float64
	Covariance      *mat.SymDense
	Observations    []int // number of periodic returns per asset
}

// Volatilities returns the annualized standard deviation of each asset.
func (s *Statistics) Volatilities() []float64 {
	vols := make([]float64, len(s.Symbols))
	for i := range vols {
		vols[i] = math.Sqrt(math.Max(0, s.Covariance.At(i, i)))
	}
	return vols
}

// Correlation returns the correlation matrix, entries are clamped to [-1, 1] and are zero
// for assets without variance.
func (s *Statistics) Correlation() *mat.SymDense {
	n := len(s.Symbols)
	vols := s.Volatilities()
	corr := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			c := 0.0
			if vols[i] > 0 && vols[j] > 0 {
				c = s.Covariance.At(i, j) / (vols[i] * vols[j])
			}
			corr.SetSym(i, j, math.Max(-1, math.Min(1, c)))
		}
	}
	return corr
}

// MarshalJSON writes the statistics with a stable key order.
func (s *Statistics) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("symbols", s.Symbols)
	w.Append("expectedReturns", s.ExpectedReturns)
	w.Append("volatilities", s.Volatilities())
	w.Append("covariance", matrix(s.Covariance))
	w.Append("correlation", matrix(s.Correlation()))
	w.Append("observations", s.Observations)
	return w.MarshalJSON()
}

// matrix copies a symmetric matrix into rows.
func matrix(m mat.Symmetric) [][]float64 {
	n := m.SymmetricDim()
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, n)
		for j := range rows[i] {
			rows[i][j] = m.At(i, j)
		}
	}
	return rows
}

// ComputeStatistics computes annualized expected returns and covariance of the holdings from
// their historical prices.
//
// Periodic returns are scaled by factor (252 for daily trading data). Assets with a single
// price have zero returns; an asset without any price is an InsufficientInputError. Holdings
// are validated first, so that mixed currencies are an error rather than a panic.
func ComputeStatistics(holdings Holdings, prices Prices, factor float64, alignment Alignment) (*Statistics, error) {
	if len(holdings) < 2 {
		return nil, &InsufficientInputError{Reason: fmt.Sprintf("at least 2 assets are required, got %d", len(holdings))}
	}
	if err := holdings.Validate(); err != nil {
		return nil, err
	}
	if factor <= 0 {
		return nil, fmt.Errorf("invalid annualization factor %v", factor)
	}
	symbols := holdings.Symbols()
	series := make([]*date.History[float64], len(symbols))
	for i, symbol := range symbols {
		h := prices[symbol]
		if h.Len() == 0 {
			return nil, &InsufficientInputError{Symbol: symbol, Reason: "no historical price"}
		}
		for on, p := range h.Values() {
			if !(p > 0) || math.IsInf(p, 0) {
				return nil, &InsufficientInputError{Symbol: symbol, Reason: fmt.Sprintf("invalid price %v on %v", p, on)}
			}
		}
		series[i] = h
	}

	var levels [][]float64
	switch alignment {
	case AlignForwardFill:
		levels = forwardFill(series)
	default:
		levels = make([][]float64, len(series))
		for i, h := range series {
			levels[i] = h.Slice()
		}
	}

	returns := make([][]float64, len(levels))
	for i, l := range levels {
		returns[i] = periodicReturns(l)
	}

	n := len(symbols)
	stats := &Statistics{
		Symbols:         symbols,
		ExpectedReturns: make([]float64, n),
		Covariance:      mat.NewSymDense(n, nil),
		Observations:    make([]int, n),
	}
	for i, r := range returns {
		stats.Observations[i] = len(r)
		if len(r) > 0 {
			stats.ExpectedReturns[i] = stat.Mean(r, nil) * factor
		}
		for j := i; j < n; j++ {
			// pairs are truncated to the shorter series, which is used whole: centering the
			// longer one on its window or on its full series gives the same sum.
			m := min(len(r), len(returns[j]))
			if m < 2 {
				continue // a single return has no sample covariance.
			}
			stats.Covariance.SetSym(i, j, stat.Covariance(r[:m], returns[j][:m], nil)*factor)
		}
	}
	return stats, nil
}

// periodicReturns returns (p[i]-p[i-1])/p[i-1] for every consecutive pair of prices.
func periodicReturns(prices []float64) []float64 {
	if len(prices) < 2 {
		return nil
	}
	returns := make([]float64, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		returns[i-1] = (prices[i] - prices[i-1]) / prices[i-1]
	}
	return returns
}

// forwardFill aligns all series on the union of their dates, starting on the first date where
// every series has a price. Missing prices are filled with the last known one.
func forwardFill(series []*date.History[float64]) [][]float64 {
	var start date.Date
	for _, h := range series {
		if first, _ := h.First(); first.After(start) {
			start = first
		}
	}
	levels := make([][]float64, len(series))
	for on := range date.Union(series...) {
		if on.Before(start) {
			continue
		}
		for i, h := range series {
			p, _ := h.ValueAsOf(on)
			levels[i] = append(levels[i], p)
		}
	}
	return levels
}
