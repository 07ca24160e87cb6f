package renderer

import "github.com/etnz/allocation"

// frontierRows is the maximum number of frontier points shown in a table.
const frontierRows = 11

// Report is the view of an optimization run used by the markdown templates.
type Report struct {
	TotalValue      allocation.Money `json:"totalValue"`
	Diversification float64          `json:"diversification"`
	Assets          []Asset          `json:"assets"`
	Correlation     [][]float64      `json:"correlation,omitempty"`
	Portfolios      []Portfolio      `json:"portfolios,omitempty"`
	Frontier        Frontier         `json:"frontier"`
	Cloud           Cloud            `json:"cloud"`
	Plan            Plan             `json:"plan"`
}

// Asset is a row of the asset table.
type Asset struct {
	Symbol         string             `json:"symbol"`
	Weight         allocation.Percent `json:"weight"`
	ExpectedReturn allocation.Percent `json:"expectedReturn"`
	Volatility     allocation.Percent `json:"volatility"`
}

// Portfolio is a named portfolio with its weights in asset order.
type Portfolio struct {
	Name    string               `json:"name"`
	Return  allocation.Percent   `json:"return"`
	Risk    allocation.Percent   `json:"risk"`
	Sharpe  float64              `json:"sharpeRatio"`
	Weights []allocation.Percent `json:"weights"`
}

// Frontier summarizes the efficient frontier.
type Frontier struct {
	Total  int     `json:"total"`
	Convex bool    `json:"convex"`
	Points []Point `json:"points"`
}

// Cloud summarizes the random portfolios.
type Cloud struct {
	Count       int   `json:"count"`
	BestSharpe  Point `json:"bestSharpe"`
	MinimumRisk Point `json:"minimumRisk"`
}

// Point is a row of a risk and return table.
type Point struct {
	Risk   allocation.Percent `json:"risk"`
	Return allocation.Percent `json:"return"`
	Sharpe float64            `json:"sharpeRatio"`
}

// Plan lists the trades of a rebalancing, holds are left out.
type Plan struct {
	Trades        []Trade          `json:"trades"`
	TotalBuy      allocation.Money `json:"totalBuy"`
	TotalSell     allocation.Money `json:"totalSell"`
	CashRemaining allocation.Money `json:"cashRemaining"`
}

// Trade is a row of the rebalancing table.
type Trade struct {
	Symbol  string              `json:"symbol"`
	Action  string              `json:"action"`
	Current allocation.Percent  `json:"current"`
	Optimal allocation.Percent  `json:"optimal"`
	Amount  allocation.Money    `json:"amount"`
	Shares  allocation.Quantity `json:"shares"`
}

// NewReport builds the view of a complete optimization report.
func NewReport(r *allocation.Report) *Report {
	v := NewStatistics(r.Statistics, r.Current.Weights, r.TotalValue, r.Diversification)
	v.Portfolios = []Portfolio{
		newPortfolio("Current", r.Current),
		newPortfolio("Optimal", r.Optimal),
		newPortfolio("Minimum Risk", r.MinimumRisk),
	}
	v.Frontier = newFrontier(r.Frontier, r.Convex)
	v.Cloud = newCloud(r.Cloud)
	v.Plan = newPlan(r.Plan)
	return v
}

// NewStatistics builds the view of the asset statistics. weights may be nil.
func NewStatistics(s *allocation.Statistics, weights []float64, total allocation.Money, diversification float64) *Report {
	v := &Report{TotalValue: total, Diversification: diversification}
	vols := s.Volatilities()
	corr := s.Correlation()
	v.Assets = make([]Asset, len(s.Symbols))
	v.Correlation = make([][]float64, len(s.Symbols))
	for i, symbol := range s.Symbols {
		v.Assets[i] = Asset{
			Symbol:         symbol,
			ExpectedReturn: allocation.Pct(s.ExpectedReturns[i]),
			Volatility:     allocation.Pct(vols[i]),
		}
		if i < len(weights) {
			v.Assets[i].Weight = allocation.Pct(weights[i])
		}
		v.Correlation[i] = make([]float64, len(s.Symbols))
		for j := range s.Symbols {
			v.Correlation[i][j] = corr.At(i, j)
		}
	}
	return v
}

// NewFrontier builds the view of a frontier.
func NewFrontier(f allocation.Frontier) *Report {
	return &Report{Frontier: newFrontier(f, f.IsConvex(0.1))}
}

// NewCloud builds the view of random portfolios.
func NewCloud(c allocation.Cloud) *Report {
	return &Report{Cloud: newCloud(c)}
}

// NewPlan builds the view of a rebalancing plan.
func NewPlan(p allocation.Plan) *Report {
	return &Report{Plan: newPlan(p)}
}

func newPortfolio(name string, p allocation.Point) Portfolio {
	v := Portfolio{
		Name:    name,
		Return:  allocation.Pct(p.Return),
		Risk:    allocation.Pct(p.Risk),
		Sharpe:  p.Sharpe,
		Weights: make([]allocation.Percent, len(p.Weights)),
	}
	for i, w := range p.Weights {
		v.Weights[i] = allocation.Pct(w)
	}
	return v
}

func newPoint(p allocation.Point) Point {
	return Point{Risk: allocation.Pct(p.Risk), Return: allocation.Pct(p.Return), Sharpe: p.Sharpe}
}

func newFrontier(f allocation.Frontier, convex bool) Frontier {
	v := Frontier{Total: len(f), Convex: convex}
	for _, i := range evenlySpaced(len(f), frontierRows) {
		v.Points = append(v.Points, newPoint(f[i]))
	}
	return v
}

func newCloud(c allocation.Cloud) Cloud {
	if len(c) == 0 {
		return Cloud{}
	}
	best, least := c[0], c[0]
	for _, p := range c[1:] {
		if p.Sharpe > best.Sharpe {
			best = p
		}
		if p.Risk < least.Risk {
			least = p
		}
	}
	return Cloud{Count: len(c), BestSharpe: newPoint(best), MinimumRisk: newPoint(least)}
}

// evenlySpaced returns at most k indices in [0, n), the first and last included.
func evenlySpaced(n, k int) []int {
	if n <= k {
		idx := make([]int, n)
		for i := range idx {
			idx[i] = i
		}
		return idx
	}
	idx := make([]int, k)
	for i := range idx {
		idx[i] = (i*(n-1) + (k-1)/2) / (k - 1)
	}
	return idx
}

func newPlan(p allocation.Plan) Plan {
	v := Plan{TotalBuy: p.TotalBuy, TotalSell: p.TotalSell, CashRemaining: p.CashRemaining}
	for _, a := range p.Trades() {
		v.Trades = append(v.Trades, Trade{
			Symbol:  a.Symbol,
			Action:  a.Action.String(),
			Current: allocation.Pct(a.CurrentWeight),
			Optimal: allocation.Pct(a.OptimalWeight),
			Amount:  a.Amount,
			Shares:  a.Shares.Round(4),
		})
	}
	return v
}
