package allocation

import (
	"context"
	"fmt"
)

// Report is the outcome of an optimization run.
type Report struct {
	Symbols         []string
	Statistics      *Statistics
	Current         Point // the portfolio as held
	Optimal         Point // the portfolio chosen by the selection policy
	MinimumRisk     Point
	Frontier        Frontier
	Cloud           Cloud
	Plan            Plan
	TotalValue      Money
	Diversification float64 // 0 to 100 score of the current weights
	Convex          bool    // whether the frontier passed the convexity check
}

// Optimize runs the whole pipeline on a portfolio: statistics, current metrics, efficient
// frontier, random portfolios, selection of the optimal and minimum-risk portfolios, and the
// rebalancing plan toward the optimal one.
func Optimize(ctx context.Context, holdings Holdings, prices Prices, opts Options) (*Report, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := holdings.Validate(); err != nil {
		return nil, err
	}
	log := opts.logger()

	total := holdings.TotalValue()
	if !total.IsPositive() {
		return nil, &InsufficientInputError{Reason: "the portfolio has no value"}
	}
	stats, err := ComputeStatistics(holdings, prices, opts.AnnualizationFactor, opts.Alignment)
	if err != nil {
		return nil, fmt.Errorf("cannot compute statistics: %w", err)
	}
	log.Debug().Strs("symbols", stats.Symbols).Ints("observations", stats.Observations).Msg("statistics computed")

	mu, cov := stats.ExpectedReturns, stats.Covariance
	current := holdings.Weights()
	report := &Report{
		Symbols:         stats.Symbols,
		Statistics:      stats,
		Current:         Metrics(current, mu, cov, opts.RiskFreeRate),
		TotalValue:      total,
		Diversification: holdings.DiversificationScore(),
	}

	if report.Frontier, err = GenerateFrontier(ctx, mu, cov, opts); err != nil {
		return nil, fmt.Errorf("cannot generate the efficient frontier: %w", err)
	}
	report.Convex = report.Frontier.IsConvex(0.1)
	if opts.Samples > 0 {
		if report.Cloud, err = SamplePortfolios(ctx, mu, cov, opts.Samples, opts); err != nil {
			return nil, fmt.Errorf("cannot sample portfolios: %w", err)
		}
	}

	if report.Optimal, err = Select(report.Frontier, opts); err != nil {
		return nil, err
	}
	if report.MinimumRisk, err = SelectMinimumRisk(report.Frontier); err != nil {
		return nil, err
	}
	if report.Plan, err = PlanRebalance(holdings, current, report.Optimal.Weights, total, opts.Threshold); err != nil {
		return nil, err
	}
	log.Info().
		Float64("return", report.Optimal.Return).
		Float64("risk", report.Optimal.Risk).
		Int("trades", len(report.Plan.Trades())).
		Msg("portfolio optimized")
	return report, nil
}

// MarshalJSON writes the report with a stable key order.
func (r *Report) MarshalJSON() ([]byte, error) {
	var expected []float64
	var cov [][]float64
	if r.Statistics != nil {
		expected = r.Statistics.ExpectedReturns
		cov = matrix(r.Statistics.Covariance)
	}

	var w jsonObjectWriter
	w.Append("symbols", r.Symbols)
	w.Append("expectedReturns", expected)
	w.Append("covariance", cov)
	w.Append("currentPortfolio", r.Current)
	w.Append("optimalPortfolio", r.Optimal)
	w.Append("minimumRiskPortfolio", r.MinimumRisk)
	w.Append("expectedReturn", r.Optimal.Return)
	w.Append("risk", r.Optimal.Risk)
	w.Append("sharpeRatio", r.Optimal.Sharpe)
	w.Append("efficientFrontier", r.Frontier)
	w.Optional("monteCarloCloud", r.Cloud)
	w.EmbedFrom(r.Plan)
	w.Append("totalValue", r.TotalValue)
	w.Append("diversificationScore", r.Diversification)
	w.Append("frontierConvex", r.Convex)
	return w.MarshalJSON()
}
