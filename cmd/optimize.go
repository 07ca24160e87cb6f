package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/allocation"
	"github.com/etnz/allocation/renderer"
	"github.com/google/subcommands"
)

// optimizeFlags are the options a command line may override.
type optimizeFlags struct {
	targetReturn float64
	targetRisk   float64
	selection    allocation.Selection
	method       allocation.Method
	points       int
	samples      int
	threshold    float64
}

func (o *optimizeFlags) SetFlags(f *flag.FlagSet) {
	d := allocation.DefaultOptions()
	f.Float64Var(&o.targetReturn, "target-return", d.TargetReturn, "target annual return of the optimal portfolio")
	f.Float64Var(&o.targetRisk, "target-risk", d.TargetRisk, "target annual volatility of the optimal portfolio")
	f.TextVar(&o.selection, "selection", d.Selection, "choice of the optimal portfolio: target, nearest or sharpe")
	f.TextVar(&o.method, "solver", d.Method, "quadratic solver: exact or gradient")
	f.IntVar(&o.points, "n", d.NumPoints, "number of frontier intervals")
	f.IntVar(&o.samples, "samples", d.Samples, "number of random portfolios, 0 to skip them")
	f.Float64Var(&o.threshold, "threshold", d.Threshold, "weight difference below which a holding is kept as is")
}

// apply overrides opts with the flags given on the command line.
func (o *optimizeFlags) apply(f *flag.FlagSet, opts *allocation.Options) {
	f.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "target-return":
			opts.TargetReturn = o.targetReturn
		case "target-risk":
			opts.TargetRisk = o.targetRisk
		case "selection":
			opts.Selection = o.selection
		case "solver":
			opts.Method = o.method
		case "n":
			opts.NumPoints = o.points
		case "samples":
			opts.Samples = o.samples
		case "threshold":
			opts.Threshold = o.threshold
		}
	})
}

// optimize loads the inputs and runs the optimization with the command line options.
func (o *optimizeFlags) optimize(ctx context.Context, f *flag.FlagSet) (allocation.Holdings, allocation.Options, *allocation.Report, error) {
	opts, err := loadOptions()
	if err != nil {
		return nil, opts, nil, err
	}
	o.apply(f, &opts)
	holdings, err := decodeHoldings()
	if err != nil {
		return nil, opts, nil, err
	}
	prices, err := decodePrices()
	if err != nil {
		return nil, opts, nil, err
	}
	report, err := allocation.Optimize(ctx, holdings, prices, opts)
	return holdings, opts, report, err
}

type optimizeCmd struct {
	output
	optimizeFlags
}

func (*optimizeCmd) Name() string     { return "optimize" }
func (*optimizeCmd) Synopsis() string { return "compute the optimal portfolio and the trades to reach it" }
func (*optimizeCmd) Usage() string {
	return `alloc optimize [-target-return <r>] [-target-risk <s>] [-selection target|nearest|sharpe] [-json] [-q <jsonpath>]

  Runs the whole optimization: statistics, current portfolio metrics, efficient frontier,
  random portfolios, optimal and minimum risk portfolios, and the rebalancing plan.
`
}

func (c *optimizeCmd) SetFlags(f *flag.FlagSet) {
	c.output.SetFlags(f)
	c.optimizeFlags.SetFlags(f)
}

func (c *optimizeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, _, report, err := c.optimize(ctx, f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error optimizing the portfolio: %v\n", err)
		return subcommands.ExitFailure
	}

	err = c.print(stdout, report, func() string {
		return renderer.RenderReport(renderer.NewReport(report))
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error printing the report: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
