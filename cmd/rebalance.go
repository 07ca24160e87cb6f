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

type rebalanceCmd struct {
	output
	weights   string
	threshold float64
}

func (*rebalanceCmd) Name() string     { return "rebalance" }
func (*rebalanceCmd) Synopsis() string { return "compute the trades toward target weights" }
func (*rebalanceCmd) Usage() string {
	return `alloc rebalance -weights <symbol>=<weight>,... [-threshold <t>] [-json] [-q <jsonpath>]

  Computes the trades turning the current weights of the holdings into the target
  weights. Symbols left out get a zero weight.

Usage Examples:
$ alloc rebalance -weights AAA=0.6,BBB=0.4
`
}

func (c *rebalanceCmd) SetFlags(f *flag.FlagSet) {
	c.output.SetFlags(f)
	f.StringVar(&c.weights, "weights", "", "target weights, like AAA=0.6,BBB=0.4")
	f.Float64Var(&c.threshold, "threshold", 0.01, "weight difference below which a holding is kept as is")
}

func (c *rebalanceCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.weights == "" {
		fmt.Fprintln(os.Stderr, "Error: -weights is required")
		return subcommands.ExitUsageError
	}
	opts, err := loadOptions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	if isSet(f, "threshold") {
		opts.Threshold = c.threshold
	}

	holdings, err := decodeHoldings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading holdings: %v\n", err)
		return subcommands.ExitFailure
	}
	target, err := allocation.ParseWeights(c.weights, holdings.Symbols())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	plan, err := allocation.PlanRebalance(holdings, holdings.Weights(), target, holdings.TotalValue(), opts.Threshold)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error planning the rebalancing: %v\n", err)
		return subcommands.ExitFailure
	}

	err = c.print(stdout, plan, func() string {
		return renderer.RenderPlan(renderer.NewPlan(plan))
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error printing the plan: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
