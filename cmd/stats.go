package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/allocation/renderer"
	"github.com/google/subcommands"
)

type statsCmd struct {
	output
}

func (*statsCmd) Name() string     { return "stats" }
func (*statsCmd) Synopsis() string { return "display expected returns, volatilities and correlations" }
func (*statsCmd) Usage() string {
	return `alloc stats [-json] [-q <jsonpath>]

  Computes the annualized expected return and volatility of each holding, and the
  correlation matrix of their returns, from the price history.
`
}

func (c *statsCmd) SetFlags(f *flag.FlagSet) { c.output.SetFlags(f) }

func (c *statsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	opts, err := loadOptions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	holdings, stats, err := loadStatistics(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing statistics: %v\n", err)
		return subcommands.ExitFailure
	}

	err = c.print(stdout, stats, func() string {
		return renderer.RenderStatistics(renderer.NewStatistics(stats, holdings.Weights(), holdings.TotalValue(), holdings.DiversificationScore()))
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error printing statistics: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
