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

type frontierCmd struct {
	output
	points int
	method allocation.Method
}

func (*frontierCmd) Name() string     { return "frontier" }
func (*frontierCmd) Synopsis() string { return "compute the efficient frontier" }
func (*frontierCmd) Usage() string {
	return `alloc frontier [-n <points>] [-solver exact|gradient] [-json] [-q <jsonpath>]

  Solves the minimum variance portfolio for n+1 target returns and displays the
  efficient points, sorted by increasing risk.
`
}

func (c *frontierCmd) SetFlags(f *flag.FlagSet) {
	c.output.SetFlags(f)
	f.IntVar(&c.points, "n", 100, "number of frontier intervals, n+1 target returns are solved")
	f.TextVar(&c.method, "solver", allocation.ActiveSet, "quadratic solver: exact or gradient")
}

func (c *frontierCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	opts, err := loadOptions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	if isSet(f, "n") {
		opts.NumPoints = c.points
	}
	if isSet(f, "solver") {
		opts.Method = c.method
	}
	if err := opts.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	_, stats, err := loadStatistics(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing statistics: %v\n", err)
		return subcommands.ExitFailure
	}
	frontier, err := allocation.GenerateFrontier(ctx, stats.ExpectedReturns, stats.Covariance, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating the efficient frontier: %v\n", err)
		return subcommands.ExitFailure
	}

	result := struct {
		Frontier allocation.Frontier `json:"efficientFrontier"`
		Convex   bool                `json:"frontierConvex"`
	}{frontier, frontier.IsConvex(0.1)}
	err = c.print(stdout, result, func() string {
		return renderer.RenderFrontier(renderer.NewFrontier(frontier))
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error printing the frontier: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
