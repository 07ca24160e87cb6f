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

type sampleCmd struct {
	output
	count int
	seed  uint64
}

func (*sampleCmd) Name() string     { return "sample" }
func (*sampleCmd) Synopsis() string { return "draw random long-only portfolios" }
func (*sampleCmd) Usage() string {
	return `alloc sample [-n <count>] [-seed <seed>] [-json] [-q <jsonpath>]

  Draws random portfolios uniformly on the simplex and keeps those with a plausible
  risk and return. Draws are reproducible for a given seed.
`
}

func (c *sampleCmd) SetFlags(f *flag.FlagSet) {
	c.output.SetFlags(f)
	f.IntVar(&c.count, "n", 1000, "number of random portfolios to draw")
	f.Uint64Var(&c.seed, "seed", 1, "seed of the random draws")
}

func (c *sampleCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	opts, err := loadOptions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	if isSet(f, "n") {
		opts.Samples = c.count
	}
	if isSet(f, "seed") {
		opts.Seed = c.seed
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
	cloud, err := allocation.SamplePortfolios(ctx, stats.ExpectedReturns, stats.Covariance, opts.Samples, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error sampling portfolios: %v\n", err)
		return subcommands.ExitFailure
	}

	err = c.print(stdout, cloud, func() string {
		return renderer.RenderCloud(renderer.NewCloud(cloud))
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error printing portfolios: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
