package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/allocation/agent"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

type reviewCmd struct {
	optimizeFlags
}

func (*reviewCmd) Name() string     { return "review" }
func (*reviewCmd) Synopsis() string { return "discuss the optimization report with Gemini" }
func (*reviewCmd) Usage() string {
	return `alloc review [<question>...]

  Optimizes the portfolio, then starts an interactive session where Gemini reviews the
  report. Arguments are asked as a follow-up question. Requires GEMINI_API_KEY.
`
}

func (c *reviewCmd) SetFlags(f *flag.FlagSet) { c.optimizeFlags.SetFlags(f) }

func (c *reviewCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if os.Getenv("GEMINI_API_KEY") == "" {
		fmt.Fprintln(os.Stderr, "Error: GEMINI_API_KEY is not set")
		return subcommands.ExitFailure
	}
	holdings, opts, report, err := c.optimize(ctx, f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error optimizing the portfolio: %v\n", err)
		return subcommands.ExitFailure
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	prompts := []string{agent.ReviewPrompt}
	if f.NArg() > 0 {
		prompts = append(prompts, strings.Join(f.Args(), " "))
	}
	a := agent.New(stdout, os.Stdin, agent.NewAnalyst(holdings, report, opts.Threshold))
	if err := a.Run(ctx, client, prompts...); err != nil {
		fmt.Fprintln(os.Stderr, "Review failed:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
