package cmd

import (
	"flag"
	"strings"

	"github.com/etnz/allocation/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion returns the shell completion of the commander's commands and flags.
func Completion(c *subcommands.Commander) *complete.Command {
	root := &complete.Command{
		Sub:   map[string]*complete.Command{},
		Flags: map[string]complete.Predictor{},
	}
	c.VisitAll(func(fl *flag.Flag) {
		root.Flags[fl.Name] = predictor(fl)
	})
	c.VisitCommands(func(_ *subcommands.CommandGroup, cmd subcommands.Command) {
		f := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
		cmd.SetFlags(f)
		sub := &complete.Command{Flags: flags(f)}
		switch cmd.Name() {
		case "topic":
			topics, _ := docs.GetAllTopics()
			sub.Args = predict.Set(topics)
		case "help":
			sub.Args = predict.Set(commandNames(c))
		default:
			sub.Args = predict.Nothing
		}
		root.Sub[cmd.Name()] = sub
	})
	return root
}

// flags predicts the values of each flag in f.
func flags(f *flag.FlagSet) map[string]complete.Predictor {
	m := map[string]complete.Predictor{}
	f.VisitAll(func(fl *flag.Flag) {
		m[fl.Name] = predictor(fl)
	})
	return m
}

func predictor(fl *flag.Flag) complete.Predictor {
	if b, ok := fl.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
		return predict.Nothing
	}
	switch fl.Name {
	case "holdings", "prices":
		return predict.Files("*.jsonl")
	case "config":
		return predict.Files("*.yaml")
	case "selection":
		return predict.Set{"target", "nearest", "sharpe"}
	case "solver":
		return predict.Set{"exact", "gradient"}
	}
	return predict.Something
}

func commandNames(c *subcommands.Commander) []string {
	var names []string
	c.VisitCommands(func(_ *subcommands.CommandGroup, cmd subcommands.Command) {
		names = append(names, cmd.Name())
	})
	return names
}

// IsRegistered reports whether name is one of the commander's commands.
func IsRegistered(c *subcommands.Commander, name string) bool {
	found := false
	c.VisitCommands(func(_ *subcommands.CommandGroup, cmd subcommands.Command) {
		if strings.EqualFold(cmd.Name(), name) {
			found = true
		}
	})
	return found
}
