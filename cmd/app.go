// Package cmd implements the alloc command line application.
package cmd

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/etnz/allocation"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Register the subcommands.
func Register(c *subcommands.Commander) {
	c.Register(&statsCmd{}, "analysis")
	c.Register(&frontierCmd{}, "analysis")
	c.Register(&sampleCmd{}, "analysis")
	c.Register(&optimizeCmd{}, "analysis")
	c.Register(&rebalanceCmd{}, "analysis")

	c.Register(&topicCmd{}, "help")
	c.Register(&reviewCmd{}, "assist")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var holdingsFile = flag.String("holdings", "holdings.jsonl", "Path to the holdings file (JSONL format)")
var pricesFile = flag.String("prices", "prices.jsonl", "Path to the price history file (JSONL format)")
var configFile = flag.String("config", "alloc.yaml", "Path to the optimizer configuration file (YAML format)")

// Verbose enables debug logs on the standard error.
var Verbose = flag.Bool("v", false, "log the progress of the computation")

// stdout is where commands print their result.
var stdout io.Writer = os.Stdout

// newLogger configures the global logger and returns it.
func newLogger() *zerolog.Logger {
	level := zerolog.WarnLevel
	if *Verbose {
		level = zerolog.DebugLevel
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().
		Logger()
	return &log.Logger
}

// loadOptions reads the configuration file over the default options. A missing file is not an
// error.
func loadOptions() (allocation.Options, error) {
	opts := allocation.DefaultOptions()
	opts.Logger = newLogger()

	data, err := os.ReadFile(*configFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Debug().Str("file", *configFile).Msg("no configuration file, using defaults")
		return opts, nil
	}
	if err != nil {
		return opts, fmt.Errorf("could not read configuration file %q: %w", *configFile, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&opts); err != nil && !errors.Is(err, io.EOF) {
		return opts, fmt.Errorf("could not decode configuration file %q: %w", *configFile, err)
	}
	if err := opts.Validate(); err != nil {
		return opts, fmt.Errorf("configuration file %q: %w", *configFile, err)
	}
	return opts, nil
}

// decodeHoldings decodes the holdings from the application holdings file.
func decodeHoldings() (allocation.Holdings, error) {
	f, err := os.Open(*holdingsFile)
	if err != nil {
		return nil, fmt.Errorf("could not open holdings file %q: %w", *holdingsFile, err)
	}
	defer f.Close()

	holdings, err := allocation.DecodeHoldings(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode holdings file %q: %w", *holdingsFile, err)
	}
	return holdings, nil
}

// decodePrices decodes the price history from the application prices file.
func decodePrices() (allocation.Prices, error) {
	f, err := os.Open(*pricesFile)
	if err != nil {
		return nil, fmt.Errorf("could not open prices file %q: %w", *pricesFile, err)
	}
	defer f.Close()

	prices, err := allocation.DecodePrices(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode prices file %q: %w", *pricesFile, err)
	}
	return prices, nil
}

// loadStatistics decodes the inputs and computes the statistics of the holdings.
func loadStatistics(opts allocation.Options) (allocation.Holdings, *allocation.Statistics, error) {
	holdings, err := decodeHoldings()
	if err != nil {
		return nil, nil, err
	}
	prices, err := decodePrices()
	if err != nil {
		return nil, nil, err
	}
	stats, err := allocation.ComputeStatistics(holdings, prices, opts.AnnualizationFactor, opts.Alignment)
	if err != nil {
		return nil, nil, err
	}
	return holdings, stats, nil
}

// isSet reports whether the flag name was given on the command line.
func isSet(f *flag.FlagSet, name string) bool {
	set := false
	f.Visit(func(fl *flag.Flag) {
		if fl.Name == name {
			set = true
		}
	})
	return set
}
