package allocation

import (
	"fmt"
	"runtime"

	"github.com/rs/zerolog"
)

// Options configures an optimization run.
type Options struct {
	AnnualizationFactor float64   `yaml:"annualization_factor"` // periods per year, 252 for daily trading data
	Alignment           Alignment `yaml:"alignment"`
	RiskFreeRate        float64   `yaml:"risk_free_rate"`

	NumPoints     int    `yaml:"frontier_points"` // the frontier is solved for NumPoints+1 target returns
	Method        Method `yaml:"solver"`
	MaxIterations int    `yaml:"max_iterations"` // cap on each iterative solve

	Samples int    `yaml:"samples"` // Monte Carlo draws, 0 disables the cloud
	Seed    uint64 `yaml:"seed"`

	Selection    Selection `yaml:"selection"`
	TargetReturn float64   `yaml:"target_return"`
	TargetRisk   float64   `yaml:"target_risk"`

	Threshold float64 `yaml:"threshold"` // weight difference below which an asset is held

	Workers int             `yaml:"workers"` // 0 means GOMAXPROCS
	Logger  *zerolog.Logger `yaml:"-"`
}

// DefaultOptions returns the options used when nothing else is configured.
func DefaultOptions() Options {
	return Options{
		AnnualizationFactor: 252,
		Alignment:           AlignPositional,
		RiskFreeRate:        0.02,
		NumPoints:           100,
		Method:              ActiveSet,
		MaxIterations:       1000,
		Samples:             1000,
		Seed:                1,
		Selection:           ByTarget,
		TargetReturn:        0.23,
		TargetRisk:          0.12,
		Threshold:           0.01,
	}
}

// Validate checks that the options can be used for a run.
func (o Options) Validate() error {
	switch {
	case o.AnnualizationFactor <= 0:
		return fmt.Errorf("invalid options: annualization factor must be positive, got %v", o.AnnualizationFactor)
	case o.NumPoints < 1:
		return fmt.Errorf("invalid options: frontier points must be at least 1, got %d", o.NumPoints)
	case o.MaxIterations < 1:
		return fmt.Errorf("invalid options: max iterations must be at least 1, got %d", o.MaxIterations)
	case o.Samples < 0:
		return fmt.Errorf("invalid options: samples must not be negative, got %d", o.Samples)
	case o.Threshold < 0:
		return fmt.Errorf("invalid options: threshold must not be negative, got %v", o.Threshold)
	case o.TargetRisk < 0:
		return fmt.Errorf("invalid options: target risk must not be negative, got %v", o.TargetRisk)
	case o.Workers < 0:
		return fmt.Errorf("invalid options: workers must not be negative, got %d", o.Workers)
	}
	return nil
}

func (o Options) logger() *zerolog.Logger {
	if o.Logger == nil {
		nop := zerolog.Nop()
		return &nop
	}
	return o.Logger
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.GOMAXPROCS(0)
}

func (o Options) solver() Solver { return o.Method.Solver(o.MaxIterations) }
