package allocation

import (
	"errors"
	"fmt"
)

// Sentinel errors, use errors.Is to test the kind of an error returned by this package.
var (
	ErrInsufficientInput    = errors.New("insufficient input")
	ErrDegenerateCovariance = errors.New("degenerate covariance")
	ErrOptimizationFailure  = errors.New("optimization failure")
	ErrInvalidHolding       = errors.New("invalid holding")
)

// InsufficientInputError is returned when there are fewer than two assets, when an asset has
// no price at all, or when the inputs do not line up.
type InsufficientInputError struct {
	Symbol string // empty when the error is not about a single asset
	Reason string
}

func (e *InsufficientInputError) Error() string {
	if e.Symbol == "" {
		return fmt.Sprintf("insufficient input: %s", e.Reason)
	}
	return fmt.Sprintf("insufficient input for %q: %s", e.Symbol, e.Reason)
}

func (e *InsufficientInputError) Is(target error) bool { return target == ErrInsufficientInput }

// DegenerateCovarianceError is returned by the exact solver when no minimum-variance solution
// can be computed for a target return.
type DegenerateCovarianceError struct {
	Target float64
	Err    error
}

func (e *DegenerateCovarianceError) Error() string {
	return fmt.Sprintf("degenerate covariance: no minimum-variance solution for target return %.4f: %v", e.Target, e.Err)
}

func (e *DegenerateCovarianceError) Is(target error) bool { return target == ErrDegenerateCovariance }
func (e *DegenerateCovarianceError) Unwrap() error        { return e.Err }

// OptimizationFailureError is returned when no efficient point survives the filtering.
type OptimizationFailureError struct {
	Targets   int // number of target returns that were solved
	Discarded int // number of solutions outside the plausible band
}

func (e *OptimizationFailureError) Error() string {
	return fmt.Sprintf("optimization failure: no efficient portfolio out of %d targets (%d discarded)", e.Targets, e.Discarded)
}

func (e *OptimizationFailureError) Is(target error) bool { return target == ErrOptimizationFailure }
