package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Lookup errors
	ErrUnknownDesign = errors.New("unknown design")

	// Input errors
	ErrMissingParameter = errors.New("missing parameter")
	ErrInvalidRange     = errors.New("parameter out of valid range")

	// Numeric errors
	ErrNonConvergence = errors.New("root finder did not converge")
	ErrNonFinite      = errors.New("non-finite intermediate value")
)

// Error constructors with context
func NewUnknownDesignError(id string) error {
	return fmt.Errorf("%w: %q", ErrUnknownDesign, id)
}

func NewMissingParameterError(design, param string) error {
	return fmt.Errorf("%w: %s requires %q", ErrMissingParameter, design, param)
}

func NewRangeError(param string, value float64, bounds string) error {
	return fmt.Errorf("%w: %s=%g, want %s", ErrInvalidRange, param, value, bounds)
}

func NewNonConvergenceError(quantity string, iterations int) error {
	return fmt.Errorf("%w: solving for %s after %d iterations", ErrNonConvergence, quantity, iterations)
}

func NewNonFiniteError(quantity string) error {
	return fmt.Errorf("%w: %s", ErrNonFinite, quantity)
}

// Error checking helpers
func IsInputError(err error) bool {
	return errors.Is(err, ErrMissingParameter) ||
		errors.Is(err, ErrInvalidRange) ||
		errors.Is(err, ErrUnknownDesign)
}

func IsNumericError(err error) bool {
	return errors.Is(err, ErrNonConvergence) ||
		errors.Is(err, ErrNonFinite)
}
