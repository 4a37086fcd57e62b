package quant

import (
	"errors"
	"fmt"
)

var (
	// ErrInsufficientData is returned when there are fewer observations than
	// the operation requires.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrInvalidParameter is returned when a parameter is out of range.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrDegenerateInput is returned for mathematically singular input such
	// as a zero variance or a zero denominator.
	ErrDegenerateInput = errors.New("degenerate input")
)

func insufficient(need, have int) error {
	return fmt.Errorf("%w: need %d, have %d", ErrInsufficientData, need, have)
}

func invalidParam(name string, value interface{}) error {
	return fmt.Errorf("%w: %s=%v", ErrInvalidParameter, name, value)
}

func degenerate(reason string) error {
	return fmt.Errorf("%w: %s", ErrDegenerateInput, reason)
}
