package analytics

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a ComputationError.
type ErrorKind string

const (
	// KindDivisionByZero marks a computation that divided by a zero
	// closing price or a zero-variance denominator.
	KindDivisionByZero ErrorKind = "division_by_zero"
	// KindEmptyInput marks a reduction (mean, variance) attempted over
	// an empty series.
	KindEmptyInput ErrorKind = "empty_input"
)

// ComputationError is the propagated-failure side of the engine's
// error model: arithmetic problems in the statistics surface to the
// caller instead of being coerced to zero, unlike the silent defaults
// applied during cell coercion.
type ComputationError struct {
	Kind   ErrorKind
	Op     string
	Detail string
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.Detail)
}

// IsDivisionByZero reports whether err is a division-by-zero
// ComputationError.
func IsDivisionByZero(err error) bool {
	var cErr *ComputationError
	return errors.As(err, &cErr) && cErr.Kind == KindDivisionByZero
}

// IsEmptyInput reports whether err is an empty-input ComputationError.
func IsEmptyInput(err error) bool {
	var cErr *ComputationError
	return errors.As(err, &cErr) && cErr.Kind == KindEmptyInput
}
