package affordability

import (
	"fmt"
	"math"
)

// ValidationError reports an input that cannot be computed with.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Message: msg}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func requireFinite(field string, v float64) error {
	if !isFinite(v) {
		return invalid(field, "must be a finite number")
	}
	return nil
}

func requirePositive(field string, v float64) error {
	if err := requireFinite(field, v); err != nil {
		return err
	}
	if !(v > 0) {
		return invalid(field, "must be greater than zero")
	}
	return nil
}

func requireNonNegative(field string, v float64) error {
	if err := requireFinite(field, v); err != nil {
		return err
	}
	if v < 0 {
		return invalid(field, "must not be negative")
	}
	return nil
}

// CheckResult rejects computed values that overflowed. Inputs can each be
// finite and still produce an infinite result.
func CheckResult(vals ...float64) error {
	for _, v := range vals {
		if !isFinite(v) {
			return invalid("input", "values are out of range")
		}
	}
	return nil
}
