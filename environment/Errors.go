package environment

import (
	"errors"
	"fmt"
	"math"
)

// ConfigurationError reports an invalid configuration value. It is
// returned before any state is modified, so that whatever was
// configured previously remains in use.
type ConfigurationError struct {
	Op    string
	Field string
	Err   error
}

// Error satisifes the error interface
func (e *ConfigurationError) Error() string {
	if e.Field == "" {
		return e.Op + ": " + e.Err.Error()
	}
	return e.Op + ": " + e.Field + ": " + e.Err.Error()
}

// Unwrap returns the underlying cause of the error
func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// NewConfigurationError returns a new *ConfigurationError for field
// with a formatted message
func NewConfigurationError(op, field, format string,
	args ...interface{}) *ConfigurationError {
	return &ConfigurationError{Op: op, Field: field,
		Err: fmt.Errorf(format, args...)}
}

// CapacityError reports that more distinct cells were requested from a
// pool than the pool holds.
type CapacityError struct {
	Op        string
	Requested int
	Available int
}

// Error satisifes the error interface
func (e *CapacityError) Error() string {
	return fmt.Sprintf("%v: requested %d cells but only %d are available",
		e.Op, e.Requested, e.Available)
}

// IsConfigurationError returns whether or not err reports an invalid
// configuration
func IsConfigurationError(err error) bool {
	var configErr *ConfigurationError
	return errors.As(err, &configErr)
}

// IsCapacityError returns whether or not err reports an exhausted
// cell pool
func IsCapacityError(err error) bool {
	var capErr *CapacityError
	return errors.As(err, &capErr)
}

// CheckUnit returns a *ConfigurationError if value is not a finite
// number in [0, 1]
func CheckUnit(op, field string, value float64) error {
	if err := CheckFinite(op, field, value); err != nil {
		return err
	}
	if value < 0 || value > 1 {
		return NewConfigurationError(op, field,
			"must be in [0, 1], got %v", value)
	}
	return nil
}

// CheckFinite returns a *ConfigurationError if value is NaN or infinite
func CheckFinite(op, field string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return NewConfigurationError(op, field,
			"must be a finite number, got %v", value)
	}
	return nil
}

// CheckAtLeast returns a *ConfigurationError if value < min
func CheckAtLeast(op, field string, value, min int) error {
	if value < min {
		return NewConfigurationError(op, field,
			"must be at least %d, got %d", min, value)
	}
	return nil
}
