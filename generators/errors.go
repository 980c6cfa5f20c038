package generators

import (
	"fmt"
)

// ShapeError is returned when the input shape given to the factory is malformed.
type ShapeError struct {
	Shape  []int
	Reason string
}

// Error implements error.
func (e *ShapeError) Error() string {
	return fmt.Sprintf("invalid input shape %v: %s", e.Shape, e.Reason)
}

// ConfigError is returned when the factory configuration (resize factor, output size, strategy or
// options) is invalid.
type ConfigError struct {
	Field  string
	Value  any
	Reason string
}

// Error implements error.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Reason)
}
